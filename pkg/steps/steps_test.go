package steps

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/denizgursoy/stepindex/pkg/gherkin_parser"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)

	return data
}

func newTestIndex(t *testing.T, settings Settings) *Index {
	t.Helper()
	controller := gomock.NewController(t)
	source := NewMockFileSource(controller)

	source.EXPECT().Glob(gomock.Any(), "steps/**/*.js").Return([]string{"steps/cats.js"}, nil).AnyTimes()
	source.EXPECT().ReadFile(gomock.Any(), "steps/cats.js").Return(readTestdata(t, "steps.js"), nil).AnyTimes()
	source.EXPECT().Glob(gomock.Any(), "features/*.feature").Return([]string{"features/cats.feature"}, nil).AnyTimes()
	source.EXPECT().ReadFile(gomock.Any(), "features/cats.feature").Return(readTestdata(t, "cats.feature"), nil).AnyTimes()

	index := NewIndex(settings, WithFileSource(source))
	require.NoError(t, index.Build(context.Background()))

	return index
}

func stepTexts(index *Index) []string {
	var texts []string
	for _, step := range index.Steps() {
		texts = append(texts, step.Text)
	}

	return texts
}

func TestIndex_Build(t *testing.T) {
	t.Run("indexes compilable steps once", func(t *testing.T) {
		index := newTestIndex(t, Settings{Steps: []string{"steps/**/*.js"}})

		require.Equal(t, []string{
			"I have {int} cats",
			"I go (up|down)",
			`the name is "([^"]*)"`,
		}, stepTexts(index))
		require.Empty(t, index.Warnings())
	})

	t.Run("keeps the origin and documentation of a step", func(t *testing.T) {
		index := newTestIndex(t, Settings{Steps: []string{"steps/**/*.js"}})

		step := index.Steps()[0]
		require.Equal(t, Location{Path: "steps/cats.js", Line: 1, Character: 0}, step.Location)
		require.Equal(t, "Counts cats.", step.Documentation)
		require.Equal(t, "Given('I have {int} cats', function (n)", step.Description)
		require.Equal(t, gherkin_parser.Given, step.Type)
		require.True(t, step.Pattern.Match("I have 3 cats"))
	})

	t.Run("expands invariants", func(t *testing.T) {
		index := newTestIndex(t, Settings{Steps: []string{"steps/**/*.js"}, Invariants: true})

		texts := stepTexts(index)
		require.Contains(t, texts, "I go up")
		require.Contains(t, texts, "I go down")
		require.NotContains(t, texts, "I go (up|down)")

		up, ok := index.Find("I go up")
		require.True(t, ok)
		require.False(t, up.Pattern.Match("I go down"))
	})

	t.Run("warns about globs without files", func(t *testing.T) {
		controller := gomock.NewController(t)
		source := NewMockFileSource(controller)
		source.EXPECT().Glob(gomock.Any(), "missing/*.js").Return(nil, nil)

		index := NewIndex(Settings{Steps: []string{"missing/*.js"}}, WithFileSource(source))
		require.NoError(t, index.Build(context.Background()))

		require.Empty(t, index.Steps())
		require.Len(t, index.Warnings(), 1)
		require.Equal(t, "missing/*.js", index.Warnings()[0].Source)
	})

	t.Run("skips unreadable files and logs them", func(t *testing.T) {
		controller := gomock.NewController(t)
		source := NewMockFileSource(controller)
		logger := NewMockLogger(controller)
		source.EXPECT().Glob(gomock.Any(), "*.js").Return([]string{"a.js", "b.js"}, nil)
		source.EXPECT().ReadFile(gomock.Any(), "a.js").Return(nil, errors.New("denied"))
		source.EXPECT().ReadFile(gomock.Any(), "b.js").Return([]byte("Given('b', fn)"), nil)
		logger.EXPECT().Warn("could not read step definition file", "path", "a.js", "error", gomock.Any())
		logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()

		index := NewIndex(Settings{Steps: []string{"*.js"}}, WithFileSource(source), WithLogger(logger))
		require.NoError(t, index.Build(context.Background()))

		require.Equal(t, []string{"b"}, stepTexts(index))
	})

	t.Run("stops on a cancelled context", func(t *testing.T) {
		controller := gomock.NewController(t)
		source := NewMockFileSource(controller)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		source.EXPECT().Glob(gomock.Any(), "*.js").Return(nil, context.Canceled)

		index := NewIndex(Settings{Steps: []string{"*.js"}}, WithFileSource(source))

		require.ErrorIs(t, index.Build(ctx), context.Canceled)
	})

	t.Run("produces identical patterns for identical settings", func(t *testing.T) {
		first := newTestIndex(t, Settings{Steps: []string{"steps/**/*.js"}})
		second := newTestIndex(t, Settings{Steps: []string{"steps/**/*.js"}})

		for n, step := range first.Steps() {
			require.Equal(t, step.ID, second.Steps()[n].ID)
			require.Equal(t, step.Pattern.Source(), second.Steps()[n].Pattern.Source())
			require.Equal(t, step.Pattern.PartialSource(), second.Steps()[n].Pattern.PartialSource())
		}
	})
}

func TestIndex_LoadRecords(t *testing.T) {
	t.Run("loads valid records and applies defaults", func(t *testing.T) {
		index := NewIndex(Settings{})

		loaded := index.LoadRecords("records.json", readTestdata(t, "records.json"))

		require.Equal(t, 2, loaded)
		steps := index.Steps()

		require.Equal(t, "I pay {int} euros", steps[0].Text)
		require.Equal(t, "Pays.", steps[0].Documentation)
		require.Equal(t, "I pay {int} euros", steps[0].Description)
		require.Equal(t, gherkin_parser.When, steps[0].Type)
		require.Equal(t, 3, index.Count(steps[0].ID))
		require.Equal(t, Location{Path: "records.json", Line: 0}, steps[0].Location)
		require.True(t, steps[0].Pattern.Match("I pay 10 euros"))

		require.Equal(t, gherkin_parser.Other, steps[1].Type)
		require.Equal(t, Location{Path: "/src/pay.js", Line: 4, Character: 2}, steps[1].Location)
		require.True(t, steps[1].Pattern.Match("I pay by cash"))
	})

	t.Run("falls back to the full pattern when the partial one is invalid", func(t *testing.T) {
		index := NewIndex(Settings{})
		index.LoadRecords("records.json", readTestdata(t, "records.json"))

		step := index.Steps()[1]
		require.Equal(t, step.Pattern.Source(), step.Pattern.PartialSource())
	})

	t.Run("decodes percent escapes of definition uris", func(t *testing.T) {
		index := NewIndex(Settings{})
		index.LoadRecords("records.json", []byte(
			`[{"text": "I rest", "def": {"uri": "file:///src/my%20steps.js", "range": {"start": {"line": 1, "character": 3}}}}]`,
		))

		require.Equal(t, Location{Path: "/src/my steps.js", Line: 1, Character: 3}, index.Steps()[0].Location)
	})

	t.Run("skips files that are not arrays", func(t *testing.T) {
		index := NewIndex(Settings{})

		require.Zero(t, index.LoadRecords("object.json", []byte(`{"text": "x"}`)))
		require.Zero(t, index.LoadRecords("broken.json", []byte(`[{"text": `)))
		require.Empty(t, index.Steps())
	})

	t.Run("loads precomputed files during build", func(t *testing.T) {
		controller := gomock.NewController(t)
		source := NewMockFileSource(controller)
		source.EXPECT().Glob(gomock.Any(), "*.json").Return([]string{"records.json"}, nil)
		source.EXPECT().ReadFile(gomock.Any(), "records.json").Return(readTestdata(t, "records.json"), nil)

		index := NewIndex(Settings{Precomputed: []string{"*.json"}}, WithFileSource(source))
		require.NoError(t, index.Build(context.Background()))

		require.Len(t, index.Steps(), 2)
	})
}

func TestIndex_ResynchronizeCounts(t *testing.T) {
	t.Run("counts every step line of the feature files", func(t *testing.T) {
		index := newTestIndex(t, Settings{Steps: []string{"steps/**/*.js"}})

		require.NoError(t, index.ResynchronizeCounts(context.Background(), "features/*.feature"))

		steps := index.Steps()
		require.Equal(t, 2, steps[0].Count)
		require.Equal(t, 2, steps[1].Count)
		require.Equal(t, 2, steps[2].Count)
	})

	t.Run("recomputes counts from scratch", func(t *testing.T) {
		index := newTestIndex(t, Settings{Steps: []string{"steps/**/*.js"}})
		id := index.Steps()[0].ID
		for range 5 {
			index.Increment(id)
		}

		require.NoError(t, index.ResynchronizeCounts(context.Background(), "features/*.feature"))
		require.NoError(t, index.ResynchronizeCounts(context.Background(), "features/*.feature"))

		require.Equal(t, 2, index.Count(id))
	})

	t.Run("only counts scenarios selected by the tag expression", func(t *testing.T) {
		index := newTestIndex(t, Settings{Steps: []string{"steps/**/*.js"}, SyncTags: "not @skip"})

		require.NoError(t, index.ResynchronizeCounts(context.Background(), "features/*.feature"))

		require.Equal(t, 1, index.Steps()[0].Count)
	})

	t.Run("rejects an invalid tag expression", func(t *testing.T) {
		index := newTestIndex(t, Settings{Steps: []string{"steps/**/*.js"}, SyncTags: "@a and"})

		require.Error(t, index.ResynchronizeCounts(context.Background(), "features/*.feature"))
	})

	t.Run("scans files the gherkin parser rejects line by line", func(t *testing.T) {
		controller := gomock.NewController(t)
		source := NewMockFileSource(controller)
		source.EXPECT().Glob(gomock.Any(), "*.feature").Return([]string{"broken.feature"}, nil)
		source.EXPECT().ReadFile(gomock.Any(), "broken.feature").
			Return([]byte("not gherkin\nGiven I have 1 cats\n  And I have 2 cats\n"), nil)

		index := NewIndex(Settings{}, WithFileSource(source))
		index.LoadRecords("records.json", []byte(`[{"text": "I have {int} cats"}]`))

		require.NoError(t, index.ResynchronizeCounts(context.Background(), "*.feature"))

		require.Equal(t, 2, index.Steps()[0].Count)
	})
}

func TestIndex_Increment(t *testing.T) {
	t.Run("increments a known step", func(t *testing.T) {
		index := NewIndex(Settings{})
		index.LoadRecords("records.json", []byte(`[{"text": "a", "count": 1}]`))
		id := index.Steps()[0].ID

		index.Increment(id)

		require.Equal(t, 2, index.Count(id))
	})

	t.Run("ignores unknown ids", func(t *testing.T) {
		index := NewIndex(Settings{})

		index.Increment("unknown")

		require.Zero(t, index.Count("unknown"))
	})
}

func TestParseTagFilter(t *testing.T) {
	t.Run("returns no filter for an empty expression", func(t *testing.T) {
		filter, err := ParseTagFilter("  ")

		require.NoError(t, err)
		require.Nil(t, filter)
	})

	t.Run("evaluates a valid expression", func(t *testing.T) {
		filter, err := ParseTagFilter("@fast and not @skip")
		require.NoError(t, err)

		require.True(t, filter([]string{"@fast"}))
		require.False(t, filter([]string{"@fast", "@skip"}))
	})

	t.Run("turns malformed expressions into errors", func(t *testing.T) {
		for _, expression := range []string{"@a and", "@a or"} {
			require.NotPanics(t, func() {
				filter, err := ParseTagFilter(expression)

				require.Error(t, err, expression)
				require.Nil(t, filter)
			})
		}
	})
}
