package step_parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripComments(t *testing.T) {
	t.Run("blanks comments and keeps positions", func(t *testing.T) {
		text := "a /* b\nc */ d\n  // e\n# f\ng"

		require.Equal(t, "a     \n     d\n      \n   \ng", StripComments(text))
	})

	t.Run("keeps comment markers inside strings and after code", func(t *testing.T) {
		text := "Given('/* not a comment */') // trailing\nx = \"#1\""

		require.Equal(t, text, StripComments(text))
	})
}

func TestBlockComments(t *testing.T) {
	t.Run("maps the next non blank line to the comment text", func(t *testing.T) {
		text := "/**\n * Logs in.\n * Twice.\n */\n\nGiven('x')"

		require.Equal(t, map[int]string{5: "Logs in.\nTwice."}, BlockComments(text))
	})

	t.Run("handles single line comments", func(t *testing.T) {
		require.Equal(t, map[int]string{1: "note"}, BlockComments("/* note */\nWhen('y')"))
	})

	t.Run("ignores a comment at the end of the file", func(t *testing.T) {
		require.Empty(t, BlockComments("When('y')\n/* note */"))
	})
}
