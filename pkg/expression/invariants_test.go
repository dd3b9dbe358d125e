package expression

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvariants(t *testing.T) {
	t.Run("expands one alternation group", func(t *testing.T) {
		require.Equal(t,
			[]string{"I go one", "I go two", "I go three"},
			Invariants("I go (one|two|three)"))
	})

	t.Run("expands independent groups", func(t *testing.T) {
		require.Equal(t,
			[]string{"a x", "a y", "b x", "b y"},
			Invariants("(a|b) (x|y)"))
	})

	t.Run("expands non-capturing groups", func(t *testing.T) {
		require.Equal(t, []string{"I am in", "I am out"}, Invariants("I am (?:in|out)"))
	})

	t.Run("returns templates without alternation unchanged", func(t *testing.T) {
		require.Equal(t, []string{`I have (\d+) cats`}, Invariants(`I have (\d+) cats`))
	})

	t.Run("produces steps matching only their own branch", func(t *testing.T) {
		variants := Invariants("I go (one|two|three)")
		require.Len(t, variants, 3)

		for i, variant := range variants {
			pattern, err := Compile(variant, Options{})
			require.NoError(t, err)
			for j, other := range variants {
				require.Equal(t, i == j, pattern.Match(other))
			}
		}
	})
}
