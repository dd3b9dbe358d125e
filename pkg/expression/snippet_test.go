package expression

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnippet(t *testing.T) {
	symbols := []ParameterSymbol{{Name: "string", Prefix: `"`, Suffix: `"`}}

	t.Run("numbers parameters in smart mode", func(t *testing.T) {
		require.Equal(t, "have ${1:} cats in ${2:}", Snippet("have {int} cats in {word}", nil, true))
	})

	t.Run("wraps slots with parameter symbols", func(t *testing.T) {
		require.Equal(t, `say "${1:}"`, Snippet("say {string}", symbols, true))
	})

	t.Run("substitutes parameter symbols without smart snippets", func(t *testing.T) {
		require.Equal(t, `say "" {int}`, Snippet("say {string} {int}", symbols, false))
	})

	t.Run("offers alternatives as choices", func(t *testing.T) {
		require.Equal(t, "go ${1|up,down|}", Snippet("go (up|down)", nil, true))
	})

	t.Run("offers alternative text as choices", func(t *testing.T) {
		require.Equal(t, "go ${1|up,down|} with ${2:}", Snippet("go up/down with {int}", nil, true))
	})

	t.Run("keeps alternative text without smart snippets", func(t *testing.T) {
		require.Equal(t, "go up/down", Snippet("go up/down", nil, false))
	})

	t.Run("turns regex groups into slots", func(t *testing.T) {
		require.Equal(t, `have ${1:} apples`, Snippet(`have (\d+) apples`, nil, true))
	})

	t.Run("drops optional text", func(t *testing.T) {
		require.Equal(t, "run fast", Snippet("run(s) fast", nil, true))
	})

	t.Run("escapes snippet syntax in text", func(t *testing.T) {
		require.Equal(t, `costs \$5`, Snippet("costs $5", nil, true))
	})
}
