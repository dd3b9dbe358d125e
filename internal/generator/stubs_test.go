package generator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStubs(t *testing.T) {
	t.Run("should replace values with parameter types", func(t *testing.T) {
		stubs := NewStubs([]string{`the price is 4.50 and the name is "Bob" for 3 days`})

		require.Len(t, stubs, 1)
		require.Equal(t, "the price is {float} and the name is {string} for {int} days", stubs[0].Template)
		require.Equal(t, []string{"float64", "string", "int"}, stubs[0].Parameters)
		require.Equal(t, "ThePriceIsAndTheNameIsForDays", stubs[0].FunctionName)
	})

	t.Run("should treat single quotes as strings", func(t *testing.T) {
		stubs := NewStubs([]string{"I click 'save'"})

		require.Equal(t, "I click {string}", stubs[0].Template)
		require.Equal(t, "IClick", stubs[0].FunctionName)
	})

	t.Run("should keep digits inside words", func(t *testing.T) {
		stubs := NewStubs([]string{"I open page2"})

		require.Equal(t, "I open page2", stubs[0].Template)
		require.Empty(t, stubs[0].Parameters)
	})

	t.Run("should skip duplicate templates and blank texts", func(t *testing.T) {
		stubs := NewStubs([]string{"I have 3 cats", "", "  I have 7 cats "})

		require.Len(t, stubs, 1)
	})

	t.Run("should make function names unique", func(t *testing.T) {
		stubs := NewStubs([]string{"I have 3 cats", `I have "many" cats`})

		require.Len(t, stubs, 2)
		require.Equal(t, "IHaveCats", stubs[0].FunctionName)
		require.Equal(t, "IHaveCats2", stubs[1].FunctionName)
	})

	t.Run("should name value only steps Step", func(t *testing.T) {
		stubs := NewStubs([]string{"42"})

		require.Equal(t, "{int}", stubs[0].Template)
		require.Equal(t, "Step", stubs[0].FunctionName)
	})
}
