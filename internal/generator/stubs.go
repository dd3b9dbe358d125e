package generator

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	stubValue = regexp.MustCompile(`"[^"]*"|'[^']*'|-?\b\d+\.\d+\b|-?\b\d+\b`)
	nameWord  = regexp.MustCompile(`[A-Za-z]+`)
)

// NewStubs turns the contents of undefined step lines into stubs. Quoted text
// becomes {string}, decimals {float} and integers {int}. Duplicate templates
// are written once and function names are made unique.
func NewStubs(texts []string) []*Stub {
	var (
		stubs     []*Stub
		templates = make(map[string]bool)
		names     = make(map[string]int)
	)

	for _, text := range texts {
		stub := newStub(strings.TrimSpace(text))
		if stub.Template == "" || templates[stub.Template] {
			continue
		}
		templates[stub.Template] = true

		names[stub.FunctionName]++
		if n := names[stub.FunctionName]; n > 1 {
			stub.FunctionName += strconv.Itoa(n)
		}
		stubs = append(stubs, stub)
	}

	return stubs
}

func newStub(text string) *Stub {
	stub := &Stub{}

	var (
		template strings.Builder
		name     strings.Builder
	)
	last := 0
	for _, loc := range stubValue.FindAllStringIndex(text, -1) {
		template.WriteString(text[last:loc[0]])
		name.WriteString(functionWords(text[last:loc[0]]))
		last = loc[1]

		switch value := text[loc[0]:loc[1]]; {
		case strings.HasPrefix(value, `"`), strings.HasPrefix(value, `'`):
			template.WriteString("{string}")
			stub.Parameters = append(stub.Parameters, "string")
		case strings.Contains(value, "."):
			template.WriteString("{float}")
			stub.Parameters = append(stub.Parameters, "float64")
		default:
			template.WriteString("{int}")
			stub.Parameters = append(stub.Parameters, "int")
		}
	}
	template.WriteString(text[last:])
	name.WriteString(functionWords(text[last:]))

	stub.Template = template.String()
	stub.FunctionName = name.String()
	if stub.FunctionName == "" {
		stub.FunctionName = "Step"
	}

	return stub
}

// functionWords joins the words of text into an exported Go identifier part.
func functionWords(text string) string {
	var b strings.Builder
	for _, word := range nameWord.FindAllString(text, -1) {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}

	return b.String()
}
