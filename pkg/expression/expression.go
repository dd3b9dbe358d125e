// Package expression compiles step definition templates into full and partial
// matching patterns.
//
// A template is either a Cucumber expression ("I have {int} cats", "I run(s)",
// "I go up/down") or a regular expression ("^I have (\d+) cats$"). Both are
// compiled to a full pattern anchored at both ends and to a partial pattern that
// accepts any token-aligned prefix of a matching line, used while a line is still
// being typed.
package expression

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single match so a pathological user regex cannot hang a query.
const matchTimeout = 250 * time.Millisecond

type (
	// CustomParameter is a text substitution applied to a template before any
	// other compilation step. A Parameter wrapped in slashes ("/.../") is a pattern,
	// anything else is replaced literally.
	CustomParameter struct {
		Parameter string `mapstructure:"parameter" json:"parameter"`
		Value     string `mapstructure:"value" json:"value"`
	}

	// ParameterSymbol wraps a placeholder when it is rendered back into text, e.g.
	// {string} with prefix and suffix `"` becomes `""` in a completion.
	ParameterSymbol struct {
		Name   string `mapstructure:"name" json:"name"`
		Prefix string `mapstructure:"prefix" json:"prefix"`
		Suffix string `mapstructure:"suffix" json:"suffix"`
	}

	// Options controls how a template is compiled.
	Options struct {
		// PureText treats everything except placeholders as literal text.
		PureText bool
		// Regex marks the template as regular expression source, e.g. because it
		// was written as a regex literal. Templates starting with ^ or ending
		// with $ are detected as regular expressions without it.
		Regex            bool
		CustomParameters []CustomParameter
	}

	// Pattern is a compiled step template. It is never mutated after Compile.
	Pattern struct {
		source        string
		partialSource string
		full          *regexp2.Regexp
		partial       *regexp2.Regexp
	}
)

// Compile builds the full and partial patterns of template. An error means the
// template cannot be used as a step.
func Compile(template string, opts Options) (*Pattern, error) {
	return CompileSource(Source(template, opts), "")
}

// CompileSource compiles an already generated full pattern source. When
// partialSource is empty it is derived from source; when it fails to compile the
// full pattern doubles as the partial one.
func CompileSource(source, partialSource string) (*Pattern, error) {
	full, err := compileRegex(source)
	if err != nil {
		return nil, fmt.Errorf("invalid step pattern %q: %w", source, err)
	}

	if partialSource == "" {
		partialSource = PartialSource(source)
	}

	partial, err := compileRegex(partialSource)
	if err != nil {
		partialSource = source
		partial = full
	}

	return &Pattern{
		source:        source,
		partialSource: partialSource,
		full:          full,
		partial:       partial,
	}, nil
}

func compileRegex(source string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(source, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = matchTimeout

	return re, nil
}

// Source returns the full pattern text of template.
func Source(template string, opts Options) string {
	if opts.PureText {
		return pureTextSource(template, opts.CustomParameters)
	}

	regex := opts.Regex || IsRegex(template)
	body := stripAnchors(template)

	segs := segments{{text: body}}
	segs = applyCustomParameters(segs, opts.CustomParameters, true)
	for _, p := range builtinPlaceholders {
		segs = segs.replace(p.rule, p.constant)
	}
	segs = segs.replace(optionalText, func(m []string) string {
		return "(" + m[1] + ")?"
	})
	segs = segs.replace(alternativeText, func(m []string) string {
		return "(" + strings.ReplaceAll(m[0], "/", "|") + ")"
	})
	segs = segs.expandGenericPlaceholders()

	escape := quoteLiteral
	if regex {
		escape = keepLiteral
	}

	return "^" + segs.join(escape) + "$"
}

func pureTextSource(template string, params []CustomParameter) string {
	segs := segments{{text: template}}
	segs = applyCustomParameters(segs, params, false)
	for _, p := range builtinPlaceholders {
		segs = segs.replace(p.rule, p.constant)
	}

	return "^" + segs.join(quoteLiteral) + "$"
}

// IsRegex reports whether template reads as regular expression source rather
// than as a Cucumber expression.
func IsRegex(template string) bool {
	return strings.HasPrefix(template, "^") || (strings.HasSuffix(template, "$") && !strings.HasSuffix(template, `\$`))
}

func stripAnchors(s string) string {
	s = strings.TrimPrefix(s, "^")
	if strings.HasSuffix(s, "$") && !strings.HasSuffix(s, `\$`) {
		s = strings.TrimSuffix(s, "$")
	}

	return s
}

// Source returns the full pattern text.
func (p *Pattern) Source() string {
	return p.source
}

// PartialSource returns the partial pattern text.
func (p *Pattern) PartialSource() string {
	return p.partialSource
}

// Match reports whether text matches the whole template.
func (p *Pattern) Match(text string) bool {
	ok, err := p.full.MatchString(text)

	return err == nil && ok
}

// MatchPartial reports whether text is a token-aligned prefix of a line the
// template could match.
func (p *Pattern) MatchPartial(text string) bool {
	ok, err := p.partial.MatchString(text)

	return err == nil && ok
}
