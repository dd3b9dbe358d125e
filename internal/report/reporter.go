package report

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/denizgursoy/stepindex/pkg/steps"
)

// Symbols for line status
const (
	symbolPass = "✓"
	symbolFail = "✗"
	symbolWarn = "!"
)

// Summary tracks check statistics
type Summary struct {
	Files     int
	Steps     int
	Undefined int
	Warnings  int
}

// Failed reports whether the check found undefined steps.
func (s Summary) Failed() bool {
	return s.Undefined > 0
}

// ConsoleReporter prints colored check output and step tables.
type ConsoleReporter struct {
	out     io.Writer
	mu      sync.Mutex
	summary Summary

	pass *color.Color
	fail *color.Color
	warn *color.Color
	text *color.Color
}

// NewConsoleReporter creates a reporter writing to out.
func NewConsoleReporter(out io.Writer, useColors bool) *ConsoleReporter {
	r := &ConsoleReporter{
		out:  out,
		pass: color.New(color.FgGreen),
		fail: color.New(color.FgRed),
		warn: color.New(color.FgYellow),
		text: color.New(color.Faint),
	}
	if !useColors {
		for _, c := range []*color.Color{r.pass, r.fail, r.warn, r.text} {
			c.DisableColor()
		}
	}

	return r
}

// FileChecked counts a feature file and the step lines it holds.
func (r *ConsoleReporter) FileChecked(path string, stepLines int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.summary.Files++
	r.summary.Steps += stepLines
}

// Undefined prints a step line no definition matches.
func (r *ConsoleReporter) Undefined(path string, diagnostic protocol.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.summary.Undefined++
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.fail.Sprint(symbolFail),
		r.text.Sprint(position(path, diagnostic.Range.Start)),
		diagnostic.Message,
	)
}

// Warning prints a problem found while building the index.
func (r *ConsoleReporter) Warning(warning steps.Warning) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.summary.Warnings++
	fmt.Fprintf(r.out, "%s %s %s\n", r.warn.Sprint(symbolWarn), r.text.Sprint(warning.Source), warning.Message)
}

// Summary returns the statistics gathered so far.
func (r *ConsoleReporter) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.summary
}

// Flush prints the summary line.
func (r *ConsoleReporter) Flush() {
	summary := r.Summary()

	symbol := r.pass.Sprint(symbolPass)
	if summary.Failed() {
		symbol = r.fail.Sprint(symbolFail)
	}
	fmt.Fprintf(r.out, "\n%s %d files, %d steps, %d undefined, %d warnings\n",
		symbol, summary.Files, summary.Steps, summary.Undefined, summary.Warnings)
}

// Steps prints the indexed step definitions as a table.
func (r *ConsoleReporter) Steps(list []*steps.Step) {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false

	tbl.AppendHeader(table.Row{"Type", "Step", "Uses", "Location"})
	for _, step := range list {
		tbl.AppendRow(table.Row{
			step.Type.String(),
			step.Text,
			step.Count,
			position(step.Location.Path, protocol.Position{
				Line:      protocol.UInteger(step.Location.Line),
				Character: protocol.UInteger(step.Location.Character),
			}),
		})
	}
	tbl.AppendFooter(table.Row{"", strconv.Itoa(len(list)) + " steps", "", ""})

	fmt.Fprintln(r.out, tbl.Render())
}

// position renders a zero based position the way editors print it.
func position(path string, at protocol.Position) string {
	return fmt.Sprintf("%s:%d:%d", path, at.Line+1, at.Character+1)
}
