package app

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type (
	// UndefinedStep is a feature file step line no definition matches.
	UndefinedStep struct {
		Path string
		// Text is the step content with outline placeholders filled in
		Text       string
		Diagnostic protocol.Diagnostic
	}

	// FeatureFile is a feature file checked against the index.
	FeatureFile struct {
		Path      string
		StepLines int
		Undefined []UndefinedStep
	}
)

// Texts returns the contents of the undefined steps in order.
func Texts(files []FeatureFile) []string {
	var texts []string
	for _, file := range files {
		for _, undefined := range file.Undefined {
			texts = append(texts, undefined.Text)
		}
	}

	return texts
}
