package steps

import (
	"encoding/json"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/denizgursoy/stepindex/pkg/expression"
	"github.com/denizgursoy/stepindex/pkg/gherkin_parser"
)

var (
	recordFileSchema = gojsonschema.NewStringLoader(`{"type": "array"}`)
	recordSchema     = gojsonschema.NewStringLoader(`{
		"type": "object",
		"required": ["text"],
		"properties": {
			"id": {"type": "string"},
			"text": {"type": "string", "minLength": 1},
			"regText": {"type": "string"},
			"matchText": {"type": "string"},
			"partialRegText": {"type": "string"},
			"desc": {"type": "string"},
			"documentation": {"type": "string"},
			"count": {"type": "integer", "minimum": 0},
			"gherkin": {"type": "integer", "minimum": 0, "maximum": 5},
			"def": {
				"type": "object",
				"properties": {
					"uri": {"type": "string"},
					"range": {
						"type": "object",
						"properties": {
							"start": {
								"type": "object",
								"properties": {
									"line": {"type": "integer", "minimum": 0},
									"character": {"type": "integer", "minimum": 0}
								}
							}
						}
					}
				}
			}
		}
	}`)
)

type (
	// Record is a precomputed step as stored in record files.
	Record struct {
		ID             string          `json:"id,omitempty"`
		Text           string          `json:"text"`
		RegText        string          `json:"regText,omitempty"`
		MatchText      string          `json:"matchText,omitempty"`
		PartialRegText string          `json:"partialRegText,omitempty"`
		Desc           string          `json:"desc,omitempty"`
		Documentation  string          `json:"documentation,omitempty"`
		Count          int             `json:"count,omitempty"`
		Gherkin        *int            `json:"gherkin,omitempty"`
		Def            *RecordLocation `json:"def,omitempty"`
	}

	RecordLocation struct {
		URI   string `json:"uri"`
		Range struct {
			Start struct {
				Line      int `json:"line"`
				Character int `json:"character"`
			} `json:"start"`
		} `json:"range"`
	}
)

// LoadRecords adds the precomputed step records of a record file to the index.
// A file that is not a JSON array is skipped, as is every invalid record.
func (i *Index) LoadRecords(path string, data []byte) int {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.loadRecordsLocked(path, data)
}

func (i *Index) loadRecordsLocked(path string, data []byte) int {
	result, err := gojsonschema.Validate(recordFileSchema, gojsonschema.NewBytesLoader(data))
	if err != nil || !result.Valid() {
		i.logger.Warn("skipping step record file", "path", path, "error", validationError(err, result))
		return 0
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		i.logger.Warn("skipping step record file", "path", path, "error", err)
		return 0
	}

	loaded := 0
	for n, item := range raw {
		result, err := gojsonschema.Validate(recordSchema, gojsonschema.NewBytesLoader(item))
		if err != nil || !result.Valid() {
			i.logger.Warn("skipping step record", "path", path, "index", n, "error", validationError(err, result))
			continue
		}

		var record Record
		if err := json.Unmarshal(item, &record); err != nil {
			i.logger.Warn("skipping step record", "path", path, "index", n, "error", err)
			continue
		}

		step, err := i.recordStep(path, n, record)
		if err != nil {
			i.logger.Warn("skipping step record", "path", path, "index", n, "error", err)
			continue
		}

		if i.insertLocked(step) {
			loaded++
		}
	}

	return loaded
}

func (i *Index) recordStep(path string, n int, record Record) (*Step, error) {
	source := record.RegText
	if source == "" {
		source = record.MatchText
	}

	var (
		pattern *expression.Pattern
		err     error
	)
	if source != "" {
		pattern, err = expression.CompileSource(source, record.PartialRegText)
	} else {
		pattern, err = expression.Compile(record.Text, expression.Options{
			PureText:         i.settings.PureText,
			CustomParameters: i.settings.CustomParameters,
		})
	}
	if err != nil {
		return nil, err
	}

	id := record.ID
	if id == "" {
		id = StepID(record.Text)
	}

	description := record.Desc
	if description == "" {
		description = record.Text
	}
	documentation := record.Documentation
	if documentation == "" {
		documentation = description
	}

	gherkinType := gherkin_parser.Other
	if record.Gherkin != nil {
		gherkinType = gherkin_parser.GherkinType(*record.Gherkin)
	}

	location := Location{Path: path, Line: n}
	if record.Def != nil && record.Def.URI != "" {
		location = Location{
			Path:      uriPath(record.Def.URI),
			Line:      record.Def.Range.Start.Line,
			Character: record.Def.Range.Start.Character,
		}
	}

	return &Step{
		ID:            id,
		Text:          record.Text,
		Pattern:       pattern,
		Description:   description,
		Documentation: documentation,
		Location:      location,
		Type:          gherkinType,
		Count:         record.Count,
	}, nil
}

// uriPath turns a file URI into a path, decoding percent escapes. Other
// strings are taken as paths already.
func uriPath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return strings.TrimPrefix(uri, "file://")
	}

	return filepath.FromSlash(parsed.Path)
}

func validationError(err error, result *gojsonschema.Result) any {
	if err != nil {
		return err
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		messages = append(messages, e.String())
	}

	return strings.Join(messages, "; ")
}
