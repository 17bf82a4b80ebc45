package gpt

import (
	"encoding/json"
	"fmt"
	"strings"

	"hoteai/internal/domain"
)

// ParseError marks oracle output that does not decode into the rubric.
// Raw keeps the offending text for the analysis-failure log.
type ParseError struct {
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("rubric parse failed: %s", e.Reason)
}

// RawOutput implements domain.ParseFailure.
func (e *ParseError) RawOutput() string { return e.Raw }

var rubricFields = []string{
	"professional_tone", "language_appropriate", "addressed_positive",
	"addressed_negative", "named_guest", "named_hotelier",
	"kind", "concise", "grateful",
	"invites_return", "correct_syntax", "personal",
}

// ParseRubric decodes the oracle's raw answer into the 12-field rubric.
// It strips code fences and slices to the outermost JSON object before
// decoding, then asserts every field is present and boolean. Total
// function: returns the rubric or a *ParseError, never panics.
func ParseRubric(raw string) (domain.Rubric, error) {
	cleaned := stripFences(raw)

	start := strings.IndexByte(cleaned, '{')
	end := strings.LastIndexByte(cleaned, '}')
	if start < 0 || end <= start {
		return domain.Rubric{}, &ParseError{Raw: raw, Reason: "no JSON object in response"}
	}
	jsonStr := cleaned[start : end+1]

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &fields); err != nil {
		return domain.Rubric{}, &ParseError{Raw: raw, Reason: "not a JSON object: " + err.Error()}
	}
	for _, f := range rubricFields {
		v, ok := fields[f]
		if !ok {
			return domain.Rubric{}, &ParseError{Raw: raw, Reason: "missing field " + f}
		}
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			return domain.Rubric{}, &ParseError{Raw: raw, Reason: "field " + f + " is not boolean"}
		}
	}

	var r domain.Rubric
	if err := json.Unmarshal([]byte(jsonStr), &r); err != nil {
		return domain.Rubric{}, &ParseError{Raw: raw, Reason: err.Error()}
	}
	return r, nil
}
