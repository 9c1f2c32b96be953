package boq

import (
	"encoding/json"
	"fmt"
	"regexp"

	"boqgen/internal/models"
)

// Model replies often wrap the JSON payload in prose. The span is the first
// '{' through the last '}', newlines included.
var jsonSpanRe = regexp.MustCompile(`(?s)\{.*\}`)

// MalformedResponseError carries the offending raw reply for diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("could not parse JSON from model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ExtractJSONSpan locates the candidate JSON object inside a free-text
// reply. ok is false when the reply contains no {...} span.
func ExtractJSONSpan(raw string) (string, bool) {
	span := jsonSpanRe.FindString(raw)
	if span == "" {
		return "", false
	}
	return span, true
}

// Normalize parses the model reply into a BOQResult and attaches the
// extraction metadata. When no JSON span exists the raw text goes to the
// parser unmodified (and fails there). Item shape is advisory at this layer:
// missing fields stay zero, unknown fields are ignored, nothing is rejected.
func Normalize(raw string, meta models.Metadata) (*models.BOQResult, error) {
	candidate := raw
	if span, ok := ExtractJSONSpan(raw); ok {
		candidate = span
	}

	var result models.BOQResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	result.Metadata = meta
	return &result, nil
}
