package models

import (
	"encoding/json"
	"strconv"
)

// ExtractionMethod records which path produced a BOQ result.
type ExtractionMethod string

const (
	ExtractionModel ExtractionMethod = "model"
	ExtractionMock  ExtractionMethod = "mock"
)

// Quantity is a numeric-looking string. Model replies are inconsistent about
// emitting quantities as JSON strings or numbers, so it accepts both and keeps
// the source lexeme instead of converting through float64.
type Quantity string

func (q *Quantity) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = Quantity(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*q = Quantity(n.String())
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(q))
}

// Float parses the quantity as a number. ok is false for empty or
// non-numeric values.
func (q Quantity) Float() (float64, bool) {
	f, err := strconv.ParseFloat(string(q), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// KnownCategories is the taxonomy the prompt biases classification toward.
// Project-phase names appear in some source plans, so they count as known.
var KnownCategories = []string{
	"Earthwork", "Concrete", "Steel", "Masonry", "Finishing",
	"Waterproofing", "Plumbing", "Electrical",
	"Superstructure", "First Fix", "Plastering", "Second Fix",
}

// BOQItem is a single line of a Bill of Quantities.
type BOQItem struct {
	ItemNo      string   `json:"item_no"`
	Description string   `json:"description"`
	Unit        string   `json:"unit"`
	Quantity    Quantity `json:"quantity"`
	Category    string   `json:"category"`
}

// Summary aggregates item counts and the distinct categories present.
type Summary struct {
	TotalItems Quantity `json:"total_items"`
	Categories []string `json:"categories"`
}

// Metadata describes how a result was produced.
type Metadata struct {
	SourceFile       string           `json:"source_file"`
	ExtractionMethod ExtractionMethod `json:"extraction_method"`
	Mock             bool             `json:"mock"`
}

// BOQResult is the normalized output for one uploaded document.
type BOQResult struct {
	ProjectName string    `json:"project_name"`
	Items       []BOQItem `json:"items"`
	Summary     Summary   `json:"summary"`
	Metadata    Metadata  `json:"metadata"`
}

// ComplianceFinding is one advisory issue raised by the compliance pass.
type ComplianceFinding struct {
	ItemNo  string `json:"item_no,omitempty"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ComplianceReport is attached to successful outcomes; it never fails a
// request.
type ComplianceReport struct {
	Compliant bool                `json:"compliant"`
	Checked   int                 `json:"checked"`
	Findings  []ComplianceFinding `json:"findings"`
}

// UploadOutcome is the per-file entry of a batch response. Exactly one of
// BOQ or Error is set.
type UploadOutcome struct {
	Filename   string            `json:"filename"`
	BOQ        *BOQResult        `json:"boq,omitempty"`
	Error      string            `json:"error,omitempty"`
	Compliance *ComplianceReport `json:"compliance,omitempty"`
}
