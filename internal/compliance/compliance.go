// Package compliance runs the advisory validation pass over a normalized
// BOQ result. Findings are reported, never enforced: a non-compliant result
// still succeeds.
package compliance

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"boqgen/internal/models"
)

// itemSchema is the advisory shape of one BOQ line item. The normalizer
// deliberately does not enforce it; this pass reports deviations instead.
const itemSchema = `{
	"type": "object",
	"required": ["item_no", "description", "unit", "quantity", "category"],
	"properties": {
		"item_no":     {"type": "string", "minLength": 1},
		"description": {"type": "string", "minLength": 1},
		"unit":        {"type": "string", "minLength": 1},
		"quantity":    {"type": "string", "minLength": 1},
		"category":    {"type": "string", "minLength": 1}
	}
}`

// Validator checks BOQ results against the item schema and the category
// taxonomy. Compile happens once; Validate is safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
	known  map[string]bool
}

func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("boq_item.json", strings.NewReader(itemSchema)); err != nil {
		return nil, fmt.Errorf("add item schema: %w", err)
	}
	schema, err := compiler.Compile("boq_item.json")
	if err != nil {
		return nil, fmt.Errorf("compile item schema: %w", err)
	}

	known := make(map[string]bool, len(models.KnownCategories))
	for _, c := range models.KnownCategories {
		known[c] = true
	}
	return &Validator{schema: schema, known: known}, nil
}

// Validate produces the compliance report for one result. It never returns
// an error: anything that goes wrong while checking becomes a finding.
func (v *Validator) Validate(result *models.BOQResult) *models.ComplianceReport {
	report := &models.ComplianceReport{Checked: len(result.Items)}

	for _, item := range result.Items {
		report.Findings = append(report.Findings, v.checkItem(item)...)
	}
	report.Findings = append(report.Findings, v.checkSummary(result)...)

	report.Compliant = len(report.Findings) == 0
	return report
}

func (v *Validator) checkItem(item models.BOQItem) []models.ComplianceFinding {
	var findings []models.ComplianceFinding

	// Round-trip through interface{} so jsonschema sees plain JSON values.
	raw, err := json.Marshal(item)
	if err == nil {
		var doc any
		if err := json.Unmarshal(raw, &doc); err == nil {
			if err := v.schema.Validate(doc); err != nil {
				findings = append(findings, models.ComplianceFinding{
					ItemNo:  item.ItemNo,
					Rule:    "item_schema",
					Message: err.Error(),
				})
			}
		}
	}

	if _, ok := item.Quantity.Float(); !ok {
		findings = append(findings, models.ComplianceFinding{
			ItemNo:  item.ItemNo,
			Rule:    "quantity_numeric",
			Message: fmt.Sprintf("quantity %q is not numeric", item.Quantity),
		})
	}
	if item.Category != "" && !v.known[item.Category] {
		findings = append(findings, models.ComplianceFinding{
			ItemNo:  item.ItemNo,
			Rule:    "category_taxonomy",
			Message: fmt.Sprintf("category %q is outside the known taxonomy", item.Category),
		})
	}
	return findings
}

func (v *Validator) checkSummary(result *models.BOQResult) []models.ComplianceFinding {
	var findings []models.ComplianceFinding

	if total, err := strconv.Atoi(string(result.Summary.TotalItems)); err != nil || total != len(result.Items) {
		findings = append(findings, models.ComplianceFinding{
			Rule: "summary_total",
			Message: fmt.Sprintf("summary.total_items %q does not match %d items",
				result.Summary.TotalItems, len(result.Items)),
		})
	}

	distinct := make(map[string]bool)
	for _, item := range result.Items {
		if item.Category != "" {
			distinct[item.Category] = true
		}
	}
	listed := make(map[string]bool)
	for _, c := range result.Summary.Categories {
		listed[c] = true
	}
	if len(distinct) != len(listed) {
		findings = append(findings, models.ComplianceFinding{
			Rule:    "summary_categories",
			Message: "summary.categories does not match the categories present in items",
		})
	} else {
		for c := range distinct {
			if !listed[c] {
				findings = append(findings, models.ComplianceFinding{
					Rule:    "summary_categories",
					Message: fmt.Sprintf("category %q present in items but missing from summary", c),
				})
				break
			}
		}
	}
	return findings
}
