package compliance

import (
	"testing"

	"boqgen/internal/models"
	"boqgen/internal/service/ai"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("NewValidator() error = %v", err)
	}
	return v
}

func TestValidate_MockResultIsCompliant(t *testing.T) {
	v := newValidator(t)
	report := v.Validate(ai.MockResult("plan.pdf"))

	if !report.Compliant {
		t.Fatalf("mock result flagged non-compliant: %+v", report.Findings)
	}
	if report.Checked != 10 {
		t.Errorf("checked = %d, want 10", report.Checked)
	}
	if len(report.Findings) != 0 {
		t.Errorf("findings = %+v, want none", report.Findings)
	}
}

func TestValidate_FlagsNonNumericQuantity(t *testing.T) {
	v := newValidator(t)
	result := &models.BOQResult{
		Items: []models.BOQItem{
			{ItemNo: "1", Description: "Excavation", Unit: "m³", Quantity: "approx. twelve", Category: "Earthwork"},
		},
		Summary: models.Summary{TotalItems: "1", Categories: []string{"Earthwork"}},
	}

	report := v.Validate(result)
	if report.Compliant {
		t.Fatal("non-numeric quantity not flagged")
	}
	if !hasRule(report, "quantity_numeric") {
		t.Errorf("findings = %+v, want quantity_numeric", report.Findings)
	}
}

func TestValidate_FlagsUnknownCategory(t *testing.T) {
	v := newValidator(t)
	result := &models.BOQResult{
		Items: []models.BOQItem{
			{ItemNo: "1", Description: "Moat digging", Unit: "m³", Quantity: "10", Category: "Medieval Works"},
		},
		Summary: models.Summary{TotalItems: "1", Categories: []string{"Medieval Works"}},
	}

	report := v.Validate(result)
	if !hasRule(report, "category_taxonomy") {
		t.Errorf("findings = %+v, want category_taxonomy", report.Findings)
	}
}

func TestValidate_FlagsMissingItemFields(t *testing.T) {
	v := newValidator(t)
	result := &models.BOQResult{
		Items: []models.BOQItem{
			{Description: "item with no number, unit or category", Quantity: "5"},
		},
		Summary: models.Summary{TotalItems: "1"},
	}

	report := v.Validate(result)
	if !hasRule(report, "item_schema") {
		t.Errorf("findings = %+v, want item_schema", report.Findings)
	}
}

func TestValidate_FlagsSummaryMismatches(t *testing.T) {
	v := newValidator(t)
	result := &models.BOQResult{
		Items: []models.BOQItem{
			{ItemNo: "1", Description: "Excavation", Unit: "m³", Quantity: "10", Category: "Earthwork"},
			{ItemNo: "2", Description: "RCC M25", Unit: "m³", Quantity: "20", Category: "Concrete"},
		},
		Summary: models.Summary{TotalItems: "5", Categories: []string{"Earthwork"}},
	}

	report := v.Validate(result)
	if !hasRule(report, "summary_total") {
		t.Errorf("findings = %+v, want summary_total", report.Findings)
	}
	if !hasRule(report, "summary_categories") {
		t.Errorf("findings = %+v, want summary_categories", report.Findings)
	}
}

func hasRule(report *models.ComplianceReport, rule string) bool {
	for _, f := range report.Findings {
		if f.Rule == rule {
			return true
		}
	}
	return false
}
