package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"boqgen/internal/models"
)

// mockItems is the canned reference BOQ: ten representative construction
// line items spanning the category taxonomy.
func mockItems() []models.BOQItem {
	return []models.BOQItem{
		{ItemNo: "1", Description: "Excavation for foundation", Unit: "m³", Quantity: "125.5", Category: "Earthwork"},
		{ItemNo: "2", Description: "Plain Cement Concrete (PCC) 1:4:8", Unit: "m³", Quantity: "8.75", Category: "Concrete"},
		{ItemNo: "3", Description: "Reinforced Cement Concrete (RCC) M25", Unit: "m³", Quantity: "45.20", Category: "Concrete"},
		{ItemNo: "4", Description: "Steel reinforcement bars (TMT)", Unit: "kg", Quantity: "3500.00", Category: "Steel"},
		{ItemNo: "5", Description: "Brick masonry in cement mortar 1:6", Unit: "m³", Quantity: "78.50", Category: "Masonry"},
		{ItemNo: "6", Description: "Plaster 12mm thick, cement mortar 1:4", Unit: "m²", Quantity: "450.25", Category: "Finishing"},
		{ItemNo: "7", Description: "Waterproofing membrane", Unit: "m²", Quantity: "95.00", Category: "Waterproofing"},
		{ItemNo: "8", Description: "PVC plumbing pipes 100mm dia", Unit: "m", Quantity: "65.00", Category: "Plumbing"},
		{ItemNo: "9", Description: "Electrical conduit PVC 20mm", Unit: "m", Quantity: "180.50", Category: "Electrical"},
		{ItemNo: "10", Description: "Ceramic floor tiles 600x600mm", Unit: "m²", Quantity: "120.00", Category: "Finishing"},
	}
}

// MockResult builds the fixed BOQ for a filename. Deterministic: only the
// filename varies between calls.
func MockResult(filename string) *models.BOQResult {
	items := mockItems()

	seen := make(map[string]bool)
	var categories []string
	for _, item := range items {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}

	return &models.BOQResult{
		ProjectName: fmt.Sprintf("Sample Project - %s", filename),
		Items:       items,
		Summary: models.Summary{
			TotalItems: models.Quantity(fmt.Sprintf("%d", len(items))),
			Categories: categories,
		},
		Metadata: models.Metadata{
			SourceFile:       filename,
			ExtractionMethod: models.ExtractionMock,
			Mock:             true,
		},
	}
}

// MockCompleter substitutes the canned result for any prompt. It performs no
// network I/O and ignores the prompt content.
type MockCompleter struct{}

func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

func (c *MockCompleter) Complete(_ context.Context, req Request) (string, error) {
	data, err := json.Marshal(MockResult(req.SourceFile))
	if err != nil {
		return "", fmt.Errorf("marshal mock result: %w", err)
	}
	return string(data), nil
}

func (c *MockCompleter) Mock() bool { return true }
