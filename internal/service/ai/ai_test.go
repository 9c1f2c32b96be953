package ai

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"boqgen/internal/models"
)

func TestMockResult_Shape(t *testing.T) {
	result := MockResult("plan.pdf")

	if result.ProjectName != "Sample Project - plan.pdf" {
		t.Errorf("project_name = %q", result.ProjectName)
	}
	if len(result.Items) != 10 {
		t.Fatalf("len(items) = %d, want 10", len(result.Items))
	}
	if result.Summary.TotalItems != "10" {
		t.Errorf("total_items = %q, want 10", result.Summary.TotalItems)
	}
	if !result.Metadata.Mock || result.Metadata.ExtractionMethod != models.ExtractionMock {
		t.Errorf("metadata = %+v, want mock", result.Metadata)
	}
	if result.Metadata.SourceFile != "plan.pdf" {
		t.Errorf("source_file = %q", result.Metadata.SourceFile)
	}

	for _, item := range result.Items {
		if _, ok := item.Quantity.Float(); !ok {
			t.Errorf("item %s quantity %q is not numeric", item.ItemNo, item.Quantity)
		}
	}
}

func TestMockResult_Deterministic(t *testing.T) {
	if !reflect.DeepEqual(MockResult("a.pdf"), MockResult("a.pdf")) {
		t.Error("MockResult differs between calls with the same filename")
	}
}

func TestMockCompleter_ReturnsParseableJSON(t *testing.T) {
	completer := NewMockCompleter()
	if !completer.Mock() {
		t.Fatal("MockCompleter.Mock() = false")
	}

	raw, err := completer.Complete(context.Background(), Request{SourceFile: "plan.pdf"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	var result models.BOQResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		t.Fatalf("mock reply is not valid JSON: %v", err)
	}
	if result.ProjectName != "Sample Project - plan.pdf" {
		t.Errorf("project_name = %q", result.ProjectName)
	}
}

func TestNewChatModel_InvalidProvider(t *testing.T) {
	_, err := NewChatModel(context.Background(), ProviderConfig{Provider: "watson"})
	if err == nil {
		t.Fatal("NewChatModel() accepted an unknown provider")
	}
	if !strings.Contains(err.Error(), "invalid provider") {
		t.Errorf("error = %v, want invalid provider message", err)
	}
}
