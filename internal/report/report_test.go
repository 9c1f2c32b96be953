package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"boqgen/internal/service/ai"
)

func TestGeneratePDF(t *testing.T) {
	result := ai.MockResult("plan.pdf")

	data, err := GeneratePDF(result)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("result does not start with PDF header, got %q", data[:5])
	}
}

func TestGeneratePDF_NoItems(t *testing.T) {
	result := ai.MockResult("plan.pdf")
	result.Items = nil

	data, err := GeneratePDF(result)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestWritePDF_PathAndName(t *testing.T) {
	dir := t.TempDir()
	path, err := WritePDF(dir, "tower block.pdf", ai.MockResult("tower block.pdf"))
	if err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	if filepath.Base(path) != "tower block_boq.pdf" {
		t.Errorf("path = %q, want <source>_boq.pdf naming", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("written report missing: %v", err)
	}
}

func TestGenerateExcel_RoundTrip(t *testing.T) {
	result := ai.MockResult("plan.pdf")

	data, err := GenerateExcel(result)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated workbook does not reopen: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	title, err := f.GetCellValue(sheet, "A1")
	if err != nil {
		t.Fatalf("read title cell: %v", err)
	}
	if title != result.ProjectName {
		t.Errorf("title cell = %q, want %q", title, result.ProjectName)
	}

	// First item row sits under the header at row 4.
	desc, err := f.GetCellValue(sheet, "B5")
	if err != nil {
		t.Fatalf("read first item cell: %v", err)
	}
	if desc != result.Items[0].Description {
		t.Errorf("first item description = %q, want %q", desc, result.Items[0].Description)
	}
}

func TestGenerateExcel_HostileProjectName(t *testing.T) {
	result := ai.MockResult("plan.pdf")
	result.ProjectName = "Phase [2]: Tower A/B? *Main* \\ Annex with a very long tail ³³³³³³³³"

	data, err := GenerateExcel(result)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if _, err := excelize.OpenReader(bytes.NewReader(data)); err != nil {
		t.Fatalf("generated workbook does not reopen: %v", err)
	}
}

func TestSheetNameFor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Riverside Apartments", "Riverside Apartments"},
		{"Phase [2]: Tower A/B?", "Phase 2 Tower AB"},
		{"", "BOQ"},
		{":/\\?*[]", "BOQ"},
		{"'quoted name'", "quoted name"},
	}
	for _, tt := range tests {
		if got := sheetNameFor(tt.in); got != tt.want {
			t.Errorf("sheetNameFor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := sheetNameFor("Sample Project - a very long construction plan name ³³³")
	if n := len([]rune(long)); n > 31 {
		t.Errorf("sheet name has %d characters, want at most 31", n)
	}
}

func TestWriteExcel_PathAndName(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteExcel(dir, "plan.pdf", ai.MockResult("plan.pdf"))
	if err != nil {
		t.Fatalf("WriteExcel() error = %v", err)
	}
	if filepath.Base(path) != "plan_boq.xlsx" {
		t.Errorf("path = %q, want plan_boq.xlsx", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("written report missing: %v", err)
	}
}
