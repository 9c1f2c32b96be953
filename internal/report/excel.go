package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"boqgen/internal/models"
)

// WriteExcel renders the result as a workbook under dir and returns the
// written path.
func WriteExcel(dir, sourceFile string, result *models.BOQResult) (string, error) {
	data, err := GenerateExcel(result)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, baseName(sourceFile)+"_boq.xlsx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// sheetNameFor derives a valid worksheet name from the model-supplied project
// name. The format caps names at 31 characters, forbids : \ / ? * [ ] and
// leading or trailing apostrophes; anything left empty becomes "BOQ".
func sheetNameFor(projectName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, projectName)

	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	name = strings.Trim(name, "' ")
	if name == "" {
		name = "BOQ"
	}
	return name
}

// GenerateExcel builds the workbook bytes with excelize.
func GenerateExcel(result *models.BOQResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := sheetNameFor(result.ProjectName)
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E"}
	widths := []float64{8, 50, 10, 14, 18}
	for i, c := range columns {
		if err := f.SetColWidth(sheetName, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"212529"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	// Title and metadata rows.
	if err := f.SetCellValue(sheetName, "A1", result.ProjectName); err != nil {
		return nil, fmt.Errorf("set title: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "E1", titleStyle); err != nil {
		return nil, fmt.Errorf("style title: %w", err)
	}
	if err := f.SetCellValue(sheetName, "A2",
		fmt.Sprintf("Source: %s (%s)", result.Metadata.SourceFile, result.Metadata.ExtractionMethod)); err != nil {
		return nil, fmt.Errorf("set metadata row: %w", err)
	}

	// Item table header.
	headers := []string{"#", "Description", "Unit", "Quantity", "Category"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s4", columns[i])
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("set header %s: %w", h, err)
		}
	}
	if err := f.SetCellStyle(sheetName, "A4", "E4", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	// Item rows.
	rowIdx := 5
	for _, item := range result.Items {
		values := []any{item.ItemNo, item.Description, item.Unit, string(item.Quantity), item.Category}
		for i, v := range values {
			cell := fmt.Sprintf("%s%d", columns[i], rowIdx)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		rowIdx++
	}

	// Summary footer.
	rowIdx++
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIdx),
		fmt.Sprintf("Total items: %s", result.Summary.TotalItems)); err != nil {
		return nil, fmt.Errorf("set summary total: %w", err)
	}
	rowIdx++
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIdx),
		fmt.Sprintf("Categories: %s", strings.Join(result.Summary.Categories, ", "))); err != nil {
		return nil, fmt.Errorf("set summary categories: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
