// Package report renders a normalized BOQ result into downloadable
// documents.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"boqgen/internal/models"
)

// baseName strips the extension from the uploaded filename so reports keep
// the source name: plan.pdf -> plan_boq.pdf / plan_boq.xlsx.
func baseName(sourceFile string) string {
	name := filepath.Base(sourceFile)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// WritePDF renders the result as a PDF report under dir and returns the
// written path.
func WritePDF(dir, sourceFile string, result *models.BOQResult) (string, error) {
	data, err := GeneratePDF(result)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, baseName(sourceFile)+"_boq.pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// GeneratePDF builds the PDF report bytes with maroto/v2.
func GeneratePDF(result *models.BOQResult) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, result)
	addTableHeader(m)
	for _, item := range result.Items {
		addTableRow(m, item)
	}
	addSummary(m, result)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, result *models.BOQResult) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(result.ProjectName, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Source: %s", result.Metadata.SourceFile), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Extraction: %s", result.Metadata.ExtractionMethod), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
	m.AddRows(row.New(4))
}

func addTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(6).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Quantity", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Category", headerText)).WithStyle(&headerCell),
		),
	)
}

func addTableRow(m core.Maroto, item models.BOQItem) {
	baseText := props.Text{Size: 8, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(item.ItemNo, baseText)),
			col.New(6).Add(text.New(item.Description, leftText)),
			col.New(1).Add(text.New(item.Unit, baseText)),
			col.New(2).Add(text.New(string(item.Quantity), rightText)),
			col.New(2).Add(text.New(item.Category, baseText)),
		),
	)
}

func addSummary(m core.Maroto, result *models.BOQResult) {
	m.AddRows(row.New(4))
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Total items: %s", result.Summary.TotalItems), props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Categories: %s", strings.Join(result.Summary.Categories, ", ")), props.Text{
					Size:  9,
					Align: align.Right,
				}),
			),
		),
	)
}
