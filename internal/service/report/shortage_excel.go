package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"supply-golang/internal/service/allocation"
)

type AdjustmentProvider interface {
	AdjustmentView(ctx context.Context) ([]allocation.GroupView, error)
}

type ShortageReportService struct {
	provider AdjustmentProvider
}

func NewShortageReportService(provider AdjustmentProvider) *ShortageReportService {
	return &ShortageReportService{provider: provider}
}

// GenerateShortageReport renders the adjustment view as a workbook: one row
// per material with its per-product demand breakdown underneath, deficit
// rows highlighted.
func (g *ShortageReportService) GenerateShortageReport(ctx context.Context) ([]byte, error) {
	const op = "service.report.GenerateShortageReport"

	views, err := g.provider.AdjustmentView(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch view: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Shortage Report"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	deficitStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "9A0000"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFD9D9"}, Pattern: 1},
	})

	headers := []string{"Material", "Name", "Kind", "Stock", "Required", "Remaining", "Adjusted", "Deficit", "Product", "Orders", "Qty/Unit", "Product Required"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	row := 2
	for _, view := range views {
		deficit := "no"
		if view.StillDeficit {
			deficit = "YES"
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), view.MaterialCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), view.MaterialName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(view.Kind))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), view.CurrentStock)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), view.TotalRequired)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), view.RemainingStock)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), view.AdjustedRemaining)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), deficit)

		if view.StillDeficit {
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), deficitStyle)
		}
		row++

		for _, product := range view.Products {
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), product.ProductCode)
			f.SetCellValue(sheet, fmt.Sprintf("J%d", row), product.OrderCount)
			f.SetCellValue(sheet, fmt.Sprintf("K%d", row), product.QuantityPerUnit)
			f.SetCellValue(sheet, fmt.Sprintf("L%d", row), product.RequiredMaterial)
			row++
		}
	}

	f.SetColWidth(sheet, "A", "B", 18)
	f.SetColWidth(sheet, "I", "I", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write workbook: %w", op, err)
	}

	return buf.Bytes(), nil
}
