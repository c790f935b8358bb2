package export

import (
	"fmt"
	"io"

	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/xuri/excelize/v2"
)

const workbookSheet = "Quotation"

// WriteWorkbook writes the quotation rows and totals as an XLSX sheet.
func WriteWorkbook(w io.Writer, letterhead model.Letterhead, header model.QuotationHeader, snap model.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), workbookSheet); err != nil {
		return fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	widths := []float64{6, 32, 14, 12, 10, 14}
	for i, col := range columns {
		if err := f.SetColWidth(workbookSheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create bold style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return fmt.Errorf("create title style: %w", err)
	}

	cells := map[string]any{
		"A1": letterhead.Title + " - QUOTATION",
		"A2": "Date: " + header.Date,
		"A3": "Customer: " + header.CustomerName,
		"A4": "Address: " + header.CustomerAddress,
	}
	for cell, value := range cells {
		if err := f.SetCellValue(workbookSheet, cell, value); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}
	if err := f.SetCellStyle(workbookSheet, "A1", "A1", titleStyle); err != nil {
		return fmt.Errorf("style title: %w", err)
	}

	row := 6
	if err := f.SetSheetRow(workbookSheet, cellName(1, row), &[]any{"Sr", "Work Area", "Qty", "Unit", "Rate", "Amount"}); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	if err := f.SetCellStyle(workbookSheet, cellName(1, row), cellName(6, row), boldStyle); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}

	for _, item := range snap.Items {
		row++
		rate, _ := item.Rate.Float64()
		values := []any{item.Serial, item.WorkArea, item.QuantityText(), item.UnitLabel(), rate, item.Amount}
		if err := f.SetSheetRow(workbookSheet, cellName(1, row), &values); err != nil {
			return fmt.Errorf("write row %d: %w", item.Serial, err)
		}
	}

	row++
	totals := [][2]any{{"Subtotal", snap.Totals.Subtotal}}
	if snap.Totals.HasGST() {
		totals = append(totals,
			[2]any{snap.Totals.GSTLabel(), snap.Totals.GSTAmount},
			[2]any{"Grand Total", snap.Totals.GrandTotal},
		)
	}
	for _, total := range totals {
		row++
		if err := f.SetCellValue(workbookSheet, cellName(5, row), total[0]); err != nil {
			return fmt.Errorf("write total label: %w", err)
		}
		if err := f.SetCellValue(workbookSheet, cellName(6, row), total[1]); err != nil {
			return fmt.Errorf("write total value: %w", err)
		}
		if err := f.SetCellStyle(workbookSheet, cellName(5, row), cellName(6, row), boldStyle); err != nil {
			return fmt.Errorf("style total: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
