// Package export renders local history as an xlsx workbook laid out like the
// remote sheet.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"dispatchflow/internal/invoice"
	"dispatchflow/internal/sheets"
	"dispatchflow/internal/slip"
)

// ContentType of the rendered workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	SlipSheet    = "Dispatch Slips"
	InvoiceSheet = "Invoices"
)

// Slips writes slips, in the order given, to w.
func Slips(w io.Writer, slips []slip.DispatchSlip) error {
	rows := make([][]string, 0, len(slips))
	for _, d := range slips {
		rows = append(rows, d.SheetRow())
	}
	return write(w, SlipSheet, sheets.SlipHeaders, rows)
}

// Invoices writes invoices, in the order given, to w.
func Invoices(w io.Writer, invoices []invoice.InvoiceRecord) error {
	rows := make([][]string, 0, len(invoices))
	for _, r := range invoices {
		rows = append(rows, r.SheetRow())
	}
	return write(w, InvoiceSheet, sheets.InvoiceHeaders, rows)
}

// Filename names a download for kind, stamped with the day of now.
func Filename(kind string, now time.Time) string {
	return fmt.Sprintf("dispatchflow-%s-%s.xlsx", kind, now.Format(time.DateOnly))
}

func write(w io.Writer, sheet string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(sheet, "A1", last+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	for i, row := range rows {
		// Cells stay text so slip numbers and GSTINs are not reformatted.
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(sheet, "A", last, 16); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
