package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"olist-dashboard/internal/pipeline"
)

const summarySheet = "summary"

// numericColumns are written as numbers so spreadsheets can sum them.
var numericColumns = map[string]bool{
	"order_count":    true,
	"revenue":        true,
	"product_count":  true,
	"count":          true,
	"customer_count": true,
	"customer_id":    true,
	"recency":        true,
	"frequency":      true,
	"monetary":       true,
}

// WriteXLSX writes a workbook with a summary sheet followed by one sheet
// per result table in pipeline order.
func WriteXLSX(w io.Writer, r *pipeline.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	summary := [][]any{
		{"range", r.Range.String()},
		{"reference_date", r.ReferenceDate.Format(time.DateOnly)},
		{"rows", r.RowCount},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	if err := f.SetColStyle(summarySheet, "A", header); err != nil {
		return fmt.Errorf("style summary: %w", err)
	}

	for _, t := range r.Tables() {
		if err := writeSheet(f, t, header); err != nil {
			return fmt.Errorf("write sheet %s: %w", t.Name, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, t pipeline.Table, header int) error {
	if _, err := f.NewSheet(t.Name); err != nil {
		return err
	}

	columns := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = c
	}
	if err := f.SetSheetRow(t.Name, "A1", &columns); err != nil {
		return err
	}
	if err := f.SetRowStyle(t.Name, 1, 1, header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = cellValue(t.Columns[j], v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Name, cell, &cells); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(t.Columns))
	if err != nil {
		return err
	}
	return f.SetColWidth(t.Name, "A", last, 22)
}

func cellValue(column, v string) any {
	if !numericColumns[column] {
		return v
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return v
}
