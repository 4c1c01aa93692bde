// Package export writes the result tables of a report as plain text, JSON
// or an XLSX workbook with one sheet per table.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"olist-dashboard/internal/pipeline"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w %q (want text, json or xlsx)", ErrUnknownFormat, s)
}

// Write renders every table of r to w in format f.
func Write(w io.Writer, r *pipeline.Report, f Format) error {
	switch f {
	case FormatText:
		return WriteText(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatXLSX:
		return WriteXLSX(w, r)
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, f)
}

// WriteText writes each table as aligned columns under a "== name ==" line.
func WriteText(w io.Writer, r *pipeline.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "range\t%s\nreference_date\t%s\nrows\t%d\n",
		r.Range, r.ReferenceDate.Format(time.DateOnly), r.RowCount)

	for _, t := range r.Tables() {
		fmt.Fprintf(tw, "\n== %s (%d rows) ==\n", t.Name, len(t.Rows))
		fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
		for _, row := range t.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	}
	return tw.Flush()
}

type jsonReport struct {
	Range         string           `json:"range"`
	ReferenceDate string           `json:"reference_date"`
	RowCount      int              `json:"row_count"`
	Tables        []pipeline.Table `json:"tables"`
}

func WriteJSON(w io.Writer, r *pipeline.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Range:         r.Range.String(),
		ReferenceDate: r.ReferenceDate.Format(time.DateOnly),
		RowCount:      r.RowCount,
		Tables:        r.Tables(),
	})
}
