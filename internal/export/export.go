// Package export writes record collections as spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/value"
)

// Format is an export file format.
type Format string

// Export formats.
const (
	XLSX Format = "xlsx"
	CSV  Format = "csv"
)

// ParseFormat validates a format name. Empty means XLSX.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", XLSX:
		return XLSX, nil
	case CSV:
		return CSV, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == CSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Filename returns base with the format's extension.
func (f Format) Filename(base string) string {
	return base + "." + string(f)
}

// Column maps a record field to a spreadsheet column.
type Column struct {
	Key    string
	Header string
}

// Write encodes records in the given format.
func Write(w io.Writer, f Format, sheet string, cols []Column, records []record.Record) error {
	switch f {
	case CSV:
		return WriteCSV(w, cols, records)
	case XLSX:
		return WriteXLSX(w, sheet, cols, records)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// WriteXLSX writes a single-sheet workbook: a bold header row, then one row per record.
func WriteXLSX(w io.Writer, sheet string, cols []Column, records []record.Record) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return fmt.Errorf("write header %s: %w", col.Key, err)
		}
	}
	if len(cols) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("header style: %w", err)
		}
		last, _ := excelize.CoordinatesToCellName(len(cols), 1)
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return fmt.Errorf("apply header style: %w", err)
		}
	}

	for i, r := range records {
		rowNum := i + 2 // header row
		for j, col := range cols {
			v, ok := r[col.Key]
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			if err := f.SetCellValue(sheet, cell, Cell(v)); err != nil {
				return fmt.Errorf("write row %d: %w", rowNum, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteCSV writes a header line, then one line per record.
func WriteCSV(w io.Writer, cols []Column, records []record.Record) error {
	cw := csv.NewWriter(w)

	row := make([]string, len(cols))
	for i, col := range cols {
		row[i] = col.Header
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		for i, col := range cols {
			row[i] = value.String(Cell(r[col.Key]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Cell converts a record value to a spreadsheet cell value.
// Dates at midnight render as YYYY-MM-DD, other instants as YYYY-MM-DD HH:MM:SS.
func Cell(v any) any {
	if value.IsNull(v) {
		return ""
	}
	switch t := v.(type) {
	case time.Time:
		return formatTime(t)
	case *time.Time:
		return formatTime(*t)
	case string, float64, float32, int, int32, int64, bool:
		return t
	}
	return value.String(v)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}
