// Package exporter renders a solved timesheet back into the caller's
// exchange formats: the locale CSV the time-tracking system ingests and
// an XLSX workbook for review.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/javipalanca/burrocracia/internal/model"
)

// CSVExporter writes the sheet in its input shape: ISO-8859-1,
// semicolon separated, day cells with "," decimals and blank for zero.
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes the timesheet to w.
func (e *CSVExporter) Export(ts *model.Timesheet, w io.Writer) error {
	cw := csv.NewWriter(charmap.ISO8859_1.NewEncoder().Writer(w))
	cw.Comma = ';'

	header := make([]string, 0, len(model.ColumnHeaders)+len(ts.DayLabels))
	header = append(header, model.ColumnHeaders...)
	header = append(header, ts.DayLabels...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range ts.Rows {
		record := make([]string, 0, len(header))
		record = append(record,
			row.DNI,
			row.Name,
			row.SpecificKey,
			row.Project,
			strconv.Itoa(row.ActivityCode),
			row.Activity,
			strconv.Itoa(row.WorkPackage),
		)
		for _, label := range ts.DayLabels {
			record = append(record, FormatHours(row.Hours[label]))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatHours renders a day cell: empty string for exactly 0, otherwise
// the shortest decimal that round-trips, with "," as separator.
func FormatHours(v float64) string {
	if v == 0 {
		return ""
	}
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', -1, 64), ".", ",")
}
