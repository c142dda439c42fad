// Package parser reads the participant hours CSV: ISO-8859-1 encoded,
// semicolon separated, seven fixed columns followed by one column per
// calendar day of the billing period.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"

	"github.com/javipalanca/burrocracia/internal/model"
)

const fixedColumns = 7

// Parser loads one uploaded CSV into a timesheet.
type Parser struct {
	fileID string
	sheet  *model.Timesheet
}

// NewParser creates a parser with a fresh file ID.
func NewParser() *Parser {
	return &Parser{fileID: uuid.New().String()}
}

// FileID returns the handle assigned to the loaded file.
func (p *Parser) FileID() string {
	return p.fileID
}

// Sheet returns the parsed timesheet, or nil if no file was loaded.
func (p *Parser) Sheet() *model.Timesheet {
	return p.sheet
}

// LoadFile decodes and parses the CSV. The billing period is derived
// from the first and last day-column headers.
func (p *Parser) LoadFile(r io.Reader) error {
	cr := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return errors.New("empty file")
	}

	header := records[0]
	if err := validateHeader(header); err != nil {
		return err
	}
	dayLabels := make([]string, 0, len(header)-fixedColumns)
	for _, h := range header[fixedColumns:] {
		dayLabels = append(dayLabels, strings.TrimSpace(h))
	}

	first, err := model.ParseDayLabel(dayLabels[0])
	if err != nil {
		return fmt.Errorf("invalid first day column: %w", err)
	}
	last, err := model.ParseDayLabel(dayLabels[len(dayLabels)-1])
	if err != nil {
		return fmt.Errorf("invalid last day column: %w", err)
	}
	workingDays, err := model.WorkingDays(first, last)
	if err != nil {
		return err
	}

	rows := make([]*model.Row, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := parseRow(record, dayLabels)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}

	p.sheet = &model.Timesheet{
		Rows:        rows,
		DayLabels:   dayLabels,
		WorkingDays: workingDays,
	}
	return nil
}

func validateHeader(header []string) error {
	if len(header) < fixedColumns+1 {
		return fmt.Errorf("expected at least %d columns, got %d", fixedColumns+1, len(header))
	}
	for i, want := range model.ColumnHeaders {
		if got := strings.TrimSpace(header[i]); got != want {
			return fmt.Errorf("column %d: expected %q, got %q", i+1, want, got)
		}
	}
	return nil
}

func parseRow(record []string, dayLabels []string) (*model.Row, error) {
	if len(record) != fixedColumns+len(dayLabels) {
		return nil, fmt.Errorf("expected %d fields, got %d", fixedColumns+len(dayLabels), len(record))
	}

	activityCode, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil {
		return nil, fmt.Errorf("invalid activity code %q", record[4])
	}
	workPackage, err := parseWorkPackage(record[6])
	if err != nil {
		return nil, err
	}

	hours := make(map[string]float64, len(dayLabels))
	for i, label := range dayLabels {
		v, err := ParseHours(record[fixedColumns+i])
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", label, err)
		}
		if v != 0 {
			hours[label] = v
		}
	}

	return &model.Row{
		DNI:          strings.TrimSpace(record[0]),
		Name:         strings.TrimSpace(record[1]),
		SpecificKey:  strings.TrimSpace(record[2]),
		Project:      strings.TrimSpace(record[3]),
		ActivityCode: activityCode,
		Activity:     strings.TrimSpace(record[5]),
		WorkPackage:  workPackage,
		Hours:        hours,
	}, nil
}

// parseWorkPackage accepts plain integers plus the float renditions
// some exports produce ("2.0", "-1,0").
func parseWorkPackage(s string) (int, error) {
	s = strings.TrimSpace(s)
	if wp, err := strconv.Atoi(s); err == nil {
		return wp, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid work package %q", s)
	}
	return int(f), nil
}

// ParseHours coerces a day cell to hours. Blank means zero; both "," and
// "." decimal separators are accepted; negative hours are rejected.
func ParseHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative hours %q", s)
	}
	return v, nil
}
