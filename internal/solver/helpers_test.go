package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/javipalanca/burrocracia/internal/model"
)

// One plain Monday-to-Friday week, 5 working days.
var (
	weekFirst = time.Date(2023, 3, 6, 0, 0, 0, 0, time.UTC)
	weekLast  = time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC)
)

func newSheet(t *testing.T, first, last time.Time, rows ...*model.Row) *model.Timesheet {
	t.Helper()

	days, err := model.WorkingDays(first, last)
	require.NoError(t, err)

	var labels []string
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		labels = append(labels, model.DayLabel(d))
	}

	for _, r := range rows {
		if r.Hours == nil {
			r.Hours = make(map[string]float64)
		}
	}

	return &model.Timesheet{Rows: rows, DayLabels: labels, WorkingDays: days}
}

func projectRow(name string, wp int) *model.Row {
	return &model.Row{
		DNI:          "12345678A",
		Name:         "José Pérez",
		Project:      name,
		ActivityCode: 92,
		Activity:     "Proyecto",
		WorkPackage:  wp,
		Hours:        make(map[string]float64),
	}
}

func specialRow(code int, name string) *model.Row {
	return &model.Row{
		DNI:          "12345678A",
		Name:         "José Pérez",
		Project:      name,
		ActivityCode: code,
		Activity:     name,
		WorkPackage:  model.Unconstrained,
		Hours:        make(map[string]float64),
	}
}

func dayLabels(ts *model.Timesheet) []string {
	labels := make([]string, 0, len(ts.WorkingDays))
	for _, d := range ts.WorkingDays {
		labels = append(labels, model.DayLabel(d))
	}
	return labels
}
