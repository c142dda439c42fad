package model

import (
	"fmt"
	"time"
)

// Activity codes with dedicated handling. Every other code is an
// ordinary project activity.
const (
	ActivityTeaching = 97
	ActivityOtherRD  = 98
	ActivityAbsence  = 99
	ActivityOther    = 100
	ActivityTraining = 108
)

// ColumnHeaders are the seven fixed leading columns of the sheet, in
// order. Day columns follow, one per calendar day of the period.
var ColumnHeaders = []string{
	"DNI",
	"Nombre",
	"Clave específica",
	"Proyecto",
	"Id Actividad",
	"Actividad",
	"Working Package",
}

// ProjectKey identifies one (project, work package) line. A work
// package of -1 means the line is project-level.
type ProjectKey struct {
	Project     string
	WorkPackage int
}

func (k ProjectKey) String() string {
	if k.WorkPackage == Unconstrained {
		return k.Project
	}
	return fmt.Sprintf("%s (WP %d)", k.Project, k.WorkPackage)
}

// Row is one (project, activity, work package) line of a person's
// monthly sheet. Hours are keyed by day label and always non-negative.
type Row struct {
	DNI          string
	Name         string
	SpecificKey  string
	Project      string
	ActivityCode int
	Activity     string
	WorkPackage  int
	Hours        map[string]float64
}

// Key returns the row's project selection key.
func (r *Row) Key() ProjectKey {
	return ProjectKey{Project: r.Project, WorkPackage: r.WorkPackage}
}

// IsSpecial reports whether the row belongs to one of the activities
// with dedicated daily-minimum handling (absence included).
func (r *Row) IsSpecial() bool {
	switch r.ActivityCode {
	case ActivityTeaching, ActivityOtherRD, ActivityAbsence, ActivityOther, ActivityTraining:
		return true
	}
	return false
}

// Total sums the row's hours across all tracked days.
func (r *Row) Total() float64 {
	var total float64
	for _, v := range r.Hours {
		total += v
	}
	return total
}

// Timesheet is the in-memory table for a single person and billing
// period. It is mutated in place by the checker and the allocator and
// must not be aliased across requests.
type Timesheet struct {
	Rows        []*Row
	DayLabels   []string    // every calendar day column, in header order
	WorkingDays []time.Time // weekdays of the period, chronological
}

// DayTotal sums one day column across all rows.
func (t *Timesheet) DayTotal(label string) float64 {
	var total float64
	for _, r := range t.Rows {
		total += r.Hours[label]
	}
	return total
}

// RowForKey returns the row carrying the given project key, or nil.
func (t *Timesheet) RowForKey(k ProjectKey) *Row {
	for _, r := range t.Rows {
		if r.Project == k.Project && r.WorkPackage == k.WorkPackage {
			return r
		}
	}
	return nil
}

// FirstRowForActivity returns the first row with the given activity
// code, or nil.
func (t *Timesheet) FirstRowForActivity(code int) *Row {
	for _, r := range t.Rows {
		if r.ActivityCode == code {
			return r
		}
	}
	return nil
}

// ActivityDayTotal sums one day column across the rows of one activity.
func (t *Timesheet) ActivityDayTotal(code int, label string) float64 {
	var total float64
	for _, r := range t.Rows {
		if r.ActivityCode == code {
			total += r.Hours[label]
		}
	}
	return total
}

// ActivityPeriodTotal sums an activity's hours over the working days.
func (t *Timesheet) ActivityPeriodTotal(code int) float64 {
	var total float64
	for _, day := range t.WorkingDays {
		total += t.ActivityDayTotal(code, DayLabel(day))
	}
	return total
}

// Period returns the first and last day labels of the sheet.
func (t *Timesheet) Period() (first, last string) {
	if len(t.DayLabels) == 0 {
		return "", ""
	}
	return t.DayLabels[0], t.DayLabels[len(t.DayLabels)-1]
}
