package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowClassification(t *testing.T) {
	special := []int{ActivityTeaching, ActivityOtherRD, ActivityAbsence, ActivityOther, ActivityTraining}
	for _, code := range special {
		r := &Row{ActivityCode: code}
		assert.True(t, r.IsSpecial(), "code %d", code)
	}
	for _, code := range []int{92, 1, 0, 101} {
		r := &Row{ActivityCode: code}
		assert.False(t, r.IsSpecial(), "code %d", code)
	}
}

func TestTimesheetTotals(t *testing.T) {
	a := &Row{Project: "A", WorkPackage: 1, ActivityCode: 92,
		Hours: map[string]float64{"6/3/23": 2, "7/3/23": 1.5}}
	b := &Row{Project: "B", WorkPackage: Unconstrained, ActivityCode: ActivityTeaching,
		Hours: map[string]float64{"6/3/23": 3}}
	ts := &Timesheet{Rows: []*Row{a, b}}

	assert.InDelta(t, 5.0, ts.DayTotal("6/3/23"), 1e-9)
	assert.InDelta(t, 1.5, ts.DayTotal("7/3/23"), 1e-9)
	assert.Zero(t, ts.DayTotal("8/3/23"))

	assert.InDelta(t, 3.5, a.Total(), 1e-9)
	assert.InDelta(t, 3.0, ts.ActivityDayTotal(ActivityTeaching, "6/3/23"), 1e-9)

	assert.Same(t, a, ts.RowForKey(ProjectKey{Project: "A", WorkPackage: 1}))
	assert.Nil(t, ts.RowForKey(ProjectKey{Project: "A", WorkPackage: 2}))
	assert.Same(t, b, ts.FirstRowForActivity(ActivityTeaching))
}

func TestHourRequestTotalIgnoresSentinel(t *testing.T) {
	req := HourRequest{
		ProjectKey{Project: "A", WorkPackage: 1}:             10,
		ProjectKey{Project: "B", WorkPackage: Unconstrained}: Unconstrained,
		ProjectKey{Project: "C", WorkPackage: 3}:             2.5,
	}
	assert.InDelta(t, 12.5, req.Total(), 1e-9)
}

func TestSpecialActivityMapping(t *testing.T) {
	assert.Equal(t, ActivityTeaching, Teaching.Code())
	assert.Equal(t, ActivityOtherRD, OtherRD.Code())
	assert.Equal(t, ActivityOther, OtherActivities.Code())
	assert.Equal(t, ActivityTraining, Training.Code())
	assert.Zero(t, SpecialActivity("bogus").Code())

	order := SpecialOrder()
	assert.Equal(t, Teaching, order[0])
	assert.Equal(t, Training, order[3])
}

func TestCapsMonthly(t *testing.T) {
	caps := DefaultCaps()
	assert.InDelta(t, 7.5, caps.Daily, 1e-9)
	assert.InDelta(t, 37.5, caps.Weekly, 1e-9)
	assert.InDelta(t, 172.5, caps.Monthly(23), 1e-9)
}

func TestProjectKeyString(t *testing.T) {
	assert.Equal(t, "Proyecto X (WP 2)", ProjectKey{Project: "Proyecto X", WorkPackage: 2}.String())
	assert.Equal(t, "Proyecto Y", ProjectKey{Project: "Proyecto Y", WorkPackage: Unconstrained}.String())
}
