package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javipalanca/burrocracia/internal/model"
)

func TestCheckInjectsTeachingMinimum(t *testing.T) {
	teaching := specialRow(model.ActivityTeaching, "Docencia")
	project := projectRow("Proyecto X", 1)
	ts := newSheet(t, weekFirst, weekLast, teaching, project)

	s := New(model.DefaultCaps())
	err := s.Check(ts, model.SpecialRequest{model.Teaching: 2}, nil)
	require.NoError(t, err)

	for _, label := range dayLabels(ts) {
		assert.InDelta(t, 2.0, teaching.Hours[label], 1e-9, "day %s", label)
	}
	assert.Zero(t, project.Total())
}

func TestCheckKeepsExistingHoursAboveMinimum(t *testing.T) {
	teaching := specialRow(model.ActivityTeaching, "Docencia")
	ts := newSheet(t, weekFirst, weekLast, teaching)
	labels := dayLabels(ts)
	teaching.Hours[labels[0]] = 3.5

	s := New(model.DefaultCaps())
	require.NoError(t, s.Check(ts, model.SpecialRequest{model.Teaching: 2}, nil))

	assert.InDelta(t, 3.5, teaching.Hours[labels[0]], 1e-9)
	assert.InDelta(t, 2.0, teaching.Hours[labels[1]], 1e-9)
}

func TestCheckPriorityOrderWhenCapacityScarce(t *testing.T) {
	teaching := specialRow(model.ActivityTeaching, "Docencia")
	training := specialRow(model.ActivityTraining, "Formación")
	ts := newSheet(t, weekFirst, weekLast, teaching, training)

	// Daily capacity of 3h cannot serve two 2h minimums; teaching is
	// served first and training is shorted, which is allowed.
	s := New(model.Caps{Daily: 3, Weekly: 37.5})
	err := s.Check(ts, model.SpecialRequest{model.Teaching: 2, model.Training: 2}, nil)
	require.NoError(t, err)

	for _, label := range dayLabels(ts) {
		assert.InDelta(t, 2.0, teaching.Hours[label], 1e-9)
		assert.InDelta(t, 1.0, training.Hours[label], 1e-9)
	}
}

func TestCheckUnconstrainedMinimumIsIgnored(t *testing.T) {
	teaching := specialRow(model.ActivityTeaching, "Docencia")
	ts := newSheet(t, weekFirst, weekLast, teaching)

	s := New(model.DefaultCaps())
	require.NoError(t, s.Check(ts, model.SpecialRequest{model.Teaching: model.Unconstrained}, nil))
	assert.Zero(t, teaching.Total())
}

func TestCheckMonthlyQuotaExceeded(t *testing.T) {
	teaching := specialRow(model.ActivityTeaching, "Docencia")
	project := projectRow("Proyecto X", 1)
	ts := newSheet(t, weekFirst, weekLast, teaching, project)

	// Teaching commits 10h, leaving 27.5h of the 37.5h month.
	s := New(model.DefaultCaps())
	err := s.Check(ts,
		model.SpecialRequest{model.Teaching: 2},
		model.HourRequest{project.Key(): 30},
	)

	var feaErr *FeasibilityError
	require.ErrorAs(t, err, &feaErr)
	assert.Equal(t, MonthlyQuotaExceeded, feaErr.Kind)
	assert.InDelta(t, 30.0, feaErr.Requested, 1e-9)
	assert.InDelta(t, 27.5, feaErr.Remaining, 1e-9)
	assert.InDelta(t, 37.5, feaErr.Cap, 1e-9)
	assert.InDelta(t, 10.0, feaErr.Committed[model.Teaching], 1e-9)

	msg := feaErr.Error()
	assert.Contains(t, msg, "Te has pasado de horas.")
	assert.Contains(t, msg, "27.5")
	assert.Contains(t, msg, "docencia")
}

func TestCheckUnconstrainedQuotasDontCountAgainstMonth(t *testing.T) {
	a := projectRow("Proyecto A", 1)
	b := projectRow("Proyecto B", model.Unconstrained)
	ts := newSheet(t, weekFirst, weekLast, a, b)

	s := New(model.DefaultCaps())
	err := s.Check(ts, nil, model.HourRequest{
		a.Key(): 37.5,
		b.Key(): model.Unconstrained,
	})
	require.NoError(t, err)
}

func TestCheckDailyCapExceeded(t *testing.T) {
	project := projectRow("Proyecto X", 1)
	ts := newSheet(t, weekFirst, weekLast, project)
	labels := dayLabels(ts)
	project.Hours[labels[2]] = 8

	s := New(model.DefaultCaps())
	err := s.Check(ts, nil, nil)

	var feaErr *FeasibilityError
	require.ErrorAs(t, err, &feaErr)
	assert.Equal(t, DailyCapExceeded, feaErr.Kind)
	assert.Equal(t, labels[2], feaErr.Day)
	assert.InDelta(t, 8.0, feaErr.Total, 1e-9)
	assert.Contains(t, feaErr.Error(), labels[2])
}

func TestCheckWeeklyCapExceeded(t *testing.T) {
	project := projectRow("Proyecto X", 1)
	ts := newSheet(t, weekFirst, weekLast, project)
	for _, label := range dayLabels(ts) {
		project.Hours[label] = 8
	}

	// Each day fits an 8h daily cap, but the week sums to 40h.
	s := New(model.Caps{Daily: 8, Weekly: 37.5})
	err := s.Check(ts, nil, nil)

	var feaErr *FeasibilityError
	require.ErrorAs(t, err, &feaErr)
	assert.Equal(t, WeeklyCapExceeded, feaErr.Kind)
	assert.Equal(t, 2023, feaErr.Year)
	assert.Equal(t, 10, feaErr.Week)
	assert.InDelta(t, 40.0, feaErr.Total, 1e-9)
}

func TestCheckIsIdempotent(t *testing.T) {
	teaching := specialRow(model.ActivityTeaching, "Docencia")
	project := projectRow("Proyecto X", 1)
	ts := newSheet(t, weekFirst, weekLast, teaching, project)
	specials := model.SpecialRequest{model.Teaching: 2}
	hours := model.HourRequest{project.Key(): 5}

	s := New(model.DefaultCaps())
	require.NoError(t, s.Check(ts, specials, hours))

	snapshot := make(map[string]float64, len(teaching.Hours))
	for k, v := range teaching.Hours {
		snapshot[k] = v
	}

	require.NoError(t, s.Check(ts, specials, hours))
	assert.Equal(t, snapshot, teaching.Hours)
}

func TestCheckMonotonicInRequest(t *testing.T) {
	large := model.HourRequest{model.ProjectKey{Project: "Proyecto X", WorkPackage: 1}: 20}
	small := model.HourRequest{model.ProjectKey{Project: "Proyecto X", WorkPackage: 1}: 10}

	s := New(model.DefaultCaps())
	for _, hours := range []model.HourRequest{large, small} {
		ts := newSheet(t, weekFirst, weekLast, projectRow("Proyecto X", 1))
		require.NoError(t, s.Check(ts, nil, hours))
	}
}

func TestFeasibilityKindString(t *testing.T) {
	assert.Equal(t, "monthly_quota_exceeded", MonthlyQuotaExceeded.String())
	assert.Equal(t, "daily_cap_exceeded", DailyCapExceeded.String())
	assert.Equal(t, "weekly_cap_exceeded", WeeklyCapExceeded.String())
}
