package solver

import (
	"math"

	"github.com/javipalanca/burrocracia/internal/model"
)

// Check injects the requested special-activity daily minimums within
// the daily cap and validates the request against the monthly, daily
// and weekly ceilings, in that order. The first violation is returned
// as a *FeasibilityError; on success the sheet (with minimums injected)
// is a fixed point of Check.
func (s *Solver) Check(ts *model.Timesheet, specials model.SpecialRequest, hours model.HourRequest) error {
	var used float64

	for _, day := range ts.WorkingDays {
		label := model.DayLabel(day)
		available := math.Max(0, s.caps.Daily-ts.DayTotal(label))

		// Serve daily minimums in priority order. A later activity may
		// receive less than its minimum if capacity runs out; that
		// degradation is allowed.
		for _, act := range model.SpecialOrder() {
			min, ok := specials[act]
			if !ok || min == model.Unconstrained {
				continue
			}
			need := min - ts.ActivityDayTotal(act.Code(), label)
			if need <= 0 {
				continue
			}
			alloc := math.Min(need, available)
			if alloc <= 0 {
				continue
			}
			row := ts.FirstRowForActivity(act.Code())
			if row == nil {
				continue
			}
			row.Hours[label] += alloc
			available -= alloc
		}

		used += ts.DayTotal(label)
	}

	monthly := s.caps.Monthly(len(ts.WorkingDays))
	remaining := math.Max(0, monthly-used)
	if requested := hours.Total(); requested > remaining {
		committed := make(map[model.SpecialActivity]float64)
		for _, act := range model.SpecialOrder() {
			if total := ts.ActivityPeriodTotal(act.Code()); total > 0 {
				committed[act] = total
			}
		}
		return &FeasibilityError{
			Kind:      MonthlyQuotaExceeded,
			Requested: requested,
			Remaining: remaining,
			Committed: committed,
			Cap:       monthly,
		}
	}

	for _, day := range ts.WorkingDays {
		label := model.DayLabel(day)
		if total := ts.DayTotal(label); total > s.caps.Daily+tolerance {
			return &FeasibilityError{
				Kind:  DailyCapExceeded,
				Day:   label,
				Total: total,
				Cap:   s.caps.Daily,
			}
		}
	}

	return s.checkWeeks(ts)
}

type weekKey struct {
	year, week int
}

func (s *Solver) checkWeeks(ts *model.Timesheet) error {
	totals := make(map[weekKey]float64)
	var order []weekKey
	for _, day := range ts.WorkingDays {
		year, week := day.ISOWeek()
		k := weekKey{year, week}
		if _, seen := totals[k]; !seen {
			order = append(order, k)
		}
		totals[k] += ts.DayTotal(model.DayLabel(day))
	}
	for _, k := range order {
		if totals[k] > s.caps.Weekly+tolerance {
			return &FeasibilityError{
				Kind:  WeeklyCapExceeded,
				Year:  k.year,
				Week:  k.week,
				Total: totals[k],
				Cap:   s.caps.Weekly,
			}
		}
	}
	return nil
}
