package solver

import (
	"math"

	"github.com/javipalanca/burrocracia/internal/model"
)

// Allocate distributes each requested project quota across the working
// days and then back-fills idle daily capacity into the unconstrained
// projects. The timesheet is mutated in place.
//
// Quotas are spread one day-unit at a time, capped by the day's pending
// capacity, scanning the day sequence in as many passes as needed. Rows
// are processed in table order, so an earlier row gets first pick of
// scarce slots on shared days.
func (s *Solver) Allocate(ts *model.Timesheet, hours model.HourRequest) error {
	for _, row := range ts.Rows {
		quota, ok := hours[row.Key()]
		if !ok || quota == model.Unconstrained {
			continue
		}
		remaining := quota
		for remaining > tolerance {
			progressed := false
			for _, day := range ts.WorkingDays {
				if remaining <= tolerance {
					break
				}
				label := model.DayLabel(day)
				pending := s.caps.Daily - ts.DayTotal(label)
				if pending <= tolerance {
					continue
				}
				step := math.Min(1, math.Min(remaining, pending))
				row.Hours[label] += step
				remaining -= step
				progressed = true
			}
			// A full pass without progress means no day retains
			// capacity; bail out instead of spinning.
			if !progressed {
				return &AllocationError{Key: row.Key(), Remaining: remaining}
			}
		}
	}

	s.fillIdleCapacity(ts, hours)
	return nil
}

// fillIdleCapacity hands each day's leftover capacity to one randomly
// chosen unconstrained project. Days stay idle when no project is
// unconstrained.
func (s *Solver) fillIdleCapacity(ts *model.Timesheet, hours model.HourRequest) {
	var free []*model.Row
	for _, row := range ts.Rows {
		if quota, ok := hours[row.Key()]; ok && quota == model.Unconstrained {
			free = append(free, row)
		}
	}
	if len(free) == 0 {
		return
	}

	for _, day := range ts.WorkingDays {
		label := model.DayLabel(day)
		pending := s.caps.Daily - ts.DayTotal(label)
		if pending <= tolerance {
			continue
		}
		row := free[s.rng.Intn(len(free))]
		row.Hours[label] += pending
	}
}
