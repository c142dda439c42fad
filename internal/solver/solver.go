// Package solver implements the allocation-and-validation engine: a
// feasibility checker that injects per-activity daily minimums and
// validates daily/weekly/monthly ceilings, and a greedy allocator that
// distributes project quotas across working days and back-fills idle
// capacity.
package solver

import (
	"math/rand"
	"time"

	"github.com/javipalanca/burrocracia/internal/model"
)

// tolerance absorbs floating rounding in cap comparisons.
const tolerance = 1e-6

// Solver runs the feasibility check and the greedy allocation for one
// timesheet. A Solver is cheap to create; use a fresh one per request.
type Solver struct {
	caps model.Caps
	rng  *rand.Rand
}

// New creates a solver with a time-seeded random source. Opportunistic
// fill is intentionally non-repeatable unless seeded via NewWithRand.
func New(caps model.Caps) *Solver {
	return NewWithRand(caps, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates a solver with the given random source, so tests
// can supply a fixed seed.
func NewWithRand(caps model.Caps, rng *rand.Rand) *Solver {
	return &Solver{caps: caps, rng: rng}
}

// Solve checks feasibility and, if the request fits, allocates it.
// The timesheet is mutated in place.
func (s *Solver) Solve(ts *model.Timesheet, specials model.SpecialRequest, hours model.HourRequest) error {
	if err := s.Check(ts, specials, hours); err != nil {
		return err
	}
	return s.Allocate(ts, hours)
}
