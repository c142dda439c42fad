package solver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/javipalanca/burrocracia/internal/model"
)

// FeasibilityKind distinguishes which ceiling a request violated.
type FeasibilityKind int

const (
	MonthlyQuotaExceeded FeasibilityKind = iota
	DailyCapExceeded
	WeeklyCapExceeded
)

func (k FeasibilityKind) String() string {
	switch k {
	case MonthlyQuotaExceeded:
		return "monthly_quota_exceeded"
	case DailyCapExceeded:
		return "daily_cap_exceeded"
	case WeeklyCapExceeded:
		return "weekly_cap_exceeded"
	}
	return "unknown"
}

// FeasibilityError is returned by Check when the request cannot fit
// under the configured ceilings. It is surfaced verbatim to the
// operator, who must revise the request; it is never retried.
type FeasibilityError struct {
	Kind FeasibilityKind

	// Monthly violations.
	Requested float64
	Remaining float64
	Committed map[model.SpecialActivity]float64

	// Daily violations.
	Day string

	// Weekly violations.
	Year int
	Week int

	Total float64 // offending day/week total
	Cap   float64 // the ceiling that was violated
}

func (e *FeasibilityError) Error() string {
	switch e.Kind {
	case DailyCapExceeded:
		return fmt.Sprintf("El día %s suma %s horas y el máximo diario es de %sh.",
			e.Day, formatHours(e.Total), formatHours(e.Cap))
	case WeeklyCapExceeded:
		return fmt.Sprintf("La semana %d de %d suma %s horas y el máximo semanal es de %sh.",
			e.Week, e.Year, formatHours(e.Total), formatHours(e.Cap))
	}

	lines := []string{
		"Te has pasado de horas.",
		fmt.Sprintf("El máximo es de %s horas este mes y quedan %s horas libres.",
			formatHours(e.Cap), formatHours(e.Remaining)),
		fmt.Sprintf("Has pedido %s horas.", formatHours(e.Requested)),
	}
	for _, act := range model.SpecialOrder() {
		if hours, ok := e.Committed[act]; ok && hours > 0 {
			lines = append(lines, fmt.Sprintf("Has asignado %s horas de %s.",
				formatHours(hours), act.Label()))
		}
	}
	return strings.Join(lines, "\n")
}

// AllocationError is returned when quota distribution cannot converge
// because no working day retains positive capacity.
type AllocationError struct {
	Key       model.ProjectKey
	Remaining float64
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("no queda capacidad libre para imputar %s horas a %s",
		formatHours(e.Remaining), e.Key)
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
