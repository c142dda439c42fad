package model

// Unconstrained marks "no fixed requirement": for project quotas the
// line becomes eligible for opportunistic fill, for daily minimums the
// minimum is simply not enforced.
const Unconstrained = -1

// HourRequest maps each project line to the total hours that must be
// distributed for it across the whole period.
type HourRequest map[ProjectKey]float64

// Total sums the requested quotas, ignoring unconstrained entries.
func (r HourRequest) Total() float64 {
	var total float64
	for _, v := range r {
		if v == Unconstrained {
			continue
		}
		total += v
	}
	return total
}

// SpecialActivity is one of the four activities with a per-day minimum.
type SpecialActivity string

const (
	Teaching        SpecialActivity = "teaching"
	OtherRD         SpecialActivity = "other_rd"
	OtherActivities SpecialActivity = "other"
	Training        SpecialActivity = "training"
)

// SpecialOrder is the priority order in which daily minimums are served
// when capacity is scarce. Kept as found in the business rules; pending
// product sign-off.
func SpecialOrder() [4]SpecialActivity {
	return [4]SpecialActivity{Teaching, OtherRD, OtherActivities, Training}
}

// Code returns the activity code of a special activity.
func (a SpecialActivity) Code() int {
	switch a {
	case Teaching:
		return ActivityTeaching
	case OtherRD:
		return ActivityOtherRD
	case OtherActivities:
		return ActivityOther
	case Training:
		return ActivityTraining
	}
	return 0
}

// Label returns the user-facing Spanish name of the activity.
func (a SpecialActivity) Label() string {
	switch a {
	case Teaching:
		return "docencia"
	case OtherRD:
		return "otra I+D"
	case OtherActivities:
		return "otras actividades"
	case Training:
		return "formación"
	}
	return string(a)
}

// SpecialRequest maps special activities to their requested daily
// minimum. Unlike HourRequest, values are enforced per day.
type SpecialRequest map[SpecialActivity]float64

// Caps are the allocation ceilings. They are configuration, passed
// explicitly into the solver, never read from ambient state.
type Caps struct {
	Daily  float64
	Weekly float64
}

// DefaultCaps returns the standard 7.5h/day, 37.5h/week ceilings.
func DefaultCaps() Caps {
	return Caps{Daily: 7.5, Weekly: 37.5}
}

// Monthly derives the period ceiling from the number of working days.
func (c Caps) Monthly(numWorkingDays int) float64 {
	return c.Daily * float64(numWorkingDays)
}
