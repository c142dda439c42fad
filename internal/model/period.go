package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InvalidRangeError reports an inverted billing period.
type InvalidRangeError struct {
	First time.Time
	Last  time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("rango de fechas inválido: %s es anterior a %s",
		DayLabel(e.Last), DayLabel(e.First))
}

// DayLabel formats a date the way the sheet day-column headers do:
// d/m/yy without zero padding and with a 2-digit year.
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%d/%d/%02d", t.Day(), int(t.Month()), t.Year()%100)
}

// ParseDayLabel parses a d/m/yy day-column header back into a date.
// Years are interpreted as 2000-2099.
func ParseDayLabel(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid day label %q", s)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day label %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day label %q", s)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day label %q", s)
	}
	if year < 0 || year > 99 {
		return time.Time{}, fmt.Errorf("invalid day label %q", s)
	}
	t := time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflows (32/1 becomes 1/2); reject those.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("invalid day label %q", s)
	}
	return t, nil
}

// WorkingDays enumerates every date in [first, last] and keeps the
// weekdays, in chronological order. Weekends are never allocable.
func WorkingDays(first, last time.Time) ([]time.Time, error) {
	first = truncateToDay(first)
	last = truncateToDay(last)
	if last.Before(first) {
		return nil, &InvalidRangeError{First: first, Last: last}
	}

	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, d)
	}
	return days, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
