package windows

import (
	"time"

	"thenetwork-workers/internal/common/config"
)

// DateRange is a blackout interval [Start, End).
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Calendar is the academic blackout policy: weekdays inside a blackout month
// or an explicit range get no heuristic windows.
type Calendar struct {
	BlackoutMonths []time.Month
	Blackouts      []DateRange
}

// DefaultCalendar blacks out weekdays of May and December (finals).
func DefaultCalendar() Calendar {
	return Calendar{BlackoutMonths: []time.Month{time.May, time.December}}
}

// CalendarFromConfig builds the policy from planning settings, resolving
// explicit ranges in loc.
func CalendarFromConfig(cfg config.PlanningConfig, loc *time.Location) (Calendar, error) {
	cal := Calendar{}
	for _, m := range cfg.BlackoutMonths {
		cal.BlackoutMonths = append(cal.BlackoutMonths, time.Month(m))
	}
	for _, r := range cfg.Blackouts {
		start, end, err := r.Parse(loc)
		if err != nil {
			return Calendar{}, err
		}
		cal.Blackouts = append(cal.Blackouts, DateRange{Start: start, End: end})
	}
	return cal, nil
}

// IsBlackout reports whether day falls in a blackout month or range.
func (c Calendar) IsBlackout(day time.Time) bool {
	for _, m := range c.BlackoutMonths {
		if day.Month() == m {
			return true
		}
	}
	for _, r := range c.Blackouts {
		if r.contains(day) {
			return true
		}
	}
	return false
}
