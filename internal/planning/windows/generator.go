// Package windows proposes meeting time windows, either from a user's
// availability or from day-of-week defaults.
package windows

import (
	"fmt"
	"sort"
	"time"

	"thenetwork-workers/internal/common/errors"
	"thenetwork-workers/internal/models"
)

// HorizonDays is how many days ahead the heuristic plans.
const HorizonDays = 10

const (
	scoreDefault           = 1.0
	scoreThuFriEvening     = 1.3
	scoreSaturdayAfternoon = 1.4
	scoreWeekendEvening    = 1.2
)

// ScoreSlot rates a start time by social desirability in t's location.
func ScoreSlot(t time.Time) float64 {
	hour := t.Hour()
	evening := hour >= 17
	afternoon := hour >= 12 && hour < 17

	switch wd := t.Weekday(); {
	case (wd == time.Thursday || wd == time.Friday) && evening:
		return scoreThuFriEvening
	case wd == time.Saturday && afternoon:
		return scoreSaturdayAfternoon
	case (wd == time.Saturday || wd == time.Sunday) && evening:
		return scoreWeekendEvening
	default:
		return scoreDefault
	}
}

func newWindow(start, end time.Time) models.TimeWindow {
	return models.TimeWindow{
		Start:    start,
		End:      end,
		Proposed: start.Add(end.Sub(start) / 2),
		Score:    ScoreSlot(start),
	}
}

func sortByScore(ws []models.TimeWindow) {
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].Score > ws[j].Score })
}

// FromAvailability turns availability blocks into windows. Blocks that ended
// before now or end before they start are dropped. Scores use now's location.
func FromAvailability(blocks []models.AvailabilityBlock, now time.Time) []models.TimeWindow {
	loc := now.Location()
	out := make([]models.TimeWindow, 0, len(blocks))
	for _, b := range blocks {
		if b.End.Before(now) || b.End.Before(b.Start) {
			continue
		}
		out = append(out, newWindow(b.Start.In(loc), b.End.In(loc)))
	}
	sortByScore(out)
	return out
}

// Heuristic proposes windows for the HorizonDays days after now in now's
// location. Weekdays get an 18:00-20:00 window unless cal blacks them out;
// weekends get 14:00-16:00 and 18:00-20:00.
func Heuristic(now time.Time, cal Calendar) []models.TimeWindow {
	loc := now.Location()
	out := make([]models.TimeWindow, 0, HorizonDays*2)

	for d := 1; d <= HorizonDays; d++ {
		day := time.Date(now.Year(), now.Month(), now.Day()+d, 0, 0, 0, 0, loc)
		at := func(hour int) time.Time {
			return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, loc)
		}

		switch day.Weekday() {
		case time.Saturday, time.Sunday:
			out = append(out, newWindow(at(14), at(16)), newWindow(at(18), at(20)))
		default:
			if cal.IsBlackout(day) {
				continue
			}
			out = append(out, newWindow(at(18), at(20)))
		}
	}

	sortByScore(out)
	return out
}

// Generate uses availability when any blocks are supplied and the heuristic
// otherwise.
func Generate(blocks []models.AvailabilityBlock, now time.Time, cal Calendar) ([]models.TimeWindow, models.WindowMode) {
	if len(blocks) > 0 {
		return FromAvailability(blocks, now), models.WindowModeAvailability
	}
	return Heuristic(now, cal), models.WindowModeHeuristic
}

// ReferenceTime resolves the "now" of a request: the supplied instant or the
// clock, in timezone when given and fallback otherwise.
func ReferenceTime(now *time.Time, timezone string, fallback *time.Location, clock func() time.Time) (time.Time, error) {
	loc := fallback
	if timezone != "" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return time.Time{}, errors.NewInvalidInputError(fmt.Sprintf("unknown timezone %q", timezone))
		}
		loc = l
	}
	if loc == nil {
		loc = time.UTC
	}
	if now != nil {
		return now.In(loc), nil
	}
	return clock().In(loc), nil
}
