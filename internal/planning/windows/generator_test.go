package windows

import (
	"testing"
	"time"

	"thenetwork-workers/internal/common/config"
	"thenetwork-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pacific = time.FixedZone("PDT", -7*60*60)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, pacific)
}

func assertSorted(t *testing.T, ws []models.TimeWindow) {
	t.Helper()
	for i := 1; i < len(ws); i++ {
		assert.GreaterOrEqual(t, ws[i-1].Score, ws[i].Score, "windows %d and %d out of order", i-1, i)
	}
}

func TestScoreSlot(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{name: "thursday evening", t: at(2026, 6, 4, 18, 0), want: 1.3},
		{name: "friday at 17", t: at(2026, 6, 5, 17, 0), want: 1.3},
		{name: "friday afternoon", t: at(2026, 6, 5, 14, 0), want: 1.0},
		{name: "saturday noon", t: at(2026, 6, 6, 12, 0), want: 1.4},
		{name: "saturday 16:59", t: at(2026, 6, 6, 16, 59), want: 1.4},
		{name: "saturday evening", t: at(2026, 6, 6, 18, 0), want: 1.2},
		{name: "saturday morning", t: at(2026, 6, 6, 10, 0), want: 1.0},
		{name: "sunday afternoon", t: at(2026, 6, 7, 14, 0), want: 1.0},
		{name: "sunday evening", t: at(2026, 6, 7, 19, 0), want: 1.2},
		{name: "monday evening", t: at(2026, 6, 8, 18, 0), want: 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreSlot(tt.t))
		})
	}
}

func TestHeuristic_June(t *testing.T) {
	now := at(2026, 6, 3, 10, 0) // Wednesday

	ws := Heuristic(now, DefaultCalendar())

	// 7 weekday evenings plus two windows on each of Jun 6, 7 and 13.
	require.Len(t, ws, 13)
	assertSorted(t, ws)

	assert.Equal(t, 1.4, ws[0].Score)
	assert.Equal(t, at(2026, 6, 6, 14, 0), ws[0].Start)
	assert.Equal(t, at(2026, 6, 6, 16, 0), ws[0].End)
	assert.Equal(t, at(2026, 6, 6, 15, 0), ws[0].Proposed)
	assert.Equal(t, at(2026, 6, 13, 14, 0), ws[1].Start)

	for _, w := range ws {
		assert.True(t, w.Start.After(now))
		assert.False(t, w.Start.After(at(2026, 6, 13, 23, 59)))
	}
}

func TestHeuristic_FinalsSkipsWeekdays(t *testing.T) {
	now := at(2026, 11, 30, 9, 0) // Monday; the next ten days are Dec 1-10

	ws := Heuristic(now, DefaultCalendar())

	require.Len(t, ws, 4)
	for _, w := range ws {
		wd := w.Start.Weekday()
		assert.True(t, wd == time.Saturday || wd == time.Sunday, "unexpected %s window", wd)
	}
	assert.Equal(t, 1.4, ws[0].Score)
}

func TestHeuristic_ExplicitBlackoutRange(t *testing.T) {
	cal, err := CalendarFromConfig(config.PlanningConfig{
		Blackouts: []config.DateRange{{Start: "2026-06-08", End: "2026-06-09"}},
	}, pacific)
	require.NoError(t, err)

	ws := Heuristic(at(2026, 6, 3, 10, 0), cal)

	require.Len(t, ws, 11)
	for _, w := range ws {
		day := w.Start.Day()
		assert.False(t, day == 8 || day == 9, "blacked out day %d emitted", day)
	}
}

func TestHeuristic_NoBlackouts(t *testing.T) {
	ws := Heuristic(at(2026, 11, 30, 9, 0), Calendar{})
	assert.Len(t, ws, 12)
}

func TestCalendarFromConfig(t *testing.T) {
	cal, err := CalendarFromConfig(config.PlanningConfig{BlackoutMonths: []int{5, 12}}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, DefaultCalendar(), cal)

	_, err = CalendarFromConfig(config.PlanningConfig{
		Blackouts: []config.DateRange{{Start: "2026-06-09", End: "2026-06-01"}},
	}, time.UTC)
	assert.Error(t, err)
}

func TestFromAvailability(t *testing.T) {
	now := at(2026, 6, 3, 12, 0)
	blocks := []models.AvailabilityBlock{
		{Start: at(2026, 6, 2, 18, 0), End: at(2026, 6, 2, 20, 0)}, // past
		{Start: at(2026, 6, 8, 9, 0), End: at(2026, 6, 8, 10, 0)},  // Monday morning
		{Start: at(2026, 6, 5, 18, 0), End: at(2026, 6, 5, 21, 0)}, // Friday evening
		{Start: at(2026, 6, 3, 11, 0), End: now},                   // ends exactly now
		{Start: at(2026, 6, 6, 13, 0), End: at(2026, 6, 6, 15, 0)}, // Saturday afternoon
		{Start: at(2026, 6, 9, 15, 0), End: at(2026, 6, 9, 14, 0)}, // inverted
	}

	ws := FromAvailability(blocks, now)

	require.Len(t, ws, 4)
	assertSorted(t, ws)
	assert.Equal(t, 1.4, ws[0].Score)
	assert.Equal(t, at(2026, 6, 6, 14, 0), ws[0].Proposed)
	assert.Equal(t, 1.3, ws[1].Score)
	assert.Equal(t, at(2026, 6, 5, 19, 30), ws[1].Proposed)
	// equal scores keep input order
	assert.Equal(t, at(2026, 6, 8, 9, 0), ws[2].Start)
	assert.Equal(t, at(2026, 6, 3, 11, 0), ws[3].Start)

	for _, w := range ws {
		assert.False(t, w.End.Before(now))
	}
}

func TestFromAvailability_ScoresInNowLocation(t *testing.T) {
	// 01:00 UTC Saturday is 18:00 Friday in Pacific time.
	start := time.Date(2026, 6, 6, 1, 0, 0, 0, time.UTC)
	ws := FromAvailability([]models.AvailabilityBlock{{Start: start, End: start.Add(2 * time.Hour)}}, at(2026, 6, 1, 0, 0))

	require.Len(t, ws, 1)
	assert.Equal(t, 1.3, ws[0].Score)
	assert.Equal(t, pacific, ws[0].Start.Location())
}

func TestGenerate(t *testing.T) {
	now := at(2026, 6, 3, 10, 0)

	ws, mode := Generate(nil, now, DefaultCalendar())
	assert.Equal(t, models.WindowModeHeuristic, mode)
	assert.NotEmpty(t, ws)

	past := []models.AvailabilityBlock{{Start: at(2026, 6, 1, 9, 0), End: at(2026, 6, 1, 10, 0)}}
	ws, mode = Generate(past, now, DefaultCalendar())
	assert.Equal(t, models.WindowModeAvailability, mode)
	assert.Empty(t, ws)
}

func TestReferenceTime(t *testing.T) {
	clock := func() time.Time { return time.Date(2026, time.June, 6, 2, 0, 0, 0, time.UTC) }

	got, err := ReferenceTime(nil, "", pacific, clock)
	require.NoError(t, err)
	assert.Equal(t, pacific, got.Location())
	assert.Equal(t, 5, got.Day())

	supplied := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	got, err = ReferenceTime(&supplied, "", nil, clock)
	require.NoError(t, err)
	assert.True(t, got.Equal(supplied))
	assert.Equal(t, time.UTC, got.Location())

	_, err = ReferenceTime(nil, "Not/AZone", pacific, clock)
	require.Error(t, err)
}
