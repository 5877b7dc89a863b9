package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyplan-io/studyplan-api/internal/models"
)

func TestMergeIntervalsCollapsesOverlaps(t *testing.T) {
	merged := mergeIntervals([]interval{
		{start: 600, end: 720},
		{start: 540, end: 660},
		{start: 900, end: 960},
	})
	require.Len(t, merged, 2)
	assert.Equal(t, interval{start: 540, end: 720}, merged[0])
	assert.Equal(t, interval{start: 900, end: 960}, merged[1])
}

func TestMergeIntervalsCollapsesTouching(t *testing.T) {
	merged := mergeIntervals([]interval{
		{start: 540, end: 600},
		{start: 600, end: 660},
	})
	require.Len(t, merged, 1)
	assert.Equal(t, interval{start: 540, end: 660}, merged[0])
}

func TestMergeIntervalsEmpty(t *testing.T) {
	assert.Nil(t, mergeIntervals(nil))
}

func TestSubtractIntervalsClipsPartialOverlap(t *testing.T) {
	window := interval{start: 480, end: 1200}
	free := subtractIntervals(window, []interval{
		{start: 420, end: 540},
		{start: 1020, end: 1260},
	})
	require.Len(t, free, 1)
	assert.Equal(t, interval{start: 540, end: 1020}, free[0])
}

func TestSubtractIntervalsIgnoresOutsideWindow(t *testing.T) {
	window := interval{start: 480, end: 1200}
	free := subtractIntervals(window, []interval{
		{start: 0, end: 120},
		{start: 1300, end: 1440},
	})
	require.Len(t, free, 1)
	assert.Equal(t, window, free[0])
}

func TestSubtractIntervalsFullyBlockedWindow(t *testing.T) {
	window := interval{start: 480, end: 1200}
	free := subtractIntervals(window, []interval{{start: 480, end: 1200}})
	assert.Empty(t, free)
}

func TestSubtractIntervalsNoBusy(t *testing.T) {
	window := interval{start: 480, end: 1200}
	free := subtractIntervals(window, nil)
	require.Len(t, free, 1)
	assert.Equal(t, window, free[0])
}

func TestSubtractIntervalsSplitsAroundBusy(t *testing.T) {
	window := interval{start: 480, end: 1200}
	free := subtractIntervals(window, []interval{{start: 540, end: 1020}})
	require.Len(t, free, 2)
	assert.Equal(t, interval{start: 480, end: 540}, free[0])
	assert.Equal(t, interval{start: 1020, end: 1200}, free[1])
}

func TestResolveBusyMergesAcrossConstraints(t *testing.T) {
	start, err := parseDate("2025-01-06")
	require.NoError(t, err)
	days := weekDates(start)

	morning, err := compileConstraint(models.Constraint{ID: "a", StartTime: "09:00", EndTime: "11:00", Recurrence: models.RecurrenceWeekdays})
	require.NoError(t, err)
	overlap, err := compileConstraint(models.Constraint{ID: "b", StartTime: "10:00", EndTime: "12:00", Recurrence: models.RecurrenceWeekdays})
	require.NoError(t, err)

	busy := resolveBusy([]compiledConstraint{morning, overlap}, days)

	// Monday through Friday carry one merged block, the weekend none.
	for day := 0; day < 5; day++ {
		require.Len(t, busy[day], 1, "day %d", day)
		assert.Equal(t, interval{start: 540, end: 720}, busy[day][0])
	}
	assert.Empty(t, busy[5])
	assert.Empty(t, busy[6])
}

func TestResolveBusyNoConstraints(t *testing.T) {
	start, err := parseDate("2025-01-06")
	require.NoError(t, err)
	busy := resolveBusy(nil, weekDates(start))
	for day := range busy {
		assert.Empty(t, busy[day])
	}
}
