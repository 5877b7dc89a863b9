package service

import (
	"sort"
	"time"
)

// interval is a half-open [start, end) span in minutes since midnight.
type interval struct {
	start int
	end   int
}

func (iv interval) length() int {
	return iv.end - iv.start
}

// mergeIntervals collapses overlapping or touching intervals into maximal
// disjoint runs ordered by start time. Independently authored constraints
// commonly overlap, and downstream subtraction assumes disjoint input.
func mergeIntervals(items []interval) []interval {
	if len(items) == 0 {
		return nil
	}
	sorted := make([]interval, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].start == sorted[j].start {
			return sorted[i].end < sorted[j].end
		}
		return sorted[i].start < sorted[j].start
	})

	merged := []interval{sorted[0]}
	for _, item := range sorted[1:] {
		last := &merged[len(merged)-1]
		if item.start <= last.end {
			if item.end > last.end {
				last.end = item.end
			}
			continue
		}
		merged = append(merged, item)
	}
	return merged
}

// subtractIntervals removes busy spans from the window, returning the ordered
// free intervals. Busy input must be disjoint and sorted; spans outside the
// window are ignored and partial overlaps are clipped.
func subtractIntervals(window interval, busy []interval) []interval {
	var free []interval
	cursor := window.start
	for _, b := range busy {
		if b.end <= cursor || b.start >= window.end {
			continue
		}
		if b.start > cursor {
			free = append(free, interval{start: cursor, end: b.start})
		}
		if b.end > cursor {
			cursor = b.end
		}
		if cursor >= window.end {
			return free
		}
	}
	if cursor < window.end {
		free = append(free, interval{start: cursor, end: window.end})
	}
	return free
}

// resolveBusy expands every constraint across the week and merges each day's
// occurrences into disjoint unavailable intervals.
func resolveBusy(constraints []compiledConstraint, days [daysPerWeek]time.Time) [daysPerWeek][]interval {
	var busy [daysPerWeek][]interval
	for i, date := range days {
		var occupied []interval
		for _, cc := range constraints {
			if cc.occursOn(date) {
				occupied = append(occupied, cc.window)
			}
		}
		busy[i] = mergeIntervals(occupied)
	}
	return busy
}

// extractFree subtracts each day's unavailable intervals from the preferred
// window. A fully blocked day yields an empty list, which is a valid state.
func extractFree(window interval, busy [daysPerWeek][]interval) [daysPerWeek][]interval {
	var free [daysPerWeek][]interval
	for i := range busy {
		free[i] = subtractIntervals(window, busy[i])
	}
	return free
}
