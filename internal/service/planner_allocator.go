package service

import (
	"sort"
	"time"

	"github.com/studyplan-io/studyplan-api/internal/models"
)

// plannerGoal is a pending goal with its target date parsed.
type plannerGoal struct {
	goal   models.Goal
	due    time.Time
	hasDue bool
}

// rankGoals orders pending goals by urgency: dated goals due within the
// horizon come first (earliest due first, overdue clamped to today so every
// overdue goal ties at maximum urgency), then dated goals beyond the horizon,
// then undated goals. Ties keep input order so allocation is deterministic.
func rankGoals(goals []plannerGoal, today, horizonEnd time.Time) []plannerGoal {
	ranked := make([]plannerGoal, 0, len(goals))
	for _, g := range goals {
		if g.goal.Completed {
			continue
		}
		ranked = append(ranked, g)
	}

	bucket := func(g plannerGoal) int {
		switch {
		case !g.hasDue:
			return 2
		case g.due.After(horizonEnd):
			return 1
		default:
			return 0
		}
	}
	effectiveDue := func(g plannerGoal) time.Time {
		if g.due.Before(today) {
			return today
		}
		return g.due
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		bi, bj := bucket(ranked[i]), bucket(ranked[j])
		if bi != bj {
			return bi < bj
		}
		if bi == 2 {
			return false
		}
		return effectiveDue(ranked[i]).Before(effectiveDue(ranked[j]))
	})
	return ranked
}

// candidateSlot is one atomic, indivisible session-sized unit of free time.
type candidateSlot struct {
	day   int
	start int
	end   int
}

// carveSlots greedily packs back-to-back session blocks separated by breaks
// into the free intervals, walking days in week order and intervals in start
// order. An interval shorter than one session contributes nothing.
func carveSlots(free [daysPerWeek][]interval, sessionLen, breakLen int) []candidateSlot {
	var slots []candidateSlot
	for day := 0; day < daysPerWeek; day++ {
		for _, iv := range free[day] {
			for cursor := iv.start; cursor+sessionLen <= iv.end; cursor += sessionLen + breakLen {
				slots = append(slots, candidateSlot{day: day, start: cursor, end: cursor + sessionLen})
			}
		}
	}
	return slots
}

// assignedSlot pairs a candidate slot with the goal it serves.
type assignedSlot struct {
	slot   candidateSlot
	goalID string
}

// allocate hands slots to goals in round-robin priority order, one slot per
// goal per pass, stopping once the allocated minutes reach the weekly target
// or the slot sequence is exhausted. The target is a soft floor: the last
// session may overshoot it by at most one session length.
func allocate(slots []candidateSlot, ranked []plannerGoal, sessionLen, targetMinutes int) ([]assignedSlot, int) {
	if len(ranked) == 0 {
		return nil, 0
	}
	var assigned []assignedSlot
	allocated := 0
	for i, slot := range slots {
		if allocated >= targetMinutes {
			break
		}
		assigned = append(assigned, assignedSlot{slot: slot, goalID: ranked[i%len(ranked)].goal.ID})
		allocated += sessionLen
	}
	return assigned, allocated
}
