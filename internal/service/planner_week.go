package service

import (
	"fmt"
	"time"

	"github.com/studyplan-io/studyplan-api/internal/models"
	appErrors "github.com/studyplan-io/studyplan-api/pkg/errors"
)

const (
	minutesPerDay = 24 * 60
	daysPerWeek   = 7
	dateLayout    = "2006-01-02"
	clockLayout   = "15:04"
)

var weekdayNames = [daysPerWeek]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// parseClock converts an HH:MM wall-clock string into minutes since midnight.
func parseClock(raw string) (int, error) {
	t, err := time.Parse(clockLayout, raw)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", raw)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// formatClock renders minutes since midnight back into HH:MM.
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// parseDate reads a YYYY-MM-DD calendar date. The planner is timezone-naive:
// dates compare as the learner's local wall-clock days.
func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return t, nil
}

// weekDates returns the seven days of the horizon anchored at start.
func weekDates(start time.Time) [daysPerWeek]time.Time {
	var days [daysPerWeek]time.Time
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// compiledConstraint is a constraint with its wire fields parsed once so the
// resolver never re-parses inside the expansion loop.
type compiledConstraint struct {
	id         string
	window     interval
	recurrence models.Recurrence
	days       map[int]bool
	date       time.Time
}

// compileConstraint parses and validates a raw constraint. It is the single
// source of truth behind the validate-constraint operation.
func compileConstraint(c models.Constraint) (compiledConstraint, error) {
	compiled := compiledConstraint{id: c.ID, recurrence: c.Recurrence}

	if !c.Recurrence.Valid() {
		return compiled, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("constraint %s: unknown recurrence %q", c.ID, c.Recurrence))
	}

	start, err := parseClock(c.StartTime)
	if err != nil {
		return compiled, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("constraint %s: %v", c.ID, err))
	}
	end, err := parseClock(c.EndTime)
	if err != nil {
		return compiled, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("constraint %s: %v", c.ID, err))
	}
	if start >= end {
		return compiled, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("constraint %s: start time must be before end time", c.ID))
	}
	compiled.window = interval{start: start, end: end}

	switch c.Recurrence {
	case models.RecurrenceWeekly:
		if len(c.DaysOfWeek) == 0 {
			return compiled, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("constraint %s: weekly recurrence requires at least one day", c.ID))
		}
		compiled.days = make(map[int]bool, len(c.DaysOfWeek))
		for _, day := range c.DaysOfWeek {
			if day < 0 || day > 6 {
				return compiled, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("constraint %s: day index %d out of range 0-6", c.ID, day))
			}
			compiled.days[day] = true
		}
	case models.RecurrenceOnce:
		if c.Date == "" {
			return compiled, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("constraint %s: one-time recurrence requires an explicit date", c.ID))
		}
		date, err := parseDate(c.Date)
		if err != nil {
			return compiled, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("constraint %s: %v", c.ID, err))
		}
		compiled.date = date
	}

	return compiled, nil
}

// occursOn reports whether the constraint blocks time on the given date.
func (cc compiledConstraint) occursOn(date time.Time) bool {
	switch cc.recurrence {
	case models.RecurrenceDaily:
		return true
	case models.RecurrenceWeekdays:
		wd := date.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case models.RecurrenceWeekends:
		wd := date.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case models.RecurrenceWeekly:
		return cc.days[int(date.Weekday())]
	case models.RecurrenceOnce:
		return cc.date.Equal(date)
	}
	return false
}
