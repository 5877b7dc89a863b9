package models

// Recurrence enumerates how often a constraint repeats.
type Recurrence string

const (
	RecurrenceOnce     Recurrence = "once"
	RecurrenceDaily    Recurrence = "daily"
	RecurrenceWeekdays Recurrence = "weekdays"
	RecurrenceWeekends Recurrence = "weekends"
	RecurrenceWeekly   Recurrence = "weekly"
)

// Valid reports whether the recurrence is a known value.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceOnce, RecurrenceDaily, RecurrenceWeekdays, RecurrenceWeekends, RecurrenceWeekly:
		return true
	}
	return false
}

// Constraint is a recurring or one-time block of time during which the
// learner is unavailable. Times are wall-clock HH:MM strings at minute
// resolution; DaysOfWeek uses 0=Sunday..6=Saturday and is only meaningful
// for weekly recurrence. Date is required for once and ignored otherwise.
type Constraint struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	Recurrence Recurrence `json:"recurrence"`
	DaysOfWeek []int      `json:"days_of_week,omitempty"`
	Date       string     `json:"date,omitempty"`
	Color      string     `json:"color,omitempty"`
}
