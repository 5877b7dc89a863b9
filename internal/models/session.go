package models

// ScheduledSession is one indivisible study block placed by the planner.
// Date is YYYY-MM-DD, times are HH:MM, DayOfWeek uses 0=Sunday..6=Saturday
// and Sequence numbers sessions within their day starting at 1.
type ScheduledSession struct {
	GoalID    string `json:"goal_id"`
	Date      string `json:"date"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Sequence  int    `json:"sequence"`
}
