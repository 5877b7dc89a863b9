package models

// Goal is a learner objective competing for study time within a week.
// The scheduler only reads goals; completion state is owned by the caller.
type Goal struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date,omitempty"`
	Completed   bool   `json:"completed"`
}

// GoalAllocation summarises how much of the week one goal received.
type GoalAllocation struct {
	GoalID   string `json:"goal_id"`
	Sessions int    `json:"sessions"`
	Minutes  int    `json:"minutes"`
}
