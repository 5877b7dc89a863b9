package dto

import "github.com/studyplan-io/studyplan-api/internal/models"

// GeneratePlanRequest carries one immutable snapshot of planner inputs.
// WeekStartDate anchors the seven-day horizon and Today drives overdue
// handling; both are YYYY-MM-DD in the learner's local calendar.
type GeneratePlanRequest struct {
	Goals             []models.Goal          `json:"goals" validate:"dive"`
	Constraints       []models.Constraint    `json:"constraints" validate:"omitempty,dive"`
	Preferences       models.StudyPreferences `json:"preferences" validate:"required"`
	WeeklyHoursTarget int                    `json:"weekly_hours_target" validate:"required,min=1,max=40"`
	WeekStartDate     string                 `json:"week_start_date" validate:"required"`
	Today             string                 `json:"today" validate:"required"`
}

// GeneratePlanResponse is the computed weekly plan. UnallocatedGoalIDs and
// the allocated-vs-target totals surface capacity shortfall as data rather
// than as an error.
type GeneratePlanResponse struct {
	PlanID             string                    `json:"plan_id"`
	WeekStartDate      string                    `json:"week_start_date"`
	Sessions           []models.ScheduledSession `json:"sessions"`
	Allocations        []models.GoalAllocation   `json:"allocations"`
	UnallocatedGoalIDs []string                  `json:"unallocated_goal_ids"`
	AllocatedMinutes   int                       `json:"allocated_minutes"`
	TargetMinutes      int                       `json:"target_minutes"`
	FreeMinutes        int                       `json:"free_minutes"`
}

// ValidateConstraintResponse confirms a candidate constraint is well formed.
type ValidateConstraintResponse struct {
	Valid bool `json:"valid"`
}
