package models

// StudyPreferences describes the learner's session shape and daily window.
// SessionLength and BreakLength are minutes drawn from fixed sets; the
// window runs [StartTime, EndTime) in HH:MM wall-clock time.
type StudyPreferences struct {
	SessionLength int    `json:"session_length" validate:"required,oneof=25 45 60 90"`
	BreakLength   int    `json:"break_length" validate:"required,oneof=5 10 15"`
	StartTime     string `json:"start_time" validate:"required"`
	EndTime       string `json:"end_time" validate:"required"`
}
