package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyplan-io/studyplan-api/internal/dto"
	"github.com/studyplan-io/studyplan-api/internal/models"
	appErrors "github.com/studyplan-io/studyplan-api/pkg/errors"
)

// planNamespace seeds deterministic plan identifiers: identical input
// snapshots always yield the same plan id.
var planNamespace = uuid.MustParse("9a6d7d3e-4c1b-4f75-9d20-6b20e1b3a0cd")

// PlannerService computes weekly study plans from caller-supplied snapshots.
// The pipeline itself is pure; the service only adds validation, caching and
// instrumentation around it.
type PlannerService struct {
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       PlannerServiceConfig
}

// PlannerServiceConfig governs planner behaviour.
type PlannerServiceConfig struct {
	CacheTTL       time.Duration
	MaxGoals       int
	MaxConstraints int
}

// NewPlannerService wires planner dependencies.
func NewPlannerService(cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg PlannerServiceConfig) *PlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.MaxGoals <= 0 {
		cfg.MaxGoals = 64
	}
	if cfg.MaxConstraints <= 0 {
		cfg.MaxConstraints = 128
	}
	return &PlannerService{
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// ComputeSchedule runs the scheduling pipeline: rank goals, resolve busy
// intervals, extract free capacity, then allocate sessions round-robin.
// It never mutates its input and fails only on malformed input; capacity
// shortfall is returned as data on the response.
func (s *PlannerService) ComputeSchedule(ctx context.Context, req dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid plan generation payload")
	}
	if len(req.Goals) > s.cfg.MaxGoals {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("goals exceed supported limit of %d", s.cfg.MaxGoals))
	}
	if len(req.Constraints) > s.cfg.MaxConstraints {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("constraints exceed supported limit of %d", s.cfg.MaxConstraints))
	}

	weekStart, err := parseDate(req.WeekStartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("week_start_date: %v", err))
	}
	today, err := parseDate(req.Today)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("today: %v", err))
	}

	window, err := preferredWindow(req.Preferences)
	if err != nil {
		return nil, err
	}

	compiled := make([]compiledConstraint, 0, len(req.Constraints))
	for _, c := range req.Constraints {
		cc, err := compileConstraint(c)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, cc)
	}

	goals, err := compileGoals(req.Goals)
	if err != nil {
		return nil, err
	}

	planID := uuid.NewSHA1(planNamespace, planDigest(req)).String()
	cacheKey := "plan:" + planID

	var cached dto.GeneratePlanResponse
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	started := time.Now()
	days := weekDates(weekStart)
	busy := resolveBusy(compiled, days)
	free := extractFree(window, busy)

	slots := carveSlots(free, req.Preferences.SessionLength, req.Preferences.BreakLength)
	ranked := rankGoals(goals, today, days[daysPerWeek-1])
	targetMinutes := req.WeeklyHoursTarget * 60
	assigned, allocated := allocate(slots, ranked, req.Preferences.SessionLength, targetMinutes)

	resp := buildPlanResponse(planID, req.WeekStartDate, days, assigned, ranked, req.Preferences.SessionLength)
	resp.AllocatedMinutes = allocated
	resp.TargetMinutes = targetMinutes
	resp.FreeMinutes = len(slots) * req.Preferences.SessionLength

	s.metrics.ObservePlanGeneration(time.Since(started), len(resp.Sessions), len(resp.UnallocatedGoalIDs))
	s.logger.Debug("plan generated",
		zap.String("plan_id", planID),
		zap.Int("sessions", len(resp.Sessions)),
		zap.Int("allocated_minutes", allocated),
		zap.Int("target_minutes", targetMinutes),
		zap.Int("unallocated_goals", len(resp.UnallocatedGoalIDs)),
	)

	_ = s.cache.Set(ctx, cacheKey, resp, s.cfg.CacheTTL)
	return resp, nil
}

// ValidateConstraint checks a candidate constraint before it ever reaches
// the allocator: time ordering, weekly day sets, and the explicit date that
// one-time constraints must carry.
func (s *PlannerService) ValidateConstraint(c models.Constraint) error {
	_, err := compileConstraint(c)
	return err
}

func preferredWindow(prefs models.StudyPreferences) (interval, error) {
	start, err := parseClock(prefs.StartTime)
	if err != nil {
		return interval{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("preferences: %v", err))
	}
	end, err := parseClock(prefs.EndTime)
	if err != nil {
		return interval{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("preferences: %v", err))
	}
	if start >= end {
		return interval{}, appErrors.Clone(appErrors.ErrValidation, "preferences: preferred start time must be before end time")
	}
	return interval{start: start, end: end}, nil
}

func compileGoals(goals []models.Goal) ([]plannerGoal, error) {
	compiled := make([]plannerGoal, 0, len(goals))
	for _, g := range goals {
		if g.ID == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "goal id is required")
		}
		pg := plannerGoal{goal: g}
		if g.TargetDate != "" {
			due, err := parseDate(g.TargetDate)
			if err != nil {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("goal %s: %v", g.ID, err))
			}
			pg.due = due
			pg.hasDue = true
		}
		compiled = append(compiled, pg)
	}
	return compiled, nil
}

// planDigest canonicalises the request for deterministic plan identity.
func planDigest(req dto.GeneratePlanRequest) []byte {
	payload, _ := json.Marshal(req)
	sum := sha256.Sum256(payload)
	return sum[:]
}

func buildPlanResponse(planID, weekStartDate string, days [daysPerWeek]time.Time, assigned []assignedSlot, ranked []plannerGoal, sessionLen int) *dto.GeneratePlanResponse {
	sessions := make([]models.ScheduledSession, 0, len(assigned))
	perDay := make(map[int]int, daysPerWeek)
	perGoal := make(map[string]int, len(ranked))
	for _, item := range assigned {
		perDay[item.slot.day]++
		perGoal[item.goalID]++
		date := days[item.slot.day]
		sessions = append(sessions, models.ScheduledSession{
			GoalID:    item.goalID,
			Date:      date.Format(dateLayout),
			DayOfWeek: int(date.Weekday()),
			StartTime: formatClock(item.slot.start),
			EndTime:   formatClock(item.slot.end),
			Sequence:  perDay[item.slot.day],
		})
	}

	allocations := make([]models.GoalAllocation, 0, len(ranked))
	unallocated := make([]string, 0)
	for _, g := range ranked {
		count := perGoal[g.goal.ID]
		allocations = append(allocations, models.GoalAllocation{
			GoalID:   g.goal.ID,
			Sessions: count,
			Minutes:  count * sessionLen,
		})
		if count == 0 {
			unallocated = append(unallocated, g.goal.ID)
		}
	}

	return &dto.GeneratePlanResponse{
		PlanID:             planID,
		WeekStartDate:      weekStartDate,
		Sessions:           sessions,
		Allocations:        allocations,
		UnallocatedGoalIDs: unallocated,
	}
}
