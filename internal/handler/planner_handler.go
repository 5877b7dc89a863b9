package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyplan-io/studyplan-api/internal/dto"
	"github.com/studyplan-io/studyplan-api/internal/models"
	"github.com/studyplan-io/studyplan-api/internal/service"
	appErrors "github.com/studyplan-io/studyplan-api/pkg/errors"
	"github.com/studyplan-io/studyplan-api/pkg/response"
)

type weeklyPlanner interface {
	ComputeSchedule(ctx context.Context, req dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error)
	ValidateConstraint(c models.Constraint) error
}

// PlannerHandler exposes the weekly plan generator endpoints.
type PlannerHandler struct {
	service weeklyPlanner
}

// NewPlannerHandler constructs the handler.
func NewPlannerHandler(svc *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{service: svc}
}

// Generate godoc
// @Summary Generate a weekly study plan
// @Description Computes a concrete weekly calendar of study sessions from the supplied goals, constraints, and preferences. Unallocated goals and allocated-vs-target minutes are part of the response, not errors.
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.GeneratePlanRequest true "Plan generation snapshot"
// @Success 200 {object} response.Envelope
// @Router /plan/generate [post]
func (h *PlannerHandler) Generate(c *gin.Context) {
	var req dto.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid plan payload"))
		return
	}
	result, err := h.service.ComputeSchedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ValidateConstraint godoc
// @Summary Validate a candidate constraint
// @Description Checks time ordering, weekly day sets, and the explicit date required by one-time constraints, so callers can reject bad input before scheduling.
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body models.Constraint true "Candidate constraint"
// @Success 200 {object} response.Envelope
// @Router /constraints/validate [post]
func (h *PlannerHandler) ValidateConstraint(c *gin.Context) {
	var candidate models.Constraint
	if err := c.ShouldBindJSON(&candidate); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid constraint payload"))
		return
	}
	if err := h.service.ValidateConstraint(candidate); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ValidateConstraintResponse{Valid: true})
}
