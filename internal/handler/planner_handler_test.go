package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyplan-io/studyplan-api/internal/dto"
	"github.com/studyplan-io/studyplan-api/internal/models"
	appErrors "github.com/studyplan-io/studyplan-api/pkg/errors"
	"github.com/studyplan-io/studyplan-api/pkg/response"
)

type stubPlanner struct {
	plan        *dto.GeneratePlanResponse
	planErr     error
	validateErr error
	gotRequest  dto.GeneratePlanRequest
}

func (s *stubPlanner) ComputeSchedule(ctx context.Context, req dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error) {
	s.gotRequest = req
	return s.plan, s.planErr
}

func (s *stubPlanner) ValidateConstraint(c models.Constraint) error {
	return s.validateErr
}

func performJSON(t *testing.T, h gin.HandlerFunc, method, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := new(bytes.Buffer)
	if payload != nil {
		require.NoError(t, json.NewEncoder(body).Encode(payload))
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	h(c)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestPlannerHandlerGenerate(t *testing.T) {
	stub := &stubPlanner{plan: &dto.GeneratePlanResponse{
		PlanID:           "plan-123",
		WeekStartDate:    "2025-01-06",
		AllocatedMinutes: 600,
		TargetMinutes:    600,
	}}
	h := &PlannerHandler{service: stub}

	payload := dto.GeneratePlanRequest{
		Goals:             []models.Goal{{ID: "g1"}},
		Preferences:       models.StudyPreferences{SessionLength: 60, BreakLength: 10, StartTime: "08:00", EndTime: "20:00"},
		WeeklyHoursTarget: 10,
		WeekStartDate:     "2025-01-06",
		Today:             "2025-01-06",
	}
	w := performJSON(t, h.Generate, http.MethodPost, "/plan/generate", payload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-01-06", stub.gotRequest.WeekStartDate)

	envelope := decodeEnvelope(t, w)
	require.Nil(t, envelope.Error)
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "plan-123", data["plan_id"])
	assert.Equal(t, float64(600), data["allocated_minutes"])
}

func TestPlannerHandlerGenerateMalformedBody(t *testing.T) {
	h := &PlannerHandler{service: &stubPlanner{}}

	gin.SetMode(gin.TestMode)
	req := httptest.NewRequest(http.MethodPost, "/plan/generate", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, envelope.Error.Code)
}

func TestPlannerHandlerGenerateServiceError(t *testing.T) {
	stub := &stubPlanner{planErr: appErrors.Clone(appErrors.ErrValidation, "weekly hours target out of range")}
	h := &PlannerHandler{service: stub}

	w := performJSON(t, h.Generate, http.MethodPost, "/plan/generate", dto.GeneratePlanRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "weekly hours target out of range", envelope.Error.Message)
}

func TestPlannerHandlerValidateConstraint(t *testing.T) {
	h := &PlannerHandler{service: &stubPlanner{}}

	payload := models.Constraint{ID: "c1", StartTime: "09:00", EndTime: "10:00", Recurrence: models.RecurrenceDaily}
	w := performJSON(t, h.ValidateConstraint, http.MethodPost, "/constraints/validate", payload)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])
}

func TestPlannerHandlerValidateConstraintRejected(t *testing.T) {
	stub := &stubPlanner{validateErr: appErrors.Clone(appErrors.ErrValidation, "constraint start time must be before end time")}
	h := &PlannerHandler{service: stub}

	payload := models.Constraint{ID: "c1", StartTime: "10:00", EndTime: "10:00", Recurrence: models.RecurrenceDaily}
	w := performJSON(t, h.ValidateConstraint, http.MethodPost, "/constraints/validate", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, envelope.Error.Code)
}
