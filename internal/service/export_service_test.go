package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyplan-io/studyplan-api/internal/dto"
	"github.com/studyplan-io/studyplan-api/internal/models"
	appErrors "github.com/studyplan-io/studyplan-api/pkg/errors"
)

type stubPlanComputer struct {
	plan *dto.GeneratePlanResponse
	err  error
}

func (s *stubPlanComputer) ComputeSchedule(ctx context.Context, req dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error) {
	return s.plan, s.err
}

func exportFixture() (*ExportService, dto.GeneratePlanRequest) {
	plan := &dto.GeneratePlanResponse{
		PlanID:        "plan-123",
		WeekStartDate: "2025-01-06",
		Sessions: []models.ScheduledSession{
			{GoalID: "g1", Date: "2025-01-06", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00", Sequence: 1},
			{GoalID: "g2", Date: "2025-01-06", DayOfWeek: 1, StartTime: "09:10", EndTime: "10:10", Sequence: 2},
		},
	}
	req := dto.GeneratePlanRequest{
		Goals: []models.Goal{
			{ID: "g1", Description: "Linear algebra"},
			{ID: "g2"},
		},
	}
	return NewExportService(&stubPlanComputer{plan: plan}, nil), req
}

func TestExportCSV(t *testing.T) {
	svc, req := exportFixture()

	artifact, err := svc.Export(context.Background(), req, "csv")
	require.NoError(t, err)

	assert.Equal(t, "text/csv", artifact.MIME)
	assert.Equal(t, "studyplan-2025-01-06.csv", artifact.Filename)

	lines := strings.Split(strings.TrimSpace(string(artifact.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Day,Start,End,Goal", strings.TrimSpace(lines[0]))
	assert.Equal(t, "2025-01-06,Monday,08:00,09:00,Linear algebra", strings.TrimSpace(lines[1]))
	// Goals without a description fall back to the id.
	assert.Equal(t, "2025-01-06,Monday,09:10,10:10,g2", strings.TrimSpace(lines[2]))
}

func TestExportPDF(t *testing.T) {
	svc, req := exportFixture()

	artifact, err := svc.Export(context.Background(), req, "pdf")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", artifact.MIME)
	assert.Equal(t, "studyplan-2025-01-06.pdf", artifact.Filename)
	assert.True(t, bytes.HasPrefix(artifact.Content, []byte("%PDF")))
}

func TestExportICS(t *testing.T) {
	svc, req := exportFixture()

	artifact, err := svc.Export(context.Background(), req, "ics")
	require.NoError(t, err)

	assert.Equal(t, "text/calendar", artifact.MIME)
	assert.Equal(t, "studyplan-2025-01-06.ics", artifact.Filename)

	body := string(artifact.Content)
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "BEGIN:VEVENT")
	assert.Contains(t, body, "Study: Linear algebra")
	assert.Contains(t, body, "plan-123-2025-01-06-1@studyplan")
	assert.Contains(t, body, "END:VCALENDAR")
}

func TestExportFormatIsCaseInsensitive(t *testing.T) {
	svc, req := exportFixture()

	artifact, err := svc.Export(context.Background(), req, "CSV")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", artifact.MIME)
}

func TestExportUnsupportedFormat(t *testing.T) {
	svc, req := exportFixture()

	_, err := svc.Export(context.Background(), req, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFormat.Code, appErrors.FromError(err).Code)
}

func TestExportPropagatesPlannerError(t *testing.T) {
	svc := NewExportService(&stubPlanComputer{err: appErrors.Clone(appErrors.ErrValidation, "bad snapshot")}, nil)

	_, err := svc.Export(context.Background(), dto.GeneratePlanRequest{}, "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
