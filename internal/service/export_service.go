package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/studyplan-io/studyplan-api/internal/dto"
	"github.com/studyplan-io/studyplan-api/internal/models"
	appErrors "github.com/studyplan-io/studyplan-api/pkg/errors"
	"github.com/studyplan-io/studyplan-api/pkg/export"
)

type planComputer interface {
	ComputeSchedule(ctx context.Context, req dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error)
}

// ExportArtifact is a rendered plan ready for download.
type ExportArtifact struct {
	Content  []byte
	MIME     string
	Filename string
}

// ExportService renders computed weekly plans into downloadable formats.
type ExportService struct {
	planner planComputer
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	ics     *export.ICSExporter
	logger  *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(planner planComputer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		planner: planner,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		ics:     export.NewICSExporter(""),
		logger:  logger,
	}
}

// Export computes the plan for the snapshot and renders it in the requested
// format: csv, pdf, or ics.
func (s *ExportService) Export(ctx context.Context, req dto.GeneratePlanRequest, format string) (*ExportArtifact, error) {
	plan, err := s.planner.ComputeSchedule(ctx, req)
	if err != nil {
		return nil, err
	}

	descriptions := goalDescriptions(req.Goals)
	filename := fmt.Sprintf("studyplan-%s", plan.WeekStartDate)

	switch strings.ToLower(format) {
	case "csv":
		content, err := s.csv.Render(planDataset(plan, descriptions))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv plan")
		}
		return &ExportArtifact{Content: content, MIME: "text/csv", Filename: filename + ".csv"}, nil
	case "pdf":
		title := fmt.Sprintf("Study plan for week of %s", plan.WeekStartDate)
		content, err := s.pdf.Render(planDataset(plan, descriptions), title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf plan")
		}
		return &ExportArtifact{Content: content, MIME: "application/pdf", Filename: filename + ".pdf"}, nil
	case "ics":
		events, err := planEvents(plan, descriptions)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build calendar events")
		}
		content, err := s.ics.Render(events)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render ics plan")
		}
		return &ExportArtifact{Content: content, MIME: "text/calendar", Filename: filename + ".ics"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}
}

func goalDescriptions(goals []models.Goal) map[string]string {
	result := make(map[string]string, len(goals))
	for _, g := range goals {
		result[g.ID] = g.Description
	}
	return result
}

func goalLabel(descriptions map[string]string, goalID string) string {
	if label := descriptions[goalID]; label != "" {
		return label
	}
	return goalID
}

func planDataset(plan *dto.GeneratePlanResponse, descriptions map[string]string) export.Dataset {
	headers := []string{"Date", "Day", "Start", "End", "Goal"}
	rows := make([]map[string]string, 0, len(plan.Sessions))
	for _, session := range plan.Sessions {
		rows = append(rows, map[string]string{
			"Date":  session.Date,
			"Day":   weekdayNames[session.DayOfWeek],
			"Start": session.StartTime,
			"End":   session.EndTime,
			"Goal":  goalLabel(descriptions, session.GoalID),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func planEvents(plan *dto.GeneratePlanResponse, descriptions map[string]string) ([]export.CalendarEvent, error) {
	events := make([]export.CalendarEvent, 0, len(plan.Sessions))
	for i, session := range plan.Sessions {
		start, err := time.Parse(dateLayout+" "+clockLayout, session.Date+" "+session.StartTime)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i, err)
		}
		end, err := time.Parse(dateLayout+" "+clockLayout, session.Date+" "+session.EndTime)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i, err)
		}
		events = append(events, export.CalendarEvent{
			UID:         fmt.Sprintf("%s-%s-%d@studyplan", plan.PlanID, session.Date, session.Sequence),
			Summary:     fmt.Sprintf("Study: %s", goalLabel(descriptions, session.GoalID)),
			Description: fmt.Sprintf("Study session for goal %s", session.GoalID),
			Start:       start,
			End:         end,
		})
	}
	return events, nil
}
