package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyplan-io/studyplan-api/internal/dto"
	"github.com/studyplan-io/studyplan-api/internal/service"
	appErrors "github.com/studyplan-io/studyplan-api/pkg/errors"
	"github.com/studyplan-io/studyplan-api/pkg/response"
)

type planExporter interface {
	Export(ctx context.Context, req dto.GeneratePlanRequest, format string) (*service.ExportArtifact, error)
}

// ExportHandler exposes plan downloads.
type ExportHandler struct {
	service planExporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export godoc
// @Summary Download the generated weekly plan
// @Description Computes the plan for the supplied snapshot and streams it as csv, pdf, or ics.
// @Tags Planner
// @Accept json
// @Produce text/csv
// @Param format query string false "Export format (csv, pdf, ics)" default(csv)
// @Param payload body dto.GeneratePlanRequest true "Plan generation snapshot"
// @Success 200 {file} binary
// @Router /plan/export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	var req dto.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid plan payload"))
		return
	}
	format := c.DefaultQuery("format", "csv")
	artifact, err := h.service.Export(c.Request.Context(), req, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.MIME, artifact.Content)
}
