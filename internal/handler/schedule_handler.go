package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/faculty-rota-api/internal/dto"
	appErrors "github.com/noah-isme/faculty-rota-api/pkg/errors"
	"github.com/noah-isme/faculty-rota-api/pkg/response"
)

type scheduleOrchestrator interface {
	Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	View(ctx context.Context, year int) (*dto.ScheduleViewResponse, error)
	Validate(ctx context.Context, year int) (*dto.ValidateScheduleResponse, error)
	ExportPDF(ctx context.Context, year int) ([]byte, string, error)
}

// ScheduleHandler exposes rota generation and read endpoints.
type ScheduleHandler struct {
	service     scheduleOrchestrator
	defaultYear int
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(svc scheduleOrchestrator, defaultYear int) *ScheduleHandler {
	return &ScheduleHandler{service: svc, defaultYear: defaultYear}
}

// Generate runs the assignment engine for a year.
// POST /schedule/generate
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	if req.Year == 0 {
		req.Year = h.defaultYear
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// View returns the week-by-week rota grid.
// GET /schedule?year=2026
func (h *ScheduleHandler) View(c *gin.Context) {
	year, err := h.yearParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.View(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Validate checks the stored schedule for constraint violations.
// GET /schedule/validate?year=2026
func (h *ScheduleHandler) Validate(c *gin.Context) {
	year, err := h.yearParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Validate(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Export streams the rota grid as a PDF attachment.
// GET /schedule/export.pdf?year=2026
func (h *ScheduleHandler) Export(c *gin.Context) {
	year, err := h.yearParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, filename, err := h.service.ExportPDF(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", payload)
}

func (h *ScheduleHandler) yearParam(c *gin.Context) (int, error) {
	raw := c.Query("year")
	if raw == "" {
		return h.defaultYear, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 2100 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "year must be a four digit year")
	}
	return year, nil
}
