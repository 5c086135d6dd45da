package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/faculty-rota-api/internal/dto"
	"github.com/noah-isme/faculty-rota-api/internal/models"
	appErrors "github.com/noah-isme/faculty-rota-api/pkg/errors"
	"github.com/noah-isme/faculty-rota-api/pkg/response"
)

type weekManager interface {
	GenerateYear(ctx context.Context, req dto.GenerateWeeksRequest) (*dto.GenerateWeeksResponse, error)
	List(ctx context.Context, year int) ([]models.ServiceWeek, error)
	Clear(ctx context.Context, year int) error
}

// WeekHandler exposes week calendar endpoints.
type WeekHandler struct {
	service     weekManager
	defaultYear int
}

// NewWeekHandler constructs the handler.
func NewWeekHandler(svc weekManager, defaultYear int) *WeekHandler {
	return &WeekHandler{service: svc, defaultYear: defaultYear}
}

// Generate creates the annual week calendar.
// POST /weeks
func (h *WeekHandler) Generate(c *gin.Context) {
	var req dto.GenerateWeeksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid week generation payload"))
		return
	}
	result, err := h.service.GenerateYear(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List returns the week calendar for a year.
// GET /weeks?year=2026
func (h *WeekHandler) List(c *gin.Context) {
	year, err := h.yearParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	weeks, err := h.service.List(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, weeks, nil)
}

// Clear removes the week calendar for a year.
// DELETE /weeks?year=2026
func (h *WeekHandler) Clear(c *gin.Context) {
	year, err := h.yearParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Clear(c.Request.Context(), year); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *WeekHandler) yearParam(c *gin.Context) (int, error) {
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
