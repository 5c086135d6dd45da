package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/faculty-rota-api/internal/dto"
	appErrors "github.com/noah-isme/faculty-rota-api/pkg/errors"
)

type fakeScheduleSrv struct {
	generateResp *dto.GenerateScheduleResponse
	generateErr  error
	lastGenerate dto.GenerateScheduleRequest
	viewResp     *dto.ScheduleViewResponse
	viewErr      error
	lastYear     int
	validateResp *dto.ValidateScheduleResponse
	pdf          []byte
	pdfName      string
}

func (f *fakeScheduleSrv) Generate(_ context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	f.lastGenerate = req
	return f.generateResp, f.generateErr
}

func (f *fakeScheduleSrv) View(_ context.Context, year int) (*dto.ScheduleViewResponse, error) {
	f.lastYear = year
	return f.viewResp, f.viewErr
}

func (f *fakeScheduleSrv) Validate(_ context.Context, year int) (*dto.ValidateScheduleResponse, error) {
	f.lastYear = year
	return f.validateResp, nil
}

func (f *fakeScheduleSrv) ExportPDF(_ context.Context, year int) ([]byte, string, error) {
	f.lastYear = year
	return f.pdf, f.pdfName, nil
}

func TestScheduleHandlerGenerateDefaultsYear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeScheduleSrv{generateResp: &dto.GenerateScheduleResponse{Year: 2026}}
	handler := NewScheduleHandler(srv, 2026)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedule/generate", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Generate(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2026, srv.lastGenerate.Year)
}

func TestScheduleHandlerGenerateBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewScheduleHandler(&fakeScheduleSrv{}, 2026)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedule/generate", strings.NewReader(`{"year":"next"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Generate(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleHandlerGenerateServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeScheduleSrv{generateErr: appErrors.ErrNoWeeks}
	handler := NewScheduleHandler(srv, 2026)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedule/generate", strings.NewReader(`{"year":2026}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Generate(c)

	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestScheduleHandlerViewParsesYear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeScheduleSrv{viewResp: &dto.ScheduleViewResponse{Year: 2027}}
	handler := NewScheduleHandler(srv, 2026)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedule?year=2027", nil)

	handler.View(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2027, srv.lastYear)

	var envelope struct {
		Data dto.ScheduleViewResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 2027, envelope.Data.Year)
}

func TestScheduleHandlerViewRejectsBadYear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewScheduleHandler(&fakeScheduleSrv{}, 2026)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedule?year=soon", nil)

	handler.View(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleHandlerValidate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeScheduleSrv{validateResp: &dto.ValidateScheduleResponse{Year: 2026, Valid: true}}
	handler := NewScheduleHandler(srv, 2026)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedule/validate", nil)

	handler.Validate(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2026, srv.lastYear)
}

func TestScheduleHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeScheduleSrv{pdf: []byte("%PDF-1.3"), pdfName: "rota-2026.pdf"}
	handler := NewScheduleHandler(srv, 2026)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedule/export.pdf", nil)

	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "rota-2026.pdf")
}
