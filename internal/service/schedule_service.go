package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/faculty-rota-api/internal/dto"
	"github.com/noah-isme/faculty-rota-api/internal/models"
	"github.com/noah-isme/faculty-rota-api/internal/scheduler"
	appErrors "github.com/noah-isme/faculty-rota-api/pkg/errors"
	"github.com/noah-isme/faculty-rota-api/pkg/export"
)

type facultyReader interface {
	ListActive(ctx context.Context) ([]models.Faculty, error)
	List(ctx context.Context, filter models.FacultyFilter) ([]models.Faculty, error)
}

type weekReader interface {
	ListByYear(ctx context.Context, year int) ([]models.ServiceWeek, error)
}

type requestReader interface {
	ListUnavailableByYear(ctx context.Context, year int) ([]models.UnavailabilityRequest, error)
}

type assignmentStore interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	ListByYear(ctx context.Context, year int) ([]models.ServiceWeekAssignment, error)
	BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, assignments []models.ServiceWeekAssignment) error
	DeleteByYearWithTx(ctx context.Context, tx *sqlx.Tx, year int) error
}

// ScheduleServiceConfig governs generation and view caching behaviour.
type ScheduleServiceConfig struct {
	ViewTTL       time.Duration
	ClearExisting bool
	DefaultYear   int
}

// ScheduleService orchestrates rota generation, persistence and read views.
type ScheduleService struct {
	faculty     facultyReader
	weeks       weekReader
	requests    requestReader
	assignments assignmentStore
	cache       *CacheService
	metrics     *MetricsService
	exporter    *export.PDFExporter
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         ScheduleServiceConfig
}

// NewScheduleService wires schedule dependencies.
func NewScheduleService(
	faculty facultyReader,
	weeks weekReader,
	requests requestReader,
	assignments assignmentStore,
	cache *CacheService,
	metrics *MetricsService,
	exporter *export.PDFExporter,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ScheduleServiceConfig,
) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if exporter == nil {
		exporter = export.NewPDFExporter()
	}
	if cfg.ViewTTL <= 0 {
		cfg.ViewTTL = 10 * time.Minute
	}
	return &ScheduleService{
		faculty:     faculty,
		weeks:       weeks,
		requests:    requests,
		assignments: assignments,
		cache:       cache,
		metrics:     metrics,
		exporter:    exporter,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
	}
}

func scheduleViewKey(year int) string {
	return fmt.Sprintf("schedule:view:%d", year)
}

// Generate runs the assignment engine for one year and persists the result.
func (s *ScheduleService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule generation payload")
	}

	qStart := time.Now()
	roster, err := s.faculty.ListActive(ctx)
	s.metrics.ObserveDBQuery("list_active_faculty", time.Since(qStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty roster")
	}
	if len(roster) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptyRoster, "")
	}

	qStart = time.Now()
	weekModels, err := s.weeks.ListByYear(ctx, req.Year)
	s.metrics.ObserveDBQuery("list_weeks", time.Since(qStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load service weeks")
	}
	if len(weekModels) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoWeeks, fmt.Sprintf("no service weeks configured for %d", req.Year))
	}

	qStart = time.Now()
	requests, err := s.requests.ListUnavailableByYear(ctx, req.Year)
	s.metrics.ObserveDBQuery("list_unavailability", time.Since(qStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load unavailability requests")
	}

	weeks, refByID := toSchedulerWeeks(weekModels)
	unavailable := scheduler.UnavailabilityIndex{}
	for _, r := range requests {
		ref, ok := refByID[r.WeekID]
		if !ok {
			continue
		}
		unavailable.Add(ref, r.FacultyID)
	}

	opts := scheduler.Options{}
	if req.Seed != nil {
		opts.Rand = rand.New(rand.NewSource(*req.Seed))
	}

	start := time.Now()
	result := scheduler.Generate(toProfiles(roster), weeks, unavailable, opts)
	if s.metrics != nil {
		s.metrics.ObserveScheduleRun(time.Since(start), len(result.Assignments), len(result.StaffingIssues), result.BackToBackPrevented)
	}

	records := make([]models.ServiceWeekAssignment, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		records = append(records, models.ServiceWeekAssignment{
			FacultyID:   a.FacultyID,
			WeekID:      a.Week.ID(),
			ServiceType: string(a.Service),
		})
	}

	clearExisting := s.cfg.ClearExisting
	if req.ClearExisting != nil {
		clearExisting = *req.ClearExisting
	}

	tx, err := s.assignments.BeginTx(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin schedule transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if clearExisting {
		qStart = time.Now()
		err = s.assignments.DeleteByYearWithTx(ctx, tx, req.Year)
		s.metrics.ObserveDBQuery("delete_assignments", time.Since(qStart))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear existing assignments")
		}
	}
	qStart = time.Now()
	err = s.assignments.BulkCreateWithTx(ctx, tx, records)
	s.metrics.ObserveDBQuery("insert_assignments", time.Since(qStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist assignments")
	}
	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit schedule transaction")
	}

	if s.cache != nil {
		if cacheErr := s.cache.Invalidate(ctx, fmt.Sprintf("schedule:*:%d", req.Year)); cacheErr != nil {
			s.logger.Warn("schedule cache invalidation failed", zap.Int("year", req.Year), zap.Error(cacheErr))
		}
	}

	s.logger.Info("schedule generated",
		zap.Int("year", req.Year),
		zap.Int("assignments", len(records)),
		zap.Int("staffing_issues", len(result.StaffingIssues)),
		zap.Int("back_to_back_prevented", result.BackToBackPrevented),
	)

	return &dto.GenerateScheduleResponse{
		Year:                req.Year,
		TotalWeeks:          result.TotalWeeks,
		AssignmentsCreated:  len(records),
		ServiceTotals:       result.ServiceTotals,
		StaffingIssues:      result.StaffingIssues,
		CapacityIssues:      result.CapacityIssues,
		BackToBackPrevented: result.BackToBackPrevented,
	}, nil
}

// View returns the week-by-week rota grid for a year, cache-aside.
func (s *ScheduleService) View(ctx context.Context, year int) (*dto.ScheduleViewResponse, error) {
	key := scheduleViewKey(year)
	if s.cache != nil {
		var cached dto.ScheduleViewResponse
		if hit, _ := s.cache.Get(ctx, key, &cached); hit {
			return &cached, nil
		}
	}

	qStart := time.Now()
	weekModels, err := s.weeks.ListByYear(ctx, year)
	s.metrics.ObserveDBQuery("list_weeks", time.Since(qStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load service weeks")
	}
	if len(weekModels) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoWeeks, fmt.Sprintf("no service weeks configured for %d", year))
	}

	assignments, names, err := s.loadAssignments(ctx, year, weekModels)
	if err != nil {
		return nil, err
	}

	weeks, _ := toSchedulerWeeks(weekModels)
	views := scheduler.BuildView(weeks, assignments, names)
	resp := &dto.ScheduleViewResponse{
		Year:          year,
		TotalWeeks:    len(views),
		CompleteWeeks: scheduler.CompleteWeeks(views),
		Weeks:         views,
	}

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, key, resp, s.cfg.ViewTTL); cacheErr != nil {
			s.logger.Warn("schedule view cache set failed", zap.Int("year", year), zap.Error(cacheErr))
		}
	}
	return resp, nil
}

// Validate checks the stored schedule for back-to-back violations.
func (s *ScheduleService) Validate(ctx context.Context, year int) (*dto.ValidateScheduleResponse, error) {
	qStart := time.Now()
	weekModels, err := s.weeks.ListByYear(ctx, year)
	s.metrics.ObserveDBQuery("list_weeks", time.Since(qStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load service weeks")
	}

	assignments, _, err := s.loadAssignments(ctx, year, weekModels)
	if err != nil {
		return nil, err
	}

	violations := scheduler.Validate(assignments)
	return &dto.ValidateScheduleResponse{
		Year:       year,
		Valid:      len(violations) == 0,
		Violations: violations,
	}, nil
}

// ExportPDF renders the rota grid as a landscape PDF document.
func (s *ScheduleService) ExportPDF(ctx context.Context, year int) ([]byte, string, error) {
	view, err := s.View(ctx, year)
	if err != nil {
		return nil, "", err
	}

	headers := []string{"Week"}
	for _, svc := range scheduler.Services() {
		headers = append(headers, string(svc))
	}

	rows := make([]map[string]string, 0, len(view.Weeks))
	for _, week := range view.Weeks {
		row := map[string]string{"Week": week.Label}
		for _, svc := range scheduler.Services() {
			var names []string
			for _, ref := range week.Assignments[svc] {
				names = append(names, ref.FacultyName)
			}
			row[string(svc)] = strings.Join(names, ", ")
		}
		rows = append(rows, row)
	}

	payload, err := s.exporter.Render(export.Dataset{Headers: headers, Rows: rows}, fmt.Sprintf("Inpatient Rota %d", year))
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render rota pdf")
	}
	return payload, fmt.Sprintf("rota-%d.pdf", year), nil
}

func (s *ScheduleService) loadAssignments(ctx context.Context, year int, weekModels []models.ServiceWeek) ([]scheduler.Assignment, map[string]string, error) {
	qStart := time.Now()
	records, err := s.assignments.ListByYear(ctx, year)
	s.metrics.ObserveDBQuery("list_assignments", time.Since(qStart))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}

	_, refByID := toSchedulerWeeks(weekModels)
	assignments := make([]scheduler.Assignment, 0, len(records))
	for _, rec := range records {
		ref, ok := refByID[rec.WeekID]
		if !ok {
			s.logger.Warn("assignment references unknown week", zap.String("week_id", rec.WeekID))
			continue
		}
		svc, parseErr := scheduler.ParseService(rec.ServiceType)
		if parseErr != nil {
			s.logger.Warn("assignment has unknown service type", zap.String("service_type", rec.ServiceType))
			continue
		}
		assignments = append(assignments, scheduler.Assignment{
			FacultyID: rec.FacultyID,
			Week:      ref,
			Service:   svc,
		})
	}

	qStart = time.Now()
	all, err := s.faculty.List(ctx, models.FacultyFilter{})
	s.metrics.ObserveDBQuery("list_faculty", time.Since(qStart))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty names")
	}
	names := make(map[string]string, len(all))
	for _, f := range all {
		names[f.ID] = f.FullName
	}
	return assignments, names, nil
}

func toSchedulerWeeks(weekModels []models.ServiceWeek) ([]scheduler.Week, map[string]scheduler.WeekRef) {
	weeks := make([]scheduler.Week, 0, len(weekModels))
	refByID := make(map[string]scheduler.WeekRef, len(weekModels))
	for _, w := range weekModels {
		ref := scheduler.WeekRef{Year: w.Year, Number: w.WeekNumber}
		refByID[w.ID] = ref
		weeks = append(weeks, scheduler.Week{
			Ref:              ref,
			Label:            w.Label,
			Type:             w.WeekType,
			MinStaffRequired: w.MinStaffRequired,
		})
	}
	return weeks, refByID
}

func toProfiles(roster []models.Faculty) []scheduler.FacultyProfile {
	profiles := make([]scheduler.FacultyProfile, 0, len(roster))
	for _, f := range roster {
		profiles = append(profiles, scheduler.FacultyProfile{
			ID:               f.ID,
			Name:             f.FullName,
			MICUTarget:       f.MICUWeeks,
			AppICUTarget:     f.AppICUWeeks,
			ProceduresTarget: f.ProcedureWeeks,
			ConsultsTarget:   f.ConsultWeeks,
		})
	}
	return profiles
}
