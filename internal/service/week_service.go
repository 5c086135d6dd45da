package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/faculty-rota-api/internal/dto"
	"github.com/noah-isme/faculty-rota-api/internal/models"
	appErrors "github.com/noah-isme/faculty-rota-api/pkg/errors"
)

type weekStore interface {
	ListByYear(ctx context.Context, year int) ([]models.ServiceWeek, error)
	ExistsForYear(ctx context.Context, year int) (bool, error)
	BulkCreate(ctx context.Context, weeks []models.ServiceWeek) error
	DeleteByYear(ctx context.Context, year int) error
}

// WeekServiceConfig governs annual week generation.
type WeekServiceConfig struct {
	WeeksPerYear     int
	MinStaffRequired int
}

// WeekService manages the annual service week calendar.
type WeekService struct {
	weeks     weekStore
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       WeekServiceConfig
}

// NewWeekService wires week calendar dependencies.
func NewWeekService(weeks weekStore, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg WeekServiceConfig) *WeekService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.WeeksPerYear <= 0 {
		cfg.WeeksPerYear = 52
	}
	if cfg.MinStaffRequired <= 0 {
		cfg.MinStaffRequired = 5
	}
	return &WeekService{weeks: weeks, cache: cache, metrics: metrics, validator: validate, logger: logger, cfg: cfg}
}

// Point values awarded or charged per week type in the availability
// marketplace. Holiday weeks cost more to skip and reward more to work.
var (
	pointCostOff = map[string]int{
		models.WeekTypeRegular:      5,
		models.WeekTypeSummer:       7,
		models.WeekTypeSpringBreak:  12,
		models.WeekTypeThanksgiving: 15,
		models.WeekTypeChristmas:    15,
	}
	pointRewardWork = map[string]int{
		models.WeekTypeRegular:      0,
		models.WeekTypeSummer:       5,
		models.WeekTypeSpringBreak:  15,
		models.WeekTypeThanksgiving: 20,
		models.WeekTypeChristmas:    20,
	}
)

// GenerateYear creates the full week calendar for one year.
func (s *WeekService) GenerateYear(ctx context.Context, req dto.GenerateWeeksRequest) (*dto.GenerateWeeksResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid week generation payload")
	}

	qStart := time.Now()
	exists, err := s.weeks.ExistsForYear(ctx, req.Year)
	s.metrics.ObserveDBQuery("weeks_exist", time.Since(qStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing weeks")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrWeeksExist, fmt.Sprintf("service weeks already exist for %d", req.Year))
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must be formatted YYYY-MM-DD")
	}

	weeks := s.buildYear(req.Year, start, req.SpringBreakWeek)
	qStart = time.Now()
	err = s.weeks.BulkCreate(ctx, weeks)
	s.metrics.ObserveDBQuery("insert_weeks", time.Since(qStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist weeks")
	}

	s.logger.Info("week calendar generated", zap.Int("year", req.Year), zap.Int("count", len(weeks)))
	return &dto.GenerateWeeksResponse{Year: req.Year, Count: len(weeks), Weeks: weeks}, nil
}

// List returns the week calendar for a year.
func (s *WeekService) List(ctx context.Context, year int) ([]models.ServiceWeek, error) {
	qStart := time.Now()
	weeks, err := s.weeks.ListByYear(ctx, year)
	s.metrics.ObserveDBQuery("list_weeks", time.Since(qStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list weeks")
	}
	if len(weeks) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoWeeks, fmt.Sprintf("no service weeks configured for %d", year))
	}
	return weeks, nil
}

// Clear removes the week calendar for a year along with its assignments
// and requests.
func (s *WeekService) Clear(ctx context.Context, year int) error {
	qStart := time.Now()
	exists, err := s.weeks.ExistsForYear(ctx, year)
	s.metrics.ObserveDBQuery("weeks_exist", time.Since(qStart))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing weeks")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNoWeeks, fmt.Sprintf("no service weeks configured for %d", year))
	}
	qStart = time.Now()
	err = s.weeks.DeleteByYear(ctx, year)
	s.metrics.ObserveDBQuery("delete_weeks", time.Since(qStart))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete weeks")
	}
	if s.cache != nil {
		if cacheErr := s.cache.Invalidate(ctx, fmt.Sprintf("schedule:*:%d", year)); cacheErr != nil {
			s.logger.Warn("schedule cache invalidation failed", zap.Int("year", year), zap.Error(cacheErr))
		}
	}
	s.logger.Info("week calendar cleared", zap.Int("year", year))
	return nil
}

func (s *WeekService) buildYear(year int, start time.Time, springBreakWeek int) []models.ServiceWeek {
	weeks := make([]models.ServiceWeek, 0, s.cfg.WeeksPerYear)
	for i := 0; i < s.cfg.WeeksPerYear; i++ {
		number := i + 1
		weekStart := start.AddDate(0, 0, i*7)
		weekEnd := weekStart.AddDate(0, 0, 6)
		weekType := classifyWeek(weekStart, weekEnd, number, springBreakWeek)
		weeks = append(weeks, models.ServiceWeek{
			ID:               fmt.Sprintf("W%02d-%d", number, year),
			Year:             year,
			WeekNumber:       number,
			Label:            fmt.Sprintf("Week %d (%s %d)", number, weekStart.Format("Jan"), weekStart.Day()),
			StartDate:        weekStart,
			EndDate:          weekEnd,
			WeekType:         weekType,
			PointCostOff:     pointCostOff[weekType],
			PointRewardWork:  pointRewardWork[weekType],
			MinStaffRequired: s.cfg.MinStaffRequired,
		})
	}
	return weeks
}

// classifyWeek resolves overlapping week types with christmas taking
// precedence over thanksgiving, then the configured spring break, then summer.
func classifyWeek(start, end time.Time, number, springBreakWeek int) string {
	christmas := time.Date(start.Year(), time.December, 25, 0, 0, 0, 0, time.UTC)
	newYear := time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	if containsDate(start, end, christmas) || containsDate(start, end, newYear) {
		return models.WeekTypeChristmas
	}
	if containsDate(start, end, thanksgivingDay(start.Year())) || containsDate(start, end, thanksgivingDay(end.Year())) {
		return models.WeekTypeThanksgiving
	}
	if springBreakWeek > 0 && number == springBreakWeek {
		return models.WeekTypeSpringBreak
	}
	switch start.Month() {
	case time.June, time.July, time.August:
		return models.WeekTypeSummer
	}
	return models.WeekTypeRegular
}

func containsDate(start, end, day time.Time) bool {
	return !day.Before(start) && !day.After(end)
}

// thanksgivingDay returns the fourth Thursday of November.
func thanksgivingDay(year int) time.Time {
	day := time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC)
	for day.Weekday() != time.Thursday {
		day = day.AddDate(0, 0, 1)
	}
	return day.AddDate(0, 0, 21)
}
