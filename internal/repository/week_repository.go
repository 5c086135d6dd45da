package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculty-rota-api/internal/models"
)

// WeekRepository provides persistence for service weeks.
type WeekRepository struct {
	db *sqlx.DB
}

// NewWeekRepository creates a new week repository.
func NewWeekRepository(db *sqlx.DB) *WeekRepository {
	return &WeekRepository{db: db}
}

const weekColumns = "id, year, week_number, label, start_date, end_date, week_type, point_cost_off, point_reward_work, min_staff_required"

// ListByYear returns the weeks of a year ordered by week number.
func (r *WeekRepository) ListByYear(ctx context.Context, year int) ([]models.ServiceWeek, error) {
	query := fmt.Sprintf("SELECT %s FROM service_weeks WHERE year = $1 ORDER BY week_number", weekColumns)
	var weeks []models.ServiceWeek
	if err := r.db.SelectContext(ctx, &weeks, query, year); err != nil {
		return nil, fmt.Errorf("list weeks for year %d: %w", year, err)
	}
	return weeks, nil
}

// ExistsForYear reports whether any weeks have been generated for the year.
func (r *WeekRepository) ExistsForYear(ctx context.Context, year int) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM service_weeks WHERE year = $1", year); err != nil {
		return false, fmt.Errorf("count weeks for year %d: %w", year, err)
	}
	return count > 0, nil
}

// BulkCreate inserts a full year of weeks within a transaction.
func (r *WeekRepository) BulkCreate(ctx context.Context, weeks []models.ServiceWeek) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk create weeks: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO service_weeks (id, year, week_number, label, start_date, end_date, week_type, point_cost_off, point_reward_work, min_staff_required) VALUES (:id, :year, :week_number, :label, :start_date, :end_date, :week_type, :point_cost_off, :point_reward_work, :min_staff_required)`
	for i := range weeks {
		if _, err = tx.NamedExecContext(ctx, query, &weeks[i]); err != nil {
			return fmt.Errorf("bulk insert week %s: %w", weeks[i].ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk create weeks: %w", err)
	}
	return nil
}

// DeleteByYear removes all weeks of a year along with dependent assignments
// and requests.
func (r *WeekRepository) DeleteByYear(ctx context.Context, year int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete weeks: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM service_week_assignments WHERE week_id IN (SELECT id FROM service_weeks WHERE year = $1)`, year); err != nil {
		return fmt.Errorf("delete assignments for year %d: %w", year, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM unavailability_requests WHERE week_id IN (SELECT id FROM service_weeks WHERE year = $1)`, year); err != nil {
		return fmt.Errorf("delete requests for year %d: %w", year, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM service_weeks WHERE year = $1`, year); err != nil {
		return fmt.Errorf("delete weeks for year %d: %w", year, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete weeks: %w", err)
	}
	return nil
}
