package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculty-rota-api/internal/models"
)

// AssignmentRepository provides persistence for service week assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository creates a new assignment repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// BeginTx opens a transaction for multi-step schedule writes.
func (r *AssignmentRepository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin assignment tx: %w", err)
	}
	return tx, nil
}

// ListByYear returns assignments against any week of the given year.
func (r *AssignmentRepository) ListByYear(ctx context.Context, year int) ([]models.ServiceWeekAssignment, error) {
	const query = `SELECT a.id, a.faculty_id, a.week_id, a.service_type, a.imported, a.created_at FROM service_week_assignments a JOIN service_weeks w ON w.id = a.week_id WHERE w.year = $1 ORDER BY w.week_number, a.service_type`
	var assignments []models.ServiceWeekAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, year); err != nil {
		return nil, fmt.Errorf("list assignments for year %d: %w", year, err)
	}
	return assignments, nil
}

// BulkCreateWithTx inserts assignments using an existing transaction.
func (r *AssignmentRepository) BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, assignments []models.ServiceWeekAssignment) error {
	if tx == nil {
		return fmt.Errorf("nil transaction provided")
	}
	now := time.Now().UTC()
	for i := range assignments {
		payload := assignments[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}

		if _, err := tx.NamedExecContext(ctx, `INSERT INTO service_week_assignments (id, faculty_id, week_id, service_type, imported, created_at) VALUES (:id, :faculty_id, :week_id, :service_type, :imported, :created_at)`, &payload); err != nil {
			return fmt.Errorf("bulk insert assignment: %w", err)
		}
		assignments[i] = payload
	}
	return nil
}

// DeleteByYearWithTx removes generated assignments for a year using an
// existing transaction. Imported rows are preserved.
func (r *AssignmentRepository) DeleteByYearWithTx(ctx context.Context, tx *sqlx.Tx, year int) error {
	if tx == nil {
		return fmt.Errorf("nil transaction provided")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM service_week_assignments WHERE imported = FALSE AND week_id IN (SELECT id FROM service_weeks WHERE year = $1)`, year); err != nil {
		return fmt.Errorf("delete assignments for year %d: %w", year, err)
	}
	return nil
}
