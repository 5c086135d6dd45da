package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculty-rota-api/internal/models"
)

// RequestRepository provides persistence for availability requests.
type RequestRepository struct {
	db *sqlx.DB
}

// NewRequestRepository creates a new request repository.
func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// ListUnavailableByYear returns the unavailability requests against any week
// of the given year.
func (r *RequestRepository) ListUnavailableByYear(ctx context.Context, year int) ([]models.UnavailabilityRequest, error) {
	const query = `SELECT r.id, r.faculty_id, r.week_id, r.status, r.points_spent, r.points_earned, r.created_at FROM unavailability_requests r JOIN service_weeks w ON w.id = r.week_id WHERE w.year = $1 AND r.status = $2`
	var requests []models.UnavailabilityRequest
	if err := r.db.SelectContext(ctx, &requests, query, year, models.RequestStatusUnavailable); err != nil {
		return nil, fmt.Errorf("list unavailability requests for year %d: %w", year, err)
	}
	return requests, nil
}
