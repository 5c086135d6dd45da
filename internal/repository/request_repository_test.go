package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/faculty-rota-api/internal/models"
)

func TestRequestRepositoryListUnavailableByYear(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "faculty_id", "week_id", "status", "points_spent", "points_earned", "created_at"}).
		AddRow("req-1", "fac-1", "W23-2026", models.RequestStatusUnavailable, 5, 0, now)

	mock.ExpectQuery("SELECT .+ FROM unavailability_requests r JOIN service_weeks w ON w.id = r.week_id WHERE w.year = \\$1 AND r.status = \\$2").
		WithArgs(2026, models.RequestStatusUnavailable).
		WillReturnRows(rows)

	requests, err := repo.ListUnavailableByYear(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "fac-1", requests[0].FacultyID)
	assert.Equal(t, "W23-2026", requests[0].WeekID)
}
