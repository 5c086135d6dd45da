package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/faculty-rota-api/internal/models"
)

func TestWeekRepositoryListByYear(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWeekRepository(db)

	start := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "year", "week_number", "label", "start_date", "end_date", "week_type", "point_cost_off", "point_reward_work", "min_staff_required"}).
		AddRow("W01-2026", 2026, 1, "Week 1 (Jan 5)", start, start.AddDate(0, 0, 6), models.WeekTypeRegular, 5, 0, 5).
		AddRow("W02-2026", 2026, 2, "Week 2 (Jan 12)", start.AddDate(0, 0, 7), start.AddDate(0, 0, 13), models.WeekTypeRegular, 5, 0, 5)

	mock.ExpectQuery("SELECT .+ FROM service_weeks WHERE year = \\$1 ORDER BY week_number").
		WithArgs(2026).
		WillReturnRows(rows)

	weeks, err := repo.ListByYear(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, weeks, 2)
	assert.Equal(t, "W01-2026", weeks[0].ID)
	assert.Equal(t, 2, weeks[1].WeekNumber)
}

func TestWeekRepositoryExistsForYear(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWeekRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM service_weeks WHERE year = $1")).
		WithArgs(2026).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(52))

	exists, err := repo.ExistsForYear(context.Background(), 2026)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWeekRepositoryBulkCreateCommits(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWeekRepository(db)

	weeks := []models.ServiceWeek{
		{ID: "W01-2026", Year: 2026, WeekNumber: 1, Label: "Week 1 (Jan 5)", WeekType: models.WeekTypeRegular, PointCostOff: 5, MinStaffRequired: 5},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO service_weeks").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.BulkCreate(context.Background(), weeks))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWeekRepositoryDeleteByYearCascades(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWeekRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM service_week_assignments WHERE week_id IN").
		WithArgs(2026).
		WillReturnResult(sqlmock.NewResult(0, 10))
	mock.ExpectExec("DELETE FROM unavailability_requests WHERE week_id IN").
		WithArgs(2026).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM service_weeks WHERE year = \\$1").
		WithArgs(2026).
		WillReturnResult(sqlmock.NewResult(0, 52))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteByYear(context.Background(), 2026))
	require.NoError(t, mock.ExpectationsWereMet())
}
