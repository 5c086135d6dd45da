package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/faculty-rota-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func facultyRows() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "email", "full_name", "micu_weeks", "app_icu_weeks", "procedure_weeks", "consult_weeks", "active", "created_at", "updated_at"}).
		AddRow("fac-1", "chen@example.edu", "Dr. Chen", 6, 2, 0, 4, true, now, now).
		AddRow("fac-2", nil, "Dr. Patel", 4, 0, 3, 2, true, now, now)
}

func TestFacultyRepositoryListActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, full_name, micu_weeks, app_icu_weeks, procedure_weeks, consult_weeks, active, created_at, updated_at FROM faculty WHERE active = TRUE ORDER BY full_name")).
		WillReturnRows(facultyRows())

	roster, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "Dr. Chen", roster[0].FullName)
	assert.Equal(t, 6, roster[0].MICUWeeks)
	assert.Nil(t, roster[1].Email)
}

func TestFacultyRepositoryListWithFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	active := true
	mock.ExpectQuery("SELECT .+ FROM faculty WHERE 1=1 AND active = \\$1 AND \\(LOWER\\(full_name\\) LIKE \\$2 OR LOWER\\(COALESCE\\(email, ''\\)\\) LIKE \\$2\\) ORDER BY full_name").
		WithArgs(true, "%chen%").
		WillReturnRows(facultyRows())

	roster, err := repo.List(context.Background(), models.FacultyFilter{Active: &active, Search: "Chen"})
	require.NoError(t, err)
	assert.Len(t, roster, 2)
}
