package blockeddate

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

var (
	projectID = uuid.MustParse("6f1c7c1e-3b7a-4c7f-9d55-0d8c2c0a9b11")
	day       = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO blocked_dates (project_id,blocked_date,kind,range_start,range_end,reason)")).
		WithArgs(projectID, day, domain.ExceptionTimeRange, "14:00", "15:00", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	exc, err := NewRepository(db).Create(context.Background(), &domain.DateException{
		ProjectID:  projectID,
		Date:       day.Add(13 * time.Hour),
		Kind:       domain.ExceptionTimeRange,
		RangeStart: types.MustTimeString("14:00"),
		RangeEnd:   types.MustTimeString("15:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), exc.ID)
	assert.Equal(t, day, exc.Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE project_id = $1 AND blocked_date >= $2 AND blocked_date <= $3")).
		WithArgs(projectID, day, day).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "project_id", "blocked_date", "kind", "range_start", "range_end", "reason", "created_at",
		}).
			AddRow(int64(1), projectID.String(), day, "vacation", nil, nil, "Отпуск", now).
			AddRow(int64(2), projectID.String(), day, "time_range", "14:00:00", "15:00:00", nil, now))

	exceptions, err := NewRepository(db).ListByDate(context.Background(), projectID, day)
	require.NoError(t, err)
	require.Len(t, exceptions, 2)

	assert.Equal(t, domain.ExceptionVacation, exceptions[0].Kind)
	assert.True(t, exceptions[0].RangeStart.IsZero())
	assert.Equal(t, "14:00-15:00", exceptions[1].Range().String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM blocked_dates WHERE id = $1 AND project_id = $2")).
		WithArgs(int64(7), projectID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM blocked_dates").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), projectID, 7))
	assert.ErrorIs(t, repo.Delete(context.Background(), projectID, 8), ErrBlockedDateNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
