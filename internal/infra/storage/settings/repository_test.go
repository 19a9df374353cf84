package settings

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
	"github.com/m04kA/SMC-SiteBooking/pkg/ptr"
)

var projectID = uuid.MustParse("6f1c7c1e-3b7a-4c7f-9d55-0d8c2c0a9b11")

func TestRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	schedule := `{"1":{"enabled":true,"start":"09:00","end":"18:00","breaks":[{"start":"12:00","end":"13:00"}]},"0":{"enabled":false,"start":"09:00","end":"18:00","breaks":[]}}`

	mock.ExpectQuery(regexp.QuoteMeta("SELECT project_id, is_enabled, slot_duration_minutes")).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{
			"project_id", "is_enabled", "slot_duration_minutes", "buffer_minutes", "max_advance_days",
			"timezone", "weekly_schedule", "consent_required", "consent_text", "created_at", "updated_at",
		}).AddRow(projectID.String(), true, 45, 15, 60, "Europe/Moscow", []byte(schedule), true, "Согласен", now, now))

	s, err := repo.Get(context.Background(), projectID)
	require.NoError(t, err)

	assert.True(t, s.IsEnabled)
	assert.Equal(t, 45, s.SlotDurationMinutes)
	assert.Equal(t, 15, s.BufferMinutes)
	assert.Equal(t, 60, s.MaxAdvanceDays)
	assert.Equal(t, "Europe/Moscow", s.Timezone)
	assert.Equal(t, ptr.Ptr("Согласен"), s.ConsentText)
	require.Contains(t, s.WeeklySchedule, time.Monday)
	assert.Equal(t, "12:00-13:00", s.WeeklySchedule[time.Monday].Breaks[0].String())
	assert.False(t, s.WeeklySchedule[time.Sunday].Enabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"project_id"}))

	_, err = NewRepository(db).Get(context.Background(), projectID)
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}

func TestRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := domain.DefaultBookingSettings(projectID)
	s.IsEnabled = true
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO booking_settings .+ ON CONFLICT \(project_id\) DO UPDATE SET`).
		WithArgs(projectID, true, 30, 0, 30, "UTC", sqlmock.AnyArg(), false, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	saved, err := NewRepository(db).Upsert(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, now, saved.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
