package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/pkg/logger"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

type stubSettings struct {
	settings *domain.BookingSettings
	err      error
}

func (s *stubSettings) Get(_ context.Context, projectID uuid.UUID) (*domain.BookingSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.settings == nil {
		return domain.DefaultBookingSettings(projectID), nil
	}
	return s.settings, nil
}

type stubBlockedDates struct {
	items []*domain.DateException
}

func (s *stubBlockedDates) ListByDate(_ context.Context, _ uuid.UUID, date time.Time) ([]*domain.DateException, error) {
	result := make([]*domain.DateException, 0)
	for _, e := range s.items {
		if domain.SameDate(e.Date, date) {
			result = append(result, e)
		}
	}
	return result, nil
}

type stubAppointments struct {
	items []*domain.Appointment
	err   error
}

func (s *stubAppointments) ListActiveByDate(_ context.Context, _ uuid.UUID, date time.Time) ([]*domain.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := make([]*domain.Appointment, 0)
	for _, a := range s.items {
		if a.IsActive() && domain.SameDate(a.Date, date) {
			result = append(result, a)
		}
	}
	return result, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var (
	projectID = uuid.MustParse("0b8f7a3e-5d2c-4c61-8d0e-7f1b2a9c4e55")
	monday    = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
)

func enabledSettings() *domain.BookingSettings {
	s := domain.DefaultBookingSettings(projectID)
	s.IsEnabled = true
	return s
}

func ts(s string) types.TimeString {
	return types.MustTimeString(s)
}

func TestExecute(t *testing.T) {
	appointments := &stubAppointments{items: []*domain.Appointment{
		{Date: monday, StartTime: ts("10:00"), EndTime: ts("10:30"), Status: domain.StatusPending},
		{Date: monday, StartTime: ts("11:00"), EndTime: ts("11:30"), Status: domain.StatusCancelled},
	}}
	blocked := &stubBlockedDates{items: []*domain.DateException{
		{Date: monday, Kind: domain.ExceptionTimeRange, RangeStart: ts("14:00"), RangeEnd: ts("15:00")},
	}}

	uc := NewUseCase(&stubSettings{settings: enabledSettings()}, blocked, appointments, logger.NewNop()).
		WithTimeProvider(fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)})

	resp, err := uc.Execute(context.Background(), &Request{ProjectID: projectID, Date: monday})
	require.NoError(t, err)

	// 18 слотов 09:00-17:30, минус 10:00 (запись) и 14:00, 14:30 (исключение)
	assert.Len(t, resp.Slots, 15)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, domain.DefaultFormFields(), resp.FormFields)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, "10:00", slot.String())
		assert.NotEqual(t, "14:00", slot.String())
		assert.NotEqual(t, "14:30", slot.String())
	}
	assert.Equal(t, "11:00", resp.Slots[3].String(), "cancelled appointment must not block")
}

func TestExecute_EmptyCases(t *testing.T) {
	clock := fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	tests := []struct {
		name     string
		settings *domain.BookingSettings
		date     time.Time
		blocked  []*domain.DateException
	}{
		{name: "unknown project uses disabled defaults", settings: nil, date: monday},
		{name: "weekend", settings: enabledSettings(), date: time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)},
		{name: "past date", settings: enabledSettings(), date: time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC)},
		{name: "beyond advance window", settings: enabledSettings(), date: time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)},
		{
			name:     "vacation",
			settings: enabledSettings(),
			date:     monday,
			blocked:  []*domain.DateException{{Date: monday, Kind: domain.ExceptionVacation}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&stubSettings{settings: tt.settings}, &stubBlockedDates{items: tt.blocked}, &stubAppointments{}, logger.NewNop()).
				WithTimeProvider(clock)

			resp, err := uc.Execute(context.Background(), &Request{ProjectID: projectID, Date: tt.date})
			require.NoError(t, err)
			assert.NotNil(t, resp.Slots)
			assert.Empty(t, resp.Slots)
			assert.NotEmpty(t, resp.FormFields)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	uc := NewUseCase(&stubSettings{}, &stubBlockedDates{}, &stubAppointments{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProjectID: projectID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	uc = NewUseCase(&stubSettings{err: errors.New("db down")}, &stubBlockedDates{}, &stubAppointments{}, logger.NewNop())
	_, err = uc.Execute(context.Background(), &Request{ProjectID: projectID, Date: monday})
	assert.ErrorIs(t, err, ErrInternal)

	uc = NewUseCase(&stubSettings{settings: enabledSettings()}, &stubBlockedDates{}, &stubAppointments{err: errors.New("db down")}, logger.NewNop())
	_, err = uc.Execute(context.Background(), &Request{ProjectID: projectID, Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
}
