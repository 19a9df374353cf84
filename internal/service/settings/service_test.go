package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-SiteBooking/internal/infra/storage/blockeddate"
	settingsRepo "github.com/m04kA/SMC-SiteBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SiteBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-SiteBooking/pkg/logger"
	"github.com/m04kA/SMC-SiteBooking/pkg/ptr"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

type fakeSettingsRepo struct {
	stored map[uuid.UUID]domain.BookingSettings
	err    error
}

func (f *fakeSettingsRepo) Get(_ context.Context, projectID uuid.UUID) (*domain.BookingSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.stored[projectID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return &s, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s *domain.BookingSettings) (*domain.BookingSettings, error) {
	if f.stored == nil {
		f.stored = make(map[uuid.UUID]domain.BookingSettings)
	}
	s.UpdatedAt = time.Now()
	copied := *s
	copied.FormFields = nil
	f.stored[s.ProjectID] = copied
	return s, nil
}

type fakeFormFieldRepo struct {
	fields   map[uuid.UUID][]domain.FormField
	replaced int
}

func (f *fakeFormFieldRepo) List(_ context.Context, projectID uuid.UUID) ([]domain.FormField, error) {
	return append([]domain.FormField(nil), f.fields[projectID]...), nil
}

func (f *fakeFormFieldRepo) ReplaceAll(_ context.Context, projectID uuid.UUID, fields []domain.FormField) error {
	if f.fields == nil {
		f.fields = make(map[uuid.UUID][]domain.FormField)
	}
	f.fields[projectID] = append([]domain.FormField(nil), fields...)
	f.replaced++
	return nil
}

type fakeBlockedDateRepo struct {
	nextID int64
	items  []*domain.DateException
}

func (f *fakeBlockedDateRepo) Create(_ context.Context, exc *domain.DateException) (*domain.DateException, error) {
	f.nextID++
	exc.ID = f.nextID
	f.items = append(f.items, exc)
	return exc, nil
}

func (f *fakeBlockedDateRepo) ListByPeriod(_ context.Context, projectID uuid.UUID, from, to *time.Time) ([]*domain.DateException, error) {
	result := make([]*domain.DateException, 0)
	for _, e := range f.items {
		if e.ProjectID != projectID {
			continue
		}
		if from != nil && e.Date.Before(*from) || to != nil && e.Date.After(*to) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (f *fakeBlockedDateRepo) Delete(_ context.Context, projectID uuid.UUID, id int64) error {
	for i, e := range f.items {
		if e.ID == id && e.ProjectID == projectID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return blockedDateRepo.ErrBlockedDateNotFound
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	service  *Service
	settings *fakeSettingsRepo
	fields   *fakeFormFieldRepo
	blocked  *fakeBlockedDateRepo
}

func newFixture() *fixture {
	f := &fixture{
		settings: &fakeSettingsRepo{},
		fields:   &fakeFormFieldRepo{},
		blocked:  &fakeBlockedDateRepo{},
	}
	f.service = NewService(f.settings, f.fields, f.blocked, passthroughTx{}, logger.NewNop())
	return f
}

var projectID = uuid.MustParse("6f1c7c1e-3b7a-4c7f-9d55-0d8c2c0a9b11")

func TestService_Get_Defaults(t *testing.T) {
	f := newFixture()

	s, err := f.service.Get(context.Background(), projectID)
	require.NoError(t, err)

	assert.False(t, s.IsEnabled)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, s.SlotDurationMinutes)
	assert.Equal(t, domain.DefaultFormFields(), s.FormFields)
	assert.True(t, s.WeeklySchedule[time.Monday].Enabled)
	assert.False(t, s.WeeklySchedule[time.Sunday].Enabled)
}

func TestService_Get_RepositoryError(t *testing.T) {
	f := newFixture()
	f.settings.err = errors.New("connection reset")

	_, err := f.service.Get(context.Background(), projectID)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_UpdateSettings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	schedule := domain.DefaultWeeklySchedule()
	monday := schedule[time.Monday]
	monday.Breaks = []domain.TimeRange{{Start: types.MustTimeString("12:00"), End: types.MustTimeString("13:00")}}
	schedule[time.Monday] = monday

	resp, err := f.service.UpdateSettings(ctx, projectID, &models.UpdateSettingsRequest{
		IsEnabled:       ptr.Ptr(true),
		BufferMinutes:   ptr.Ptr(15),
		Timezone:        ptr.Ptr("Europe/Moscow"),
		WeeklySchedule:  &schedule,
		ConsentRequired: ptr.Ptr(true),
		ConsentText:     ptr.Ptr("Я согласен на обработку персональных данных"),
	})
	require.NoError(t, err)

	assert.True(t, resp.IsEnabled)
	assert.Equal(t, 15, resp.BufferMinutes)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDurationMinutes)
	assert.NotNil(t, resp.UpdatedAt)

	// Частичное обновление не затирает остальные поля
	resp, err = f.service.UpdateSettings(ctx, projectID, &models.UpdateSettingsRequest{
		SlotDurationMinutes: ptr.Ptr(45),
		ConsentText:         ptr.Ptr("  "),
	})
	require.NoError(t, err)
	assert.Equal(t, 45, resp.SlotDurationMinutes)
	assert.Equal(t, 15, resp.BufferMinutes)
	assert.Equal(t, "Europe/Moscow", resp.Timezone)
	assert.Nil(t, resp.ConsentText)
	assert.Len(t, resp.WeeklySchedule[time.Monday].Breaks, 1)
}

func TestService_UpdateSettings_Validation(t *testing.T) {
	badSchedule := domain.DefaultWeeklySchedule()
	badSchedule[time.Tuesday] = domain.DaySchedule{
		Enabled: true,
		Start:   types.MustTimeString("10:00"),
		End:     types.MustTimeString("18:00"),
		Breaks:  []domain.TimeRange{{Start: types.MustTimeString("09:00"), End: types.MustTimeString("10:30")}},
	}

	tests := []struct {
		name string
		req  *models.UpdateSettingsRequest
	}{
		{name: "slot too short", req: &models.UpdateSettingsRequest{SlotDurationMinutes: ptr.Ptr(4)}},
		{name: "slot too long", req: &models.UpdateSettingsRequest{SlotDurationMinutes: ptr.Ptr(481)}},
		{name: "negative buffer", req: &models.UpdateSettingsRequest{BufferMinutes: ptr.Ptr(-1)}},
		{name: "zero advance days", req: &models.UpdateSettingsRequest{MaxAdvanceDays: ptr.Ptr(0)}},
		{name: "unknown timezone", req: &models.UpdateSettingsRequest{Timezone: ptr.Ptr("Nowhere/City")}},
		{name: "break outside window", req: &models.UpdateSettingsRequest{WeeklySchedule: &badSchedule}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.service.UpdateSettings(context.Background(), projectID, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.settings.stored)
		})
	}
}

func TestService_FormFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	fields, err := f.service.CreateFormField(ctx, projectID, &models.FormFieldRequest{
		ID:       "service",
		Type:     domain.FieldSelect,
		Label:    "Услуга",
		Required: true,
		Options:  []string{"Стрижка", "Окрашивание"},
	})
	require.NoError(t, err)
	require.Len(t, fields, 5)
	assert.Equal(t, "service", fields[4].ID)
	assert.Equal(t, 4, fields[4].Order)

	t.Run("duplicate id", func(t *testing.T) {
		_, err := f.service.CreateFormField(ctx, projectID, &models.FormFieldRequest{ID: "service", Type: domain.FieldText, Label: "X"})
		assert.ErrorIs(t, err, ErrFormFieldExists)
	})

	t.Run("system id is reserved", func(t *testing.T) {
		_, err := f.service.CreateFormField(ctx, projectID, &models.FormFieldRequest{ID: "email", Type: domain.FieldText, Label: "X"})
		assert.ErrorIs(t, err, ErrFormFieldExists)
	})

	t.Run("select without options", func(t *testing.T) {
		_, err := f.service.CreateFormField(ctx, projectID, &models.FormFieldRequest{ID: "extra", Type: domain.FieldSelect, Label: "X"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("reorder renumbers densely", func(t *testing.T) {
		fields, err := f.service.ReorderFormFields(ctx, projectID, &models.ReorderFormFieldsRequest{
			FieldIDs: []string{"service", "email", "name", "note", "phone"},
		})
		require.NoError(t, err)
		for i, field := range fields {
			assert.Equal(t, i, field.Order)
		}
		assert.Equal(t, "service", fields[0].ID)
		assert.Equal(t, "phone", fields[4].ID)
	})

	t.Run("reorder with missing id", func(t *testing.T) {
		_, err := f.service.ReorderFormFields(ctx, projectID, &models.ReorderFormFieldsRequest{FieldIDs: []string{"service", "email"}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("system field cannot be deleted", func(t *testing.T) {
		_, err := f.service.DeleteFormField(ctx, projectID, domain.FieldIDPhone)
		assert.ErrorIs(t, err, ErrSystemFieldLocked)
	})

	t.Run("system field cannot change type", func(t *testing.T) {
		_, err := f.service.UpdateFormField(ctx, projectID, domain.FieldIDPhone, &models.FormFieldRequest{Type: domain.FieldText, Label: "Телефон"})
		assert.ErrorIs(t, err, ErrSystemFieldLocked)
	})

	t.Run("email stays required", func(t *testing.T) {
		fields, err := f.service.UpdateFormField(ctx, projectID, domain.FieldIDEmail, &models.FormFieldRequest{Label: "E-mail", Required: false})
		require.NoError(t, err)
		idx := indexOf(fields, domain.FieldIDEmail)
		assert.True(t, fields[idx].Required)
		assert.Equal(t, "E-mail", fields[idx].Label)
	})

	t.Run("phone can become required", func(t *testing.T) {
		fields, err := f.service.UpdateFormField(ctx, projectID, domain.FieldIDPhone, &models.FormFieldRequest{Label: "Телефон", Required: true})
		require.NoError(t, err)
		assert.True(t, fields[indexOf(fields, domain.FieldIDPhone)].Required)
	})

	t.Run("delete custom field renumbers", func(t *testing.T) {
		fields, err := f.service.DeleteFormField(ctx, projectID, "service")
		require.NoError(t, err)
		require.Len(t, fields, 4)
		for i, field := range fields {
			assert.Equal(t, i, field.Order)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := f.service.DeleteFormField(ctx, projectID, "missing")
		assert.ErrorIs(t, err, ErrFormFieldNotFound)
	})
}

func TestService_BlockedDates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.CreateBlockedDate(ctx, projectID, &models.CreateBlockedDateRequest{
		Date:       "2025-06-02",
		Kind:       "time_range",
		RangeStart: types.MustTimeString("14:00"),
		RangeEnd:   types.MustTimeString("15:00"),
		Reason:     ptr.Ptr("Совещание"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", created.Date)
	assert.Equal(t, "time_range", created.Kind)

	_, err = f.service.CreateBlockedDate(ctx, projectID, &models.CreateBlockedDateRequest{Date: "2025-06-10", Kind: "vacation"})
	require.NoError(t, err)

	t.Run("invalid requests", func(t *testing.T) {
		invalid := []*models.CreateBlockedDateRequest{
			{Date: "02.06.2025", Kind: "full_day"},
			{Date: "2025-06-02", Kind: "holiday"},
			{Date: "2025-06-02", Kind: "time_range", RangeStart: types.MustTimeString("15:00"), RangeEnd: types.MustTimeString("14:00")},
			{Date: "2025-06-02", Kind: "full_day", RangeStart: types.MustTimeString("09:00"), RangeEnd: types.MustTimeString("10:00")},
		}
		for _, req := range invalid {
			_, err := f.service.CreateBlockedDate(ctx, projectID, req)
			assert.ErrorIs(t, err, ErrInvalidInput, "%+v", req)
		}
	})

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	list, err := f.service.ListBlockedDates(ctx, projectID, &from, &to)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	_, err = f.service.ListBlockedDates(ctx, projectID, &to, &from)
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, f.service.DeleteBlockedDate(ctx, projectID, created.ID))
	assert.ErrorIs(t, f.service.DeleteBlockedDate(ctx, projectID, created.ID), ErrBlockedDateNotFound)
}
