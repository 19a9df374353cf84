package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SiteBooking/pkg/psqlbuilder"
)

const table = "booking_settings"

// Repository репозиторий настроек онлайн-записи (одна строка на проект)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки проекта без полей формы
// Если настройки не сохранялись, возвращает ErrSettingsNotFound
func (r *Repository) Get(ctx context.Context, projectID uuid.UUID) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"project_id",
		"is_enabled",
		"slot_duration_minutes",
		"buffer_minutes",
		"max_advance_days",
		"timezone",
		"weekly_schedule",
		"consent_required",
		"consent_text",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"project_id": projectID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.BookingSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ProjectID,
		&s.IsEnabled,
		&s.SlotDurationMinutes,
		&s.BufferMinutes,
		&s.MaxAdvanceDays,
		&s.Timezone,
		&s.WeeklySchedule,
		&s.ConsentRequired,
		&s.ConsentText,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает или полностью перезаписывает настройки проекта
func (r *Repository) Upsert(ctx context.Context, s *domain.BookingSettings) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"project_id",
			"is_enabled",
			"slot_duration_minutes",
			"buffer_minutes",
			"max_advance_days",
			"timezone",
			"weekly_schedule",
			"consent_required",
			"consent_text",
		).
		Values(
			s.ProjectID,
			s.IsEnabled,
			s.SlotDurationMinutes,
			s.BufferMinutes,
			s.MaxAdvanceDays,
			s.Timezone,
			s.WeeklySchedule,
			s.ConsentRequired,
			s.ConsentText,
		).
		Suffix(`ON CONFLICT (project_id) DO UPDATE SET
			is_enabled = EXCLUDED.is_enabled,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			max_advance_days = EXCLUDED.max_advance_days,
			timezone = EXCLUDED.timezone,
			weekly_schedule = EXCLUDED.weekly_schedule,
			consent_required = EXCLUDED.consent_required,
			consent_text = EXCLUDED.consent_text,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
