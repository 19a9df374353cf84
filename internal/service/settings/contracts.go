package settings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context, projectID uuid.UUID) (*domain.BookingSettings, error)
	Upsert(ctx context.Context, s *domain.BookingSettings) (*domain.BookingSettings, error)
}

// FormFieldRepository интерфейс репозитория полей формы
type FormFieldRepository interface {
	List(ctx context.Context, projectID uuid.UUID) ([]domain.FormField, error)
	ReplaceAll(ctx context.Context, projectID uuid.UUID, fields []domain.FormField) error
}

// BlockedDateRepository интерфейс репозитория исключений из расписания
type BlockedDateRepository interface {
	Create(ctx context.Context, exc *domain.DateException) (*domain.DateException, error)
	ListByPeriod(ctx context.Context, projectID uuid.UUID, from, to *time.Time) ([]*domain.DateException, error)
	Delete(ctx context.Context, projectID uuid.UUID, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
