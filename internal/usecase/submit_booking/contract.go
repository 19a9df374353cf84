package submit_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/internal/integrations/notifications"
)

// SettingsProvider источник настроек онлайн-записи (с полями формы и значениями по умолчанию)
type SettingsProvider interface {
	Get(ctx context.Context, projectID uuid.UUID) (*domain.BookingSettings, error)
}

// BlockedDateRepository интерфейс репозитория исключений из расписания
type BlockedDateRepository interface {
	ListByDate(ctx context.Context, projectID uuid.UUID, date time.Time) ([]*domain.DateException, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListActiveByDate внутри транзакции блокирует строки (FOR UPDATE)
	ListActiveByDate(ctx context.Context, projectID uuid.UUID, date time.Time) ([]*domain.Appointment, error)
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SubmissionLimiter ограничитель частоты отправок формы
type SubmissionLimiter interface {
	Allow(ctx context.Context, projectID, clientKey string) (bool, error)
}

// Notifier асинхронная отправка событий в сервис уведомлений
type Notifier interface {
	Dispatch(event notifications.Event)
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	IncBookingOutcome(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
