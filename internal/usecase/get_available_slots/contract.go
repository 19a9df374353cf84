package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
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
	// ListActiveByDate получает записи в статусах pending/confirmed на дату
	ListActiveByDate(ctx context.Context, projectID uuid.UUID, date time.Time) ([]*domain.Appointment, error)
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
