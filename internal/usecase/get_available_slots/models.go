package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProjectID uuid.UUID // ID проекта (опубликованного сайта)
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа для виджета записи
// Пустой Slots не различает причину: запись выключена, день закрыт или все занято
type Response struct {
	Date            time.Time
	Slots           []types.TimeString
	DurationMinutes int
	FormFields      []domain.FormField
	ConsentRequired bool
	ConsentText     *string
}
