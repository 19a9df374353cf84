package get_available_slots

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/availability"
	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

// UseCase use case для получения доступных слотов онлайн-записи
type UseCase struct {
	settings        SettingsProvider
	blockedDateRepo BlockedDateRepository
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	settings SettingsProvider,
	blockedDateRepo BlockedDateRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		settings:        settings,
		blockedDateRepo: blockedDateRepo,
		appointmentRepo: appointmentRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
// Чтение не блокирует записи: используется снимок на момент запроса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.ProjectID == uuid.Nil {
		return nil, fmt.Errorf("%w: projectId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date := domain.DateOnly(req.Date)

	uc.logger.Info("GetAvailableSlots: project=%s, date=%s", req.ProjectID, date.Format(domain.DateFormat))

	// 2. Получаем настройки (значения по умолчанию, если проект их не сохранял)
	settings, err := uc.settings.Get(ctx, req.ProjectID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings for project=%s: %v", req.ProjectID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:            date,
		Slots:           []types.TimeString{},
		DurationMinutes: settings.SlotDurationMinutes,
		FormFields:      settings.FormFields,
		ConsentRequired: settings.ConsentRequired,
		ConsentText:     settings.ConsentText,
	}

	// 3. Выключенная запись отдает пустой список, как и занятый день
	if !settings.IsEnabled {
		uc.logger.Info("GetAvailableSlots: booking is disabled for project=%s", req.ProjectID)
		return resp, nil
	}

	// 4. Получаем исключения из расписания на дату
	exceptions, err := uc.blockedDateRepo.ListByDate(ctx, req.ProjectID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked dates: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
	}

	// 5. Получаем активные записи на дату
	appointments, err := uc.appointmentRepo.ListActiveByDate(ctx, req.ProjectID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Вычисляем доступные слоты
	slots, err := availability.Compute(settings, date, exceptions, appointments, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute availability for project=%s: %v", req.ProjectID, err)
		return nil, fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
	}
	resp.Slots = slots

	uc.logger.Info("GetAvailableSlots: %d slots for project=%s, date=%s",
		len(slots), req.ProjectID, date.Format(domain.DateFormat))

	return resp, nil
}
