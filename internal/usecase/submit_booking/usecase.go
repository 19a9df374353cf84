package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/availability"
	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SiteBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SiteBooking/internal/integrations/notifications"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

// Исходы бронирования для метрик
const (
	OutcomeCreated         = "created"
	OutcomeSlotUnavailable = "slot_unavailable"
	OutcomeSpam            = "spam"
	OutcomeMissingField    = "missing_field"
	OutcomeConsentRequired = "consent_required"
	OutcomeDisabled        = "disabled"
	OutcomeConflict        = "conflict"
	OutcomeInvalid         = "invalid"
)

// DefaultMinFormFillDuration минимальное время заполнения формы человеком
const DefaultMinFormFillDuration = 2 * time.Second

// UseCase use case публичной записи на слот
type UseCase struct {
	settings        SettingsProvider
	blockedDateRepo BlockedDateRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	limiter         SubmissionLimiter
	notifier        Notifier
	metrics         Metrics
	minFormFill     time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// limiter, notifier и metrics могут быть nil
func NewUseCase(
	settings SettingsProvider,
	blockedDateRepo BlockedDateRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	limiter SubmissionLimiter,
	notifier Notifier,
	metrics Metrics,
	minFormFill time.Duration,
	logger Logger,
) *UseCase {
	if minFormFill <= 0 {
		minFormFill = DefaultMinFormFillDuration
	}
	return &UseCase{
		settings:        settings,
		blockedDateRepo: blockedDateRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		limiter:         limiter,
		notifier:        notifier,
		metrics:         metrics,
		minFormFill:     minFormFill,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет публичную запись на слот
//
// Проверки идут по порядку до первой ошибки: запись включена, слот свободен,
// обязательные поля заполнены, дано согласие, заявка не похожа на спам.
// Спам и конфликт в хранилище возвращаются как SlotUnavailableError.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateSlotInput(req.ProjectID, req.Date, req.StartTime); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		uc.observe(OutcomeInvalid)
		return nil, err
	}
	date := domain.DateOnly(req.Date)

	uc.logger.Info("SubmitBooking: project=%s, date=%s, time=%s",
		req.ProjectID, date.Format(domain.DateFormat), req.StartTime)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки проекта
	settings, err := uc.settings.Get(ctx, req.ProjectID)
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to get settings for project=%s: %v", req.ProjectID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 4. Онлайн-запись должна быть включена
	if !settings.IsEnabled {
		uc.logger.Warn("SubmitBooking: booking is disabled for project=%s", req.ProjectID)
		uc.observe(OutcomeDisabled)
		return nil, ErrSystemDisabled
	}

	// 5. Слот должен быть свободен сейчас, а не на момент загрузки формы
	slots, err := uc.availableSlots(ctx, settings, date, now)
	if err != nil {
		return nil, err
	}
	if !availability.IsAvailable(slots, req.StartTime) {
		uc.logger.Warn("SubmitBooking: slot %s %s is not available for project=%s",
			date.Format(domain.DateFormat), req.StartTime, req.ProjectID)
		uc.observe(OutcomeSlotUnavailable)
		return nil, &SlotUnavailableError{Slots: slots}
	}

	// 6. Обязательные поля формы
	client := &clientData{
		Name:     req.ClientName,
		Email:    req.ClientEmail,
		Phone:    req.ClientPhone,
		Note:     req.ClientNote,
		FormData: req.FormData,
	}
	formData, err := validateClientData(settings, client)
	if err != nil {
		uc.logger.Warn("SubmitBooking: form validation failed: %v", err)
		if errors.Is(err, ErrMissingField) {
			uc.observe(OutcomeMissingField)
		} else {
			uc.observe(OutcomeInvalid)
		}
		return nil, err
	}

	// 7. Согласие на обработку данных
	if settings.ConsentRequired && !req.ConsentGiven {
		uc.logger.Warn("SubmitBooking: consent not given for project=%s", req.ProjectID)
		uc.observe(OutcomeConsentRequired)
		return nil, ErrConsentRequired
	}

	// 8. Антиспам: причина отказа не раскрывается клиенту
	if reason := uc.spamReason(ctx, req, now); reason != "" {
		uc.logger.Warn("SubmitBooking: rejected as spam for project=%s: %s", req.ProjectID, reason)
		uc.observe(OutcomeSpam)
		return nil, &SlotUnavailableError{Slots: slots, Reason: ErrRejectedAsSpam}
	}

	// 9. Сохраняем запись в сериализуемой транзакции с повторной проверкой слота
	appt := &domain.Appointment{
		ProjectID:    req.ProjectID,
		Date:         date,
		StartTime:    req.StartTime,
		Status:       domain.StatusPending,
		ClientName:   client.Name,
		ClientEmail:  client.Email,
		ClientPhone:  client.Phone,
		ClientNote:   client.Note,
		FormData:     formData,
		ConsentGiven: req.ConsentGiven,
	}

	created, err := uc.reserve(ctx, "SubmitBooking", settings, appt, now)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("SubmitBooking: successfully created appointment id=%s", created.ID)
	uc.observe(OutcomeCreated)

	// 10. Уведомление отправляется асинхронно и не влияет на результат
	uc.dispatch(notifications.EventNewAppointment, created, now)

	return toResponse(created), nil
}

// CreateByStaff создает подтвержденную запись от имени сотрудника
// Согласие и антиспам не проверяются, выключенная онлайн-запись не мешает, но слот должен быть свободен
func (uc *UseCase) CreateByStaff(ctx context.Context, req *StaffRequest) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateSlotInput(req.ProjectID, req.Date, req.StartTime); err != nil {
		uc.logger.Warn("CreateByStaff: validation failed: %v", err)
		return nil, err
	}
	date := domain.DateOnly(req.Date)

	uc.logger.Info("CreateByStaff: project=%s, date=%s, time=%s",
		req.ProjectID, date.Format(domain.DateFormat), req.StartTime)

	now := uc.timeProvider.Now()

	// 2. Получаем настройки проекта
	settings, err := uc.settings.Get(ctx, req.ProjectID)
	if err != nil {
		uc.logger.Error("CreateByStaff: failed to get settings for project=%s: %v", req.ProjectID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Обязательные поля формы
	client := &clientData{
		Name:     req.ClientName,
		Email:    req.ClientEmail,
		Phone:    req.ClientPhone,
		Note:     req.ClientNote,
		FormData: req.FormData,
	}
	formData, err := validateClientData(settings, client)
	if err != nil {
		uc.logger.Warn("CreateByStaff: form validation failed: %v", err)
		return nil, err
	}

	internalNote := trimOptional(req.InternalNote)
	if internalNote != nil && len([]rune(*internalNote)) > domain.MaxNoteLength {
		return nil, fmt.Errorf("%w: internalNote is longer than %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	// 4. Сохраняем запись с проверкой слота
	appt := &domain.Appointment{
		ProjectID:    req.ProjectID,
		Date:         date,
		StartTime:    req.StartTime,
		Status:       domain.StatusConfirmed,
		ClientName:   client.Name,
		ClientEmail:  client.Email,
		ClientPhone:  client.Phone,
		ClientNote:   client.Note,
		InternalNote: internalNote,
		FormData:     formData,
	}

	created, err := uc.reserve(ctx, "CreateByStaff", settings, appt, now)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateByStaff: successfully created appointment id=%s", created.ID)
	uc.dispatch(notifications.EventConfirmed, created, now)

	return toResponse(created), nil
}

// reserve повторно проверяет слот и вставляет запись в одной сериализуемой транзакции
// Проверка внутри транзакции ускоряет отказ, корректность обеспечивает уникальный индекс активных записей
func (uc *UseCase) reserve(
	ctx context.Context,
	op string,
	settings *domain.BookingSettings,
	appt *domain.Appointment,
	now time.Time,
) (*domain.Appointment, error) {
	endTime, err := appt.StartTime.AddMinutes(settings.SlotDurationMinutes)
	if err != nil {
		uc.logger.Warn("%s: slot %s does not fit into the day: %v", op, appt.StartTime, err)
		return nil, &SlotUnavailableError{Slots: []types.TimeString{}}
	}
	appt.EndTime = endTime
	appt.ID = uuid.New()

	var result *domain.Appointment
	var unavailable *SlotUnavailableError

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Записи на дату читаются с блокировкой (FOR UPDATE)
		slots, err := uc.availableSlots(txCtx, settings, appt.Date, now)
		if err != nil {
			return err
		}
		if !availability.IsAvailable(slots, appt.StartTime) {
			unavailable = &SlotUnavailableError{Slots: slots}
			return unavailable
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	switch {
	case err == nil:
		return result, nil
	case unavailable != nil:
		uc.logger.Warn("%s: slot %s %s was taken before commit", op, appt.Date.Format(domain.DateFormat), appt.StartTime)
		uc.observe(OutcomeSlotUnavailable)
		return nil, unavailable
	case appointmentRepo.IsConflict(err):
		uc.logger.Warn("%s: storage conflict for slot %s %s: %v", op, appt.Date.Format(domain.DateFormat), appt.StartTime, err)
		uc.observe(OutcomeConflict)
		return nil, &SlotUnavailableError{Slots: uc.freshSlots(ctx, settings, appt.Date), Reason: ErrStorageConflict}
	case errors.Is(err, ErrInternal):
		return nil, err
	default:
		uc.logger.Error("%s: failed to create appointment: %v", op, err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}
}

// availableSlots вычисляет свободные слоты на дату по сохраненным исключениям и записям
func (uc *UseCase) availableSlots(
	ctx context.Context,
	settings *domain.BookingSettings,
	date time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	exceptions, err := uc.blockedDateRepo.ListByDate(ctx, settings.ProjectID, date)
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to get blocked dates: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.ListActiveByDate(ctx, settings.ProjectID, date)
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	slots, err := availability.Compute(settings, date, exceptions, appointments, now)
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to compute availability: %v", err)
		return nil, fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
	}

	return slots, nil
}

// freshSlots пересчитывает слоты после конфликта; при ошибке возвращает пустой список
func (uc *UseCase) freshSlots(ctx context.Context, settings *domain.BookingSettings, date time.Time) []types.TimeString {
	slots, err := uc.availableSlots(ctx, settings, date, uc.timeProvider.Now())
	if err != nil {
		return []types.TimeString{}
	}
	return slots
}

// spamReason возвращает причину отказа или пустую строку
func (uc *UseCase) spamReason(ctx context.Context, req *Request, now time.Time) string {
	if req.Honeypot != "" {
		return "honeypot is filled"
	}

	if req.FormLoadedAt == nil {
		return "form load time is missing"
	}
	if elapsed := now.Sub(*req.FormLoadedAt); elapsed < uc.minFormFill {
		return fmt.Sprintf("form filled in %s", elapsed)
	}

	if uc.limiter != nil && req.ClientIP != "" {
		allowed, err := uc.limiter.Allow(ctx, req.ProjectID.String(), req.ClientIP)
		if err != nil {
			// Недоступный Redis не должен останавливать запись
			uc.logger.Warn("SubmitBooking: submission limiter failed: %v", err)
			return ""
		}
		if !allowed {
			return "too many submissions from " + req.ClientIP
		}
	}

	return ""
}

func (uc *UseCase) dispatch(eventType notifications.EventType, appt *domain.Appointment, now time.Time) {
	if uc.notifier == nil {
		return
	}
	uc.notifier.Dispatch(notifications.NewEvent(eventType, appt, now))
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.IncBookingOutcome(outcome)
}
