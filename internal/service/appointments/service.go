package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SiteBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SiteBooking/internal/integrations/notifications"
	"github.com/m04kA/SMC-SiteBooking/internal/service/appointments/models"
)

// Service сервис управления записями для сотрудников
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
// notifier может быть nil
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись проекта по ID
func (s *Service) GetByID(ctx context.Context, projectID, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for project=%s", id, projectID)

	appt, err := s.appointmentRepo.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// List получает записи проекта с фильтрацией по периоду, статусу и тексту
//
// Примеры использования:
// - Записи на день: From и To указывают на одну дату
// - Только новые заявки: Status = "pending"
// - Поиск клиента: Search = "anna@" (по имени, email и телефону)
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("List: fetching appointments for project=%s", req.ProjectID)
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.Search != "" {
		logMsg += ", search=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for project=%s: %v", req.ProjectID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for project=%s: %v", req.ProjectID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments for project=%s", len(list), req.ProjectID)
	return models.FromDomainAppointmentList(list), nil
}

// ChangeStatus применяет действие к статусу записи
//
// pending -> confirmed (confirm), pending|confirmed -> cancelled (cancel), cancelled -> pending (reactivate).
// Повторное применение того же действия ничего не меняет и не отправляет уведомление.
func (s *Service) ChangeStatus(
	ctx context.Context,
	projectID, id uuid.UUID,
	req *models.ChangeStatusRequest,
) (*models.AppointmentResponse, error) {
	s.logger.Info("ChangeStatus: action=%s for appointment id=%s, project=%s", req.Action, id, projectID)

	action, err := domain.ParseStatusAction(req.Action)
	if err != nil {
		s.logger.Warn("ChangeStatus: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	var (
		result  *domain.Appointment
		changed bool
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Строка блокируется до конца транзакции (FOR UPDATE)
		appt, err := s.appointmentRepo.GetByID(txCtx, projectID, id)
		if err != nil {
			return s.mapRepoError("ChangeStatus", id, err)
		}

		next, isChanged, err := appt.Transition(action)
		if err != nil {
			s.logger.Warn("ChangeStatus: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		if isChanged {
			if err := s.appointmentRepo.UpdateStatus(txCtx, projectID, id, next); err != nil {
				if errors.Is(err, appointmentRepo.ErrDuplicate) {
					s.logger.Warn("ChangeStatus: slot %s %s is taken, cannot reactivate id=%s",
						appt.Date.Format(domain.DateFormat), appt.StartTime, id)
					return ErrSlotUnavailable
				}
				return s.mapRepoError("ChangeStatus", id, err)
			}
			appt.Status = next
			if next == domain.StatusPending {
				s.warnOverlaps(txCtx, appt)
			}
		}

		result = appt
		changed = isChanged
		return nil
	})
	if err != nil {
		if appointmentRepo.IsConflict(err) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	if !changed {
		s.logger.Info("ChangeStatus: appointment id=%s is already %s", id, result.Status)
		return models.FromDomainAppointment(result), nil
	}

	s.logger.Info("ChangeStatus: appointment id=%s is now %s", id, result.Status)

	switch result.Status {
	case domain.StatusConfirmed:
		s.dispatch(notifications.EventConfirmed, result)
	case domain.StatusCancelled:
		s.dispatch(notifications.EventCancelled, result)
	case domain.StatusPending:
		// Возврат в работу не уведомляет клиента
	}

	return models.FromDomainAppointment(result), nil
}

// warnOverlaps пишет предупреждение, если возвращенная в работу запись пересекается с другими активными
// Уникальный индекс ловит только совпадение времени начала, поэтому пересечение со сдвигом не блокирует операцию
func (s *Service) warnOverlaps(ctx context.Context, appt *domain.Appointment) {
	date := appt.Date
	sameDay, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		ProjectID: appt.ProjectID,
		From:      &date,
		To:        &date,
	})
	if err != nil {
		s.logger.Warn("ChangeStatus: failed to check overlaps for appointment id=%s: %v", appt.ID, err)
		return
	}

	for _, other := range sameDay {
		if other.ID == appt.ID || !other.IsActive() || !domain.SameDate(other.Date, appt.Date) {
			continue
		}
		if appt.Interval().Overlaps(other.Interval()) {
			s.logger.Warn("ChangeStatus: reactivated appointment id=%s (%s) overlaps appointment id=%s (%s) on %s",
				appt.ID, appt.Interval(), other.ID, other.Interval(), appt.Date.Format(domain.DateFormat))
		}
	}
}

// UpdateNote изменяет внутреннюю заметку сотрудника; клиент ее не видит
func (s *Service) UpdateNote(
	ctx context.Context,
	projectID, id uuid.UUID,
	req *models.UpdateNoteRequest,
) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateNote: updating note for appointment id=%s, project=%s", id, projectID)

	var note *string
	if req.InternalNote != nil {
		if trimmed := strings.TrimSpace(*req.InternalNote); trimmed != "" {
			note = &trimmed
		}
	}

	if note != nil && utf8.RuneCountInString(*note) > domain.MaxNoteLength {
		return nil, fmt.Errorf("%w: internalNote is longer than %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	if err := s.appointmentRepo.UpdateInternalNote(ctx, projectID, id, note); err != nil {
		return nil, s.mapRepoError("UpdateNote", id, err)
	}

	return s.GetByID(ctx, projectID, id)
}

func (s *Service) dispatch(eventType notifications.EventType, appt *domain.Appointment) {
	if s.notifier == nil {
		return
	}
	s.notifier.Dispatch(notifications.NewEvent(eventType, appt, s.timeProvider.Now()))
}

func (s *Service) mapRepoError(op string, id uuid.UUID, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		s.logger.Warn("%s: appointment id=%s not found", op, id)
		return ErrAppointmentNotFound
	}
	s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
