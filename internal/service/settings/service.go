package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-SiteBooking/internal/infra/storage/blockeddate"
	settingsRepo "github.com/m04kA/SMC-SiteBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SiteBooking/internal/service/settings/models"
)

// Service сервис настроек онлайн-записи: параметры слотов, расписание, поля формы и заблокированные даты
type Service struct {
	settingsRepo    SettingsRepository
	formFieldRepo   FormFieldRepository
	blockedDateRepo BlockedDateRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	formFieldRepo FormFieldRepository,
	blockedDateRepo BlockedDateRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo:    settingsRepo,
		formFieldRepo:   formFieldRepo,
		blockedDateRepo: blockedDateRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Get возвращает настройки проекта вместе с полями формы
// Если настройки не сохранялись, возвращает значения по умолчанию (онлайн-запись выключена)
func (s *Service) Get(ctx context.Context, projectID uuid.UUID) (*domain.BookingSettings, error) {
	settings, err := s.settingsRepo.Get(ctx, projectID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Get: failed to get settings for project=%s: %v", projectID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultBookingSettings(projectID)
	}

	fields, err := s.formFields(ctx, projectID)
	if err != nil {
		return nil, err
	}
	settings.FormFields = fields

	return settings, nil
}

// GetSettings возвращает настройки проекта для сотрудников
func (s *Service) GetSettings(ctx context.Context, projectID uuid.UUID) (*models.SettingsResponse, error) {
	settings, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(settings), nil
}

// UpdateSettings частично обновляет настройки проекта
// Изменение длительности слота не затрагивает уже созданные записи
func (s *Service) UpdateSettings(ctx context.Context, projectID uuid.UUID, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: updating settings for project=%s", projectID)

	var result *domain.BookingSettings
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.Get(txCtx, projectID)
		if err != nil {
			return err
		}

		req.ApplyToSettings(current)
		if err := current.Validate(); err != nil {
			s.logger.Warn("UpdateSettings: validation failed for project=%s: %v", projectID, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		saved, err := s.settingsRepo.Upsert(txCtx, current)
		if err != nil {
			s.logger.Error("UpdateSettings: repository error: %v", err)
			return fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
		}

		result = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateSettings: project=%s enabled=%t duration=%d buffer=%d",
		projectID, result.IsEnabled, result.SlotDurationMinutes, result.BufferMinutes)
	return models.FromDomainSettings(result), nil
}

// ListFormFields возвращает поля формы в порядке отображения
func (s *Service) ListFormFields(ctx context.Context, projectID uuid.UUID) ([]domain.FormField, error) {
	return s.formFields(ctx, projectID)
}

// CreateFormField добавляет пользовательское поле в конец формы
func (s *Service) CreateFormField(ctx context.Context, projectID uuid.UUID, req *models.FormFieldRequest) ([]domain.FormField, error) {
	field := domain.FormField{
		ID:          strings.TrimSpace(req.ID),
		Type:        req.Type,
		Label:       strings.TrimSpace(req.Label),
		Required:    req.Required,
		Placeholder: req.Placeholder,
		Options:     req.Options,
	}

	if domain.IsSystemFieldID(field.ID) {
		return nil, fmt.Errorf("%w: %q is a system field", ErrFormFieldExists, field.ID)
	}
	if err := field.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.mutateFormFields(ctx, projectID, "CreateFormField", func(fields []domain.FormField) ([]domain.FormField, error) {
		for _, f := range fields {
			if f.ID == field.ID {
				return nil, fmt.Errorf("%w: %q", ErrFormFieldExists, field.ID)
			}
		}
		return append(fields, field), nil
	})
}

// UpdateFormField изменяет поле формы
// У системных полей нельзя менять тип, а поля name и email всегда обязательны
func (s *Service) UpdateFormField(ctx context.Context, projectID uuid.UUID, fieldID string, req *models.FormFieldRequest) ([]domain.FormField, error) {
	return s.mutateFormFields(ctx, projectID, "UpdateFormField", func(fields []domain.FormField) ([]domain.FormField, error) {
		idx := indexOf(fields, fieldID)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrFormFieldNotFound, fieldID)
		}

		updated := fields[idx]
		if updated.System && req.Type != "" && req.Type != updated.Type {
			return nil, fmt.Errorf("%w: %q", ErrSystemFieldLocked, fieldID)
		}
		if req.Type != "" {
			updated.Type = req.Type
		}
		updated.Label = strings.TrimSpace(req.Label)
		updated.Required = req.Required || fieldID == domain.FieldIDName || fieldID == domain.FieldIDEmail
		updated.Placeholder = req.Placeholder
		updated.Options = req.Options

		if err := updated.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		fields[idx] = updated
		return fields, nil
	})
}

// DeleteFormField удаляет пользовательское поле и перенумеровывает оставшиеся
func (s *Service) DeleteFormField(ctx context.Context, projectID uuid.UUID, fieldID string) ([]domain.FormField, error) {
	return s.mutateFormFields(ctx, projectID, "DeleteFormField", func(fields []domain.FormField) ([]domain.FormField, error) {
		idx := indexOf(fields, fieldID)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrFormFieldNotFound, fieldID)
		}
		if fields[idx].System {
			return nil, fmt.Errorf("%w: %q", ErrSystemFieldLocked, fieldID)
		}
		return append(fields[:idx], fields[idx+1:]...), nil
	})
}

// ReorderFormFields задает новый порядок полей; order перенумеровывается плотно с 0
func (s *Service) ReorderFormFields(ctx context.Context, projectID uuid.UUID, req *models.ReorderFormFieldsRequest) ([]domain.FormField, error) {
	return s.mutateFormFields(ctx, projectID, "ReorderFormFields", func(fields []domain.FormField) ([]domain.FormField, error) {
		reordered, err := domain.ReorderFormFields(fields, req.FieldIDs)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return reordered, nil
	})
}

// ListBlockedDates возвращает исключения из расписания за период
func (s *Service) ListBlockedDates(ctx context.Context, projectID uuid.UUID, from, to *time.Time) ([]models.BlockedDateResponse, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	exceptions, err := s.blockedDateRepo.ListByPeriod(ctx, projectID, from, to)
	if err != nil {
		s.logger.Error("ListBlockedDates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlockedDates - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedDates(exceptions), nil
}

// CreateBlockedDate создает исключение из расписания
func (s *Service) CreateBlockedDate(ctx context.Context, projectID uuid.UUID, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in format YYYY-MM-DD", ErrInvalidInput)
	}

	kind, err := domain.ParseExceptionKind(req.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exc := &domain.DateException{
		ProjectID:  projectID,
		Date:       date,
		Kind:       kind,
		RangeStart: req.RangeStart,
		RangeEnd:   req.RangeEnd,
		Reason:     req.Reason,
	}
	if err := exc.Validate(); err != nil {
		s.logger.Warn("CreateBlockedDate: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.blockedDateRepo.Create(ctx, exc)
	if err != nil {
		s.logger.Error("CreateBlockedDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedDate: project=%s date=%s kind=%s id=%d",
		projectID, created.Date.Format(domain.DateFormat), created.Kind, created.ID)

	resp := models.FromDomainBlockedDate(created)
	return &resp, nil
}

// DeleteBlockedDate удаляет исключение из расписания
func (s *Service) DeleteBlockedDate(ctx context.Context, projectID uuid.UUID, id int64) error {
	if err := s.blockedDateRepo.Delete(ctx, projectID, id); err != nil {
		if errors.Is(err, blockedDateRepo.ErrBlockedDateNotFound) {
			return ErrBlockedDateNotFound
		}
		s.logger.Error("DeleteBlockedDate: repository error: %v", err)
		return fmt.Errorf("%w: DeleteBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedDate: project=%s id=%d", projectID, id)
	return nil
}

// formFields возвращает сохраненные поля формы или поля по умолчанию
func (s *Service) formFields(ctx context.Context, projectID uuid.UUID) ([]domain.FormField, error) {
	fields, err := s.formFieldRepo.List(ctx, projectID)
	if err != nil {
		s.logger.Error("formFields: failed to list form fields for project=%s: %v", projectID, err)
		return nil, fmt.Errorf("%w: failed to list form fields: %v", ErrInternal, err)
	}

	if len(fields) == 0 {
		return domain.DefaultFormFields(), nil
	}

	domain.SortFormFields(fields)
	return fields, nil
}

// mutateFormFields загружает поля, применяет изменение и сохраняет набор целиком в одной транзакции
func (s *Service) mutateFormFields(
	ctx context.Context,
	projectID uuid.UUID,
	op string,
	mutate func(fields []domain.FormField) ([]domain.FormField, error),
) ([]domain.FormField, error) {
	var result []domain.FormField

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		fields, err := s.formFields(txCtx, projectID)
		if err != nil {
			return err
		}

		updated, err := mutate(fields)
		if err != nil {
			s.logger.Warn("%s: project=%s: %v", op, projectID, err)
			return err
		}
		domain.RenumberFormFields(updated)

		if err := s.formFieldRepo.ReplaceAll(txCtx, projectID, updated); err != nil {
			s.logger.Error("%s: repository error: %v", op, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: project=%s now has %d form fields", op, projectID, len(result))
	return result, nil
}

func indexOf(fields []domain.FormField, id string) int {
	for i, f := range fields {
		if f.ID == id {
			return i
		}
	}
	return -1
}
