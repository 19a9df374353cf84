package formfield

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SiteBooking/pkg/psqlbuilder"
)

const table = "booking_form_fields"

// Repository репозиторий полей формы записи
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория полей формы
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает поля формы проекта в порядке sort_order
// Пустой результат означает, что проект использует поля по умолчанию
func (r *Repository) List(ctx context.Context, projectID uuid.UUID) ([]domain.FormField, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"field_id",
		"field_type",
		"label",
		"required",
		"is_system",
		"sort_order",
		"placeholder",
		"options",
	).
		From(table).
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("sort_order ASC", "field_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	fields := make([]domain.FormField, 0)
	for rows.Next() {
		var f domain.FormField
		var options []string
		if err := rows.Scan(
			&f.ID,
			&f.Type,
			&f.Label,
			&f.Required,
			&f.System,
			&f.Order,
			&f.Placeholder,
			pq.Array(&options),
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan field: %v", ErrScanRow, err)
		}
		if len(options) > 0 {
			f.Options = options
		}
		fields = append(fields, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return fields, nil
}

// ReplaceAll заменяет набор полей формы проекта целиком
// Должен вызываться внутри транзакции, чтобы удаление и вставка применились атомарно
func (r *Repository) ReplaceAll(ctx context.Context, projectID uuid.UUID, fields []domain.FormField) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"project_id": projectID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceAll - execute delete: %v", ErrExecQuery, err)
	}

	if len(fields) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert(table).
		Columns(
			"project_id",
			"field_id",
			"field_type",
			"label",
			"required",
			"is_system",
			"sort_order",
			"placeholder",
			"options",
		)

	for _, f := range fields {
		options := f.Options
		if options == nil {
			options = []string{}
		}
		insertBuilder = insertBuilder.Values(
			projectID,
			f.ID,
			f.Type,
			f.Label,
			f.Required,
			f.System,
			f.Order,
			f.Placeholder,
			pq.Array(options),
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceAll - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
