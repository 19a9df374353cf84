package blockeddate

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SiteBooking/pkg/psqlbuilder"
)

const table = "blocked_dates"

// Repository репозиторий исключений из расписания ("заблокированных дат")
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает исключение. Редактирование не поддерживается: только удаление и повторное создание
func (r *Repository) Create(ctx context.Context, exc *domain.DateException) (*domain.DateException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"project_id",
			"blocked_date",
			"kind",
			"range_start",
			"range_end",
			"reason",
		).
		Values(
			exc.ProjectID,
			domain.DateOnly(exc.Date),
			exc.Kind,
			exc.RangeStart,
			exc.RangeEnd,
			exc.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exc.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	exc.Date = domain.DateOnly(exc.Date)
	exc.CreatedAt = createdAt.Time

	return exc, nil
}

// ListByPeriod получает исключения проекта за период [from, to] по возрастанию даты
// nil границы не ограничивают период
func (r *Repository) ListByPeriod(ctx context.Context, projectID uuid.UUID, from, to *time.Time) ([]*domain.DateException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"project_id",
		"blocked_date",
		"kind",
		"range_start",
		"range_end",
		"reason",
		"created_at",
	).
		From(table).
		Where(squirrel.Eq{"project_id": projectID})

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"blocked_date": domain.DateOnly(*from)})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"blocked_date": domain.DateOnly(*to)})
	}

	query, args, err := selectBuilder.OrderBy("blocked_date ASC", "range_start ASC NULLS FIRST", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]*domain.DateException, 0)
	for rows.Next() {
		var exc domain.DateException
		var createdAt sql.NullTime
		if err := rows.Scan(
			&exc.ID,
			&exc.ProjectID,
			&exc.Date,
			&exc.Kind,
			&exc.RangeStart,
			&exc.RangeEnd,
			&exc.Reason,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByPeriod - scan blocked date: %v", ErrScanRow, err)
		}
		exc.Date = domain.DateOnly(exc.Date)
		exc.CreatedAt = createdAt.Time
		exceptions = append(exceptions, &exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByPeriod - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// ListByDate получает исключения проекта на одну дату
func (r *Repository) ListByDate(ctx context.Context, projectID uuid.UUID, date time.Time) ([]*domain.DateException, error) {
	return r.ListByPeriod(ctx, projectID, &date, &date)
}

// Delete удаляет исключение проекта
func (r *Repository) Delete(ctx context.Context, projectID uuid.UUID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id, "project_id": projectID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}
