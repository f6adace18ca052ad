package hold

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/pgerrors"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var holdColumns = []string{
	"id",
	"branch_id",
	"service_id",
	"staff_id",
	"start_at",
	"end_at",
	"expires_at",
	"created_at",
}

// Repository репозиторий временных холдов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория холдов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockStaff берет транзакционную advisory-блокировку на сотрудника.
// Блокировка ставит параллельные создания холдов одного сотрудника в очередь, но снимок
// SERIALIZABLE-транзакции фиксируется первым запросом, то есть до ожидания. Дождавшуюся
// транзакцию отклоняет сама сериализуемость (40001). Снимается при завершении транзакции
func (r *Repository) LockStaff(ctx context.Context, staffID uuid.UUID) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", staffID.String()); err != nil {
		return r.execErr("LockStaff", err)
	}
	return nil
}

// Create сохраняет холд
func (r *Repository) Create(ctx context.Context, hold *domain.BookingHold) (*domain.BookingHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_holds").
		Columns("branch_id", "service_id", "staff_id", "start_at", "end_at", "expires_at").
		Values(hold.BranchID, hold.ServiceID, hold.StaffID, hold.StartAt, hold.EndAt, hold.ExpiresAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&hold.ID, &hold.CreatedAt); err != nil {
		return nil, r.execErr("Create", err)
	}

	return hold, nil
}

// GetByID получает холд по ID. Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(holdColumns...).
		From("booking_holds").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	hold, err := scanHold(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		if pgerrors.IsConcurrentConflict(err) {
			return nil, r.execErr("GetByID", err)
		}
		return nil, fmt.Errorf("%w: GetByID - scan hold: %v", ErrScanRow, err)
	}

	return hold, nil
}

// Delete удаляет холд
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_holds").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return r.execErr("Delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrHoldNotFound
	}

	return nil
}

// ListActive возвращает непросроченные (expires_at > now) холды сотрудников,
// пересекающиеся с [from, to)
func (r *Repository) ListActive(ctx context.Context, staffIDs []uuid.UUID, from, to, now time.Time) ([]*domain.BookingHold, error) {
	if len(staffIDs) == 0 {
		return []*domain.BookingHold{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holdColumns...).
		From("booking_holds").
		Where(squirrel.Eq{"staff_id": staffIDs}).
		Where(squirrel.Gt{"expires_at": now}).
		Where(psqlbuilder.Overlaps("start_at", "end_at", from, to)).
		OrderBy("start_at ASC", "staff_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.execErr("ListActive", err)
	}
	defer rows.Close()

	holds := make([]*domain.BookingHold, 0)
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan hold: %v", ErrScanRow, err)
		}
		holds = append(holds, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return holds, nil
}

// HasActiveOverlap сообщает, есть ли у сотрудника непросроченный холд, пересекающийся с [start, end)
func (r *Repository) HasActiveOverlap(ctx context.Context, staffID uuid.UUID, start, end, now time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("booking_holds").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Gt{"expires_at": now}).
		Where(psqlbuilder.Overlaps("start_at", "end_at", start, end)).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveOverlap - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, r.execErr("HasActiveOverlap", err)
	}

	return true, nil
}

// DeleteExpired удаляет холды, истекшие до момента before. Возвращает число удаленных строк
func (r *Repository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_holds").
		Where(squirrel.Lt{"expires_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, r.execErr("DeleteExpired", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return n, nil
}

func (r *Repository) execErr(op string, err error) error {
	if pgerrors.IsConcurrentConflict(err) {
		return fmt.Errorf("%w: %w: %s: %v", ErrConflict, pgerrors.ErrConcurrentConflict, op, err)
	}
	return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
}

func scanHold(row rowScanner) (*domain.BookingHold, error) {
	var h domain.BookingHold
	err := row.Scan(
		&h.ID,
		&h.BranchID,
		&h.ServiceID,
		&h.StaffID,
		&h.StartAt,
		&h.EndAt,
		&h.ExpiresAt,
		&h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}
