package booking

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

var bookingColumns = []string{
	"id",
	"branch_id",
	"service_id",
	"staff_id",
	"start_at",
	"end_at",
	"status",
	"customer_name",
	"customer_email",
	"customer_phone",
	"note",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Пересечение с другим активным бронированием сотрудника отклоняется ограничением
// bookings_no_staff_overlap и возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"branch_id",
			"service_id",
			"staff_id",
			"start_at",
			"end_at",
			"status",
			"customer_name",
			"customer_email",
			"customer_phone",
			"note",
		).
		Values(
			booking.BranchID,
			booking.ServiceID,
			booking.StaffID,
			booking.StartAt,
			booking.EndAt,
			booking.Status,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if pgerrors.IsConcurrentConflict(err) {
			return nil, fmt.Errorf("%w: %w: Create - execute insert: %v", ErrOverlap, pgerrors.ErrConcurrentConflict, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListBusy возвращает неотмененные бронирования сотрудников, пересекающиеся с [from, to)
func (r *Repository) ListBusy(ctx context.Context, staffIDs []uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	if len(staffIDs) == 0 {
		return []*domain.Booking{}, nil
	}

	return r.list(ctx, "ListBusy", squirrel.And{
		squirrel.Eq{"staff_id": staffIDs},
		squirrel.NotEq{"status": domain.StatusCancelled},
		psqlbuilder.Overlaps("start_at", "end_at", from, to),
	})
}

// ListByBranch возвращает неотмененные бронирования филиала, пересекающиеся с [from, to)
func (r *Repository) ListByBranch(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	return r.list(ctx, "ListByBranch", squirrel.And{
		squirrel.Eq{"branch_id": branchID},
		squirrel.NotEq{"status": domain.StatusCancelled},
		psqlbuilder.Overlaps("start_at", "end_at", from, to),
	})
}

// HasOverlap сообщает, есть ли у сотрудника неотмененное бронирование, пересекающееся с [start, end)
func (r *Repository) HasOverlap(ctx context.Context, staffID uuid.UUID, start, end time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(psqlbuilder.Overlaps("start_at", "end_at", start, end)).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlap - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		if pgerrors.IsConcurrentConflict(err) {
			return false, fmt.Errorf("%w: %w: HasOverlap - execute query: %v", ErrOverlap, pgerrors.ErrConcurrentConflict, err)
		}
		return false, fmt.Errorf("%w: HasOverlap - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		OrderBy("start_at ASC", "staff_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.BranchID,
		&b.ServiceID,
		&b.StaffID,
		&b.StartAt,
		&b.EndAt,
		&b.Status,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.Note,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
