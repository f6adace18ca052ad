package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository читает смены, перерывы и отгулы сотрудников.
// Все выборки возвращают записи, пересекающиеся с [from, to)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListShifts возвращает смены сотрудников, пересекающиеся с окном
func (r *Repository) ListShifts(ctx context.Context, staffIDs []uuid.UUID, from, to time.Time) ([]*domain.Shift, error) {
	if len(staffIDs) == 0 {
		return []*domain.Shift{}, nil
	}

	shifts := make([]*domain.Shift, 0)
	err := r.query(ctx, "ListShifts", "shifts", []string{"id", "staff_id", "start_at", "end_at"},
		staffIDs, from, to, nil,
		func(rows *sql.Rows) error {
			var s domain.Shift
			if err := rows.Scan(&s.ID, &s.StaffID, &s.StartAt, &s.EndAt); err != nil {
				return err
			}
			shifts = append(shifts, &s)
			return nil
		})
	if err != nil {
		return nil, err
	}

	return shifts, nil
}

// ListBreaks возвращает перерывы сотрудников, пересекающиеся с окном
func (r *Repository) ListBreaks(ctx context.Context, staffIDs []uuid.UUID, from, to time.Time) ([]*domain.Break, error) {
	if len(staffIDs) == 0 {
		return []*domain.Break{}, nil
	}

	breaks := make([]*domain.Break, 0)
	err := r.query(ctx, "ListBreaks", "breaks", []string{"id", "staff_id", "start_at", "end_at"},
		staffIDs, from, to, nil,
		func(rows *sql.Rows) error {
			var b domain.Break
			if err := rows.Scan(&b.ID, &b.StaffID, &b.StartAt, &b.EndAt); err != nil {
				return err
			}
			breaks = append(breaks, &b)
			return nil
		})
	if err != nil {
		return nil, err
	}

	return breaks, nil
}

// ListApprovedTimeOff возвращает одобренные отгулы сотрудников, пересекающиеся с окном
func (r *Repository) ListApprovedTimeOff(ctx context.Context, staffIDs []uuid.UUID, from, to time.Time) ([]*domain.TimeOff, error) {
	if len(staffIDs) == 0 {
		return []*domain.TimeOff{}, nil
	}

	timeOffs := make([]*domain.TimeOff, 0)
	err := r.query(ctx, "ListApprovedTimeOff", "time_off",
		[]string{"id", "staff_id", "start_at", "end_at", "approved", "reason"},
		staffIDs, from, to, squirrel.Eq{"approved": true},
		func(rows *sql.Rows) error {
			var t domain.TimeOff
			if err := rows.Scan(&t.ID, &t.StaffID, &t.StartAt, &t.EndAt, &t.Approved, &t.Reason); err != nil {
				return err
			}
			timeOffs = append(timeOffs, &t)
			return nil
		})
	if err != nil {
		return nil, err
	}

	return timeOffs, nil
}

func (r *Repository) query(
	ctx context.Context,
	op, table string,
	columns []string,
	staffIDs []uuid.UUID,
	from, to time.Time,
	extra squirrel.Sqlizer,
	scan func(rows *sql.Rows) error,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"staff_id": staffIDs}).
		Where(psqlbuilder.Overlaps("start_at", "end_at", from, to)).
		OrderBy("staff_id ASC", "start_at ASC")

	if extra != nil {
		selectBuilder = selectBuilder.Where(extra)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return nil
}
