package branch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var branchColumns = []string{
	"id",
	"name",
	"slug",
	"timezone",
	"slot_step_min",
	"booking_buffer_min",
	"created_at",
}

// Repository репозиторий филиалов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория филиалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает филиал по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(branchColumns...).
		From("branches").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Branch
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.Name,
		&b.Slug,
		&b.Timezone,
		&b.SlotStepMinutes,
		&b.BookingBufferMinutes,
		&b.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan branch: %v", ErrScanRow, err)
	}

	return &b, nil
}

// List возвращает все филиалы, упорядоченные по названию
func (r *Repository) List(ctx context.Context) ([]*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(branchColumns...).
		From("branches").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	branches := make([]*domain.Branch, 0)
	for rows.Next() {
		var b domain.Branch
		if err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Slug,
			&b.Timezone,
			&b.SlotStepMinutes,
			&b.BookingBufferMinutes,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan branch: %v", ErrScanRow, err)
		}
		branches = append(branches, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return branches, nil
}
