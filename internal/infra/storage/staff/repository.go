package staff

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий сотрудников и их квалификаций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListEligibleIDs возвращает ID активных сотрудников филиала с активной квалификацией
// на услугу, упорядоченные по возрастанию. staffID сужает выборку до одного сотрудника
func (r *Repository) ListEligibleIDs(ctx context.Context, branchID, serviceID uuid.UUID, staffID *uuid.UUID) ([]uuid.UUID, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("st.id").
		From("staff st").
		Join("staff_services ss ON ss.staff_id = st.id").
		Where(squirrel.Eq{
			"st.branch_id":  branchID,
			"st.active":     true,
			"ss.service_id": serviceID,
			"ss.active":     true,
		}).
		OrderBy("st.id ASC")

	if staffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"st.id": *staffID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListEligibleIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEligibleIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListEligibleIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEligibleIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// ListActiveByBranch возвращает активных сотрудников филиала
func (r *Repository) ListActiveByBranch(ctx context.Context, branchID uuid.UUID) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "branch_id", "name", "active").
		From("staff").
		Where(squirrel.Eq{"branch_id": branchID, "active": true}).
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByBranch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByBranch - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]*domain.Staff, 0)
	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.ID, &s.BranchID, &s.Name, &s.Active); err != nil {
			return nil, fmt.Errorf("%w: ListActiveByBranch - scan staff: %v", ErrScanRow, err)
		}
		staff = append(staff, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByBranch - rows error: %v", ErrScanRow, err)
	}

	return staff, nil
}
