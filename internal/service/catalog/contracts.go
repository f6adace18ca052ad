package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Branch, error)
	List(ctx context.Context) ([]*domain.Branch, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	ListByBranch(ctx context.Context, branchID uuid.UUID) ([]*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
