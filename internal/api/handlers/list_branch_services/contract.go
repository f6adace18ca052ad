package list_branch_services

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListBranchServices(ctx context.Context, branchID uuid.UUID) ([]*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
