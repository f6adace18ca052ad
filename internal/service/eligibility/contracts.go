package eligibility

import (
	"context"

	"github.com/google/uuid"
)

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	ListEligibleIDs(ctx context.Context, branchID, serviceID uuid.UUID, staffID *uuid.UUID) ([]uuid.UUID, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
