package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type BranchRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Branch, error)
}

type StaffRepository interface {
	ListActiveByBranch(ctx context.Context, branchID uuid.UUID) ([]*domain.Staff, error)
}

type ShiftRepository interface {
	ListShifts(ctx context.Context, staffIDs []uuid.UUID, from, to time.Time) ([]*domain.Shift, error)
}

type BookingRepository interface {
	ListByBranch(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]*domain.Booking, error)
}

// TransactionManager чтение дня выполняется в одном согласованном снимке
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
