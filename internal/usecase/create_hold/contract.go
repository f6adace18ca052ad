package create_hold

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// AvailabilityUseCase пересчитывает доступность перед созданием холда
type AvailabilityUseCase interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	LockStaff(ctx context.Context, staffID uuid.UUID) error
	HasActiveOverlap(ctx context.Context, staffID uuid.UUID, start, end, now time.Time) (bool, error)
	Create(ctx context.Context, hold *domain.BookingHold) (*domain.BookingHold, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	HasOverlap(ctx context.Context, staffID uuid.UUID, start, end time.Time) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики исходов создания холда
type Metrics interface {
	IncHoldOutcome(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
