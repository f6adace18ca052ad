package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Branch, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// EligibilityResolver определяет сотрудников, которые могут оказать услугу в филиале
type EligibilityResolver interface {
	Resolve(ctx context.Context, branchID, serviceID uuid.UUID, staffID *uuid.UUID) ([]uuid.UUID, error)
}

// CalendarRepository интерфейс репозитория смен, перерывов и отгулов
type CalendarRepository interface {
	ListShifts(ctx context.Context, staffIDs []uuid.UUID, from, to time.Time) ([]*domain.Shift, error)
	ListBreaks(ctx context.Context, staffIDs []uuid.UUID, from, to time.Time) ([]*domain.Break, error)
	ListApprovedTimeOff(ctx context.Context, staffIDs []uuid.UUID, from, to time.Time) ([]*domain.TimeOff, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListBusy(ctx context.Context, staffIDs []uuid.UUID, from, to time.Time) ([]*domain.Booking, error)
}

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	ListActive(ctx context.Context, staffIDs []uuid.UUID, from, to, now time.Time) ([]*domain.BookingHold, error)
}

// Metrics метрики расчета доступности
type Metrics interface {
	ObserveSlots(count int)
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
