package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/pgerrors"
)

const tracerName = "scheduling/create_hold"

// UseCase use case для временного удержания слота
type UseCase struct {
	availability AvailabilityUseCase
	holdRepo     HoldRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	metrics      Metrics
	holdTTL      time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityUseCase,
	holdRepo HoldRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	holdTTL time.Duration,
	logger Logger,
) *UseCase {
	if holdTTL <= 0 {
		holdTTL = domain.DefaultHoldTTLMinutes * time.Minute
	}
	return &UseCase{
		availability: availability,
		holdRepo:     holdRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		metrics:      metrics,
		holdTTL:      holdTTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания холда.
// Слот проверяется по пересчитанной доступности, затем в сериализуемой транзакции
// перепроверяются пересечения. Ошибки сериализации считаются занятым слотом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CreateHold")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	uc.logger.Info("CreateHold: branch=%s, service=%s, staff=%s, start=%s, date=%s",
		req.BranchID, req.ServiceID, req.StaffID, req.StartAt.Format(time.RFC3339), req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("branch.id", req.BranchID.String()),
		attribute.String("staff.id", req.StaffID.String()),
		attribute.String("slot.start", req.StartAt.UTC().Format(time.RFC3339)),
	)

	// 2. Пересчитываем доступность для выбранного сотрудника
	available, err := uc.availability.Execute(ctx, &get_available_slots.Request{
		BranchID:  req.BranchID,
		ServiceID: req.ServiceID,
		StaffID:   &req.StaffID,
		Date:      req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, get_available_slots.ErrBranchNotFound):
			return nil, ErrBranchNotFound
		case errors.Is(err, get_available_slots.ErrServiceNotFound):
			return nil, ErrServiceNotFound
		case errors.Is(err, get_available_slots.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.metrics.IncHoldOutcome(outcomeError)
		return nil, fmt.Errorf("%w: recompute availability: %v", ErrInternal, err)
	}

	// 3. Слот должен быть среди свободных
	if !containsSlot(available.Slots, req.StaffID, req.StartAt) {
		uc.logger.Warn("CreateHold: slot %s for staff=%s is not available",
			req.StartAt.Format(time.RFC3339), req.StaffID)
		uc.metrics.IncHoldOutcome(outcomeNotAvailable)
		return nil, ErrSlotNotAvailable
	}

	now := uc.timeProvider.Now()
	startAt := req.StartAt.UTC()
	hold := &domain.BookingHold{
		BranchID:  req.BranchID,
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		StartAt:   startAt,
		EndAt:     startAt.Add(available.Duration),
		ExpiresAt: now.Add(uc.holdTTL),
	}

	// 4. Перепроверка и вставка в сериализуемой транзакции
	var created *domain.BookingHold
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.holdRepo.LockStaff(txCtx, hold.StaffID); err != nil {
			return fmt.Errorf("lock staff: %w", err)
		}

		held, err := uc.holdRepo.HasActiveOverlap(txCtx, hold.StaffID, hold.StartAt, hold.EndAt, now)
		if err != nil {
			return fmt.Errorf("check holds: %w", err)
		}
		if held {
			return ErrSlotTaken
		}

		booked, err := uc.bookingRepo.HasOverlap(txCtx, hold.StaffID, hold.StartAt, hold.EndAt)
		if err != nil {
			return fmt.Errorf("check bookings: %w", err)
		}
		if booked {
			return ErrSlotTaken
		}

		created, err = uc.holdRepo.Create(txCtx, hold)
		if err != nil {
			return fmt.Errorf("insert hold: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, pgerrors.ErrConcurrentConflict) {
			uc.logger.Warn("CreateHold: slot %s for staff=%s was taken concurrently: %v",
				hold.StartAt.Format(time.RFC3339), hold.StaffID, err)
			uc.metrics.IncHoldOutcome(outcomeTaken)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CreateHold: transaction failed: %v", err)
		uc.metrics.IncHoldOutcome(outcomeError)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.IncHoldOutcome(outcomeCreated)
	uc.logger.Info("CreateHold: created hold id=%s, expires at %s",
		created.ID, created.ExpiresAt.Format(time.RFC3339))

	return &Response{
		HoldID:    created.ID,
		StaffID:   created.StaffID,
		StartAt:   created.StartAt,
		EndAt:     created.EndAt,
		ExpiresAt: created.ExpiresAt,
	}, nil
}

func containsSlot(slots []get_available_slots.Slot, staffID uuid.UUID, start time.Time) bool {
	for _, s := range slots {
		if s.StaffID == staffID && s.Start.Equal(start) {
			return true
		}
	}
	return false
}
