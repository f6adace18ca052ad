package confirm_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	holdRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/hold"
	"github.com/m04kA/SMC-SchedulingService/pkg/pgerrors"
)

const tracerName = "scheduling/confirm_booking"

// UseCase use case для подтверждения холда
type UseCase struct {
	holdRepo      HoldRepository
	bookingRepo   BookingRepository
	outboxRepo    OutboxRepository
	txManager     TransactionManager
	metrics       Metrics
	defaultRegion string
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case.
// defaultRegion - регион (ISO 3166-1 alpha-2) для разбора телефонов без кода страны
func NewUseCase(
	holdRepo HoldRepository,
	bookingRepo BookingRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	metrics Metrics,
	defaultRegion string,
	logger Logger,
) *UseCase {
	return &UseCase{
		holdRepo:      holdRepo,
		bookingRepo:   bookingRepo,
		outboxRepo:    outboxRepo,
		txManager:     txManager,
		metrics:       metrics,
		defaultRegion: defaultRegion,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute превращает непросроченный холд в подтвержденное бронирование.
// Бронирование, удаление холда и событие outbox пишутся в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ConfirmBooking")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	uc.logger.Info("ConfirmBooking: hold=%s", req.HoldID)

	// 1. Валидация и нормализация контактов
	customer, err := validateRequest(req, uc.defaultRegion)
	if err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		return nil, err
	}

	span.SetAttributes(attribute.String("hold.id", req.HoldID.String()))

	now := uc.timeProvider.Now()

	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Блокируем строку холда
		hold, err := uc.holdRepo.GetByID(txCtx, req.HoldID)
		if err != nil {
			if errors.Is(err, holdRepo.ErrHoldNotFound) {
				return ErrHoldNotFound
			}
			return fmt.Errorf("get hold: %w", err)
		}

		// 3. Свежесть холда
		if hold.IsExpired(now) {
			return ErrHoldExpired
		}

		// 4. Бронирование с полями холда
		booking, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			BranchID:      hold.BranchID,
			ServiceID:     hold.ServiceID,
			StaffID:       hold.StaffID,
			StartAt:       hold.StartAt,
			EndAt:         hold.EndAt,
			Status:        domain.StatusConfirmed,
			CustomerName:  customer.name,
			CustomerEmail: customer.email,
			CustomerPhone: customer.phone,
			Note:          customer.note,
		})
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		// 5. Холд больше не нужен
		if err := uc.holdRepo.Delete(txCtx, hold.ID); err != nil {
			return fmt.Errorf("delete hold: %w", err)
		}

		// 6. Событие для уведомлений
		event, err := newConfirmedEvent(booking)
		if err != nil {
			return fmt.Errorf("build event: %w", err)
		}
		if err := uc.outboxRepo.Create(txCtx, event); err != nil {
			return fmt.Errorf("insert outbox event: %w", err)
		}

		created = booking
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrHoldNotFound):
			uc.logger.Warn("ConfirmBooking: hold id=%s not found", req.HoldID)
			return nil, ErrHoldNotFound
		case errors.Is(err, ErrHoldExpired):
			uc.logger.Warn("ConfirmBooking: hold id=%s expired", req.HoldID)
			return nil, ErrHoldExpired
		case errors.Is(err, pgerrors.ErrConcurrentConflict):
			// холд уже подтвержден параллельным запросом
			uc.logger.Warn("ConfirmBooking: hold id=%s consumed concurrently: %v", req.HoldID, err)
			return nil, ErrHoldNotFound
		}
		uc.logger.Error("ConfirmBooking: transaction failed for hold id=%s: %v", req.HoldID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.IncBookingsConfirmed()
	uc.logger.Info("ConfirmBooking: created booking id=%s from hold id=%s", created.ID, req.HoldID)

	return &Response{
		BookingID: created.ID,
		Status:    string(created.Status),
		StaffID:   created.StaffID,
		StartAt:   created.StartAt,
		EndAt:     created.EndAt,
	}, nil
}

func newConfirmedEvent(b *domain.Booking) (*domain.OutboxEvent, error) {
	payload, err := json.Marshal(domain.BookingConfirmedPayload{
		BookingID:     b.ID,
		BranchID:      b.BranchID,
		ServiceID:     b.ServiceID,
		StaffID:       b.StaffID,
		StartAt:       b.StartAt,
		EndAt:         b.EndAt,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
	})
	if err != nil {
		return nil, err
	}

	return &domain.OutboxEvent{
		AggregateID: b.ID,
		EventType:   domain.EventBookingConfirmed,
		Payload:     payload,
	}, nil
}
