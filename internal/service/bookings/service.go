package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// UpdateStatus переводит бронирование в CANCELLED, COMPLETED или NO_SHOW.
// Изменить можно только бронирования в статусе HOLD или CONFIRMED
func (s *Service) UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%s to status=%s", bookingID, req.Status)

	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil || !domain.IsTerminalTarget(status) {
		s.logger.Warn("UpdateStatus: invalid target status=%q for booking id=%s", req.Status, bookingID)
		return nil, ErrInvalidStatus
	}

	var result *domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get booking: %v", ErrInternal, err)
		}

		if !booking.CanChangeStatus() {
			s.logger.Warn("UpdateStatus: booking id=%s is already %s", bookingID, booking.Status)
			return ErrCannotChangeStatus
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, status); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - update: %v", ErrInternal, err)
		}

		booking.Status = status
		result = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("UpdateStatus: booking id=%s: %v", bookingID, err)
		}
		return nil, err
	}

	s.logger.Info("UpdateStatus: booking id=%s is now %s", bookingID, status)
	return models.FromDomainBooking(result), nil
}
