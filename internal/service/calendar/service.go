package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	branchRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/branch"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendar/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/daywindow"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Service административный просмотр календаря филиала
type Service struct {
	branchRepo  BranchRepository
	staffRepo   StaffRepository
	shiftRepo   ShiftRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

func NewService(
	branchRepo BranchRepository,
	staffRepo StaffRepository,
	shiftRepo ShiftRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		branchRepo:  branchRepo,
		staffRepo:   staffRepo,
		shiftRepo:   shiftRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetDay возвращает активных сотрудников филиала, их смены и неотмененные бронирования
// за локальные сутки date
func (s *Service) GetDay(ctx context.Context, branchID uuid.UUID, date types.Date) (*models.DayView, error) {
	s.logger.Info("GetDay: branch=%s date=%s", branchID, date)

	var view *models.DayView

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		branch, err := s.branchRepo.GetByID(txCtx, branchID)
		if err != nil {
			if errors.Is(err, branchRepo.ErrBranchNotFound) {
				return ErrBranchNotFound
			}
			return fmt.Errorf("%w: GetDay - get branch: %v", ErrInternal, err)
		}

		window, err := daywindow.Resolve(date, branch.Timezone)
		if err != nil {
			return fmt.Errorf("%w: GetDay - branch timezone: %v", ErrInternal, err)
		}

		staff, err := s.staffRepo.ListActiveByBranch(txCtx, branchID)
		if err != nil {
			return fmt.Errorf("%w: GetDay - list staff: %v", ErrInternal, err)
		}

		staffIDs := make([]uuid.UUID, 0, len(staff))
		for _, st := range staff {
			staffIDs = append(staffIDs, st.ID)
		}

		shifts, err := s.shiftRepo.ListShifts(txCtx, staffIDs, window.Start, window.End)
		if err != nil {
			return fmt.Errorf("%w: GetDay - list shifts: %v", ErrInternal, err)
		}

		bookings, err := s.bookingRepo.ListByBranch(txCtx, branchID, window.Start, window.End)
		if err != nil {
			return fmt.Errorf("%w: GetDay - list bookings: %v", ErrInternal, err)
		}

		view = &models.DayView{
			Date:     date,
			Branch:   branch,
			From:     window.Start,
			To:       window.End,
			Staff:    groupShifts(staff, shifts),
			Bookings: bookings,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("GetDay: branch=%s date=%s: %v", branchID, date, err)
		} else {
			s.logger.Warn("GetDay: branch=%s date=%s: %v", branchID, date, err)
		}
		return nil, err
	}

	return view, nil
}

func groupShifts(staff []*domain.Staff, shifts []*domain.Shift) []*models.StaffDay {
	byStaff := make(map[uuid.UUID][]*domain.Shift, len(staff))
	for _, sh := range shifts {
		byStaff[sh.StaffID] = append(byStaff[sh.StaffID], sh)
	}

	days := make([]*models.StaffDay, 0, len(staff))
	for _, st := range staff {
		list := byStaff[st.ID]
		if list == nil {
			list = []*domain.Shift{}
		}
		days = append(days, &models.StaffDay{Staff: st, Shifts: list})
	}
	return days
}
