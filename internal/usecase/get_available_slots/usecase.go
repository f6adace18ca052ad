package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	branchRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/branch"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/pkg/daywindow"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	branchRepo   BranchRepository
	serviceRepo  ServiceRepository
	eligibility  EligibilityResolver
	calendarRepo CalendarRepository
	bookingRepo  BookingRepository
	holdRepo     HoldRepository
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	branchRepo BranchRepository,
	serviceRepo ServiceRepository,
	eligibility EligibilityResolver,
	calendarRepo CalendarRepository,
	bookingRepo BookingRepository,
	holdRepo HoldRepository,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		branchRepo:   branchRepo,
		serviceRepo:  serviceRepo,
		eligibility:  eligibility,
		calendarRepo: calendarRepo,
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: branch=%s, service=%s, staff=%v, date=%s",
		req.BranchID, req.ServiceID, req.StaffID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Филиал
	branch, err := uc.branchRepo.GetByID(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			uc.logger.Warn("GetAvailableSlots: branch id=%s not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get branch id=%s: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 3. Услуга
	service, err := uc.serviceRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Границы суток филиала
	window, err := daywindow.Resolve(req.Date, branch.Timezone)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: branch id=%s has bad timezone %q: %v", branch.ID, branch.Timezone, err)
		return nil, fmt.Errorf("%w: resolve day window: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:      req.Date,
		BranchID:  req.BranchID,
		ServiceID: req.ServiceID,
		Timezone:  branch.Timezone,
		Duration:  service.Duration(),
		Slots:     []Slot{},
	}

	// 5. Подходящие сотрудники. Пустой список - это отсутствие слотов, а не ошибка
	staffIDs, err := uc.eligibility.Resolve(ctx, req.BranchID, req.ServiceID, req.StaffID)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve eligible staff: %v", ErrInternal, err)
	}
	if len(staffIDs) == 0 {
		uc.logger.Info("GetAvailableSlots: no eligible staff for branch=%s, service=%s", req.BranchID, req.ServiceID)
		uc.metrics.ObserveSlots(0)
		return resp, nil
	}

	// 6. Снимок календаря за расширенное окно
	fetch := availability.FetchWindow(window, service.Duration())
	snapshot, err := uc.loadSnapshot(ctx, staffIDs, fetch, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load calendar: %v", err)
		return nil, fmt.Errorf("%w: load calendar: %v", ErrInternal, err)
	}

	// 7. Расчет
	slots := availability.Compute(availability.Params{
		Window:   window,
		Step:     branch.SlotStep(),
		Duration: service.Duration(),
		Buffer:   branch.BookingBuffer(),
		Now:      now,
		StaffIDs: staffIDs,
	}, snapshot)

	for _, slot := range slots {
		local, err := daywindow.Local(slot.Start, branch.Timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: local time: %v", ErrInternal, err)
		}
		resp.Slots = append(resp.Slots, Slot{Start: slot.Start, LocalStart: local, StaffID: slot.StaffID})
	}

	uc.metrics.ObserveSlots(len(resp.Slots))
	uc.logger.Info("GetAvailableSlots: generated %d slots for branch=%s, service=%s, date=%s",
		len(resp.Slots), req.BranchID, req.ServiceID, req.Date)

	return resp, nil
}

// loadSnapshot параллельно загружает календарь сотрудников за окно
func (uc *UseCase) loadSnapshot(ctx context.Context, staffIDs []uuid.UUID, w daywindow.Window, now time.Time) (*domain.CalendarSnapshot, error) {
	snapshot := &domain.CalendarSnapshot{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		shifts, err := uc.calendarRepo.ListShifts(gCtx, staffIDs, w.Start, w.End)
		if err != nil {
			return fmt.Errorf("shifts: %w", err)
		}
		snapshot.Shifts = shifts
		return nil
	})
	g.Go(func() error {
		breaks, err := uc.calendarRepo.ListBreaks(gCtx, staffIDs, w.Start, w.End)
		if err != nil {
			return fmt.Errorf("breaks: %w", err)
		}
		snapshot.Breaks = breaks
		return nil
	})
	g.Go(func() error {
		timeOffs, err := uc.calendarRepo.ListApprovedTimeOff(gCtx, staffIDs, w.Start, w.End)
		if err != nil {
			return fmt.Errorf("time off: %w", err)
		}
		snapshot.TimeOffs = timeOffs
		return nil
	})
	g.Go(func() error {
		bookings, err := uc.bookingRepo.ListBusy(gCtx, staffIDs, w.Start, w.End)
		if err != nil {
			return fmt.Errorf("bookings: %w", err)
		}
		snapshot.Bookings = bookings
		return nil
	})
	g.Go(func() error {
		holds, err := uc.holdRepo.ListActive(gCtx, staffIDs, w.Start, w.End, now)
		if err != nil {
			return fmt.Errorf("holds: %w", err)
		}
		snapshot.Holds = holds
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}
