package create_hold_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eligibility"
	memstore "github.com/m04kA/SMC-SchedulingService/internal/testutil"
	uc "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_hold"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/pgerrors"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fixture struct {
	store   *memstore.Store
	clock   *memstore.Clock
	metrics *metrics.Metrics
	slots   *get_available_slots.UseCase
	useCase *uc.UseCase
	branch  domain.Branch
	service domain.Service
	staff   domain.Staff
	date    types.Date
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.NewStore()
	clock := memstore.NewClock(time.Date(2025, time.January, 14, 12, 0, 0, 0, time.UTC))
	log := logger.Nop()
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	branch := store.AddBranch(domain.Branch{Name: "Main", Timezone: "UTC", SlotStepMinutes: 30})
	service := store.AddService(domain.Service{Name: "Massage", DurationMinutes: 60, Active: true}, branch.ID)
	staff := store.AddStaff(domain.Staff{BranchID: branch.ID, Name: "Anna", Active: true}, service.ID)
	store.AddShift(staff.ID, utcAt(10, 0), utcAt(14, 0))

	slots := get_available_slots.NewUseCase(
		store.Branches(),
		store.Catalog(),
		eligibility.NewService(store.Staff(), log),
		store.Calendar(),
		store.Bookings(),
		store.Holds(),
		m,
		log,
	).WithTimeProvider(clock)

	useCase := uc.NewUseCase(slots, store.Holds(), store.Bookings(), store.TxManager(), m, 10*time.Minute, log).
		WithTimeProvider(clock)

	return &fixture{
		store:   store,
		clock:   clock,
		metrics: m,
		slots:   slots,
		useCase: useCase,
		branch:  branch,
		service: service,
		staff:   staff,
		date:    types.Date{Year: 2025, Month: time.January, Day: 15},
	}
}

func (f *fixture) request(start time.Time) *uc.Request {
	return &uc.Request{
		BranchID:  f.branch.ID,
		ServiceID: f.service.ID,
		StaffID:   f.staff.ID,
		StartAt:   start,
		Date:      f.date,
	}
}

func utcAt(h, m int) time.Time {
	return time.Date(2025, time.January, 15, h, m, 0, 0, time.UTC)
}

func TestExecute_CreatesHold(t *testing.T) {
	f := newFixture(t)

	resp, err := f.useCase.Execute(context.Background(), f.request(utcAt(11, 0)))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.HoldID)
	assert.Equal(t, utcAt(11, 0), resp.StartAt)
	assert.Equal(t, utcAt(12, 0), resp.EndAt)
	assert.Equal(t, f.clock.Now().Add(10*time.Minute), resp.ExpiresAt)

	holds := f.store.AllHolds()
	require.Len(t, holds, 1)
	assert.Equal(t, resp.HoldID, holds[0].ID)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.HoldOutcomes.WithLabelValues("test", "created")))

	// холд убирает слот из выдачи
	avail, err := f.slots.Execute(context.Background(), &get_available_slots.Request{
		BranchID: f.branch.ID, ServiceID: f.service.ID, Date: f.date,
	})
	require.NoError(t, err)
	for _, s := range avail.Slots {
		assert.False(t, s.Start.Before(utcAt(12, 0)) && s.Start.After(utcAt(10, 0)),
			"slot %s overlaps the hold", s.Start)
	}
}

func TestExecute_OverlappingSecondHold(t *testing.T) {
	f := newFixture(t)

	_, err := f.useCase.Execute(context.Background(), f.request(utcAt(11, 0)))
	require.NoError(t, err)

	_, err = f.useCase.Execute(context.Background(), f.request(utcAt(11, 30)))
	assert.ErrorIs(t, err, uc.ErrConflict)
	assert.ErrorIs(t, err, uc.ErrSlotNotAvailable)
	assert.Len(t, f.store.AllHolds(), 1)
}

func TestExecute_ExpiredHoldDoesNotBlock(t *testing.T) {
	f := newFixture(t)

	_, err := f.useCase.Execute(context.Background(), f.request(utcAt(11, 0)))
	require.NoError(t, err)

	f.clock.Advance(11 * time.Minute)

	_, err = f.useCase.Execute(context.Background(), f.request(utcAt(11, 0)))
	require.NoError(t, err)
}

func TestExecute_SlotNotOnGrid(t *testing.T) {
	f := newFixture(t)

	_, err := f.useCase.Execute(context.Background(), f.request(utcAt(11, 10)))
	assert.ErrorIs(t, err, uc.ErrSlotNotAvailable)

	_, err = f.useCase.Execute(context.Background(), f.request(utcAt(13, 30)))
	assert.ErrorIs(t, err, uc.ErrSlotNotAvailable, "slot would end after the shift")
}

// staleAvailability возвращает слот, как если бы пересчет успел до параллельного холда
type staleAvailability struct {
	resp *get_available_slots.Response
}

func (s *staleAvailability) Execute(context.Context, *get_available_slots.Request) (*get_available_slots.Response, error) {
	return s.resp, nil
}

func TestExecute_RecheckInsideTransaction(t *testing.T) {
	f := newFixture(t)
	log := logger.Nop()

	stale := &staleAvailability{resp: &get_available_slots.Response{
		Duration: time.Hour,
		Slots:    []get_available_slots.Slot{{Start: utcAt(11, 0), StaffID: f.staff.ID}},
	}}
	useCase := uc.NewUseCase(stale, f.store.Holds(), f.store.Bookings(), f.store.TxManager(), f.metrics, 0, log).
		WithTimeProvider(f.clock)

	t.Run("active hold", func(t *testing.T) {
		f.store.AddHold(domain.BookingHold{
			StaffID: f.staff.ID, StartAt: utcAt(11, 30), EndAt: utcAt(12, 30),
			ExpiresAt: f.clock.Now().Add(time.Minute),
		})
		_, err := useCase.Execute(context.Background(), f.request(utcAt(11, 0)))
		assert.ErrorIs(t, err, uc.ErrSlotTaken)
		assert.ErrorIs(t, err, uc.ErrConflict)
	})

	t.Run("booking", func(t *testing.T) {
		g := newFixture(t)
		g.store.AddBooking(domain.Booking{
			StaffID: g.staff.ID, StartAt: utcAt(10, 30), EndAt: utcAt(11, 30), Status: domain.StatusConfirmed,
		})
		stale.resp.Slots[0].StaffID = g.staff.ID
		useCase := uc.NewUseCase(stale, g.store.Holds(), g.store.Bookings(), g.store.TxManager(), g.metrics, 0, log).
			WithTimeProvider(g.clock)

		_, err := useCase.Execute(context.Background(), g.request(utcAt(11, 0)))
		assert.ErrorIs(t, err, uc.ErrSlotTaken)
		assert.Empty(t, g.store.AllHolds())
	})
}

func TestExecute_ConcurrentHoldsExactlyOneWins(t *testing.T) {
	f := newFixture(t)

	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.useCase.Execute(context.Background(), f.request(utcAt(12, 0)))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, uc.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
	assert.Len(t, f.store.AllHolds(), 1)
}

func TestExecute_SerializationFailureIsSlotTaken(t *testing.T) {
	// транзакция, дождавшаяся блокировки сотрудника, читает снимок до ожидания,
	// поэтому конфликт может всплыть на любом шаге
	for _, op := range []string{"Holds.LockStaff", "Bookings.HasOverlap", "Holds.Create"} {
		t.Run(op, func(t *testing.T) {
			f := newFixture(t)
			f.store.FailOn(op, fmt.Errorf("%w: could not serialize access", pgerrors.ErrConcurrentConflict))

			_, err := f.useCase.Execute(context.Background(), f.request(utcAt(11, 0)))
			assert.ErrorIs(t, err, uc.ErrSlotTaken)
			assert.NotErrorIs(t, err, uc.ErrInternal)
			assert.Empty(t, f.store.AllHolds())
			assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.HoldOutcomes.WithLabelValues("test", "taken")))
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(t)

	t.Run("validation", func(t *testing.T) {
		req := f.request(utcAt(11, 0))
		req.StaffID = uuid.Nil
		_, err := f.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, uc.ErrInvalidInput)

		req = f.request(time.Time{})
		_, err = f.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, uc.ErrInvalidInput)
	})

	t.Run("unknown branch", func(t *testing.T) {
		req := f.request(utcAt(11, 0))
		req.BranchID = uuid.New()
		_, err := f.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, uc.ErrBranchNotFound)
	})

	t.Run("unknown service", func(t *testing.T) {
		req := f.request(utcAt(11, 0))
		req.ServiceID = uuid.New()
		_, err := f.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, uc.ErrServiceNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		g := newFixture(t)
		g.store.FailOn("Holds.LockStaff", errors.New("connection reset"))
		_, err := g.useCase.Execute(context.Background(), g.request(utcAt(11, 0)))
		assert.ErrorIs(t, err, uc.ErrInternal)
		assert.Empty(t, g.store.AllHolds())
	})
}
