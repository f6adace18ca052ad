package testutil

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	branchRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/branch"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	holdRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/hold"
	"github.com/m04kA/SMC-SchedulingService/pkg/pgerrors"
)

func overlaps(start, end, from, to time.Time) bool {
	return domain.Interval{Start: start, End: end}.Overlaps(domain.Interval{Start: from, End: to})
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
}

// BranchRepository in-memory репозиторий филиалов
type BranchRepository struct{ s *Store }

func (s *Store) Branches() *BranchRepository { return &BranchRepository{s: s} }

func (r *BranchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Branch, error) {
	if err := r.s.injected("Branches.GetByID"); err != nil {
		return nil, err
	}
	var out *domain.Branch
	err := r.s.with(ctx, func(st *state) error {
		b, ok := st.branches[id]
		if !ok {
			return branchRepo.ErrBranchNotFound
		}
		out = &b
		return nil
	})
	return out, err
}

func (r *BranchRepository) List(ctx context.Context) ([]*domain.Branch, error) {
	if err := r.s.injected("Branches.List"); err != nil {
		return nil, err
	}
	out := make([]*domain.Branch, 0)
	_ = r.s.with(ctx, func(st *state) error {
		for _, b := range st.branches {
			b := b
			out = append(out, &b)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CatalogRepository in-memory репозиторий услуг
type CatalogRepository struct{ s *Store }

func (s *Store) Catalog() *CatalogRepository { return &CatalogRepository{s: s} }

func (r *CatalogRepository) GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	if err := r.s.injected("Catalog.GetServiceByID"); err != nil {
		return nil, err
	}
	var out *domain.Service
	err := r.s.with(ctx, func(st *state) error {
		svc, ok := st.services[id]
		if !ok {
			return catalogRepo.ErrServiceNotFound
		}
		out = &svc
		return nil
	})
	return out, err
}

func (r *CatalogRepository) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]*domain.Service, error) {
	if err := r.s.injected("Catalog.ListByBranch"); err != nil {
		return nil, err
	}
	out := make([]*domain.Service, 0)
	_ = r.s.with(ctx, func(st *state) error {
		for _, svc := range st.services {
			svc := svc
			if svc.Active && st.branchServices[pair{branchID, svc.ID}] {
				out = append(out, &svc)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// StaffRepository in-memory репозиторий сотрудников
type StaffRepository struct{ s *Store }

func (s *Store) Staff() *StaffRepository { return &StaffRepository{s: s} }

func (r *StaffRepository) ListEligibleIDs(ctx context.Context, branchID, serviceID uuid.UUID, staffID *uuid.UUID) ([]uuid.UUID, error) {
	if err := r.s.injected("Staff.ListEligibleIDs"); err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0)
	_ = r.s.with(ctx, func(st *state) error {
		for _, s := range st.staff {
			if s.BranchID != branchID || !s.Active || !st.staffServices[pair{s.ID, serviceID}] {
				continue
			}
			if staffID != nil && *staffID != s.ID {
				continue
			}
			ids = append(ids, s.ID)
		}
		return nil
	})
	sortIDs(ids)
	return ids, nil
}

func (r *StaffRepository) ListActiveByBranch(ctx context.Context, branchID uuid.UUID) ([]*domain.Staff, error) {
	if err := r.s.injected("Staff.ListActiveByBranch"); err != nil {
		return nil, err
	}
	out := make([]*domain.Staff, 0)
	_ = r.s.with(ctx, func(st *state) error {
		for _, s := range st.staff {
			s := s
			if s.BranchID == branchID && s.Active {
				out = append(out, &s)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// CalendarRepository in-memory репозиторий смен, перерывов и отгулов
type CalendarRepository struct{ s *Store }

func (s *Store) Calendar() *CalendarRepository { return &CalendarRepository{s: s} }

func (r *CalendarRepository) ListShifts(ctx context.Context, staffIDs []uuid.UUID, from, to time.Time) ([]*domain.Shift, error) {
	if err := r.s.injected("Calendar.ListShifts"); err != nil {
		return nil, err
	}
	out := make([]*domain.Shift, 0)
	_ = r.s.with(ctx, func(st *state) error {
		for _, sh := range st.shifts {
			sh := sh
			if contains(staffIDs, sh.StaffID) && overlaps(sh.StartAt, sh.EndAt, from, to) {
				out = append(out, &sh)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (r *CalendarRepository) ListBreaks(ctx context.Context, staffIDs []uuid.UUID, from, to time.Time) ([]*domain.Break, error) {
	if err := r.s.injected("Calendar.ListBreaks"); err != nil {
		return nil, err
	}
	out := make([]*domain.Break, 0)
	_ = r.s.with(ctx, func(st *state) error {
		for _, br := range st.breaks {
			br := br
			if contains(staffIDs, br.StaffID) && overlaps(br.StartAt, br.EndAt, from, to) {
				out = append(out, &br)
			}
		}
		return nil
	})
	return out, nil
}

func (r *CalendarRepository) ListApprovedTimeOff(ctx context.Context, staffIDs []uuid.UUID, from, to time.Time) ([]*domain.TimeOff, error) {
	if err := r.s.injected("Calendar.ListApprovedTimeOff"); err != nil {
		return nil, err
	}
	out := make([]*domain.TimeOff, 0)
	_ = r.s.with(ctx, func(st *state) error {
		for _, off := range st.timeOffs {
			t := off
			if t.Approved && contains(staffIDs, t.StaffID) && overlaps(t.StartAt, t.EndAt, from, to) {
				out = append(out, &t)
			}
		}
		return nil
	})
	return out, nil
}

// BookingRepository in-memory репозиторий бронирований.
// Create повторяет ограничение bookings_no_staff_overlap
type BookingRepository struct{ s *Store }

func (s *Store) Bookings() *BookingRepository { return &BookingRepository{s: s} }

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := r.s.injected("Bookings.Create"); err != nil {
		return nil, err
	}
	err := r.s.with(ctx, func(st *state) error {
		for _, b := range st.bookings {
			if b.StaffID == booking.StaffID && b.IsBusy() && booking.Status != domain.StatusCancelled &&
				overlaps(b.StartAt, b.EndAt, booking.StartAt, booking.EndAt) {
				return fmt.Errorf("%w: %w: Create - exclusion violation", bookingRepo.ErrOverlap, pgerrors.ErrConcurrentConflict)
			}
		}
		now := time.Now().UTC()
		booking.ID = uuid.New()
		booking.CreatedAt = now
		booking.UpdatedAt = now
		st.bookings[booking.ID] = *booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if err := r.s.injected("Bookings.GetByID"); err != nil {
		return nil, err
	}
	var out *domain.Booking
	err := r.s.with(ctx, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}
		out = &b
		return nil
	})
	return out, err
}

func (r *BookingRepository) ListBusy(ctx context.Context, staffIDs []uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	if err := r.s.injected("Bookings.ListBusy"); err != nil {
		return nil, err
	}
	return r.filter(ctx, func(b domain.Booking) bool {
		return contains(staffIDs, b.StaffID) && b.IsBusy() && overlaps(b.StartAt, b.EndAt, from, to)
	}), nil
}

func (r *BookingRepository) ListByBranch(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	if err := r.s.injected("Bookings.ListByBranch"); err != nil {
		return nil, err
	}
	return r.filter(ctx, func(b domain.Booking) bool {
		return b.BranchID == branchID && b.IsBusy() && overlaps(b.StartAt, b.EndAt, from, to)
	}), nil
}

func (r *BookingRepository) HasOverlap(ctx context.Context, staffID uuid.UUID, start, end time.Time) (bool, error) {
	if err := r.s.injected("Bookings.HasOverlap"); err != nil {
		return false, err
	}
	found := r.filter(ctx, func(b domain.Booking) bool {
		return b.StaffID == staffID && b.IsBusy() && overlaps(b.StartAt, b.EndAt, start, end)
	})
	return len(found) > 0, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	if err := r.s.injected("Bookings.UpdateStatus"); err != nil {
		return err
	}
	return r.s.with(ctx, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}
		b.Status = status
		b.UpdatedAt = time.Now().UTC()
		st.bookings[id] = b
		return nil
	})
}

func (r *BookingRepository) filter(ctx context.Context, keep func(b domain.Booking) bool) []*domain.Booking {
	out := make([]*domain.Booking, 0)
	_ = r.s.with(ctx, func(st *state) error {
		for _, b := range st.bookings {
			b := b
			if keep(b) {
				out = append(out, &b)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out
}

// HoldRepository in-memory репозиторий холдов
type HoldRepository struct{ s *Store }

func (s *Store) Holds() *HoldRepository { return &HoldRepository{s: s} }

// LockStaff требует открытой транзакции. Блокировка обеспечивается самим мьютексом транзакции
func (r *HoldRepository) LockStaff(ctx context.Context, staffID uuid.UUID) error {
	if err := r.s.injected("Holds.LockStaff"); err != nil {
		return err
	}
	if tx, ok := ctx.Value(txKey{}).(*Store); !ok || tx != r.s {
		return holdRepo.ErrNotInTransaction
	}
	return nil
}

func (r *HoldRepository) Create(ctx context.Context, hold *domain.BookingHold) (*domain.BookingHold, error) {
	if err := r.s.injected("Holds.Create"); err != nil {
		return nil, err
	}
	_ = r.s.with(ctx, func(st *state) error {
		hold.ID = uuid.New()
		hold.CreatedAt = time.Now().UTC()
		st.holds[hold.ID] = *hold
		return nil
	})
	return hold, nil
}

func (r *HoldRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingHold, error) {
	if err := r.s.injected("Holds.GetByID"); err != nil {
		return nil, err
	}
	var out *domain.BookingHold
	err := r.s.with(ctx, func(st *state) error {
		h, ok := st.holds[id]
		if !ok {
			return holdRepo.ErrHoldNotFound
		}
		out = &h
		return nil
	})
	return out, err
}

func (r *HoldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.s.injected("Holds.Delete"); err != nil {
		return err
	}
	return r.s.with(ctx, func(st *state) error {
		if _, ok := st.holds[id]; !ok {
			return holdRepo.ErrHoldNotFound
		}
		delete(st.holds, id)
		return nil
	})
}

func (r *HoldRepository) ListActive(ctx context.Context, staffIDs []uuid.UUID, from, to, now time.Time) ([]*domain.BookingHold, error) {
	if err := r.s.injected("Holds.ListActive"); err != nil {
		return nil, err
	}
	out := make([]*domain.BookingHold, 0)
	_ = r.s.with(ctx, func(st *state) error {
		for _, h := range st.holds {
			h := h
			if contains(staffIDs, h.StaffID) && h.IsActive(now) && overlaps(h.StartAt, h.EndAt, from, to) {
				out = append(out, &h)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (r *HoldRepository) HasActiveOverlap(ctx context.Context, staffID uuid.UUID, start, end, now time.Time) (bool, error) {
	holds, err := r.ListActive(ctx, []uuid.UUID{staffID}, start, end, now)
	if err != nil {
		return false, err
	}
	return len(holds) > 0, nil
}

func (r *HoldRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if err := r.s.injected("Holds.DeleteExpired"); err != nil {
		return 0, err
	}
	var n int64
	_ = r.s.with(ctx, func(st *state) error {
		for id, h := range st.holds {
			if h.ExpiresAt.Before(before) {
				delete(st.holds, id)
				n++
			}
		}
		return nil
	})
	return n, nil
}

// OutboxRepository in-memory репозиторий outbox
type OutboxRepository struct{ s *Store }

func (s *Store) Outbox() *OutboxRepository { return &OutboxRepository{s: s} }

func (r *OutboxRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	if err := r.s.injected("Outbox.Create"); err != nil {
		return err
	}
	return r.s.with(ctx, func(st *state) error {
		if event.ID == uuid.Nil {
			event.ID = uuid.New()
		}
		event.CreatedAt = time.Now().UTC()
		st.outbox = append(st.outbox, *event)
		return nil
	})
}

func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if err := r.s.injected("Outbox.FetchPending"); err != nil {
		return nil, err
	}
	out := make([]*domain.OutboxEvent, 0)
	_ = r.s.with(ctx, func(st *state) error {
		for _, e := range st.outbox {
			e := e
			if e.PublishedAt == nil && len(out) < limit {
				out = append(out, &e)
			}
		}
		return nil
	})
	return out, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if err := r.s.injected("Outbox.MarkPublished"); err != nil {
		return err
	}
	return r.s.with(ctx, func(st *state) error {
		for i := range st.outbox {
			if contains(ids, st.outbox[i].ID) {
				published := at
				st.outbox[i].PublishedAt = &published
			}
		}
		return nil
	})
}
