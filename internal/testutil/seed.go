package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AddBranch добавляет филиал
func (s *Store) AddBranch(b domain.Branch) domain.Branch {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Timezone == "" {
		b.Timezone = "UTC"
	}
	_ = s.with(context.Background(), func(st *state) error {
		st.branches[b.ID] = b
		return nil
	})
	return b
}

// AddService добавляет услугу и делает её доступной в перечисленных филиалах
func (s *Store) AddService(svc domain.Service, branchIDs ...uuid.UUID) domain.Service {
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	_ = s.with(context.Background(), func(st *state) error {
		st.services[svc.ID] = svc
		for _, b := range branchIDs {
			st.branchServices[pair{b, svc.ID}] = true
		}
		return nil
	})
	return svc
}

// AddStaff добавляет сотрудника с активными квалификациями на услуги
func (s *Store) AddStaff(staff domain.Staff, serviceIDs ...uuid.UUID) domain.Staff {
	if staff.ID == uuid.Nil {
		staff.ID = uuid.New()
	}
	_ = s.with(context.Background(), func(st *state) error {
		st.staff[staff.ID] = staff
		for _, svc := range serviceIDs {
			st.staffServices[pair{staff.ID, svc}] = true
		}
		return nil
	})
	return staff
}

// SetQualification включает или выключает квалификацию сотрудника
func (s *Store) SetQualification(staffID, serviceID uuid.UUID, active bool) {
	_ = s.with(context.Background(), func(st *state) error {
		st.staffServices[pair{staffID, serviceID}] = active
		return nil
	})
}

func (s *Store) AddShift(staffID uuid.UUID, start, end time.Time) {
	_ = s.with(context.Background(), func(st *state) error {
		st.shifts = append(st.shifts, domain.Shift{ID: uuid.New(), StaffID: staffID, StartAt: start, EndAt: end})
		return nil
	})
}

func (s *Store) AddBreak(staffID uuid.UUID, start, end time.Time) {
	_ = s.with(context.Background(), func(st *state) error {
		st.breaks = append(st.breaks, domain.Break{ID: uuid.New(), StaffID: staffID, StartAt: start, EndAt: end})
		return nil
	})
}

func (s *Store) AddTimeOff(staffID uuid.UUID, start, end time.Time, approved bool) {
	_ = s.with(context.Background(), func(st *state) error {
		st.timeOffs = append(st.timeOffs, domain.TimeOff{ID: uuid.New(), StaffID: staffID, StartAt: start, EndAt: end, Approved: approved})
		return nil
	})
}

// AddBooking добавляет бронирование как есть, без проверки пересечений
func (s *Store) AddBooking(b domain.Booking) domain.Booking {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	_ = s.with(context.Background(), func(st *state) error {
		st.bookings[b.ID] = b
		return nil
	})
	return b
}

// AddHold добавляет холд как есть
func (s *Store) AddHold(h domain.BookingHold) domain.BookingHold {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	_ = s.with(context.Background(), func(st *state) error {
		st.holds[h.ID] = h
		return nil
	})
	return h
}

// AllBookings возвращает все бронирования по времени начала
func (s *Store) AllBookings() []domain.Booking {
	var out []domain.Booking
	_ = s.with(context.Background(), func(st *state) error {
		for _, b := range st.bookings {
			out = append(out, b)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out
}

// AllHolds возвращает все холды по времени начала
func (s *Store) AllHolds() []domain.BookingHold {
	var out []domain.BookingHold
	_ = s.with(context.Background(), func(st *state) error {
		for _, h := range st.holds {
			out = append(out, h)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out
}

// OutboxEvents возвращает все события outbox в порядке вставки
func (s *Store) OutboxEvents() []domain.OutboxEvent {
	var out []domain.OutboxEvent
	_ = s.with(context.Background(), func(st *state) error {
		out = append(out, st.outbox...)
		return nil
	})
	return out
}
