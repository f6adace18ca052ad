package domain

import (
	"time"

	"github.com/google/uuid"
)

// Shift is a working interval of a staff member
type Shift struct {
	ID      uuid.UUID
	StaffID uuid.UUID
	StartAt time.Time
	EndAt   time.Time
}

func (s *Shift) Interval() Interval {
	return Interval{Start: s.StartAt, End: s.EndAt}
}

// Break is an interval inside a shift when the staff member is unavailable
type Break struct {
	ID      uuid.UUID
	StaffID uuid.UUID
	StartAt time.Time
	EndAt   time.Time
}

func (b *Break) Interval() Interval {
	return Interval{Start: b.StartAt, End: b.EndAt}
}

// TimeOff is a requested absence; only approved time off blocks availability
type TimeOff struct {
	ID       uuid.UUID
	StaffID  uuid.UUID
	StartAt  time.Time
	EndAt    time.Time
	Approved bool
	Reason   *string
}

func (t *TimeOff) Interval() Interval {
	return Interval{Start: t.StartAt, End: t.EndAt}
}

// CalendarSnapshot все календарные данные группы сотрудников за окно времени
type CalendarSnapshot struct {
	Shifts   []*Shift
	Breaks   []*Break
	TimeOffs []*TimeOff
	Bookings []*Booking
	Holds    []*BookingHold
}
