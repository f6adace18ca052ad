package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusHold      BookingStatus = "HOLD"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusNoShow    BookingStatus = "NO_SHOW"
	StatusCancelled BookingStatus = "CANCELLED"
)

// ParseBookingStatus разбирает статус бронирования
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case StatusHold, StatusConfirmed, StatusCompleted, StatusNoShow, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBookingStatus, s)
}

// Booking represents a customer's appointment with a staff member
type Booking struct {
	ID        uuid.UUID
	BranchID  uuid.UUID
	ServiceID uuid.UUID
	StaffID   uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
	Status    BookingStatus

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Note          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the [StartAt, EndAt) interval of the booking
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartAt, End: b.EndAt}
}

// IsBusy returns true if the booking occupies staff time (everything except CANCELLED)
func (b *Booking) IsBusy() bool {
	return b.Status != StatusCancelled
}

// CanChangeStatus returns true if the booking may still be moved to a terminal status
func (b *Booking) CanChangeStatus() bool {
	return b.Status == StatusHold || b.Status == StatusConfirmed
}

// IsTerminalTarget сообщает, можно ли перевести бронирование в статус st административно
func IsTerminalTarget(st BookingStatus) bool {
	return st == StatusCancelled || st == StatusCompleted || st == StatusNoShow
}

// BookingHold is a short-lived reservation of a staff interval before confirmation
type BookingHold struct {
	ID        uuid.UUID
	BranchID  uuid.UUID
	ServiceID uuid.UUID
	StaffID   uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Interval returns the [StartAt, EndAt) interval of the hold
func (h *BookingHold) Interval() Interval {
	return Interval{Start: h.StartAt, End: h.EndAt}
}

// IsActive returns true while the hold blocks the interval: expires_at > now
func (h *BookingHold) IsActive(now time.Time) bool {
	return h.ExpiresAt.After(now)
}

// IsExpired returns true once the hold can no longer be confirmed: expires_at < now
func (h *BookingHold) IsExpired(now time.Time) bool {
	return h.ExpiresAt.Before(now)
}
