package domain

import "errors"

// Default configuration values
const (
	DefaultSlotStepMinutes = 15
	DefaultHoldTTLMinutes  = 10
)

// Business validation constants
const (
	MinCustomerNameLength  = 2
	MinCustomerPhoneLength = 9
	MaxCustomerNameLength  = 200
	MaxNoteLength          = 1000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Outbox event types
const (
	EventBookingConfirmed = "booking.confirmed"
)

// ErrUnknownBookingStatus неизвестный статус бронирования
var ErrUnknownBookingStatus = errors.New("domain: unknown booking status")

// BusyStatuses статусы бронирований, занимающих время сотрудника
var BusyStatuses = []BookingStatus{
	StatusHold,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
}
