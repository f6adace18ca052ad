package domain

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEvent событие, записанное в одной транзакции с бизнес-изменением
// и доставляемое в брокер асинхронно
type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// BookingConfirmedPayload содержимое события booking.confirmed
type BookingConfirmedPayload struct {
	BookingID     uuid.UUID `json:"bookingId"`
	BranchID      uuid.UUID `json:"branchId"`
	ServiceID     uuid.UUID `json:"serviceId"`
	StaffID       uuid.UUID `json:"staffId"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
}
