package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// UpdateStatusRequest запрос на административное изменение статуса
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// BookingResponse бронирование для ответа API
type BookingResponse struct {
	ID            uuid.UUID
	BranchID      uuid.UUID
	ServiceID     uuid.UUID
	StaffID       uuid.UUID
	StartAt       time.Time
	EndAt         time.Time
	Status        string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Note          *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FromDomainBooking конвертирует domain.Booking в ответ сервиса
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID,
		BranchID:      b.BranchID,
		ServiceID:     b.ServiceID,
		StaffID:       b.StaffID,
		StartAt:       b.StartAt,
		EndAt:         b.EndAt,
		Status:        string(b.Status),
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Note:          b.Note,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
