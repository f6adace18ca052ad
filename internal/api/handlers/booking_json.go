package handlers

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// BookingJSON бронирование в HTTP ответах
type BookingJSON struct {
	ID            string  `json:"id"`
	BranchID      string  `json:"branchId"`
	ServiceID     string  `json:"serviceId"`
	StaffID       string  `json:"staffId"`
	StartAt       string  `json:"startAt"`
	EndAt         string  `json:"endAt"`
	Status        string  `json:"status"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	Note          *string `json:"note,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// FromBookingResponse конвертирует ответ сервиса бронирований в JSON модель
func FromBookingResponse(b *models.BookingResponse) *BookingJSON {
	return &BookingJSON{
		ID:            b.ID.String(),
		BranchID:      b.BranchID.String(),
		ServiceID:     b.ServiceID.String(),
		StaffID:       b.StaffID.String(),
		StartAt:       b.StartAt.UTC().Format(time.RFC3339),
		EndAt:         b.EndAt.UTC().Format(time.RFC3339),
		Status:        b.Status,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Note:          b.Note,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
