package confirm_booking

import (
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	confirmBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/confirm_booking"
)

// ConfirmBookingRequest HTTP request model
type ConfirmBookingRequest struct {
	HoldID        string  `json:"holdId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	Note          *string `json:"note,omitempty"`
}

// ConfirmBookingResponse HTTP response model
type ConfirmBookingResponse struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *ConfirmBookingRequest) ToUseCaseRequest(fields handlers.FieldErrors) *confirmBooking.Request {
	return &confirmBooking.Request{
		HoldID:        fields.UUID("holdId", r.HoldID),
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Note:          r.Note,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *ConfirmBookingResponse {
	return &ConfirmBookingResponse{
		BookingID: resp.BookingID.String(),
		Status:    resp.Status,
	}
}
