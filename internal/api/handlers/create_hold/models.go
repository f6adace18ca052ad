package create_hold

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createHold "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_hold"
)

// CreateHoldRequest HTTP request model
type CreateHoldRequest struct {
	BranchID  string `json:"branchId"`
	ServiceID string `json:"serviceId"`
	StaffID   string `json:"staffId"`
	StartAt   string `json:"startAt"`
	Date      string `json:"date"`
}

// HoldResponse HTTP response model
type HoldResponse struct {
	HoldID    string `json:"holdId"`
	StaffID   string `json:"staffId"`
	StartAt   string `json:"startAt"`
	EndAt     string `json:"endAt"`
	ExpiresAt string `json:"expiresAt"`
}

// ToUseCaseRequest разбирает поля запроса, ошибки накапливаются в fields
func (r *CreateHoldRequest) ToUseCaseRequest(fields handlers.FieldErrors) *createHold.Request {
	return &createHold.Request{
		BranchID:  fields.UUID("branchId", r.BranchID),
		ServiceID: fields.UUID("serviceId", r.ServiceID),
		StaffID:   fields.UUID("staffId", r.StaffID),
		StartAt:   fields.Time("startAt", r.StartAt),
		Date:      fields.Date("date", r.Date),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createHold.Response) *HoldResponse {
	return &HoldResponse{
		HoldID:    resp.HoldID.String(),
		StaffID:   resp.StaffID.String(),
		StartAt:   resp.StartAt.UTC().Format(time.RFC3339),
		EndAt:     resp.EndAt.UTC().Format(time.RFC3339),
		ExpiresAt: resp.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
