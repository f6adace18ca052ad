package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	BranchID  string          `json:"branchId"`
	ServiceID string          `json:"serviceId"`
	Timezone  string          `json:"timezone"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Start      string `json:"start"`
	LocalStart string `json:"localStart"`
	StaffID    string `json:"staffId"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Start:      slot.Start.UTC().Format(time.RFC3339),
			LocalStart: slot.LocalStart.Format(time.RFC3339),
			StaffID:    slot.StaffID.String(),
		}
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.String(),
		BranchID:  resp.BranchID.String(),
		ServiceID: resp.ServiceID.String(),
		Timezone:  resp.Timezone,
		Slots:     slots,
	}
}
