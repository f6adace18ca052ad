package list_branches

import (
	"github.com/m04kA/SMC-SchedulingService/internal/service/catalog/models"
)

// BranchResponse HTTP response model
type BranchResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Slug                 string `json:"slug"`
	Timezone             string `json:"timezone"`
	SlotStepMinutes      int    `json:"slotStepMinutes"`
	BookingBufferMinutes int    `json:"bookingBufferMinutes"`
}

func fromServiceBranches(branches []*models.BranchResponse) []BranchResponse {
	out := make([]BranchResponse, len(branches))
	for i, b := range branches {
		out[i] = BranchResponse{
			ID:                   b.ID.String(),
			Name:                 b.Name,
			Slug:                 b.Slug,
			Timezone:             b.Timezone,
			SlotStepMinutes:      b.SlotStepMinutes,
			BookingBufferMinutes: b.BookingBufferMinutes,
		}
	}
	return out
}
