package models

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BranchResponse филиал для публичного API
type BranchResponse struct {
	ID                   uuid.UUID
	Name                 string
	Slug                 string
	Timezone             string
	SlotStepMinutes      int
	BookingBufferMinutes int
}

// ServiceResponse услуга для публичного API
type ServiceResponse struct {
	ID              uuid.UUID
	Name            string
	DurationMinutes int
}

func FromDomainBranch(b *domain.Branch) *BranchResponse {
	return &BranchResponse{
		ID:                   b.ID,
		Name:                 b.Name,
		Slug:                 b.Slug,
		Timezone:             b.Timezone,
		SlotStepMinutes:      b.SlotStepMinutes,
		BookingBufferMinutes: b.BookingBufferMinutes,
	}
}

func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
	}
}
