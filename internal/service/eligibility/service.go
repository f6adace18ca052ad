package eligibility

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Service определяет, какие сотрудники могут выполнить услугу в филиале
type Service struct {
	staffRepo StaffRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса
func NewService(staffRepo StaffRepository, logger Logger) *Service {
	return &Service{staffRepo: staffRepo, logger: logger}
}

// Resolve возвращает ID активных сотрудников филиала с активной квалификацией на услугу,
// по возрастанию. Если staffID задан, результат содержит только его или пуст.
// Пустой результат не является ошибкой
func (s *Service) Resolve(ctx context.Context, branchID, serviceID uuid.UUID, staffID *uuid.UUID) ([]uuid.UUID, error) {
	ids, err := s.staffRepo.ListEligibleIDs(ctx, branchID, serviceID, staffID)
	if err != nil {
		s.logger.Error("Resolve: branch=%s service=%s: %v", branchID, serviceID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	if staffID != nil {
		ids = slices.DeleteFunc(ids, func(id uuid.UUID) bool { return id != *staffID })
	}

	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	ids = slices.Compact(ids)

	if len(ids) == 0 {
		s.logger.Info("Resolve: no eligible staff for branch=%s service=%s", branchID, serviceID)
	}

	return ids, nil
}
