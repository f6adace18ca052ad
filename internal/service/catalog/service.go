package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	branchRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/branch"
	"github.com/m04kA/SMC-SchedulingService/internal/service/catalog/models"
)

// Service справочник филиалов и услуг
type Service struct {
	branchRepo  BranchRepository
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(branchRepo BranchRepository, serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		branchRepo:  branchRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// ListBranches возвращает все филиалы
func (s *Service) ListBranches(ctx context.Context) ([]*models.BranchResponse, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListBranches: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBranches - repository error: %v", ErrInternal, err)
	}

	result := make([]*models.BranchResponse, 0, len(branches))
	for _, b := range branches {
		result = append(result, models.FromDomainBranch(b))
	}
	return result, nil
}

// ListBranchServices возвращает активные услуги филиала
func (s *Service) ListBranchServices(ctx context.Context, branchID uuid.UUID) ([]*models.ServiceResponse, error) {
	if _, err := s.branchRepo.GetByID(ctx, branchID); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("ListBranchServices: branch id=%s not found", branchID)
			return nil, ErrBranchNotFound
		}
		s.logger.Error("ListBranchServices: get branch id=%s: %v", branchID, err)
		return nil, fmt.Errorf("%w: ListBranchServices - get branch: %v", ErrInternal, err)
	}

	services, err := s.serviceRepo.ListByBranch(ctx, branchID)
	if err != nil {
		s.logger.Error("ListBranchServices: branch id=%s: %v", branchID, err)
		return nil, fmt.Errorf("%w: ListBranchServices - repository error: %v", ErrInternal, err)
	}

	result := make([]*models.ServiceResponse, 0, len(services))
	for _, svc := range services {
		result = append(result, models.FromDomainService(svc))
	}
	return result, nil
}
