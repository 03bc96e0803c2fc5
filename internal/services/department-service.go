package services

import (
	"context"

	"ops-portal/internal/dto"
	"ops-portal/internal/repositories"
	"ops-portal/pkg/types"

	"go.uber.org/zap"
)

type DepartmentServiceInterface interface {
	GetDepartments(ctx context.Context, filter types.Filter) ([]dto.DepartmentDTO, uint64, error)
	FindDepartment(ctx context.Context, id uint64) (*dto.DepartmentDTO, error)
}

type DepartmentService struct {
	departmentRepo repositories.DepartmentRepositoryInterface
	logger         *zap.Logger
}

func NewDepartmentService(departmentRepo repositories.DepartmentRepositoryInterface, logger *zap.Logger) DepartmentServiceInterface {
	return &DepartmentService{departmentRepo: departmentRepo, logger: logger}
}

func (s *DepartmentService) GetDepartments(ctx context.Context, filter types.Filter) ([]dto.DepartmentDTO, uint64, error) {
	departments, total, err := s.departmentRepo.GetDepartments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.DepartmentDTO, 0, len(departments))
	for _, d := range departments {
		result = append(result, dto.DepartmentDTO{
			ID:         d.ID,
			Key:        d.Key,
			Name:       d.Name,
			NameRu:     d.NameRu,
			DocumentID: d.DocumentID,
		})
	}
	return result, total, nil
}

func (s *DepartmentService) FindDepartment(ctx context.Context, id uint64) (*dto.DepartmentDTO, error) {
	d, err := s.departmentRepo.FindDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.DepartmentDTO{
		ID:         d.ID,
		Key:        d.Key,
		Name:       d.Name,
		NameRu:     d.NameRu,
		DocumentID: d.DocumentID,
	}, nil
}
