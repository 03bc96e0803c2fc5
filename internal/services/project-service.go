package services

import (
	"context"

	"ops-portal/internal/authz"
	"ops-portal/internal/dto"
	"ops-portal/internal/entities"
	"ops-portal/internal/policies"
	"ops-portal/internal/repositories"
	"ops-portal/pkg/constants"
	apperrors "ops-portal/pkg/errors"
	"ops-portal/pkg/types"
	"ops-portal/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProjectServiceInterface interface {
	GetProjects(ctx context.Context, filter types.Filter) ([]dto.ProjectDTO, uint64, error)
	GetBoard(ctx context.Context) ([]dto.BoardColumnDTO, error)
	FindProject(ctx context.Context, id uint64) (*dto.ProjectDTO, error)
	CreateProject(ctx context.Context, actorID uint64, payload dto.ProjectWriteDTO) (*dto.ProjectDTO, error)
	UpdateProject(ctx context.Context, actorID, id uint64, payload dto.ProjectWriteDTO) (*dto.ProjectDTO, error)
	DeleteProject(ctx context.Context, actorID, id uint64) error
	HardDeleteProject(ctx context.Context, actorID, id uint64) error
}

type ProjectService struct {
	projectRepo    repositories.ProjectRepositoryInterface
	taskRepo       repositories.TaskRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	stageRepo      repositories.StageRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	policy         *policies.ProjectPolicy
	resolver       *policies.DepartmentResolver
	txManager      repositories.TxManagerInterface
	logger         *zap.Logger
}

func NewProjectService(
	projectRepo repositories.ProjectRepositoryInterface,
	taskRepo repositories.TaskRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	stageRepo repositories.StageRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	policy *policies.ProjectPolicy,
	resolver *policies.DepartmentResolver,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) ProjectServiceInterface {
	return &ProjectService{
		projectRepo:    projectRepo,
		taskRepo:       taskRepo,
		departmentRepo: departmentRepo,
		stageRepo:      stageRepo,
		userRepo:       userRepo,
		policy:         policy,
		resolver:       resolver,
		txManager:      txManager,
		logger:         logger,
	}
}

func (s *ProjectService) GetProjects(ctx context.Context, filter types.Filter) ([]dto.ProjectDTO, uint64, error) {
	projects, total, err := s.projectRepo.GetProjects(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	departments, stageBuckets, err := s.loadLookups(ctx)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.ProjectDTO, 0, len(projects))
	for i := range projects {
		item, err := s.toProjectDTO(ctx, &projects[i], departments, stageBuckets)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *item)
	}
	return result, total, nil
}

// GetBoard раскладывает активные проекты по канбан-колонкам [1..5]
// по корзине их этапа. Проекты без этапа попадают в первую колонку.
func (s *ProjectService) GetBoard(ctx context.Context) ([]dto.BoardColumnDTO, error) {
	filter := types.Filter{Filter: map[string]interface{}{"status": constants.ProjectStatusActive}}
	projects, _, err := s.GetProjects(ctx, filter)
	if err != nil {
		return nil, err
	}

	columns := make([]dto.BoardColumnDTO, 0, constants.StageOrderMax)
	for bucket := constants.StageOrderMin; bucket <= constants.StageOrderMax; bucket++ {
		column := dto.BoardColumnDTO{Bucket: bucket, Projects: []dto.ProjectDTO{}}
		for _, project := range projects {
			if project.StageBucket == bucket {
				column.Projects = append(column.Projects, project)
			}
		}
		columns = append(columns, column)
	}
	return columns, nil
}

func (s *ProjectService) FindProject(ctx context.Context, id uint64) (*dto.ProjectDTO, error) {
	project, err := s.projectRepo.FindProject(ctx, id)
	if err != nil {
		return nil, err
	}
	departments, stageBuckets, err := s.loadLookups(ctx)
	if err != nil {
		return nil, err
	}
	return s.toProjectDTO(ctx, project, departments, stageBuckets)
}

func (s *ProjectService) CreateProject(ctx context.Context, actorID uint64, payload dto.ProjectWriteDTO) (*dto.ProjectDTO, error) {
	if err := s.policy.ValidateWrite(ctx, actorID, 0, &payload); err != nil {
		return nil, err
	}

	departmentID, err := s.resolveDepartmentID(ctx, actorID, payload)
	if err != nil {
		return nil, err
	}
	if departmentID == nil {
		return nil, apperrors.NewValidationError("Не удалось определить департамент проекта")
	}

	ownerID, ok := payload.Owner.First()
	if !ok {
		return nil, apperrors.NewValidationError("Для проекта обязателен владелец")
	}

	project := entities.Project{
		DepartmentID: *departmentID,
		OwnerID:      ownerID,
		Status:       constants.ProjectStatusActive,
		StageID:      payload.StageID,
		StartDate:    payload.StartDate,
		DueDate:      payload.DueDate,
	}
	if payload.Name != nil {
		project.Name = *payload.Name
	}
	if payload.Description != nil {
		project.Description = *payload.Description
	}
	if payload.Status != nil {
		project.Status = *payload.Status
	}

	var createdID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.projectRepo.CreateProjectInTx(ctx, tx, project)
		if err != nil {
			return err
		}
		createdID = id
		if err := s.projectRepo.ReplaceMembersInTx(ctx, tx, id, repositories.SupportingSpecialistsTable, payload.SupportingSpecialists.IDs()); err != nil {
			return err
		}
		return s.projectRepo.ReplaceMembersInTx(ctx, tx, id, repositories.ResponsibleUsersTable, payload.ResponsibleUsers.IDs())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("проект создан", zap.Uint64("project_id", createdID), zap.Uint64("actor_id", actorID))
	return s.FindProject(ctx, createdID)
}

func (s *ProjectService) UpdateProject(ctx context.Context, actorID, id uint64, payload dto.ProjectWriteDTO) (*dto.ProjectDTO, error) {
	if err := s.policy.ValidateWrite(ctx, actorID, id, &payload); err != nil {
		return nil, err
	}

	var departmentID *uint64
	if payload.Department != nil {
		resolved, err := s.resolveDepartmentID(ctx, actorID, payload)
		if err != nil {
			return nil, err
		}
		if resolved == nil {
			return nil, apperrors.NewValidationError("Не удалось определить департамент проекта")
		}
		departmentID = resolved
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.projectRepo.UpdateProjectInTx(ctx, tx, id, payload, departmentID); err != nil {
			return err
		}
		if payload.SupportingSpecialists != nil {
			if err := s.projectRepo.ReplaceMembersInTx(ctx, tx, id, repositories.SupportingSpecialistsTable, payload.SupportingSpecialists.IDs()); err != nil {
				return err
			}
		}
		if payload.ResponsibleUsers != nil {
			if err := s.projectRepo.ReplaceMembersInTx(ctx, tx, id, repositories.ResponsibleUsersTable, payload.ResponsibleUsers.IDs()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.FindProject(ctx, id)
}

// DeleteProject — мягкое удаление переводом в статус DELETED.
func (s *ProjectService) DeleteProject(ctx context.Context, actorID, id uint64) error {
	payload := dto.ProjectWriteDTO{Status: utils.StringPtr(constants.ProjectStatusDeleted)}
	if err := s.policy.ValidateWrite(ctx, actorID, id, &payload); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.projectRepo.UpdateProjectInTx(ctx, tx, id, payload, nil)
	})
}

// HardDeleteProject — безвозвратное удаление, только для суперадмина.
func (s *ProjectService) HardDeleteProject(ctx context.Context, actorID, id uint64) error {
	actor, err := s.userRepo.FindUser(ctx, actorID)
	if err != nil {
		return apperrors.ErrUnauthorized
	}
	if !authz.CapabilitiesForUser(actor).IsSuperAdmin {
		return apperrors.NewForbiddenError("Безвозвратное удаление проекта доступно только суперадминистратору")
	}
	return s.projectRepo.HardDeleteProject(ctx, id)
}

// resolveDepartmentID: явный департамент из запроса → департамент автора.
func (s *ProjectService) resolveDepartmentID(ctx context.Context, actorID uint64, payload dto.ProjectWriteDTO) (*uint64, error) {
	if payload.Department != nil {
		key := s.resolver.ResolveKey(ctx, payload.Department.Value())
		if key == "" {
			return nil, apperrors.NewValidationError("Не удалось определить департамент проекта")
		}
		department, err := s.departmentRepo.FindDepartmentByKey(ctx, key)
		if err != nil {
			return nil, apperrors.NewValidationError("Департамент %s не найден", key)
		}
		return &department.ID, nil
	}

	actor, err := s.userRepo.FindUser(ctx, actorID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return actor.DepartmentID, nil
}

func (s *ProjectService) loadLookups(ctx context.Context) (map[uint64]entities.Department, map[uint64]int, error) {
	departmentList, _, err := s.departmentRepo.GetDepartments(ctx, types.Filter{})
	if err != nil {
		return nil, nil, err
	}
	departments := make(map[uint64]entities.Department, len(departmentList))
	for _, d := range departmentList {
		departments[d.ID] = d
	}

	stageList, err := s.stageRepo.GetStages(ctx)
	if err != nil {
		return nil, nil, err
	}
	stageBuckets := make(map[uint64]int, len(stageList))
	for _, stage := range stageList {
		stageBuckets[stage.ID] = BucketStageOrder(stage.SortOrder)
	}
	return departments, stageBuckets, nil
}

func (s *ProjectService) toProjectDTO(ctx context.Context, project *entities.Project, departments map[uint64]entities.Department, stageBuckets map[uint64]int) (*dto.ProjectDTO, error) {
	tasks, err := s.taskRepo.GetTasksByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	bucket := constants.StageOrderMin
	if project.StageID != nil {
		if b, ok := stageBuckets[*project.StageID]; ok {
			bucket = b
		}
	}

	department := dto.ShortDepartmentDTO{ID: project.DepartmentID}
	if d, ok := departments[project.DepartmentID]; ok {
		department.Key = d.Key
	}

	return &dto.ProjectDTO{
		ID:                      project.ID,
		Name:                    project.Name,
		Description:             project.Description,
		Department:              department,
		OwnerID:                 project.OwnerID,
		SupportingSpecialistIDs: project.SupportingSpecialistIDs,
		ResponsibleUserIDs:      project.ResponsibleUserIDs,
		Status:                  project.Status,
		StageID:                 project.StageID,
		StageBucket:             bucket,
		StartDate:               project.StartDate,
		DueDate:                 project.DueDate,
		Progress:                ComputeProjectProgress(tasks),
		CreatedAt:               project.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:               project.UpdatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
