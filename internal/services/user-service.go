package services

import (
	"context"

	"ops-portal/internal/authz"
	"ops-portal/internal/dto"
	"ops-portal/internal/entities"
	"ops-portal/internal/repositories"
	apperrors "ops-portal/pkg/errors"
	"ops-portal/pkg/types"
	"ops-portal/pkg/utils"

	"go.uber.org/zap"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error)
	GetAssignableUsers(ctx context.Context, actorID uint64) ([]dto.ShortUserDTO, uint64, error)
	FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, actorID uint64, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, actorID, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, actorID, id uint64) error
}

type UserService struct {
	userRepo repositories.UserRepositoryInterface
	roleRepo repositories.RoleRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, roleRepo repositories.RoleRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{userRepo: userRepo, roleRepo: roleRepo, logger: logger}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	users, total, err := s.userRepo.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		result = append(result, toUserDTO(&users[i]))
	}
	return result, total, nil
}

// GetAssignableUsers отдает пользователей, которых запрашивающий может
// назначать: суперадмину — всех, остальным — только свой департамент.
func (s *UserService) GetAssignableUsers(ctx context.Context, actorID uint64) ([]dto.ShortUserDTO, uint64, error) {
	actor, err := s.userRepo.FindUser(ctx, actorID)
	if err != nil {
		return nil, 0, apperrors.ErrUnauthorized
	}
	caps := authz.CapabilitiesForUser(actor)

	var departmentKey string
	if actor.DepartmentKey != nil {
		departmentKey = *actor.DepartmentKey
	}

	filter := authz.AssignableUserFilters(caps, departmentKey)
	if filter == nil {
		// Нет департамента и нет прав суперадмина — назначать некого.
		return []dto.ShortUserDTO{}, 0, nil
	}

	users, total, err := s.userRepo.GetUsers(ctx, *filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.ShortUserDTO, 0, len(users))
	for _, user := range users {
		result = append(result, dto.ShortUserDTO{
			ID:            user.ID,
			Fio:           user.Fio,
			DepartmentKey: user.DepartmentKey,
		})
	}
	return result, total, nil
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(user)
	return &result, nil
}

func (s *UserService) CreateUser(ctx context.Context, actorID uint64, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := s.checkRoleExists(ctx, payload.RoleID); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(payload.Password)
	if err != nil {
		s.logger.Error("не удалось захэшировать пароль", zap.Error(err))
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, entities.User{
		Fio:              payload.Fio,
		Email:            payload.Email,
		Password:         hashedPassword,
		RoleID:           payload.RoleID,
		DepartmentID:     payload.DepartmentID,
		DashboardEnabled: payload.DashboardEnabled,
		ProjectsEnabled:  payload.ProjectsEnabled,
		HelpdeskEnabled:  payload.HelpdeskEnabled,
	})
	if err != nil {
		return nil, err
	}
	result := toUserDTO(user)
	return &result, nil
}

func (s *UserService) UpdateUser(ctx context.Context, actorID, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := s.checkRoleExists(ctx, payload.RoleID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateUser(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(user)
	return &result, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actorID, id uint64) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if actorID == id {
		return apperrors.NewValidationError("Нельзя удалить собственный аккаунт")
	}
	return s.userRepo.SoftDeleteUser(ctx, id)
}

func (s *UserService) checkRoleExists(ctx context.Context, roleID *uint64) error {
	if roleID == nil {
		return nil
	}
	if _, err := s.roleRepo.FindRole(ctx, *roleID); err != nil {
		return apperrors.NewValidationError("Роль (id=%d) не найдена", *roleID)
	}
	return nil
}

// Управление пользователями доступно только администраторам.
func (s *UserService) requireAdmin(ctx context.Context, actorID uint64) error {
	actor, err := s.userRepo.FindUser(ctx, actorID)
	if err != nil {
		return apperrors.ErrUnauthorized
	}
	if !authz.CapabilitiesForUser(actor).IsAdmin {
		return apperrors.NewForbiddenError("Управление пользователями доступно только администратору")
	}
	return nil
}
