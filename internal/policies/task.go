package policies

import (
	"context"

	"ops-portal/internal/authz"
	"ops-portal/internal/dto"
	"ops-portal/internal/entities"
	apperrors "ops-portal/pkg/errors"

	"go.uber.org/zap"
)

// TaskPolicy — гейт на мутации задач. Зеркало ProjectPolicy для более
// простой связки "одна задача — один проект — один исполнитель".
type TaskPolicy struct {
	users    UserReader
	projects ProjectReader
	tasks    TaskReader
	resolver *DepartmentResolver
	logger   *zap.Logger
}

func NewTaskPolicy(users UserReader, projects ProjectReader, tasks TaskReader, resolver *DepartmentResolver, logger *zap.Logger) *TaskPolicy {
	return &TaskPolicy{users: users, projects: projects, tasks: tasks, resolver: resolver, logger: logger}
}

// ValidateWrite проверяет создание (taskID == 0) или обновление задачи.
func (p *TaskPolicy) ValidateWrite(ctx context.Context, actorID, taskID uint64, payload *dto.TaskWriteDTO) error {
	if payload == nil {
		return apperrors.NewValidationError("Пустое тело запроса")
	}
	return p.validate(ctx, actorID, taskID, payload)
}

// ValidateDelete проверяет удаление: те же департаментные правила,
// но без payload.
func (p *TaskPolicy) ValidateDelete(ctx context.Context, actorID, taskID uint64) error {
	return p.validate(ctx, actorID, taskID, &dto.TaskWriteDTO{})
}

func (p *TaskPolicy) validate(ctx context.Context, actorID, taskID uint64, payload *dto.TaskWriteDTO) error {
	if actorID == 0 {
		return apperrors.NewUnauthorizedError("Требуется аутентификация")
	}

	actor, err := p.users.FindUser(ctx, actorID)
	if err != nil {
		return apperrors.NewUnauthorizedError("Пользователь не найден")
	}
	caps := authz.CapabilitiesForUser(actor)

	// Суперадмин обходит все проверки.
	if caps.IsSuperAdmin {
		return nil
	}

	if actor.DepartmentKey == nil || *actor.DepartmentKey == "" {
		return apperrors.NewForbiddenError("У вас не указан департамент, операция недоступна")
	}

	var existing *entities.Task
	if taskID != 0 {
		existing, err = p.tasks.FindTask(ctx, taskID)
		if err != nil {
			return apperrors.NewValidationError("Задача не найдена")
		}
	}

	projectID, ok := p.effectiveProjectID(payload, existing)
	if !ok {
		return apperrors.NewValidationError("Для задачи обязателен проект")
	}

	project, err := p.projects.FindProject(ctx, projectID)
	if err != nil {
		return apperrors.NewValidationError("Проект задачи не найден")
	}

	projectDeptKey := p.resolver.ResolveKey(ctx, project.DepartmentID)
	if projectDeptKey == "" {
		return apperrors.NewValidationError("Департамент проекта не найден")
	}

	if projectDeptKey != *actor.DepartmentKey {
		return apperrors.NewForbiddenError("Задачи проекта другого департамента вам недоступны")
	}

	if assigneeID, ok := p.effectiveAssigneeID(payload, existing); ok {
		assignee, err := p.users.FindUser(ctx, assigneeID)
		if err != nil {
			return apperrors.NewValidationError("Исполнитель задачи (id=%d) не найден", assigneeID)
		}
		if assignee.DepartmentKey == nil || *assignee.DepartmentKey != projectDeptKey {
			return apperrors.NewForbiddenError("Исполнитель задачи должен быть из департамента проекта")
		}
	}

	// Сроки задачи ограничены сроком проекта.
	if payload.DueDate != nil && project.DueDate != nil && payload.DueDate.After(*project.DueDate) {
		return apperrors.NewValidationError("Срок задачи не может превышать срок проекта")
	}

	return nil
}

func (p *TaskPolicy) effectiveProjectID(payload *dto.TaskWriteDTO, existing *entities.Task) (uint64, bool) {
	if payload.Project != nil {
		return payload.Project.First()
	}
	if existing != nil && existing.ProjectID != 0 {
		return existing.ProjectID, true
	}
	return 0, false
}

func (p *TaskPolicy) effectiveAssigneeID(payload *dto.TaskWriteDTO, existing *entities.Task) (uint64, bool) {
	if payload.Assignee != nil {
		return payload.Assignee.First()
	}
	if existing != nil && existing.AssigneeID != nil {
		return *existing.AssigneeID, true
	}
	return 0, false
}
