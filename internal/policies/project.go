package policies

import (
	"context"

	"ops-portal/internal/authz"
	"ops-portal/internal/dto"
	"ops-portal/internal/entities"
	apperrors "ops-portal/pkg/errors"

	"go.uber.org/zap"
)

// ProjectPolicy — гейт на мутации проектов. Вызывается перед записью;
// возвращает nil, если запрос разрешен, иначе типизированную ошибку
// (401/403/400), которую транспортный слой отдает клиенту как есть.
// Сам ничего не пишет.
type ProjectPolicy struct {
	users    UserReader
	projects ProjectReader
	resolver *DepartmentResolver
	logger   *zap.Logger
}

func NewProjectPolicy(users UserReader, projects ProjectReader, resolver *DepartmentResolver, logger *zap.Logger) *ProjectPolicy {
	return &ProjectPolicy{users: users, projects: projects, resolver: resolver, logger: logger}
}

// ValidateWrite проверяет создание (projectID == 0) или обновление проекта.
//
// Порядок проверок фиксирован: структурные проверки владельца и дат идут
// до департаментных; суперадмин обходит только департаментные.
func (p *ProjectPolicy) ValidateWrite(ctx context.Context, actorID, projectID uint64, payload *dto.ProjectWriteDTO) error {
	if actorID == 0 {
		return apperrors.NewUnauthorizedError("Требуется аутентификация")
	}
	if payload == nil {
		return apperrors.NewValidationError("Пустое тело запроса")
	}

	isCreate := projectID == 0

	// Чистая смена статуса (архивация/восстановление/мягкое удаление)
	// никогда не перепроверяет назначения.
	if !isCreate && payload.IsStatusOnly() {
		return nil
	}

	actor, err := p.users.FindUser(ctx, actorID)
	if err != nil {
		return apperrors.NewUnauthorizedError("Пользователь не найден")
	}
	caps := authz.CapabilitiesForUser(actor)

	var existing *entities.Project
	if !isCreate {
		existing, err = p.projects.FindProject(ctx, projectID)
		if err != nil {
			return apperrors.NewValidationError("Проект не найден")
		}
	}

	// Владелец обязателен при создании.
	if isCreate && payload.Owner.IsEmpty() {
		return apperrors.NewValidationError("Для проекта обязателен владелец")
	}

	// Смена владельца — привилегированная операция. Явно переданное
	// пустое поле владельца — структурная ошибка.
	if !isCreate && payload.Owner != nil {
		if !caps.CanManageOwners() {
			return apperrors.NewForbiddenError("Изменять владельца проекта может только администратор или руководитель")
		}
		if payload.Owner.IsEmpty() {
			return apperrors.NewValidationError("Поле владельца не может быть пустым")
		}
	}

	if err := p.validateDates(payload, existing); err != nil {
		return err
	}

	// Суперадмин обходит все департаментные проверки.
	if caps.IsSuperAdmin {
		return nil
	}

	if actor.DepartmentKey == nil || *actor.DepartmentKey == "" {
		return apperrors.NewForbiddenError("У вас не указан департамент, операция недоступна")
	}

	deptKey, err := p.effectiveDepartmentKey(ctx, payload, existing, *actor.DepartmentKey)
	if err != nil {
		return err
	}

	// Каждый назначенный пользователь должен принадлежать департаменту
	// проекта. Нетронутые поля проверяются по сохраненным значениям.
	for _, id := range p.effectiveAssigneeIDs(payload, existing) {
		if err := p.checkAssigneeDepartment(ctx, id, deptKey); err != nil {
			return err
		}
	}

	return nil
}

func (p *ProjectPolicy) validateDates(payload *dto.ProjectWriteDTO, existing *entities.Project) error {
	start := payload.StartDate
	due := payload.DueDate
	if existing != nil {
		if start == nil {
			start = existing.StartDate
		}
		if due == nil {
			due = existing.DueDate
		}
	}
	if start != nil && due != nil && start.After(*due) {
		return apperrors.NewValidationError("Дата начала проекта не может быть позже даты завершения")
	}
	return nil
}

// effectiveDepartmentKey: явный департамент из запроса → департамент
// существующего проекта → департамент запрашивающего.
func (p *ProjectPolicy) effectiveDepartmentKey(ctx context.Context, payload *dto.ProjectWriteDTO, existing *entities.Project, actorKey string) (string, error) {
	if payload.Department != nil {
		key := p.resolver.ResolveKey(ctx, payload.Department.Value())
		if key == "" {
			return "", apperrors.NewValidationError("Не удалось определить департамент проекта")
		}
		return key, nil
	}
	if existing != nil {
		key := p.resolver.ResolveKey(ctx, existing.DepartmentID)
		if key == "" {
			return "", apperrors.NewValidationError("Департамент проекта не найден")
		}
		return key, nil
	}
	return actorKey, nil
}

// effectiveAssigneeIDs собирает владельца, сопровождающих специалистов и
// ответственных: новые значения для тронутых полей, сохраненные — для
// остальных. Дубликаты убираются с сохранением порядка.
func (p *ProjectPolicy) effectiveAssigneeIDs(payload *dto.ProjectWriteDTO, existing *entities.Project) []uint64 {
	var ids []uint64

	if payload.Owner != nil {
		ids = append(ids, payload.Owner.IDs()...)
	} else if existing != nil && existing.OwnerID != 0 {
		ids = append(ids, existing.OwnerID)
	}

	if payload.SupportingSpecialists != nil {
		ids = append(ids, payload.SupportingSpecialists.IDs()...)
	} else if existing != nil {
		ids = append(ids, existing.SupportingSpecialistIDs...)
	}

	if payload.ResponsibleUsers != nil {
		ids = append(ids, payload.ResponsibleUsers.IDs()...)
	} else if existing != nil {
		ids = append(ids, existing.ResponsibleUserIDs...)
	}

	seen := make(map[uint64]bool, len(ids))
	unique := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}

func (p *ProjectPolicy) checkAssigneeDepartment(ctx context.Context, userID uint64, deptKey string) error {
	user, err := p.users.FindUser(ctx, userID)
	if err != nil {
		return apperrors.NewValidationError("Назначенный пользователь (id=%d) не найден", userID)
	}
	if user.DepartmentKey == nil || *user.DepartmentKey == "" {
		return apperrors.NewForbiddenError("У назначенного пользователя не указан департамент")
	}
	if *user.DepartmentKey != deptKey {
		p.logger.Debug("отклонено межведомственное назначение",
			zap.Uint64("user_id", userID),
			zap.String("user_department", *user.DepartmentKey),
			zap.String("project_department", deptKey),
		)
		return apperrors.NewForbiddenError("Нельзя назначить пользователя из другого департамента")
	}
	return nil
}
