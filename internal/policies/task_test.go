package policies

import (
	"context"
	"net/http"
	"testing"
	"time"

	"ops-portal/internal/dto"
	"ops-portal/internal/entities"
	"ops-portal/pkg/constants"
	"ops-portal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTaskPolicy(store *fakeStore) *TaskPolicy {
	return NewTaskPolicy(store, store, store, testResolver(store), zap.NewNop())
}

func TestTaskPolicyValidateWrite(t *testing.T) {
	ctx := context.Background()
	store := projectTestStore()
	policy := newTaskPolicy(store)

	itProjectID := uint64(20)
	store.projects[itProjectID] = &entities.Project{
		ID:           itProjectID,
		DepartmentID: itDeptID,
		OwnerID:      itLeadID,
		Status:       constants.ProjectStatusActive,
	}

	t.Run("без аутентификации", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, 0, 0, &dto.TaskWriteDTO{Project: dto.NewRelation(itProjectID)})
		assertHttpCode(t, err, http.StatusUnauthorized)
	})

	t.Run("nil payload", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 0, nil)
		assertHttpCode(t, err, http.StatusBadRequest)
	})

	t.Run("суперадмин обходит даже проверку проекта", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, superAdminID, 0, &dto.TaskWriteDTO{})
		assert.NoError(t, err)
	})

	t.Run("актор без департамента запрещен", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, noDeptUserID, 0, &dto.TaskWriteDTO{Project: dto.NewRelation(itProjectID)})
		assertHttpCode(t, err, http.StatusForbidden)
	})

	t.Run("проект обязателен при создании", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 0, &dto.TaskWriteDTO{Title: utils.StringPtr("Задача")})
		assertHttpCode(t, err, http.StatusBadRequest)
	})

	t.Run("несуществующий проект", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 0, &dto.TaskWriteDTO{Project: dto.NewRelation(999)})
		assertHttpCode(t, err, http.StatusBadRequest)
	})

	t.Run("проект своего департамента проходит", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 0, &dto.TaskWriteDTO{
			Project:  dto.NewRelation(itProjectID),
			Assignee: dto.NewRelation(itLeadID),
		})
		assert.NoError(t, err)
	})

	t.Run("проект чужого департамента запрещен", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, engMemberID, 0, &dto.TaskWriteDTO{Project: dto.NewRelation(itProjectID)})
		assertHttpCode(t, err, http.StatusForbidden)
	})

	t.Run("исполнитель из чужого департамента запрещен", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 0, &dto.TaskWriteDTO{
			Project:  dto.NewRelation(itProjectID),
			Assignee: dto.NewRelation(engMemberID),
		})
		assertHttpCode(t, err, http.StatusForbidden)
	})

	t.Run("несуществующий исполнитель", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 0, &dto.TaskWriteDTO{
			Project:  dto.NewRelation(itProjectID),
			Assignee: dto.NewRelation(999),
		})
		assertHttpCode(t, err, http.StatusBadRequest)
	})

	t.Run("срок задачи не может превышать срок проекта", func(t *testing.T) {
		due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		bounded := uint64(21)
		store.projects[bounded] = &entities.Project{
			ID:           bounded,
			DepartmentID: itDeptID,
			OwnerID:      itLeadID,
			Status:       constants.ProjectStatusActive,
			DueDate:      &due,
		}

		late := due.AddDate(0, 0, 5)
		err := policy.ValidateWrite(ctx, itMemberID, 0, &dto.TaskWriteDTO{
			Project: dto.NewRelation(bounded),
			DueDate: &late,
		})
		assertHttpCode(t, err, http.StatusBadRequest)

		onTime := due.AddDate(0, 0, -5)
		err = policy.ValidateWrite(ctx, itMemberID, 0, &dto.TaskWriteDTO{
			Project: dto.NewRelation(bounded),
			DueDate: &onTime,
		})
		assert.NoError(t, err)
	})

	t.Run("обновление берет проект и исполнителя из сохраненной задачи", func(t *testing.T) {
		taskID := uint64(30)
		store.tasks[taskID] = &entities.Task{
			ID:         taskID,
			ProjectID:  itProjectID,
			AssigneeID: utils.Uint64Ptr(itMemberID),
			Status:     constants.TaskStatusOpen,
		}

		err := policy.ValidateWrite(ctx, itMemberID, taskID, &dto.TaskWriteDTO{Title: utils.StringPtr("Новое имя")})
		assert.NoError(t, err)

		err = policy.ValidateWrite(ctx, engMemberID, taskID, &dto.TaskWriteDTO{Title: utils.StringPtr("Новое имя")})
		assertHttpCode(t, err, http.StatusForbidden)
	})

	t.Run("несуществующая задача при обновлении", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 999, &dto.TaskWriteDTO{Title: utils.StringPtr("x")})
		assertHttpCode(t, err, http.StatusBadRequest)
	})
}

func TestTaskPolicyValidateDelete(t *testing.T) {
	ctx := context.Background()
	store := projectTestStore()
	policy := newTaskPolicy(store)

	projectID := uint64(40)
	store.projects[projectID] = &entities.Project{
		ID:           projectID,
		DepartmentID: itDeptID,
		OwnerID:      itLeadID,
		Status:       constants.ProjectStatusActive,
	}
	taskID := uint64(41)
	store.tasks[taskID] = &entities.Task{ID: taskID, ProjectID: projectID, Status: constants.TaskStatusOpen}

	t.Run("свой департамент удаляет", func(t *testing.T) {
		assert.NoError(t, policy.ValidateDelete(ctx, itMemberID, taskID))
	})

	t.Run("чужой департамент не удаляет", func(t *testing.T) {
		assertHttpCode(t, policy.ValidateDelete(ctx, engMemberID, taskID), http.StatusForbidden)
	})

	t.Run("суперадмин удаляет что угодно", func(t *testing.T) {
		assert.NoError(t, policy.ValidateDelete(ctx, superAdminID, taskID))
	})
}
