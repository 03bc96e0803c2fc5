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

const (
	itDeptID  = uint64(1)
	engDeptID = uint64(2)

	superAdminID = uint64(100)
	itAdminID    = uint64(101)
	itLeadID     = uint64(102)
	itMemberID   = uint64(103)
	engMemberID  = uint64(104)
	noDeptUserID = uint64(105)
)

func projectTestStore() *fakeStore {
	store := newFakeStore()
	store.addDepartment(itDeptID, constants.DepartmentIT)
	store.addDepartment(engDeptID, constants.DepartmentEngineering)

	store.addUser(superAdminID, nil, "", "Super Admin")
	store.addUser(itAdminID, utils.Uint64Ptr(itDeptID), constants.DepartmentIT, "Администратор")
	store.addUser(itLeadID, utils.Uint64Ptr(itDeptID), constants.DepartmentIT, "Руководитель")
	store.addUser(itMemberID, utils.Uint64Ptr(itDeptID), constants.DepartmentIT, "Сотрудник")
	store.addUser(engMemberID, utils.Uint64Ptr(engDeptID), constants.DepartmentEngineering, "Сотрудник")
	store.addUser(noDeptUserID, nil, "", "Сотрудник")
	return store
}

func newProjectPolicy(store *fakeStore) *ProjectPolicy {
	return NewProjectPolicy(store, store, testResolver(store), zap.NewNop())
}

func TestProjectPolicyCreate(t *testing.T) {
	ctx := context.Background()
	store := projectTestStore()
	policy := newProjectPolicy(store)

	t.Run("без аутентификации", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, 0, 0, &dto.ProjectWriteDTO{Owner: dto.NewRelation(itMemberID)})
		assertHttpCode(t, err, http.StatusUnauthorized)
	})

	t.Run("nil payload", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 0, nil)
		assertHttpCode(t, err, http.StatusBadRequest)
	})

	t.Run("владелец обязателен", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 0, &dto.ProjectWriteDTO{Name: utils.StringPtr("Проект")})
		assertHttpCode(t, err, http.StatusBadRequest)
	})

	t.Run("владелец из своего департамента проходит", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 0, &dto.ProjectWriteDTO{Owner: dto.NewRelation(itLeadID)})
		assert.NoError(t, err)
	})

	t.Run("владелец из чужого департамента запрещен", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 0, &dto.ProjectWriteDTO{Owner: dto.NewRelation(engMemberID)})
		assertHttpCode(t, err, http.StatusForbidden)
	})

	t.Run("суперадмин обходит департаментные проверки", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, superAdminID, 0, &dto.ProjectWriteDTO{Owner: dto.NewRelation(engMemberID)})
		assert.NoError(t, err)
	})

	t.Run("актор без департамента запрещен", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, noDeptUserID, 0, &dto.ProjectWriteDTO{Owner: dto.NewRelation(itMemberID)})
		assertHttpCode(t, err, http.StatusForbidden)
	})

	t.Run("назначенный без департамента запрещен", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 0, &dto.ProjectWriteDTO{
			Owner:                 dto.NewRelation(itLeadID),
			SupportingSpecialists: dto.NewRelation(noDeptUserID),
		})
		assertHttpCode(t, err, http.StatusForbidden)
	})

	t.Run("несуществующий назначенный — структурная ошибка", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 0, &dto.ProjectWriteDTO{Owner: dto.NewRelation(999)})
		assertHttpCode(t, err, http.StatusBadRequest)
	})

	t.Run("явный департамент из payload главнее департамента актора", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 0, &dto.ProjectWriteDTO{
			Department: dto.NewDepartmentRef(constants.DepartmentEngineering),
			Owner:      dto.NewRelation(engMemberID),
		})
		assert.NoError(t, err)
	})

	t.Run("неразрешимый департамент — структурная ошибка", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 0, &dto.ProjectWriteDTO{
			Department: dto.NewDepartmentRef("no-such"),
			Owner:      dto.NewRelation(itLeadID),
		})
		assertHttpCode(t, err, http.StatusBadRequest)
	})

	t.Run("дата начала позже даты завершения", func(t *testing.T) {
		start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		due := start.AddDate(0, 0, -1)
		err := policy.ValidateWrite(ctx, itMemberID, 0, &dto.ProjectWriteDTO{
			Owner:     dto.NewRelation(itLeadID),
			StartDate: &start,
			DueDate:   &due,
		})
		assertHttpCode(t, err, http.StatusBadRequest)
	})
}

func TestProjectPolicyUpdate(t *testing.T) {
	ctx := context.Background()
	store := projectTestStore()
	policy := newProjectPolicy(store)

	projectID := uint64(10)
	store.projects[projectID] = &entities.Project{
		ID:           projectID,
		DepartmentID: itDeptID,
		OwnerID:      itLeadID,
		Status:       constants.ProjectStatusActive,
	}

	t.Run("смена статуса не перепроверяет назначения", func(t *testing.T) {
		// Даже пользователь без департамента может архивировать.
		err := policy.ValidateWrite(ctx, noDeptUserID, projectID, &dto.ProjectWriteDTO{
			Status: utils.StringPtr(constants.ProjectStatusArchived),
		})
		assert.NoError(t, err)
	})

	t.Run("несуществующий проект", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, 999, &dto.ProjectWriteDTO{Name: utils.StringPtr("x")})
		assertHttpCode(t, err, http.StatusBadRequest)
	})

	t.Run("смену владельца рядовому сотруднику нельзя", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, projectID, &dto.ProjectWriteDTO{
			Owner: dto.NewRelation(itMemberID),
		})
		assertHttpCode(t, err, http.StatusForbidden)
	})

	t.Run("руководитель меняет владельца", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itLeadID, projectID, &dto.ProjectWriteDTO{
			Owner: dto.NewRelation(itMemberID),
		})
		assert.NoError(t, err)
	})

	t.Run("админ меняет владельца", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itAdminID, projectID, &dto.ProjectWriteDTO{
			Owner: dto.NewRelation(itMemberID),
		})
		assert.NoError(t, err)
	})

	t.Run("явно переданный пустой владелец — структурная ошибка", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itLeadID, projectID, &dto.ProjectWriteDTO{
			Owner: dto.NewRelation(),
		})
		assertHttpCode(t, err, http.StatusBadRequest)
	})

	t.Run("новый специалист из чужого департамента запрещен", func(t *testing.T) {
		err := policy.ValidateWrite(ctx, itMemberID, projectID, &dto.ProjectWriteDTO{
			SupportingSpecialists: dto.NewRelation(engMemberID),
		})
		assertHttpCode(t, err, http.StatusForbidden)
	})

	t.Run("нетронутые назначения проверяются по сохраненным", func(t *testing.T) {
		// В проекте остался специалист из инженерной службы; любое
		// содержательное обновление отклоняется, пока его не уберут.
		stale := uint64(12)
		store.projects[stale] = &entities.Project{
			ID:                      stale,
			DepartmentID:            itDeptID,
			OwnerID:                 itLeadID,
			Status:                  constants.ProjectStatusActive,
			SupportingSpecialistIDs: []uint64{engMemberID},
		}
		err := policy.ValidateWrite(ctx, itMemberID, stale, &dto.ProjectWriteDTO{
			Name: utils.StringPtr("Новое имя"),
		})
		assertHttpCode(t, err, http.StatusForbidden)

		// Замена специалистов тем же запросом снимает запрет.
		err = policy.ValidateWrite(ctx, itMemberID, stale, &dto.ProjectWriteDTO{
			Name:                  utils.StringPtr("Новое имя"),
			SupportingSpecialists: dto.NewRelation(itMemberID),
		})
		assert.NoError(t, err)
	})

	t.Run("срок из payload сверяется с сохраненной датой начала", func(t *testing.T) {
		withDates := uint64(11)
		start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
		store.projects[withDates] = &entities.Project{
			ID:           withDates,
			DepartmentID: itDeptID,
			OwnerID:      itLeadID,
			Status:       constants.ProjectStatusActive,
			StartDate:    &start,
		}
		due := start.AddDate(0, 0, -3)
		err := policy.ValidateWrite(ctx, itMemberID, withDates, &dto.ProjectWriteDTO{DueDate: &due})
		assertHttpCode(t, err, http.StatusBadRequest)
	})
}
