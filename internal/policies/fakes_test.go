package policies

import (
	"context"
	"testing"

	"ops-portal/internal/entities"
	apperrors "ops-portal/pkg/errors"
	"ops-portal/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore — in-memory реализация read-интерфейсов политик.
type fakeStore struct {
	users       map[uint64]*entities.User
	departments map[uint64]*entities.Department
	projects    map[uint64]*entities.Project
	tasks       map[uint64]*entities.Task
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[uint64]*entities.User),
		departments: make(map[uint64]*entities.Department),
		projects:    make(map[uint64]*entities.Project),
		tasks:       make(map[uint64]*entities.Task),
	}
}

func (s *fakeStore) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeStore) FindDepartment(ctx context.Context, id uint64) (*entities.Department, error) {
	if d, ok := s.departments[id]; ok {
		return d, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeStore) FindDepartmentByKey(ctx context.Context, key string) (*entities.Department, error) {
	for _, d := range s.departments {
		if d.Key == key {
			return d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeStore) FindDepartmentByDocumentID(ctx context.Context, documentID string) (*entities.Department, error) {
	for _, d := range s.departments {
		if d.DocumentID == documentID {
			return d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeStore) FindProject(ctx context.Context, id uint64) (*entities.Project, error) {
	if p, ok := s.projects[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeStore) FindTask(ctx context.Context, id uint64) (*entities.Task, error) {
	if t, ok := s.tasks[id]; ok {
		return t, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeStore) addDepartment(id uint64, key string) {
	s.departments[id] = &entities.Department{ID: id, Key: key, Name: key, DocumentID: "doc-" + key}
}

func (s *fakeStore) addUser(id uint64, departmentID *uint64, departmentKey, roleName string) {
	u := &entities.User{ID: id, DepartmentID: departmentID}
	if departmentKey != "" {
		u.DepartmentKey = utils.StringPtr(departmentKey)
	}
	if roleName != "" {
		u.RoleName = utils.StringPtr(roleName)
	}
	s.users[id] = u
}

// assertHttpCode проверяет, что ошибка несет ожидаемый HTTP-код.
func assertHttpCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok, "ожидалась *apperrors.HttpError, получено: %v", err)
	require.Equal(t, code, httpErr.Code, "сообщение: %s", httpErr.Message)
}

func testResolver(store *fakeStore) *DepartmentResolver {
	return NewDepartmentResolver(store, zap.NewNop())
}
