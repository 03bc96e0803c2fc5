package policies

import (
	"context"
	"testing"

	"ops-portal/pkg/constants"

	"github.com/stretchr/testify/assert"
)

func TestResolveKey(t *testing.T) {
	store := newFakeStore()
	store.addDepartment(1, constants.DepartmentIT)
	store.addDepartment(2, constants.DepartmentEngineering)
	resolver := testResolver(store)
	ctx := context.Background()

	testCases := []struct {
		name     string
		ref      interface{}
		expected string
	}{
		{"nil", nil, ""},
		{"uint64 id", uint64(1), constants.DepartmentIT},
		{"int id", 2, constants.DepartmentEngineering},
		{"float64 id из JSON", float64(1), constants.DepartmentIT},
		{"числовая строка", "2", constants.DepartmentEngineering},
		{"канонический ключ", "IT", constants.DepartmentIT},
		{"ключ в нижнем регистре", "engineering", constants.DepartmentEngineering},
		{"документ-идентификатор", "doc-IT", constants.DepartmentIT},
		{"несуществующий id", uint64(99), ""},
		{"мусорная строка", "no-such-department", ""},
		{"пустая строка", "", ""},
		{"отрицательное число", -5, ""},
		{"дробное число", 1.5, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, resolver.ResolveKey(ctx, tc.ref))
		})
	}
}
