package authz

import "ops-portal/pkg/types"

// AssignableUserFilters возвращает фильтр выборки пользователей, которых
// запрашивающий может назначать на проекты и задачи. Суперадмин получает
// выборку без ограничений; остальные — только свой департамент. nil
// означает, что выборка запрещена (у запрашивающего нет департамента).
func AssignableUserFilters(caps Capabilities, requesterDepartmentKey string) *types.Filter {
	if caps.IsSuperAdmin {
		return &types.Filter{Filter: map[string]interface{}{}}
	}
	if requesterDepartmentKey == "" {
		return nil
	}
	return &types.Filter{
		Filter: map[string]interface{}{"department_key": requesterDepartmentKey},
	}
}
