// Файл: internal/entities/user_entity.go
package entities

import (
	"ops-portal/pkg/types"
)

type User struct {
	ID    uint64 `json:"id" db:"id"`
	Fio   string `json:"fio" db:"fio"`
	Email string `json:"email" db:"email"`

	Password string `json:"-" db:"password"`

	RoleID       *uint64 `json:"role_id" db:"role_id"`
	DepartmentID *uint64 `json:"department_id" db:"department_id"`

	// Денормализованные поля, подтягиваются JOIN-ами.
	DepartmentKey *string `json:"department_key,omitempty" db:"department_key"`
	RoleName      *string `json:"role_name,omitempty" db:"role_name"`
	RoleType      *string `json:"role_type,omitempty" db:"role_type"`

	// Пофичевые флаги доступа. NULL трактуется как "включено".
	DashboardEnabled *bool `json:"dashboard_enabled,omitempty" db:"dashboard_enabled"`
	ProjectsEnabled  *bool `json:"projects_enabled,omitempty" db:"projects_enabled"`
	HelpdeskEnabled  *bool `json:"helpdesk_enabled,omitempty" db:"helpdesk_enabled"`

	types.BaseEntity
	types.SoftDelete
}
