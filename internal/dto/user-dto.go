package dto

type CreateUserDTO struct {
	Fio      string `json:"fio" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`

	RoleID       *uint64 `json:"role_id" validate:"omitempty,gt=0"`
	DepartmentID *uint64 `json:"department_id" validate:"omitempty,gt=0"`

	DashboardEnabled *bool `json:"dashboard_enabled"`
	ProjectsEnabled  *bool `json:"projects_enabled"`
	HelpdeskEnabled  *bool `json:"helpdesk_enabled"`
}

type UpdateUserDTO struct {
	Fio   *string `json:"fio" validate:"omitempty,min=3"`
	Email *string `json:"email" validate:"omitempty,email"`

	RoleID       *uint64 `json:"role_id" validate:"omitempty,gt=0"`
	DepartmentID *uint64 `json:"department_id" validate:"omitempty,gt=0"`

	DashboardEnabled *bool `json:"dashboard_enabled"`
	ProjectsEnabled  *bool `json:"projects_enabled"`
	HelpdeskEnabled  *bool `json:"helpdesk_enabled"`
}

type UserDTO struct {
	ID    uint64 `json:"id"`
	Fio   string `json:"fio"`
	Email string `json:"email"`

	RoleID        *uint64 `json:"role_id"`
	RoleName      *string `json:"role_name,omitempty"`
	DepartmentID  *uint64 `json:"department_id"`
	DepartmentKey *string `json:"department_key,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ShortUserDTO struct {
	ID            uint64  `json:"id"`
	Fio           string  `json:"fio"`
	DepartmentKey *string `json:"department_key,omitempty"`
}
