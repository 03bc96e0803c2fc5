package entities

import "ops-portal/pkg/types"

// Role хранит свободный текст name/type из исторических данных:
// "Super Admin", "администратор", "it-lead" и т.п. Классификация
// в возможности выполняется в internal/authz.
type Role struct {
	ID   uint64  `json:"id" db:"id"`
	Name string  `json:"name" db:"name"`
	Type *string `json:"type,omitempty" db:"type"`

	types.BaseEntity
}
