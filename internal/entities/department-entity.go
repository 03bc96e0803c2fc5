package entities

import "ops-portal/pkg/types"

// Department — неизменяемые справочные данные. Key из закрытого набора
// (IT, DIGITALIZATION, MEDICAL_EQUIPMENT, ENGINEERING).
type Department struct {
	ID     uint64 `json:"id" db:"id"`
	Key    string `json:"key" db:"key"`
	Name   string `json:"name" db:"name"`
	NameRu string `json:"name_ru" db:"name_ru"`

	// Внешний документ-идентификатор, пришедший из старой CMS.
	DocumentID string `json:"document_id" db:"document_id"`

	types.BaseEntity
}

// DepartmentStats — агрегаты по департаменту для дашборда.
type DepartmentStats struct {
	ID             uint64 `json:"id" db:"id"`
	Key            string `json:"key" db:"key"`
	Name           string `json:"name" db:"name"`
	ActiveProjects uint64 `json:"active_projects" db:"active_projects"`
	OpenTickets    uint64 `json:"open_tickets" db:"open_tickets"`
	UsersCount     uint64 `json:"users_count" db:"users_count"`
}
