package entities

import (
	"time"

	"ops-portal/pkg/types"
)

type Project struct {
	ID          uint64 `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`

	DepartmentID uint64 `json:"department_id" db:"department_id"`
	OwnerID      uint64 `json:"owner_id" db:"owner_id"`

	// ACTIVE | ARCHIVED | DELETED. Удаление проекта — переход статуса,
	// жёсткое удаление доступно только суперадмину.
	Status string `json:"status" db:"status"`

	StageID *uint64 `json:"stage_id" db:"stage_id"`

	StartDate *time.Time `json:"start_date,omitempty" db:"start_date"`
	DueDate   *time.Time `json:"due_date,omitempty" db:"due_date"`

	SupportingSpecialistIDs []uint64 `json:"supporting_specialist_ids" db:"-"`
	ResponsibleUserIDs      []uint64 `json:"responsible_user_ids" db:"-"`

	types.BaseEntity
}
