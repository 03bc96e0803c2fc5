package entities

import (
	"time"

	"ops-portal/pkg/types"
)

type Task struct {
	ID          uint64 `json:"id" db:"id"`
	ProjectID   uint64 `json:"project_id" db:"project_id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`

	AssigneeID *uint64 `json:"assignee_id" db:"assignee_id"`

	Status    string `json:"status" db:"status"`
	Completed bool   `json:"completed" db:"completed"`

	// Устаревшее поле прогресса (0..100), осталось от старых задач,
	// у которых не проставлен флаг completed.
	Progress *int `json:"progress,omitempty" db:"progress"`

	StartDate *time.Time `json:"start_date,omitempty" db:"start_date"`
	DueDate   *time.Time `json:"due_date,omitempty" db:"due_date"`

	types.BaseEntity
	types.SoftDelete
}
