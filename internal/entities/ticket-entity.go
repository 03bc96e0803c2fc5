package entities

import (
	"time"

	"ops-portal/pkg/types"
)

type Ticket struct {
	ID          uint64 `json:"id" db:"id"`
	Number      string `json:"number" db:"number"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`

	DepartmentID uint64  `json:"department_id" db:"department_id"`
	CreatorID    uint64  `json:"creator_id" db:"creator_id"`
	AssigneeID   *uint64 `json:"assignee_id" db:"assignee_id"`

	Status   string `json:"status" db:"status"`
	Priority string `json:"priority" db:"priority"`

	ResolvedAt *time.Time `json:"resolved_at,omitempty" db:"resolved_at"`

	types.BaseEntity
	types.SoftDelete
}

// ReportFilter — фильтры для отчета по заявкам.
type ReportFilter struct {
	DateFrom     *time.Time
	DateTo       *time.Time
	DepartmentID *uint64
	Status       *string
	Page         int
	PerPage      int
}
