package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateTicketDTO struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description"`

	Department *DepartmentRef `json:"department" validate:"required"`
	Assignee   *Relation      `json:"assignee"`

	Priority string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
}

type UpdateTicketDTO struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS RESOLVED CLOSED REJECTED"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`

	Assignee *Relation `json:"assignee"`
}

type TicketDTO struct {
	ID          uint64 `json:"id"`
	Number      string `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`

	Department ShortDepartmentDTO `json:"department"`
	CreatorID  uint64             `json:"creator_id"`
	AssigneeID null.Uint64        `json:"assignee_id"`

	Status   string `json:"status"`
	Priority string `json:"priority"`

	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  string     `json:"created_at"`
	UpdatedAt  string     `json:"updated_at"`
}

// TicketReportRowDTO — строка отчета по заявкам (таблица и XLSX-выгрузка).
type TicketReportRowDTO struct {
	Number        string      `json:"number"`
	Title         string      `json:"title"`
	DepartmentKey string      `json:"department_key"`
	CreatorFio    string      `json:"creator_fio"`
	AssigneeFio   null.String `json:"assignee_fio"`
	Status        string      `json:"status"`
	Priority      string      `json:"priority"`
	CreatedAt     time.Time   `json:"created_at"`
	ResolvedAt    *time.Time  `json:"resolved_at,omitempty"`
}
