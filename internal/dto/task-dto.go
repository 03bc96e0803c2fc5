package dto

import "time"

type TaskWriteDTO struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS DONE CLOSED COMPLETED CANCELLED"`
	Completed   *bool   `json:"completed"`
	Progress    *int    `json:"progress" validate:"omitempty,gte=0,lte=100"`

	StartDate *time.Time `json:"start_date"`
	DueDate   *time.Time `json:"due_date"`

	Project  *Relation `json:"project"`
	Assignee *Relation `json:"assignee"`
}

type TaskDTO struct {
	ID          uint64  `json:"id"`
	ProjectID   uint64  `json:"project_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	AssigneeID  *uint64 `json:"assignee_id"`
	Status      string  `json:"status"`
	Completed   bool    `json:"completed"`
	Progress    *int    `json:"progress,omitempty"`

	StartDate *time.Time `json:"start_date,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
