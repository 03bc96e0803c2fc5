package dto

import "time"

// ProjectWriteDTO — payload создания/обновления проекта. Все поля —
// указатели: nil означает, что клиент поле не трогал, и валидатор
// подставит сохраненное значение.
type ProjectWriteDTO struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=ACTIVE ARCHIVED DELETED"`
	StageID     *uint64 `json:"stage_id" validate:"omitempty,gt=0"`

	StartDate *time.Time `json:"start_date"`
	DueDate   *time.Time `json:"due_date"`

	Department            *DepartmentRef `json:"department"`
	Owner                 *Relation      `json:"owner"`
	SupportingSpecialists *Relation      `json:"supporting_specialists"`
	ResponsibleUsers      *Relation      `json:"responsible_users"`
}

// IsStatusOnly сообщает, что payload меняет только статус. Такой запрос
// (архивация, восстановление, мягкое удаление) не перепроверяет назначения.
func (d *ProjectWriteDTO) IsStatusOnly() bool {
	return d.Status != nil &&
		d.Name == nil && d.Description == nil && d.StageID == nil &&
		d.StartDate == nil && d.DueDate == nil && d.Department == nil &&
		d.Owner == nil && d.SupportingSpecialists == nil && d.ResponsibleUsers == nil
}

type ProjectProgressDTO struct {
	ProgressPercent int `json:"progress_percent"`
	DoneTasks       int `json:"done_tasks"`
	TotalTasks      int `json:"total_tasks"`
}

type ProjectDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	Department ShortDepartmentDTO `json:"department"`
	OwnerID    uint64             `json:"owner_id"`

	SupportingSpecialistIDs []uint64 `json:"supporting_specialist_ids"`
	ResponsibleUserIDs      []uint64 `json:"responsible_user_ids"`

	Status      string  `json:"status"`
	StageID     *uint64 `json:"stage_id"`
	StageBucket int     `json:"stage_bucket"`

	StartDate *time.Time `json:"start_date,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`

	Progress ProjectProgressDTO `json:"progress"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// BoardColumnDTO — одна канбан-колонка: номер корзины и проекты в ней.
type BoardColumnDTO struct {
	Bucket   int          `json:"bucket"`
	Projects []ProjectDTO `json:"projects"`
}
