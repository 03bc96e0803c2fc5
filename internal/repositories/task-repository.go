package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"ops-portal/internal/dto"
	"ops-portal/internal/entities"
	apperrors "ops-portal/pkg/errors"
	"ops-portal/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const taskTable = "tasks"

var (
	taskAllowedFilterFields = map[string]string{
		"project_id":  "t.project_id",
		"assignee_id": "t.assignee_id",
		"status":      "t.status",
		"completed":   "t.completed",
	}
	taskAllowedSortFields = map[string]string{
		"id":         "t.id",
		"title":      "t.title",
		"due_date":   "t.due_date",
		"created_at": "t.created_at",
	}
)

type TaskRepositoryInterface interface {
	GetTasks(ctx context.Context, filter types.Filter) ([]entities.Task, uint64, error)
	GetTasksByProject(ctx context.Context, projectID uint64) ([]entities.Task, error)
	FindTask(ctx context.Context, id uint64) (*entities.Task, error)
	CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error)
	UpdateTask(ctx context.Context, id uint64, payload dto.TaskWriteDTO) (*entities.Task, error)
	SoftDeleteTask(ctx context.Context, id uint64) error
}

type TaskRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTaskRepository(storage *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{storage: storage, logger: logger}
}

const taskColumns = `
	t.id, t.project_id, t.title, t.description, t.assignee_id, t.status, t.completed, t.progress,
	t.start_date, t.due_date, t.created_at, t.updated_at, t.deleted_at`

func scanTask(row pgx.Row) (*entities.Task, error) {
	var t entities.Task
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.AssigneeID, &t.Status, &t.Completed, &t.Progress,
		&t.StartDate, &t.DueDate, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования task: %w", err)
	}
	return &t, nil
}

func (r *TaskRepository) buildFilterQuery(filter types.Filter) (string, []interface{}) {
	conditions := []string{"t.deleted_at IS NULL"}
	args := []interface{}{}
	argCounter := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("t.title ILIKE $%d", argCounter))
		args = append(args, "%"+filter.Search+"%")
		argCounter++
	}
	for key, value := range filter.Filter {
		dbColumn, ok := taskAllowedFilterFields[key]
		if !ok {
			continue
		}
		items := strings.Split(fmt.Sprintf("%v", value), ",")
		if len(items) > 1 {
			placeholders := []string{}
			for _, item := range items {
				placeholders = append(placeholders, fmt.Sprintf("$%d", argCounter))
				args = append(args, item)
				argCounter++
			}
			conditions = append(conditions, fmt.Sprintf("%s IN (%s)", dbColumn, strings.Join(placeholders, ",")))
		} else {
			conditions = append(conditions, fmt.Sprintf("%s = $%d", dbColumn, argCounter))
			args = append(args, value)
			argCounter++
		}
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *TaskRepository) GetTasks(ctx context.Context, filter types.Filter) ([]entities.Task, uint64, error) {
	whereClause, args := r.buildFilterQuery(filter)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s t %s", taskTable, whereClause)
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Task{}, 0, nil
	}

	orderByClause := "ORDER BY t.id DESC"
	if len(filter.Sort) > 0 {
		sorts := []string{}
		for field, direction := range filter.Sort {
			if dbField, ok := taskAllowedSortFields[field]; ok {
				order := "ASC"
				if strings.ToLower(direction) == "desc" {
					order = "DESC"
				}
				sorts = append(sorts, fmt.Sprintf("%s %s", dbField, order))
			}
		}
		if len(sorts) > 0 {
			orderByClause = "ORDER BY " + strings.Join(sorts, ", ")
		}
	}

	limitClause := ""
	argCounter := len(args) + 1
	if filter.WithPagination {
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	query := fmt.Sprintf("SELECT %s FROM %s t %s %s %s", taskColumns, taskTable, whereClause, orderByClause, limitClause)
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := make([]entities.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, total, rows.Err()
}

// GetTasksByProject отдает все живые задачи проекта без пагинации,
// используется расчетом прогресса.
func (r *TaskRepository) GetTasksByProject(ctx context.Context, projectID uint64) ([]entities.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM %s t WHERE t.project_id = $1 AND t.deleted_at IS NULL ORDER BY t.id ASC", taskColumns, taskTable)
	rows, err := r.storage.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]entities.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) FindTask(ctx context.Context, id uint64) (*entities.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM %s t WHERE t.id = $1 AND t.deleted_at IS NULL", taskColumns, taskTable)
	return scanTask(r.storage.QueryRow(ctx, query, id))
}

func (r *TaskRepository) CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	query := `
		INSERT INTO tasks (project_id, title, description, assignee_id, status, completed, progress, start_date, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	var id uint64
	err := r.storage.QueryRow(ctx, query,
		task.ProjectID, task.Title, task.Description, task.AssigneeID,
		task.Status, task.Completed, task.Progress, task.StartDate, task.DueDate,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания задачи: %w", err)
	}
	return r.FindTask(ctx, id)
}

func (r *TaskRepository) UpdateTask(ctx context.Context, id uint64, payload dto.TaskWriteDTO) (*entities.Task, error) {
	updateBuilder := sq.Update(taskTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if payload.Title != nil {
		updateBuilder = updateBuilder.Set("title", *payload.Title)
		hasChanges = true
	}
	if payload.Description != nil {
		updateBuilder = updateBuilder.Set("description", *payload.Description)
		hasChanges = true
	}
	if payload.Status != nil {
		updateBuilder = updateBuilder.Set("status", *payload.Status)
		hasChanges = true
	}
	if payload.Completed != nil {
		updateBuilder = updateBuilder.Set("completed", *payload.Completed)
		hasChanges = true
	}
	if payload.Progress != nil {
		updateBuilder = updateBuilder.Set("progress", *payload.Progress)
		hasChanges = true
	}
	if payload.StartDate != nil {
		updateBuilder = updateBuilder.Set("start_date", *payload.StartDate)
		hasChanges = true
	}
	if payload.DueDate != nil {
		updateBuilder = updateBuilder.Set("due_date", *payload.DueDate)
		hasChanges = true
	}
	if projectID, ok := payload.Project.First(); ok {
		updateBuilder = updateBuilder.Set("project_id", projectID)
		hasChanges = true
	}
	if assigneeID, ok := payload.Assignee.First(); ok {
		updateBuilder = updateBuilder.Set("assignee_id", assigneeID)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindTask(ctx, id)
	}

	query, args, err := updateBuilder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, err
	}
	var updatedID uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return r.FindTask(ctx, updatedID)
}

func (r *TaskRepository) SoftDeleteTask(ctx context.Context, id uint64) error {
	query := `UPDATE tasks SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
