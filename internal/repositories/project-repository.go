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

const projectTable = "projects"

var (
	projectAllowedFilterFields = map[string]string{
		"status":        "p.status",
		"department_id": "p.department_id",
		"owner_id":      "p.owner_id",
		"stage_id":      "p.stage_id",
	}
	projectAllowedSortFields = map[string]string{
		"id":         "p.id",
		"name":       "p.name",
		"due_date":   "p.due_date",
		"created_at": "p.created_at",
	}
)

type ProjectRepositoryInterface interface {
	GetProjects(ctx context.Context, filter types.Filter) ([]entities.Project, uint64, error)
	FindProject(ctx context.Context, id uint64) (*entities.Project, error)
	CreateProjectInTx(ctx context.Context, tx pgx.Tx, project entities.Project) (uint64, error)
	UpdateProjectInTx(ctx context.Context, tx pgx.Tx, id uint64, payload dto.ProjectWriteDTO, departmentID *uint64) error
	ReplaceMembersInTx(ctx context.Context, tx pgx.Tx, projectID uint64, table string, userIDs []uint64) error
	HardDeleteProject(ctx context.Context, id uint64) error
}

// Таблицы участников проекта.
const (
	SupportingSpecialistsTable = "project_supporting_specialists"
	ResponsibleUsersTable      = "project_responsible_users"
)

type ProjectRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewProjectRepository(storage *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{storage: storage, logger: logger}
}

const projectSelectColumns = `
	p.id, p.name, p.description, p.department_id, p.owner_id, p.status, p.stage_id,
	p.start_date, p.due_date, p.created_at, p.updated_at,
	COALESCE(ss.ids, '{}') AS supporting_ids,
	COALESCE(ru.ids, '{}') AS responsible_ids`

const projectSelectJoins = `
	FROM projects p
	LEFT JOIN (SELECT project_id, array_agg(user_id ORDER BY id) AS ids FROM project_supporting_specialists GROUP BY project_id) ss ON ss.project_id = p.id
	LEFT JOIN (SELECT project_id, array_agg(user_id ORDER BY id) AS ids FROM project_responsible_users GROUP BY project_id) ru ON ru.project_id = p.id`

func scanProject(row pgx.Row) (*entities.Project, error) {
	var p entities.Project
	var supporting, responsible []int64
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.DepartmentID, &p.OwnerID, &p.Status, &p.StageID,
		&p.StartDate, &p.DueDate, &p.CreatedAt, &p.UpdatedAt,
		&supporting, &responsible,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования project: %w", err)
	}
	p.SupportingSpecialistIDs = toUint64s(supporting)
	p.ResponsibleUserIDs = toUint64s(responsible)
	return &p, nil
}

func toUint64s(in []int64) []uint64 {
	out := make([]uint64, 0, len(in))
	for _, v := range in {
		out = append(out, uint64(v))
	}
	return out
}

func (r *ProjectRepository) buildFilterQuery(filter types.Filter) (string, []interface{}) {
	conditions := []string{"p.status != 'DELETED'"}
	args := []interface{}{}
	argCounter := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("p.name ILIKE $%d", argCounter))
		args = append(args, "%"+filter.Search+"%")
		argCounter++
	}
	for key, value := range filter.Filter {
		dbColumn, ok := projectAllowedFilterFields[key]
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

func (r *ProjectRepository) countProjects(ctx context.Context, whereClause string, args []interface{}) (uint64, error) {
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s p %s", projectTable, whereClause)
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ProjectRepository) GetProjects(ctx context.Context, filter types.Filter) ([]entities.Project, uint64, error) {
	whereClause, args := r.buildFilterQuery(filter)

	total, err := r.countProjects(ctx, whereClause, args)
	if err != nil || total == 0 {
		return []entities.Project{}, total, err
	}

	orderByClause := "ORDER BY p.id DESC"
	if len(filter.Sort) > 0 {
		sorts := []string{}
		for field, direction := range filter.Sort {
			if dbField, ok := projectAllowedSortFields[field]; ok {
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

	query := fmt.Sprintf("SELECT %s %s %s %s %s", projectSelectColumns, projectSelectJoins, whereClause, orderByClause, limitClause)
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	projects := make([]entities.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, *project)
	}
	return projects, total, rows.Err()
}

func (r *ProjectRepository) FindProject(ctx context.Context, id uint64) (*entities.Project, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE p.id = $1", projectSelectColumns, projectSelectJoins)
	return scanProject(r.storage.QueryRow(ctx, query, id))
}

func (r *ProjectRepository) CreateProjectInTx(ctx context.Context, tx pgx.Tx, project entities.Project) (uint64, error) {
	query := `
		INSERT INTO projects (name, description, department_id, owner_id, status, stage_id, start_date, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	var id uint64
	err := tx.QueryRow(ctx, query,
		project.Name, project.Description, project.DepartmentID, project.OwnerID,
		project.Status, project.StageID, project.StartDate, project.DueDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания проекта: %w", err)
	}
	return id, nil
}

func (r *ProjectRepository) UpdateProjectInTx(ctx context.Context, tx pgx.Tx, id uint64, payload dto.ProjectWriteDTO, departmentID *uint64) error {
	updateBuilder := sq.Update(projectTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if payload.Name != nil {
		updateBuilder = updateBuilder.Set("name", *payload.Name)
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
	if payload.StageID != nil {
		updateBuilder = updateBuilder.Set("stage_id", *payload.StageID)
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
	if departmentID != nil {
		updateBuilder = updateBuilder.Set("department_id", *departmentID)
		hasChanges = true
	}
	if ownerID, ok := payload.Owner.First(); ok {
		updateBuilder = updateBuilder.Set("owner_id", ownerID)
		hasChanges = true
	}
	if !hasChanges {
		return nil
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return err
	}
	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceMembersInTx перезаписывает один из наборов участников проекта.
func (r *ProjectRepository) ReplaceMembersInTx(ctx context.Context, tx pgx.Tx, projectID uint64, table string, userIDs []uint64) error {
	if table != SupportingSpecialistsTable && table != ResponsibleUsersTable {
		return fmt.Errorf("недопустимая таблица участников: %s", table)
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE project_id = $1", table), projectID); err != nil {
		return err
	}
	for _, userID := range userIDs {
		query := fmt.Sprintf("INSERT INTO %s (project_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING", table)
		if _, err := tx.Exec(ctx, query, projectID, userID); err != nil {
			return err
		}
	}
	return nil
}

// HardDeleteProject — жёсткое удаление, доступно только суперадмину
// (проверяется на уровне сервиса). Каскад подчищает участников и задачи.
func (r *ProjectRepository) HardDeleteProject(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
