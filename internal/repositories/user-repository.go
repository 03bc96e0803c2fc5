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

const userTable = "users"

var (
	userAllowedFilterFields = map[string]string{
		"role_id":        "u.role_id",
		"department_id":  "u.department_id",
		"department_key": "d.key",
	}
	userAllowedSortFields = map[string]string{
		"id":         "u.id",
		"fio":        "u.fio",
		"email":      "u.email",
		"created_at": "u.created_at",
	}
)

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, user entities.User) (*entities.User, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error)
	SoftDeleteUser(ctx context.Context, id uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{storage: storage, logger: logger}
}

const userSelectColumns = `
	u.id, u.fio, u.email, u.password, u.role_id, u.department_id,
	d.key AS department_key, r.name AS role_name, r.type AS role_type,
	u.dashboard_enabled, u.projects_enabled, u.helpdesk_enabled,
	u.created_at, u.updated_at, u.deleted_at`

const userSelectJoins = `
	FROM users u
	LEFT JOIN departments d ON u.department_id = d.id
	LEFT JOIN roles r ON u.role_id = r.id`

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.Fio, &u.Email, &u.Password, &u.RoleID, &u.DepartmentID,
		&u.DepartmentKey, &u.RoleName, &u.RoleType,
		&u.DashboardEnabled, &u.ProjectsEnabled, &u.HelpdeskEnabled,
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) buildFilterQuery(filter types.Filter) (string, []interface{}) {
	conditions := []string{"u.deleted_at IS NULL"}
	args := []interface{}{}
	argCounter := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(u.fio ILIKE $%d OR u.email ILIKE $%d)", argCounter, argCounter))
		args = append(args, "%"+filter.Search+"%")
		argCounter++
	}
	for key, value := range filter.Filter {
		dbColumn, ok := userAllowedFilterFields[key]
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

func (r *UserRepository) countUsers(ctx context.Context, whereClause string, args []interface{}) (uint64, error) {
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", userSelectJoins, whereClause)
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	whereClause, args := r.buildFilterQuery(filter)

	total, err := r.countUsers(ctx, whereClause, args)
	if err != nil || total == 0 {
		return []entities.User{}, total, err
	}

	orderByClause := "ORDER BY u.id DESC"
	if len(filter.Sort) > 0 {
		sorts := []string{}
		for field, direction := range filter.Sort {
			if dbField, ok := userAllowedSortFields[field]; ok {
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

	query := fmt.Sprintf("SELECT %s %s %s %s %s", userSelectColumns, userSelectJoins, whereClause, orderByClause, limitClause)
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE u.id = $1 AND u.deleted_at IS NULL", userSelectColumns, userSelectJoins)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE LOWER(u.email) = LOWER($1) AND u.deleted_at IS NULL", userSelectColumns, userSelectJoins)
	return scanUser(r.storage.QueryRow(ctx, query, email))
}

func (r *UserRepository) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	query := `
		INSERT INTO users (fio, email, password, role_id, department_id, dashboard_enabled, projects_enabled, helpdesk_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	var id uint64
	err := r.storage.QueryRow(ctx, query,
		user.Fio, user.Email, user.Password, user.RoleID, user.DepartmentID,
		user.DashboardEnabled, user.ProjectsEnabled, user.HelpdeskEnabled,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.FindUser(ctx, id)
}

func (r *UserRepository) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error) {
	updateBuilder := sq.Update(userTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if payload.Fio != nil {
		updateBuilder = updateBuilder.Set("fio", *payload.Fio)
		hasChanges = true
	}
	if payload.Email != nil {
		updateBuilder = updateBuilder.Set("email", *payload.Email)
		hasChanges = true
	}
	if payload.RoleID != nil {
		updateBuilder = updateBuilder.Set("role_id", *payload.RoleID)
		hasChanges = true
	}
	if payload.DepartmentID != nil {
		updateBuilder = updateBuilder.Set("department_id", *payload.DepartmentID)
		hasChanges = true
	}
	if payload.DashboardEnabled != nil {
		updateBuilder = updateBuilder.Set("dashboard_enabled", *payload.DashboardEnabled)
		hasChanges = true
	}
	if payload.ProjectsEnabled != nil {
		updateBuilder = updateBuilder.Set("projects_enabled", *payload.ProjectsEnabled)
		hasChanges = true
	}
	if payload.HelpdeskEnabled != nil {
		updateBuilder = updateBuilder.Set("helpdesk_enabled", *payload.HelpdeskEnabled)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindUser(ctx, id)
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
	return r.FindUser(ctx, updatedID)
}

func (r *UserRepository) SoftDeleteUser(ctx context.Context, id uint64) error {
	query := `UPDATE users SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
