package repositories

import (
	"context"
	"errors"
	"fmt"

	"ops-portal/internal/entities"
	apperrors "ops-portal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const roleTable = "roles"

type RoleRepositoryInterface interface {
	GetRoles(ctx context.Context) ([]entities.Role, error)
	FindRole(ctx context.Context, id uint64) (*entities.Role, error)
	FindRoleByName(ctx context.Context, name string) (*entities.Role, error)
}

type RoleRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRoleRepository(storage *pgxpool.Pool, logger *zap.Logger) RoleRepositoryInterface {
	return &RoleRepository{storage: storage, logger: logger}
}

func scanRole(row pgx.Row) (*entities.Role, error) {
	var role entities.Role
	err := row.Scan(&role.ID, &role.Name, &role.Type, &role.CreatedAt, &role.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования role: %w", err)
	}
	return &role, nil
}

const roleColumns = `id, name, type, created_at, updated_at`

func (r *RoleRepository) GetRoles(ctx context.Context) ([]entities.Role, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id ASC`, roleColumns, roleTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]entities.Role, 0)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) FindRole(ctx context.Context, id uint64) (*entities.Role, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, roleColumns, roleTable)
	return scanRole(r.storage.QueryRow(ctx, query, id))
}

func (r *RoleRepository) FindRoleByName(ctx context.Context, name string) (*entities.Role, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE LOWER(name) = LOWER($1)`, roleColumns, roleTable)
	return scanRole(r.storage.QueryRow(ctx, query, name))
}
