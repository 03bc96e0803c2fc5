package repositories

import (
	"context"
	"errors"
	"fmt"

	"ops-portal/internal/entities"
	apperrors "ops-portal/pkg/errors"
	"ops-portal/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const departmentTable = "departments"

type DepartmentRepositoryInterface interface {
	GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error)
	FindDepartment(ctx context.Context, id uint64) (*entities.Department, error)
	FindDepartmentByKey(ctx context.Context, key string) (*entities.Department, error)
	FindDepartmentByDocumentID(ctx context.Context, documentID string) (*entities.Department, error)
	GetDepartmentStats(ctx context.Context) ([]entities.DepartmentStats, error)
}

type DepartmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDepartmentRepository(storage *pgxpool.Pool, logger *zap.Logger) DepartmentRepositoryInterface {
	return &DepartmentRepository{storage: storage, logger: logger}
}

func scanDepartment(row pgx.Row) (*entities.Department, error) {
	var d entities.Department
	err := row.Scan(&d.ID, &d.Key, &d.Name, &d.NameRu, &d.DocumentID, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования department: %w", err)
	}
	return &d, nil
}

const departmentColumns = `id, key, name, name_ru, document_id, created_at, updated_at`

func (r *DepartmentRepository) GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id ASC`, departmentColumns, departmentTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	departments := make([]entities.Department, 0)
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, err
		}
		departments = append(departments, *dept)
	}
	return departments, uint64(len(departments)), rows.Err()
}

func (r *DepartmentRepository) FindDepartment(ctx context.Context, id uint64) (*entities.Department, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, departmentColumns, departmentTable)
	return scanDepartment(r.storage.QueryRow(ctx, query, id))
}

func (r *DepartmentRepository) FindDepartmentByKey(ctx context.Context, key string) (*entities.Department, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE key = $1`, departmentColumns, departmentTable)
	return scanDepartment(r.storage.QueryRow(ctx, query, key))
}

func (r *DepartmentRepository) FindDepartmentByDocumentID(ctx context.Context, documentID string) (*entities.Department, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE document_id = $1`, departmentColumns, departmentTable)
	return scanDepartment(r.storage.QueryRow(ctx, query, documentID))
}

func (r *DepartmentRepository) GetDepartmentStats(ctx context.Context) ([]entities.DepartmentStats, error) {
	query := `
		SELECT d.id, d.key, d.name,
			COUNT(DISTINCT p.id) FILTER (WHERE p.status = 'ACTIVE')               AS active_projects,
			COUNT(DISTINCT t.id) FILTER (WHERE t.status IN ('OPEN','IN_PROGRESS') AND t.deleted_at IS NULL) AS open_tickets,
			COUNT(DISTINCT u.id) FILTER (WHERE u.deleted_at IS NULL)              AS users_count
		FROM departments d
		LEFT JOIN projects p ON p.department_id = d.id
		LEFT JOIN tickets  t ON t.department_id = d.id
		LEFT JOIN users    u ON u.department_id = d.id
		GROUP BY d.id, d.key, d.name
		ORDER BY d.id ASC`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]entities.DepartmentStats, 0)
	for rows.Next() {
		var s entities.DepartmentStats
		if err := rows.Scan(&s.ID, &s.Key, &s.Name, &s.ActiveProjects, &s.OpenTickets, &s.UsersCount); err != nil {
			r.logger.Error("ошибка сканирования статистики департаментов", zap.Error(err))
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
