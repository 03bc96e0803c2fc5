package repositories

import (
	"context"

	"ops-portal/internal/dto"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type DashboardRepositoryInterface interface {
	GetProjectCounts(ctx context.Context) (active uint64, archived uint64, err error)
	GetTicketCountsByStatus(ctx context.Context) ([]dto.CountByGroupDTO, error)
	GetTicketCountsByPriority(ctx context.Context) ([]dto.CountByGroupDTO, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

func (r *DashboardRepository) GetProjectCounts(ctx context.Context) (uint64, uint64, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'ACTIVE')   AS active,
			COUNT(*) FILTER (WHERE status = 'ARCHIVED') AS archived
		FROM projects`
	var active, archived uint64
	if err := r.storage.QueryRow(ctx, query).Scan(&active, &archived); err != nil {
		return 0, 0, err
	}
	return active, archived, nil
}

func (r *DashboardRepository) GetTicketCountsByStatus(ctx context.Context) ([]dto.CountByGroupDTO, error) {
	return r.countTicketsBy(ctx, "status")
}

func (r *DashboardRepository) GetTicketCountsByPriority(ctx context.Context) ([]dto.CountByGroupDTO, error) {
	return r.countTicketsBy(ctx, "priority")
}

func (r *DashboardRepository) countTicketsBy(ctx context.Context, column string) ([]dto.CountByGroupDTO, error) {
	// column берется только из фиксированного набора вызовов выше.
	query := `SELECT ` + column + `, COUNT(*) FROM tickets WHERE deleted_at IS NULL GROUP BY ` + column + ` ORDER BY ` + column

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]dto.CountByGroupDTO, 0)
	for rows.Next() {
		var item dto.CountByGroupDTO
		if err := rows.Scan(&item.Group, &item.Count); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
