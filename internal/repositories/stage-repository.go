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

const stageTable = "stages"

type StageRepositoryInterface interface {
	GetStages(ctx context.Context) ([]entities.Stage, error)
	FindStage(ctx context.Context, id uint64) (*entities.Stage, error)
}

type StageRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewStageRepository(storage *pgxpool.Pool, logger *zap.Logger) StageRepositoryInterface {
	return &StageRepository{storage: storage, logger: logger}
}

func scanStage(row pgx.Row) (*entities.Stage, error) {
	var s entities.Stage
	err := row.Scan(&s.ID, &s.Name, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования stage: %w", err)
	}
	return &s, nil
}

const stageColumns = `id, name, sort_order, created_at, updated_at`

func (r *StageRepository) GetStages(ctx context.Context) ([]entities.Stage, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY sort_order ASC, id ASC`, stageColumns, stageTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stages := make([]entities.Stage, 0)
	for rows.Next() {
		stage, err := scanStage(rows)
		if err != nil {
			return nil, err
		}
		stages = append(stages, *stage)
	}
	return stages, rows.Err()
}

func (r *StageRepository) FindStage(ctx context.Context, id uint64) (*entities.Stage, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, stageColumns, stageTable)
	return scanStage(r.storage.QueryRow(ctx, query, id))
}
