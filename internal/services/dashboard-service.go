package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ops-portal/internal/dto"
	"ops-portal/internal/repositories"
	"ops-portal/pkg/constants"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type DashboardServiceInterface interface {
	GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error)
}

type DashboardService struct {
	dashboardRepo  repositories.DashboardRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	cacheTTL       time.Duration
	logger         *zap.Logger
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		dashboardRepo:  dashboardRepo,
		departmentRepo: departmentRepo,
		cacheRepo:      cacheRepo,
		cacheTTL:       cacheTTL,
		logger:         logger,
	}
}

// GetSummary отдает сводку портала. Агрегаты дорогие, поэтому результат
// живет в Redis до cacheTTL; устаревание в пределах TTL допустимо.
func (s *DashboardService) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	cacheKey := fmt.Sprintf(constants.CacheKeyDashboardSummary, "all")

	if cached, err := s.cacheRepo.Get(ctx, cacheKey); err == nil {
		var summary dto.DashboardSummaryDTO
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
		s.logger.Warn("некорректное значение в кэше сводки, пересчитываем", zap.String("key", cacheKey))
	} else if err != redis.Nil {
		s.logger.Error("ошибка чтения кэша сводки", zap.Error(err))
	}

	summary, err := s.buildSummary(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(summary); err == nil {
		if err := s.cacheRepo.Set(ctx, cacheKey, payload, s.cacheTTL); err != nil {
			s.logger.Error("не удалось записать сводку в кэш", zap.Error(err))
		}
	}
	return summary, nil
}

func (s *DashboardService) buildSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	active, archived, err := s.dashboardRepo.GetProjectCounts(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.dashboardRepo.GetTicketCountsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.dashboardRepo.GetTicketCountsByPriority(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.departmentRepo.GetDepartmentStats(ctx)
	if err != nil {
		return nil, err
	}
	departments := make([]dto.DepartmentStatsDTO, 0, len(stats))
	for _, stat := range stats {
		departments = append(departments, dto.DepartmentStatsDTO{
			ID:             stat.ID,
			Key:            stat.Key,
			Name:           stat.Name,
			ActiveProjects: stat.ActiveProjects,
			OpenTickets:    stat.OpenTickets,
			UsersCount:     stat.UsersCount,
		})
	}

	summary := &dto.DashboardSummaryDTO{
		ActiveProjects:    active,
		ArchivedProjects:  archived,
		TicketsByStatus:   byStatus,
		TicketsByPriority: byPriority,
		Departments:       departments,
	}
	for _, group := range byStatus {
		switch group.Group {
		case constants.TicketStatusOpen, constants.TicketStatusInProgress:
			summary.OpenTickets += group.Count
		case constants.TicketStatusResolved, constants.TicketStatusClosed:
			summary.ResolvedTickets += group.Count
		}
	}
	return summary, nil
}
