package services

import (
	"context"

	"ops-portal/internal/dto"
	"ops-portal/internal/entities"
	"ops-portal/internal/repositories"

	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	GetTicketReport(ctx context.Context, filter entities.ReportFilter) ([]dto.TicketReportRowDTO, uint64, error)
}

type ReportService struct {
	ticketRepo repositories.TicketRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(ticketRepo repositories.TicketRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{ticketRepo: ticketRepo, logger: logger}
}

func (s *ReportService) GetTicketReport(ctx context.Context, filter entities.ReportFilter) ([]dto.TicketReportRowDTO, uint64, error) {
	rows, total, err := s.ticketRepo.GetReportRows(ctx, filter)
	if err != nil {
		s.logger.Error("не удалось собрать отчет по заявкам", zap.Error(err))
		return nil, 0, err
	}
	return rows, total, nil
}
