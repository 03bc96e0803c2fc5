package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ops-portal/internal/dto"
	"ops-portal/internal/entities"
	"ops-portal/internal/policies"
	"ops-portal/internal/repositories"
	"ops-portal/pkg/constants"
	apperrors "ops-portal/pkg/errors"
	"ops-portal/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketServiceInterface interface {
	GetTickets(ctx context.Context, filter types.Filter) ([]dto.TicketDTO, uint64, error)
	FindTicket(ctx context.Context, id uint64) (*dto.TicketDTO, error)
	CreateTicket(ctx context.Context, actorID uint64, payload dto.CreateTicketDTO) (*dto.TicketDTO, error)
	UpdateTicket(ctx context.Context, actorID, id uint64, payload dto.UpdateTicketDTO) (*dto.TicketDTO, error)
	DeleteTicket(ctx context.Context, actorID, id uint64) error
}

type TicketService struct {
	ticketRepo     repositories.TicketRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	resolver       *policies.DepartmentResolver
	logger         *zap.Logger
}

func NewTicketService(
	ticketRepo repositories.TicketRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	resolver *policies.DepartmentResolver,
	logger *zap.Logger,
) TicketServiceInterface {
	return &TicketService{
		ticketRepo:     ticketRepo,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		resolver:       resolver,
		logger:         logger,
	}
}

func (s *TicketService) GetTickets(ctx context.Context, filter types.Filter) ([]dto.TicketDTO, uint64, error) {
	tickets, total, err := s.ticketRepo.GetTickets(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	departments, err := s.departmentsByID(ctx)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.TicketDTO, 0, len(tickets))
	for i := range tickets {
		result = append(result, toTicketDTO(&tickets[i], departments))
	}
	return result, total, nil
}

func (s *TicketService) FindTicket(ctx context.Context, id uint64) (*dto.TicketDTO, error) {
	ticket, err := s.ticketRepo.FindTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	departments, err := s.departmentsByID(ctx)
	if err != nil {
		return nil, err
	}
	result := toTicketDTO(ticket, departments)
	return &result, nil
}

func (s *TicketService) CreateTicket(ctx context.Context, actorID uint64, payload dto.CreateTicketDTO) (*dto.TicketDTO, error) {
	if actorID == 0 {
		return nil, apperrors.NewUnauthorizedError("Требуется аутентификация")
	}

	key := s.resolver.ResolveKey(ctx, payload.Department.Value())
	if key == "" {
		return nil, apperrors.NewValidationError("Не удалось определить департамент заявки")
	}
	department, err := s.departmentRepo.FindDepartmentByKey(ctx, key)
	if err != nil {
		return nil, apperrors.NewValidationError("Департамент %s не найден", key)
	}

	priority := payload.Priority
	if priority == "" {
		priority = constants.TicketPriorityMedium
	}

	ticket := entities.Ticket{
		Number:       newTicketNumber(),
		Title:        payload.Title,
		Description:  payload.Description,
		DepartmentID: department.ID,
		CreatorID:    actorID,
		Status:       constants.TicketStatusOpen,
		Priority:     priority,
	}
	if assigneeID, ok := payload.Assignee.First(); ok {
		if _, err := s.userRepo.FindUser(ctx, assigneeID); err != nil {
			return nil, apperrors.NewValidationError("Исполнитель заявки (id=%d) не найден", assigneeID)
		}
		ticket.AssigneeID = &assigneeID
	}

	created, err := s.ticketRepo.CreateTicket(ctx, ticket)
	if err != nil {
		return nil, err
	}
	s.logger.Info("заявка создана",
		zap.Uint64("ticket_id", created.ID),
		zap.String("number", created.Number),
		zap.Uint64("actor_id", actorID),
	)
	return s.FindTicket(ctx, created.ID)
}

func (s *TicketService) UpdateTicket(ctx context.Context, actorID, id uint64, payload dto.UpdateTicketDTO) (*dto.TicketDTO, error) {
	if actorID == 0 {
		return nil, apperrors.NewUnauthorizedError("Требуется аутентификация")
	}

	if assigneeID, ok := payload.Assignee.First(); ok {
		if _, err := s.userRepo.FindUser(ctx, assigneeID); err != nil {
			return nil, apperrors.NewValidationError("Исполнитель заявки (id=%d) не найден", assigneeID)
		}
	}

	if _, err := s.ticketRepo.UpdateTicket(ctx, id, payload); err != nil {
		return nil, err
	}
	return s.FindTicket(ctx, id)
}

func (s *TicketService) DeleteTicket(ctx context.Context, actorID, id uint64) error {
	if actorID == 0 {
		return apperrors.NewUnauthorizedError("Требуется аутентификация")
	}
	return s.ticketRepo.SoftDeleteTicket(ctx, id)
}

func (s *TicketService) departmentsByID(ctx context.Context) (map[uint64]entities.Department, error) {
	list, _, err := s.departmentRepo.GetDepartments(ctx, types.Filter{})
	if err != nil {
		return nil, err
	}
	departments := make(map[uint64]entities.Department, len(list))
	for _, d := range list {
		departments[d.ID] = d
	}
	return departments, nil
}

// newTicketNumber генерирует человекочитаемый номер вида HD-2026-1A2B3C4D.
func newTicketNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("HD-%d-%s", time.Now().Year(), suffix)
}

func toTicketDTO(ticket *entities.Ticket, departments map[uint64]entities.Department) dto.TicketDTO {
	department := dto.ShortDepartmentDTO{ID: ticket.DepartmentID}
	if d, ok := departments[ticket.DepartmentID]; ok {
		department.Key = d.Key
	}
	return dto.TicketDTO{
		ID:          ticket.ID,
		Number:      ticket.Number,
		Title:       ticket.Title,
		Description: ticket.Description,
		Department:  department,
		CreatorID:   ticket.CreatorID,
		AssigneeID:  null.Uint64FromPtr(ticket.AssigneeID),
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		ResolvedAt:  ticket.ResolvedAt,
		CreatedAt:   ticket.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   ticket.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
