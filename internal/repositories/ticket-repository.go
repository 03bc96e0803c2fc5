package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"ops-portal/internal/dto"
	"ops-portal/internal/entities"
	"ops-portal/pkg/constants"
	apperrors "ops-portal/pkg/errors"
	"ops-portal/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const ticketTable = "tickets"

var (
	ticketAllowedFilterFields = map[string]string{
		"status":        "tk.status",
		"priority":      "tk.priority",
		"department_id": "tk.department_id",
		"creator_id":    "tk.creator_id",
		"assignee_id":   "tk.assignee_id",
	}
	ticketAllowedSortFields = map[string]string{
		"id":         "tk.id",
		"number":     "tk.number",
		"priority":   "tk.priority",
		"created_at": "tk.created_at",
	}
)

type TicketRepositoryInterface interface {
	GetTickets(ctx context.Context, filter types.Filter) ([]entities.Ticket, uint64, error)
	FindTicket(ctx context.Context, id uint64) (*entities.Ticket, error)
	CreateTicket(ctx context.Context, ticket entities.Ticket) (*entities.Ticket, error)
	UpdateTicket(ctx context.Context, id uint64, payload dto.UpdateTicketDTO) (*entities.Ticket, error)
	SoftDeleteTicket(ctx context.Context, id uint64) error
	GetReportRows(ctx context.Context, filter entities.ReportFilter) ([]dto.TicketReportRowDTO, uint64, error)
}

type TicketRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTicketRepository(storage *pgxpool.Pool, logger *zap.Logger) *TicketRepository {
	return &TicketRepository{storage: storage, logger: logger}
}

const ticketColumns = `
	tk.id, tk.number, tk.title, tk.description, tk.department_id, tk.creator_id, tk.assignee_id,
	tk.status, tk.priority, tk.resolved_at, tk.created_at, tk.updated_at, tk.deleted_at`

func scanTicket(row pgx.Row) (*entities.Ticket, error) {
	var tk entities.Ticket
	err := row.Scan(
		&tk.ID, &tk.Number, &tk.Title, &tk.Description, &tk.DepartmentID, &tk.CreatorID, &tk.AssigneeID,
		&tk.Status, &tk.Priority, &tk.ResolvedAt, &tk.CreatedAt, &tk.UpdatedAt, &tk.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования ticket: %w", err)
	}
	return &tk, nil
}

func (r *TicketRepository) buildFilterQuery(filter types.Filter) (string, []interface{}) {
	conditions := []string{"tk.deleted_at IS NULL"}
	args := []interface{}{}
	argCounter := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(tk.number ILIKE $%d OR tk.title ILIKE $%d)", argCounter, argCounter))
		args = append(args, "%"+filter.Search+"%")
		argCounter++
	}
	for key, value := range filter.Filter {
		dbColumn, ok := ticketAllowedFilterFields[key]
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

func (r *TicketRepository) GetTickets(ctx context.Context, filter types.Filter) ([]entities.Ticket, uint64, error) {
	whereClause, args := r.buildFilterQuery(filter)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s tk %s", ticketTable, whereClause)
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Ticket{}, 0, nil
	}

	orderByClause := "ORDER BY tk.id DESC"
	if len(filter.Sort) > 0 {
		sorts := []string{}
		for field, direction := range filter.Sort {
			if dbField, ok := ticketAllowedSortFields[field]; ok {
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

	query := fmt.Sprintf("SELECT %s FROM %s tk %s %s %s", ticketColumns, ticketTable, whereClause, orderByClause, limitClause)
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tickets := make([]entities.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, total, rows.Err()
}

func (r *TicketRepository) FindTicket(ctx context.Context, id uint64) (*entities.Ticket, error) {
	query := fmt.Sprintf("SELECT %s FROM %s tk WHERE tk.id = $1 AND tk.deleted_at IS NULL", ticketColumns, ticketTable)
	return scanTicket(r.storage.QueryRow(ctx, query, id))
}

func (r *TicketRepository) CreateTicket(ctx context.Context, ticket entities.Ticket) (*entities.Ticket, error) {
	query := `
		INSERT INTO tickets (number, title, description, department_id, creator_id, assignee_id, status, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	var id uint64
	err := r.storage.QueryRow(ctx, query,
		ticket.Number, ticket.Title, ticket.Description, ticket.DepartmentID,
		ticket.CreatorID, ticket.AssigneeID, ticket.Status, ticket.Priority,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания заявки: %w", err)
	}
	return r.FindTicket(ctx, id)
}

func (r *TicketRepository) UpdateTicket(ctx context.Context, id uint64, payload dto.UpdateTicketDTO) (*entities.Ticket, error) {
	updateBuilder := sq.Update(ticketTable).
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
		// Фиксируем момент решения заявки при переводе в RESOLVED.
		if *payload.Status == constants.TicketStatusResolved {
			updateBuilder = updateBuilder.Set("resolved_at", sq.Expr("NOW()"))
		}
	}
	if payload.Priority != nil {
		updateBuilder = updateBuilder.Set("priority", *payload.Priority)
		hasChanges = true
	}
	if assigneeID, ok := payload.Assignee.First(); ok {
		updateBuilder = updateBuilder.Set("assignee_id", assigneeID)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindTicket(ctx, id)
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
	return r.FindTicket(ctx, updatedID)
}

func (r *TicketRepository) SoftDeleteTicket(ctx context.Context, id uint64) error {
	query := `UPDATE tickets SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetReportRows собирает строки отчета по заявкам с ФИО автора и исполнителя.
func (r *TicketRepository) GetReportRows(ctx context.Context, filter entities.ReportFilter) ([]dto.TicketReportRowDTO, uint64, error) {
	conditions := []string{"tk.deleted_at IS NULL"}
	args := []interface{}{}
	argCounter := 1

	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("tk.created_at >= $%d", argCounter))
		args = append(args, *filter.DateFrom)
		argCounter++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("tk.created_at <= $%d", argCounter))
		args = append(args, *filter.DateTo)
		argCounter++
	}
	if filter.DepartmentID != nil {
		conditions = append(conditions, fmt.Sprintf("tk.department_id = $%d", argCounter))
		args = append(args, *filter.DepartmentID)
		argCounter++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("tk.status = $%d", argCounter))
		args = append(args, *filter.Status)
		argCounter++
	}
	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s tk %s", ticketTable, whereClause)
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.TicketReportRowDTO{}, 0, nil
	}

	limitClause := ""
	if filter.PerPage > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
		args = append(args, filter.PerPage, (page-1)*filter.PerPage)
	}

	query := fmt.Sprintf(`
		SELECT tk.number, tk.title, d.key, cr.fio, asg.fio, tk.status, tk.priority, tk.created_at, tk.resolved_at
		FROM %s tk
		JOIN departments d ON tk.department_id = d.id
		JOIN users cr ON tk.creator_id = cr.id
		LEFT JOIN users asg ON tk.assignee_id = asg.id
		%s
		ORDER BY tk.created_at DESC
		%s`, ticketTable, whereClause, limitClause)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := make([]dto.TicketReportRowDTO, 0)
	for rows.Next() {
		var row dto.TicketReportRowDTO
		var assigneeFio *string
		if err := rows.Scan(&row.Number, &row.Title, &row.DepartmentKey, &row.CreatorFio, &assigneeFio, &row.Status, &row.Priority, &row.CreatedAt, &row.ResolvedAt); err != nil {
			return nil, 0, err
		}
		row.AssigneeFio = null.StringFromPtr(assigneeFio)
		result = append(result, row)
	}
	return result, total, rows.Err()
}
