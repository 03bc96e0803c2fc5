package dto

// DashboardSummaryDTO — сводка по порталу для аналитического дашборда.
type DashboardSummaryDTO struct {
	ActiveProjects   uint64 `json:"active_projects"`
	ArchivedProjects uint64 `json:"archived_projects"`
	OpenTickets      uint64 `json:"open_tickets"`
	ResolvedTickets  uint64 `json:"resolved_tickets"`

	TicketsByStatus   []CountByGroupDTO    `json:"tickets_by_status"`
	TicketsByPriority []CountByGroupDTO    `json:"tickets_by_priority"`
	Departments       []DepartmentStatsDTO `json:"departments"`
}

type CountByGroupDTO struct {
	Group string `json:"group"`
	Count uint64 `json:"count"`
}
