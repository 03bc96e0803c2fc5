package dto

type DepartmentDTO struct {
	ID         uint64 `json:"id"`
	Key        string `json:"key"`
	Name       string `json:"name"`
	NameRu     string `json:"name_ru"`
	DocumentID string `json:"document_id"`
}

type ShortDepartmentDTO struct {
	ID  uint64 `json:"id"`
	Key string `json:"key"`
}

type DepartmentStatsDTO struct {
	ID             uint64 `json:"id"`
	Key            string `json:"key"`
	Name           string `json:"name"`
	ActiveProjects uint64 `json:"active_projects"`
	OpenTickets    uint64 `json:"open_tickets"`
	UsersCount     uint64 `json:"users_count"`
}
