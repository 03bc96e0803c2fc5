package entities

import "ops-portal/pkg/types"

// Stage — этап воркфлоу проекта. SortOrder проецируется
// в канбан-колонку [1..5].
type Stage struct {
	ID        uint64  `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	SortOrder float64 `json:"sort_order" db:"sort_order"`

	types.BaseEntity
}
