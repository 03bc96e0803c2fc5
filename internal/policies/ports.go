package policies

import (
	"context"

	"ops-portal/internal/entities"
)

// Узкие read-интерфейсы персистентности. Политики только читают:
// им не нужны полные репозитории, а тестам — только маленькие фейки.

type UserReader interface {
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
}

type DepartmentReader interface {
	FindDepartment(ctx context.Context, id uint64) (*entities.Department, error)
	FindDepartmentByKey(ctx context.Context, key string) (*entities.Department, error)
	FindDepartmentByDocumentID(ctx context.Context, documentID string) (*entities.Department, error)
}

type ProjectReader interface {
	FindProject(ctx context.Context, id uint64) (*entities.Project, error)
}

type TaskReader interface {
	FindTask(ctx context.Context, id uint64) (*entities.Task, error)
}
