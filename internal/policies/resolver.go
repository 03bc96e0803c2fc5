package policies

import (
	"context"
	"strconv"
	"strings"

	"ops-portal/pkg/constants"

	"go.uber.org/zap"
)

// DepartmentResolver приводит ссылку на департамент (числовой id, ключ
// или документ-идентификатор старой CMS) к каноническому ключу.
//
// Неудача разрешения — это всегда "" и никогда ошибка: решение о том,
// является ли пустой департамент нарушением, принимает валидатор.
type DepartmentResolver struct {
	departments DepartmentReader
	logger      *zap.Logger
}

func NewDepartmentResolver(departments DepartmentReader, logger *zap.Logger) *DepartmentResolver {
	return &DepartmentResolver{departments: departments, logger: logger}
}

func (r *DepartmentResolver) ResolveKey(ctx context.Context, ref interface{}) string {
	switch v := ref.(type) {
	case nil:
		return ""
	case uint64:
		return r.keyByID(ctx, v)
	case int:
		if v > 0 {
			return r.keyByID(ctx, uint64(v))
		}
	case int64:
		if v > 0 {
			return r.keyByID(ctx, uint64(v))
		}
	case float64:
		if v > 0 && v == float64(uint64(v)) {
			return r.keyByID(ctx, uint64(v))
		}
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return ""
		}
		if id, err := strconv.ParseUint(s, 10, 64); err == nil {
			return r.keyByID(ctx, id)
		}
		if upper := strings.ToUpper(s); constants.IsDepartmentKey(upper) {
			return r.keyByKey(ctx, upper)
		}
		if key := r.keyByKey(ctx, strings.ToUpper(s)); key != "" {
			return key
		}
		return r.keyByDocumentID(ctx, s)
	}
	return ""
}

func (r *DepartmentResolver) keyByID(ctx context.Context, id uint64) string {
	dept, err := r.departments.FindDepartment(ctx, id)
	if err != nil {
		r.logger.Debug("департамент не найден по id", zap.Uint64("id", id), zap.Error(err))
		return ""
	}
	return dept.Key
}

func (r *DepartmentResolver) keyByKey(ctx context.Context, key string) string {
	dept, err := r.departments.FindDepartmentByKey(ctx, key)
	if err != nil {
		return ""
	}
	return dept.Key
}

func (r *DepartmentResolver) keyByDocumentID(ctx context.Context, documentID string) string {
	dept, err := r.departments.FindDepartmentByDocumentID(ctx, documentID)
	if err != nil {
		r.logger.Debug("департамент не найден по документ-идентификатору",
			zap.String("document_id", documentID), zap.Error(err))
		return ""
	}
	return dept.Key
}
