package middleware

import (
	"context"

	"ops-portal/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FeatureChecker решает, доступна ли фича пользователю. Реализация
// живет в internal/policies; узкий интерфейс разрывает импорт pkg -> internal.
type FeatureChecker interface {
	Check(ctx context.Context, actorID uint64, feature string) error
}

type FeatureMiddleware struct {
	checker FeatureChecker
	logger  *zap.Logger
}

func NewFeatureMiddleware(checker FeatureChecker, logger *zap.Logger) *FeatureMiddleware {
	return &FeatureMiddleware{checker: checker, logger: logger}
}

// Require отклоняет запрос, если фича пользователю недоступна.
// Вешается после Auth: UserID уже лежит в контексте.
func (m *FeatureMiddleware) Require(feature string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			userID, err := utils.GetUserIDFromCtx(ctx)
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}

			if err := m.checker.Check(ctx, userID, feature); err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			return next(c)
		}
	}
}
