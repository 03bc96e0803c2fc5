package policies

import (
	"context"

	"ops-portal/internal/authz"
	"ops-portal/internal/entities"
	"ops-portal/pkg/constants"
	apperrors "ops-portal/pkg/errors"

	"go.uber.org/zap"
)

// FeatureGate проверяет доступ пользователя к областям портала
// (dashboard / projects / helpdesk) перед обработкой запроса.
type FeatureGate struct {
	users  UserReader
	logger *zap.Logger
}

func NewFeatureGate(users UserReader, logger *zap.Logger) *FeatureGate {
	return &FeatureGate{users: users, logger: logger}
}

func (g *FeatureGate) Check(ctx context.Context, actorID uint64, feature string) error {
	if actorID == 0 {
		return apperrors.NewUnauthorizedError("Требуется аутентификация")
	}

	actor, err := g.users.FindUser(ctx, actorID)
	if err != nil {
		return apperrors.NewUnauthorizedError("Пользователь не найден")
	}

	caps := authz.CapabilitiesForUser(actor)
	deptKey := ""
	if actor.DepartmentKey != nil {
		deptKey = *actor.DepartmentKey
	}

	if !authz.CanUseFeature(feature, featureFlag(actor, feature), caps, deptKey) {
		g.logger.Debug("доступ к фиче отклонен",
			zap.Uint64("user_id", actorID),
			zap.String("feature", feature),
			zap.String("department", deptKey),
		)
		return apperrors.NewForbiddenError(authz.FeatureDeniedMessage(feature))
	}
	return nil
}

func featureFlag(u *entities.User, feature string) *bool {
	switch feature {
	case constants.FeatureDashboard:
		return u.DashboardEnabled
	case constants.FeatureProjects:
		return u.ProjectsEnabled
	case constants.FeatureHelpdesk:
		return u.HelpdeskEnabled
	default:
		return nil
	}
}
