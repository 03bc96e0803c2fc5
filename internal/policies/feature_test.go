package policies

import (
	"context"
	"net/http"
	"testing"

	"ops-portal/pkg/constants"
	"ops-portal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFeatureGateCheck(t *testing.T) {
	ctx := context.Background()
	store := projectTestStore()
	gate := NewFeatureGate(store, zap.NewNop())

	t.Run("без аутентификации", func(t *testing.T) {
		assertHttpCode(t, gate.Check(ctx, 0, constants.FeatureDashboard), http.StatusUnauthorized)
	})

	t.Run("неизвестный пользователь", func(t *testing.T) {
		assertHttpCode(t, gate.Check(ctx, 999, constants.FeatureDashboard), http.StatusUnauthorized)
	})

	t.Run("сотрудник с департаментом проходит", func(t *testing.T) {
		assert.NoError(t, gate.Check(ctx, itMemberID, constants.FeatureProjects))
	})

	t.Run("персональный флаг выключает фичу", func(t *testing.T) {
		store.users[itMemberID].ProjectsEnabled = utils.BoolPtr(false)
		defer func() { store.users[itMemberID].ProjectsEnabled = nil }()

		assertHttpCode(t, gate.Check(ctx, itMemberID, constants.FeatureProjects), http.StatusForbidden)
	})

	t.Run("хелпдеск закрыт для инженерной службы", func(t *testing.T) {
		err := gate.Check(ctx, engMemberID, constants.FeatureHelpdesk)
		assertHttpCode(t, err, http.StatusForbidden)
	})

	t.Run("админ проходит без департамента", func(t *testing.T) {
		assert.NoError(t, gate.Check(ctx, superAdminID, constants.FeatureHelpdesk))
	})

	t.Run("пользователь без департамента не проходит", func(t *testing.T) {
		assertHttpCode(t, gate.Check(ctx, noDeptUserID, constants.FeatureDashboard), http.StatusForbidden)
	})
}
