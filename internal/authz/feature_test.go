package authz

import (
	"testing"

	"ops-portal/pkg/constants"
	"ops-portal/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestCanUseFeature(t *testing.T) {
	member := Capabilities{}
	admin := Capabilities{IsAdmin: true}

	t.Run("выключенный флаг запрещает даже админу", func(t *testing.T) {
		off := utils.BoolPtr(false)
		assert.False(t, CanUseFeature(constants.FeatureDashboard, off, admin, constants.DepartmentIT))
	})

	t.Run("nil-флаг трактуется как включено", func(t *testing.T) {
		assert.True(t, CanUseFeature(constants.FeatureDashboard, nil, member, constants.DepartmentIT))
	})

	t.Run("админ проходит независимо от департамента", func(t *testing.T) {
		assert.True(t, CanUseFeature(constants.FeatureHelpdesk, nil, admin, ""))
		assert.True(t, CanUseFeature(constants.FeatureHelpdesk, nil, admin, constants.DepartmentEngineering))
	})

	t.Run("хелпдеск закрыт для инженерной службы", func(t *testing.T) {
		assert.False(t, CanUseFeature(constants.FeatureHelpdesk, nil, member, constants.DepartmentEngineering))
		assert.True(t, CanUseFeature(constants.FeatureHelpdesk, nil, member, constants.DepartmentIT))
	})

	t.Run("пользователь без департамента не проходит", func(t *testing.T) {
		assert.False(t, CanUseFeature(constants.FeatureProjects, nil, member, ""))
	})
}

func TestFeatureDeniedMessage(t *testing.T) {
	assert.Equal(t, "Доступ к дашборду для вас закрыт", FeatureDeniedMessage(constants.FeatureDashboard))
	assert.Equal(t, "Доступ запрещён", FeatureDeniedMessage("unknown"))
}

func TestAssignableUserFilters(t *testing.T) {
	t.Run("суперадмин видит всех", func(t *testing.T) {
		filter := AssignableUserFilters(Capabilities{IsSuperAdmin: true, IsAdmin: true}, "")
		assert.NotNil(t, filter)
		assert.Empty(t, filter.Filter)
	})

	t.Run("обычный пользователь ограничен своим департаментом", func(t *testing.T) {
		filter := AssignableUserFilters(Capabilities{}, constants.DepartmentIT)
		assert.NotNil(t, filter)
		assert.Equal(t, constants.DepartmentIT, filter.Filter["department_key"])
	})

	t.Run("без департамента выборка запрещена", func(t *testing.T) {
		assert.Nil(t, AssignableUserFilters(Capabilities{IsAdmin: true}, ""))
	})
}
