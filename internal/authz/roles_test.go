package authz

import (
	"testing"

	"ops-portal/internal/entities"
	"ops-portal/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestParseRoleKind(t *testing.T) {
	testCases := []struct {
		name     string
		roleName *string
		roleType *string
		expected RoleKind
	}{
		{"нет роли", nil, nil, RoleMember},
		{"пустые строки", utils.StringPtr(""), utils.StringPtr(""), RoleMember},
		{"рядовой сотрудник", utils.StringPtr("Сотрудник"), utils.StringPtr("member"), RoleMember},
		{"админ по name", utils.StringPtr("Администратор"), nil, RoleAdmin},
		{"админ по type", utils.StringPtr("Главный по сети"), utils.StringPtr("admin"), RoleAdmin},
		{"суперадмин с разделителем", utils.StringPtr("Super-Admin"), nil, RoleSuperAdmin},
		{"суперадмин с пробелом", utils.StringPtr("super admin"), nil, RoleSuperAdmin},
		{"руководитель", utils.StringPtr("Руководитель отдела"), nil, RoleLead},
		{"lead по type", nil, utils.StringPtr("it-lead"), RoleLead},
		// Старшая роль побеждает, в каком бы поле она ни была.
		{"старшинство по двум полям", utils.StringPtr("admin"), utils.StringPtr("super-admin"), RoleSuperAdmin},
		{"незнакомый текст", utils.StringPtr("Врач"), utils.StringPtr("custom"), RoleMember},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseRoleKind(tc.roleName, tc.roleType))
		})
	}
}

func TestCapabilityTableSuperAdminIsAdmin(t *testing.T) {
	// Суперадмин всегда проходит и админские проверки.
	for kind, caps := range capabilityTable {
		if caps.IsSuperAdmin {
			assert.True(t, caps.IsAdmin, "роль %s: суперадмин обязан быть админом", kind)
		}
	}
}

func TestCapabilitiesCanManageOwners(t *testing.T) {
	assert.False(t, RoleMember.Capabilities().CanManageOwners())
	assert.True(t, RoleLead.Capabilities().CanManageOwners())
	assert.True(t, RoleAdmin.Capabilities().CanManageOwners())
	assert.True(t, RoleSuperAdmin.Capabilities().CanManageOwners())
}

func TestCapabilitiesForUser(t *testing.T) {
	assert.Equal(t, Capabilities{}, CapabilitiesForUser(nil))

	user := &entities.User{
		RoleName: utils.StringPtr("Super Admin"),
	}
	caps := CapabilitiesForUser(user)
	assert.True(t, caps.IsSuperAdmin)
	assert.True(t, caps.IsAdmin)
}

func TestRoleKindString(t *testing.T) {
	assert.Equal(t, "superadmin", RoleSuperAdmin.String())
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "lead", RoleLead.String())
	assert.Equal(t, "member", RoleMember.String())
}
