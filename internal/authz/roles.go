// internal/authz/roles.go
package authz

import (
	"strings"

	"ops-portal/internal/entities"
)

// RoleKind — закрытое перечисление ролей портала. Исторические записи
// ролей хранят свободный текст ("Super Admin", "it-lead", "администратор"),
// поэтому классификация выполняется один раз через ParseRoleKind, а все
// проверки дальше работают только с RoleKind и таблицей возможностей.
type RoleKind int

const (
	RoleMember RoleKind = iota
	RoleLead
	RoleAdmin
	RoleSuperAdmin
)

func (k RoleKind) String() string {
	switch k {
	case RoleSuperAdmin:
		return "superadmin"
	case RoleAdmin:
		return "admin"
	case RoleLead:
		return "lead"
	default:
		return "member"
	}
}

type Capabilities struct {
	IsSuperAdmin bool
	IsAdmin      bool
	IsLead       bool
}

// Таблица возможностей. Суперадмин всегда является админом.
var capabilityTable = map[RoleKind]Capabilities{
	RoleMember:     {},
	RoleLead:       {IsLead: true},
	RoleAdmin:      {IsAdmin: true},
	RoleSuperAdmin: {IsSuperAdmin: true, IsAdmin: true},
}

func (k RoleKind) Capabilities() Capabilities {
	return capabilityTable[k]
}

// CanManageOwners: менять владельца проекта могут админ, руководитель и суперадмин.
func (c Capabilities) CanManageOwners() bool {
	return c.IsAdmin || c.IsLead
}

var (
	superAdminTokens = []string{"superadmin", "superuser", "суперадмин"}
	adminTokens      = []string{"admin", "administrator", "админ", "администратор"}
	leadTokens       = []string{"lead", "head", "лид", "руководитель", "начальник"}
)

// ParseRoleKind классифицирует свободный текст роли (name, type — оба
// могут отсутствовать). Отсутствующая роль — рядовой сотрудник без
// возможностей. Проверка идет от старшей роли к младшей по ОБОИМ полям,
// чтобы запись {name: "admin", type: "super-admin"} не потеряла старшинство.
func ParseRoleKind(name, roleType *string) RoleKind {
	normalized := make([]string, 0, 2)
	for _, s := range []*string{name, roleType} {
		if s != nil && *s != "" {
			normalized = append(normalized, normalizeRoleText(*s))
		}
	}
	if len(normalized) == 0 {
		return RoleMember
	}

	if anyContains(normalized, superAdminTokens) {
		return RoleSuperAdmin
	}
	if anyContains(normalized, adminTokens) {
		return RoleAdmin
	}
	if anyContains(normalized, leadTokens) {
		return RoleLead
	}
	return RoleMember
}

// CapabilitiesFor — классификация сразу в возможности.
func CapabilitiesFor(name, roleType *string) Capabilities {
	return ParseRoleKind(name, roleType).Capabilities()
}

// CapabilitiesForUser читает денормализованные поля роли пользователя.
func CapabilitiesForUser(u *entities.User) Capabilities {
	if u == nil {
		return Capabilities{}
	}
	return CapabilitiesFor(u.RoleName, u.RoleType)
}

// normalizeRoleText приводит к нижнему регистру и выбрасывает пробелы
// и разделители: "Super-Admin" и "super admin" совпадают.
func normalizeRoleText(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '-', '_', '.', '/':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func anyContains(values []string, tokens []string) bool {
	for _, v := range values {
		for _, t := range tokens {
			if strings.Contains(v, t) {
				return true
			}
		}
	}
	return false
}
