package authz

import (
	"ops-portal/pkg/constants"
)

// Справочник доступа к фичам портала: какие департаменты видят фичу.
// Админ и суперадмин видят всё независимо от департамента.
var featureDepartments = map[string][]string{
	constants.FeatureDashboard: {
		constants.DepartmentIT,
		constants.DepartmentDigitalization,
		constants.DepartmentMedicalEquipment,
		constants.DepartmentEngineering,
	},
	constants.FeatureProjects: {
		constants.DepartmentIT,
		constants.DepartmentDigitalization,
		constants.DepartmentMedicalEquipment,
		constants.DepartmentEngineering,
	},
	constants.FeatureHelpdesk: {
		constants.DepartmentIT,
		constants.DepartmentDigitalization,
	},
}

var featureDeniedMessages = map[string]string{
	constants.FeatureDashboard: "Доступ к дашборду для вас закрыт",
	constants.FeatureProjects:  "Доступ к проектам для вас закрыт",
	constants.FeatureHelpdesk:  "Доступ к хелпдеску для вас закрыт",
}

// CanUseFeature — булев гейт: пользовательский флаг (nil трактуется как
// "включено") И (админский доступ ИЛИ департамент в списке фичи).
func CanUseFeature(feature string, userFlag *bool, caps Capabilities, departmentKey string) bool {
	if userFlag != nil && !*userFlag {
		return false
	}
	if caps.IsAdmin || caps.IsSuperAdmin {
		return true
	}
	for _, key := range featureDepartments[feature] {
		if key == departmentKey {
			return true
		}
	}
	return false
}

func FeatureDeniedMessage(feature string) string {
	if msg, ok := featureDeniedMessages[feature]; ok {
		return msg
	}
	return "Доступ запрещён"
}
