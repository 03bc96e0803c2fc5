package constants

//============== DEPARTMENT KEYS ==============

// Канонические ключи департаментов. Закрытый справочник, в БД не редактируется.
const (
	DepartmentIT               = "IT"
	DepartmentDigitalization   = "DIGITALIZATION"
	DepartmentMedicalEquipment = "MEDICAL_EQUIPMENT"
	DepartmentEngineering      = "ENGINEERING"
)

var DepartmentKeys = []string{
	DepartmentIT,
	DepartmentDigitalization,
	DepartmentMedicalEquipment,
	DepartmentEngineering,
}

func IsDepartmentKey(key string) bool {
	for _, k := range DepartmentKeys {
		if k == key {
			return true
		}
	}
	return false
}

//============== FEATURE KEYS ==============

const (
	FeatureDashboard = "dashboard"
	FeatureProjects  = "projects"
	FeatureHelpdesk  = "helpdesk"
)

//============== CACHE KEYS ==============

const (
	// Ключ для подсчета неудачных попыток входа.
	// Формат: login_attempts:<userID> -> count
	CacheKeyLoginAttempts = "login_attempts:%d"

	// Ключ, указывающий, что аккаунт заблокирован из-за неудачных попыток входа.
	// Формат: lockout:<userID> -> "locked"
	CacheKeyLockout = "lockout:%d"

	// Ключ кэша сводки дашборда.
	// Формат: dashboard_summary:<departmentKey|all>
	CacheKeyDashboardSummary = "dashboard_summary:%s"
)
