package constants

// --- СТАТУСЫ ПРОЕКТОВ (жизненный цикл, мягкое удаление через статус) ---
const (
	ProjectStatusActive   = "ACTIVE"
	ProjectStatusArchived = "ARCHIVED"
	ProjectStatusDeleted  = "DELETED"
)

var ProjectStatuses = []string{
	ProjectStatusActive,
	ProjectStatusArchived,
	ProjectStatusDeleted,
}

func IsProjectStatus(code string) bool {
	for _, s := range ProjectStatuses {
		if s == code {
			return true
		}
	}
	return false
}

// --- СТАТУСЫ ЗАДАЧ ---
const (
	TaskStatusOpen       = "OPEN"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
	TaskStatusClosed     = "CLOSED"
	TaskStatusCompleted  = "COMPLETED"
	TaskStatusCancelled  = "CANCELLED"
)

// Финальные статусы задач: такая задача считается выполненной при расчете прогресса.
var TerminalTaskStatuses = []string{
	TaskStatusDone,
	TaskStatusClosed,
	TaskStatusCompleted,
}

func IsTerminalTaskStatus(code string) bool {
	for _, s := range TerminalTaskStatuses {
		if s == code {
			return true
		}
	}
	return false
}

// --- СТАТУСЫ ЗАЯВОК ХЕЛПДЕСКА ---
const (
	TicketStatusOpen       = "OPEN"
	TicketStatusInProgress = "IN_PROGRESS"
	TicketStatusResolved   = "RESOLVED"
	TicketStatusClosed     = "CLOSED"
	TicketStatusRejected   = "REJECTED"
)

// --- ПРИОРИТЕТЫ ЗАЯВОК ---
const (
	TicketPriorityLow      = "LOW"
	TicketPriorityMedium   = "MEDIUM"
	TicketPriorityHigh     = "HIGH"
	TicketPriorityCritical = "CRITICAL"
)

// --- ГРАНИЦЫ КАНБАН-КОЛОНОК ---
const (
	StageOrderMin = 1
	StageOrderMax = 5
)
