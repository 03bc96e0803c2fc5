package services

import (
	"math"

	"ops-portal/internal/dto"
	"ops-portal/internal/entities"
	"ops-portal/pkg/constants"
)

// IsTaskDone: задача выполнена, если стоит флаг completed, либо прогресс
// достиг 100, либо статус финальный. Источники исторически дублируют
// друг друга, поэтому достаточно любого из трех.
func IsTaskDone(task entities.Task) bool {
	if task.Completed {
		return true
	}
	if task.Progress != nil && *task.Progress >= 100 {
		return true
	}
	return constants.IsTerminalTaskStatus(task.Status)
}

// ComputeProjectProgress считает процент готовности проекта по его задачам.
// Проект без задач имеет нулевой прогресс.
func ComputeProjectProgress(tasks []entities.Task) dto.ProjectProgressDTO {
	total := len(tasks)
	if total == 0 {
		return dto.ProjectProgressDTO{}
	}

	done := 0
	for _, task := range tasks {
		if IsTaskDone(task) {
			done++
		}
	}

	return dto.ProjectProgressDTO{
		ProgressPercent: int(math.Round(float64(done) / float64(total) * 100)),
		DoneTasks:       done,
		TotalTasks:      total,
	}
}

// BucketStageOrder проецирует sort_order этапа в номер канбан-колонки:
// округление до ближайшего целого и зажатие в [StageOrderMin, StageOrderMax].
func BucketStageOrder(sortOrder float64) int {
	bucket := int(math.Round(sortOrder))
	if bucket < constants.StageOrderMin {
		return constants.StageOrderMin
	}
	if bucket > constants.StageOrderMax {
		return constants.StageOrderMax
	}
	return bucket
}
