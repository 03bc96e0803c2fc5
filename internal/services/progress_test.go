package services

import (
	"testing"

	"ops-portal/internal/dto"
	"ops-portal/internal/entities"
	"ops-portal/pkg/constants"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestIsTaskDone(t *testing.T) {
	testCases := []struct {
		name     string
		task     entities.Task
		expected bool
	}{
		{"открытая задача", entities.Task{Status: constants.TaskStatusOpen}, false},
		{"в работе", entities.Task{Status: constants.TaskStatusInProgress}, false},
		{"флаг completed", entities.Task{Status: constants.TaskStatusOpen, Completed: true}, true},
		{"прогресс 100", entities.Task{Status: constants.TaskStatusOpen, Progress: intPtr(100)}, true},
		{"прогресс 99", entities.Task{Status: constants.TaskStatusOpen, Progress: intPtr(99)}, false},
		{"статус DONE", entities.Task{Status: constants.TaskStatusDone}, true},
		{"статус CLOSED", entities.Task{Status: constants.TaskStatusClosed}, true},
		{"статус COMPLETED", entities.Task{Status: constants.TaskStatusCompleted}, true},
		{"отмененная задача не считается выполненной", entities.Task{Status: constants.TaskStatusCancelled}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsTaskDone(tc.task))
		})
	}
}

func TestComputeProjectProgress(t *testing.T) {
	t.Run("проект без задач", func(t *testing.T) {
		assert.Equal(t, dto.ProjectProgressDTO{}, ComputeProjectProgress(nil))
	})

	t.Run("две из трех выполнены", func(t *testing.T) {
		tasks := []entities.Task{
			{Status: constants.TaskStatusDone},
			{Status: constants.TaskStatusOpen, Completed: true},
			{Status: constants.TaskStatusOpen},
		}
		progress := ComputeProjectProgress(tasks)
		assert.Equal(t, 67, progress.ProgressPercent)
		assert.Equal(t, 2, progress.DoneTasks)
		assert.Equal(t, 3, progress.TotalTasks)
	})

	t.Run("все выполнены", func(t *testing.T) {
		tasks := []entities.Task{
			{Status: constants.TaskStatusDone},
			{Status: constants.TaskStatusCompleted},
		}
		assert.Equal(t, 100, ComputeProjectProgress(tasks).ProgressPercent)
	})

	t.Run("одна из шести — округление вверх от 16.6", func(t *testing.T) {
		tasks := []entities.Task{
			{Status: constants.TaskStatusDone},
			{}, {}, {}, {}, {},
		}
		assert.Equal(t, 17, ComputeProjectProgress(tasks).ProgressPercent)
	})
}

func TestBucketStageOrder(t *testing.T) {
	testCases := []struct {
		name      string
		sortOrder float64
		expected  int
	}{
		{"ниже минимума зажимается", 0, constants.StageOrderMin},
		{"выше максимума зажимается", 6, constants.StageOrderMax},
		{"округление вниз", 2.4, 2},
		{"округление вверх", 2.5, 3},
		{"целое в диапазоне не меняется", 4, 4},
		{"отрицательное зажимается", -1.7, constants.StageOrderMin},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BucketStageOrder(tc.sortOrder))
		})
	}
}
