package services

import (
	"context"

	"ops-portal/internal/dto"
	"ops-portal/internal/entities"
	"ops-portal/internal/policies"
	"ops-portal/internal/repositories"
	"ops-portal/pkg/constants"
	apperrors "ops-portal/pkg/errors"
	"ops-portal/pkg/types"

	"go.uber.org/zap"
)

type TaskServiceInterface interface {
	GetTasks(ctx context.Context, filter types.Filter) ([]dto.TaskDTO, uint64, error)
	FindTask(ctx context.Context, id uint64) (*dto.TaskDTO, error)
	CreateTask(ctx context.Context, actorID uint64, payload dto.TaskWriteDTO) (*dto.TaskDTO, error)
	UpdateTask(ctx context.Context, actorID, id uint64, payload dto.TaskWriteDTO) (*dto.TaskDTO, error)
	DeleteTask(ctx context.Context, actorID, id uint64) error
}

type TaskService struct {
	taskRepo repositories.TaskRepositoryInterface
	policy   *policies.TaskPolicy
	logger   *zap.Logger
}

func NewTaskService(taskRepo repositories.TaskRepositoryInterface, policy *policies.TaskPolicy, logger *zap.Logger) TaskServiceInterface {
	return &TaskService{taskRepo: taskRepo, policy: policy, logger: logger}
}

func (s *TaskService) GetTasks(ctx context.Context, filter types.Filter) ([]dto.TaskDTO, uint64, error) {
	tasks, total, err := s.taskRepo.GetTasks(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.TaskDTO, 0, len(tasks))
	for i := range tasks {
		result = append(result, toTaskDTO(&tasks[i]))
	}
	return result, total, nil
}

func (s *TaskService) FindTask(ctx context.Context, id uint64) (*dto.TaskDTO, error) {
	task, err := s.taskRepo.FindTask(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toTaskDTO(task)
	return &result, nil
}

func (s *TaskService) CreateTask(ctx context.Context, actorID uint64, payload dto.TaskWriteDTO) (*dto.TaskDTO, error) {
	if err := s.policy.ValidateWrite(ctx, actorID, 0, &payload); err != nil {
		return nil, err
	}

	projectID, ok := payload.Project.First()
	if !ok {
		return nil, apperrors.NewValidationError("Для задачи обязателен проект")
	}
	if payload.Title == nil || *payload.Title == "" {
		return nil, apperrors.NewValidationError("Для задачи обязателен заголовок")
	}

	task := entities.Task{
		ProjectID: projectID,
		Title:     *payload.Title,
		Status:    constants.TaskStatusOpen,
		Progress:  payload.Progress,
		StartDate: payload.StartDate,
		DueDate:   payload.DueDate,
	}
	if payload.Description != nil {
		task.Description = *payload.Description
	}
	if payload.Status != nil {
		task.Status = *payload.Status
	}
	if payload.Completed != nil {
		task.Completed = *payload.Completed
	}
	if assigneeID, ok := payload.Assignee.First(); ok {
		task.AssigneeID = &assigneeID
	}

	created, err := s.taskRepo.CreateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	s.logger.Info("задача создана", zap.Uint64("task_id", created.ID), zap.Uint64("actor_id", actorID))
	result := toTaskDTO(created)
	return &result, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, actorID, id uint64, payload dto.TaskWriteDTO) (*dto.TaskDTO, error) {
	if err := s.policy.ValidateWrite(ctx, actorID, id, &payload); err != nil {
		return nil, err
	}
	updated, err := s.taskRepo.UpdateTask(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	result := toTaskDTO(updated)
	return &result, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, actorID, id uint64) error {
	if err := s.policy.ValidateDelete(ctx, actorID, id); err != nil {
		return err
	}
	return s.taskRepo.SoftDeleteTask(ctx, id)
}

func toTaskDTO(task *entities.Task) dto.TaskDTO {
	return dto.TaskDTO{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		AssigneeID:  task.AssigneeID,
		Status:      task.Status,
		Completed:   task.Completed,
		Progress:    task.Progress,
		StartDate:   task.StartDate,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   task.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
