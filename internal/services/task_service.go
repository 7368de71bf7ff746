package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	apierrors "todo-api/internal/errors"
	"todo-api/internal/models"
	"todo-api/internal/repository"
	"todo-api/internal/utils"
)

// TaskService handles task business logic with ownership checks. The task
// record's user_id is the single source of truth for ownership; a user's task
// list is computed from it by relation, never maintained as a separate index.
type TaskService struct {
	taskRepo *repository.TaskRepository
	userRepo *repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo *repository.TaskRepository, userRepo *repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	UserID      string
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// untouched by the merge-update.
type UpdateTaskInput struct {
	Title       string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
}

// GetUserTasks returns all tasks owned by the user, owner populated.
func (s *TaskService) GetUserTasks(userID string) ([]models.Task, error) {
	return s.taskRepo.Get(repository.Filter{"user_id": userID})
}

// GetUserPaginatedTasks returns one page of the user's tasks.
func (s *TaskService) GetUserPaginatedTasks(userID string, params utils.PaginationParams) (*repository.PaginatedResult[models.Task], error) {
	return s.taskRepo.GetPaginated(repository.Filter{"user_id": userID}, params)
}

// GetSingleUserTask loads a task by id. A task owned by another user is never
// returned; the caller gets Unauthorized, not NotFound. An absent task is nil.
func (s *TaskService) GetSingleUserTask(taskID, userID string) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		return nil, err
	}

	if task != nil && task.UserID != userID {
		return nil, apierrors.NewUnauthorized("Unauthorized")
	}

	return task, nil
}

// Add creates a task for an existing user.
func (s *TaskService) Add(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apierrors.NewBadRequest("Task name is required.")
	}
	if !input.Status.Valid() || !input.Priority.Valid() {
		return nil, apierrors.NewBadRequest("Invalid status or priority.")
	}

	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierrors.NewNotFound("User not found.")
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		UserID:      user.ID,
		Status:      input.Status,
		Priority:    input.Priority,
	}

	if err := s.taskRepo.Add(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Update merge-updates a task: only the supplied fields overwrite the stored
// record. Title is required on every update.
func (s *TaskService) Update(taskID string, input UpdateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apierrors.NewBadRequest("Task name is required.")
	}

	changes := map[string]any{"title": input.Title}
	if input.Description != nil {
		changes["description"] = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apierrors.NewBadRequest("Invalid status.")
		}
		changes["status"] = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, apierrors.NewBadRequest("Invalid priority.")
		}
		changes["priority"] = *input.Priority
	}

	return s.taskRepo.Update(taskID, changes)
}

// SetStatus overwrites the status of an existing task. The zero-valued
// Waiting status is accepted as a legitimate argument.
func (s *TaskService) SetStatus(taskID string, status models.TaskStatus) (*models.Task, error) {
	if taskID == "" || !status.Valid() {
		return nil, apierrors.NewBadRequest("Task id and status are required.")
	}

	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apierrors.NewNotFound("Task not found.")
	}

	return s.taskRepo.Update(taskID, map[string]any{"status": status})
}

// Delete removes a task scoped to its owner. Deleting a task that is absent
// or owned by someone else is a no-op, not an error.
func (s *TaskService) Delete(taskID, userID string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apierrors.NewNotFound("User not found.")
	}

	if _, err := s.taskRepo.DeleteOwned(taskID, userID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
