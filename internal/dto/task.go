package dto

import (
	"time"

	"todo-api/internal/models"
	"todo-api/internal/repository"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	UserID      string              `json:"user_id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	User        *UserDTO            `json:"user,omitempty"`
}

// PaginatedTasksResponse represents a paginated list of tasks
type PaginatedTasksResponse struct {
	Items       []TaskDTO `json:"items"`
	TotalItems  int64     `json:"totalItems"`
	CurrentPage int       `json:"currentPage"`
	PageSize    int       `json:"pageSize"`
	TotalPages  int       `json:"totalPages"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include owner if populated
	if task.User != nil {
		user := ToUserDTO(*task.User)
		dto.User = &user
	}

	return dto
}

// ToPaginatedTasksResponse converts a repository page to the response shape
func ToPaginatedTasksResponse(page *repository.PaginatedResult[models.Task]) PaginatedTasksResponse {
	items := make([]TaskDTO, len(page.Items))
	for i, task := range page.Items {
		items[i] = ToTaskDTO(task)
	}

	return PaginatedTasksResponse{
		Items:       items,
		TotalItems:  page.TotalItems,
		CurrentPage: page.CurrentPage,
		PageSize:    page.PageSize,
		TotalPages:  page.TotalPages,
	}
}
