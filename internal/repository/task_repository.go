package repository

import (
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"todo-api/internal/database"
	"todo-api/internal/models"
	"todo-api/internal/utils"
)

// taskOrderings maps the sortBy query values to their orderings. Anything else
// leaves the result in natural order.
var taskOrderings = map[string]string{
	"newest":          "created_at DESC",
	"oldest":          "created_at ASC",
	"lowestPriority":  "priority ASC",
	"highestPriority": "priority DESC",
}

// TaskRepository composes the generic repository with ownership-aware queries
// and paginated, sorted listing.
type TaskRepository struct {
	*Repository[models.Task]
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{Repository: NewRepository[models.Task](db)}
}

// Get returns matching tasks with the owner populated (id and username only).
func (r *TaskRepository) Get(filter Filter) ([]models.Task, error) {
	var tasks []models.Task
	query := r.db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "username")
	})
	if len(filter) > 0 {
		query = query.Where(map[string]any(filter))
	}
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return tasks, nil
}

// GetPaginated returns one page of matching tasks plus totals. The count and
// the windowed fetch are two independent reads against the same filter; under
// concurrent writes the two may be slightly inconsistent. Items leave the
// owner unpopulated for payload economy.
func (r *TaskRepository) GetPaginated(filter Filter, params utils.PaginationParams) (*PaginatedResult[models.Task], error) {
	query := r.db.Model(&models.Task{})
	if len(filter) > 0 {
		query = query.Where(map[string]any(filter))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	listQuery := query
	if order, ok := taskOrderings[params.SortBy]; ok {
		listQuery = listQuery.Order(order)
	}

	var tasks []models.Task
	if err := listQuery.Scopes(database.Paginate(params)).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}

	return &PaginatedResult[models.Task]{
		Items:       tasks,
		TotalItems:  total,
		CurrentPage: params.Page,
		PageSize:    params.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(params.Limit))),
	}, nil
}

// DeleteOwned removes the task only when it belongs to the given user. It
// returns the removed task, or nil (not an error) when nothing matched.
func (r *TaskRepository) DeleteOwned(taskID, userID string) (*models.Task, error) {
	var task models.Task
	err := r.db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	if err := r.db.Delete(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return &task, nil
}
