package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todo-api/internal/models"
)

// UserRepository composes the generic repository with task population.
type UserRepository struct {
	*Repository[models.User]
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository: NewRepository[models.User](db)}
}

// GetByID returns the user with the task list populated one level deep, or
// nil (not an error) when absent.
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Tasks").Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
