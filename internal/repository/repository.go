package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apierrors "todo-api/internal/errors"
)

// Filter is a field-to-value equality filter applied to a collection query.
type Filter map[string]any

// PaginatedResult is one page of a windowed query together with its totals.
type PaginatedResult[T any] struct {
	Items       []T   `json:"items"`
	TotalItems  int64 `json:"totalItems"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalPages  int   `json:"totalPages"`
}

// Repository implements the CRUD contract shared by all entities. Entity-specific
// behavior (population, pagination) is layered on by composition, not subclassing.
type Repository[T any] struct {
	db *gorm.DB
}

// NewRepository creates a Repository for the given entity type.
func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// DB exposes the underlying handle to composing repositories.
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

// Get returns all records matching the filter.
func (r *Repository[T]) Get(filter Filter) ([]T, error) {
	var entities []T
	query := r.db
	if len(filter) > 0 {
		query = query.Where(map[string]any(filter))
	}
	if err := query.Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	return entities, nil
}

// GetByID returns the record with the given id, or nil (not an error) when absent.
func (r *Repository[T]) GetByID(id string) (*T, error) {
	var entity T
	if err := r.db.Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	return &entity, nil
}

// Add inserts the record. The caller assigns the identity before insert; the
// stored form including generated defaults is written back to entity.
func (r *Repository[T]) Add(entity *T) error {
	if err := r.db.Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// Update performs a merge-update: the current record is loaded by id and only
// the supplied fields are overwritten before persisting. A field absent from
// changes is preserved; a field present with a zero value does overwrite.
func (r *Repository[T]) Update(id string, changes map[string]any) (*T, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apierrors.NewBadRequest("Invalid id argument.")
	}

	var entity T
	if err := r.db.Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NewNotFound("Data not found.")
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}

	if err := r.db.Model(&entity).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	return &entity, nil
}

// Count returns the number of records matching the filter.
func (r *Repository[T]) Count(filter Filter) (int64, error) {
	var count int64
	query := r.db.Model(new(T))
	if len(filter) > 0 {
		query = query.Where(map[string]any(filter))
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// Delete removes the record with the given id and returns it, or nil (not an
// error) when nothing matched.
func (r *Repository[T]) Delete(id string) (*T, error) {
	var entity T
	if err := r.db.Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}

	if err := r.db.Delete(&entity).Error; err != nil {
		return nil, fmt.Errorf("failed to delete record: %w", err)
	}

	return &entity, nil
}
