package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apierrors "todo-api/internal/errors"
	"todo-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createTask(t *testing.T, db *gorm.DB, title string, userID string) *models.Task {
	t.Helper()

	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: "some description",
		UserID:      userID,
		Status:      models.TaskStatusInProgress,
		Priority:    models.TaskPriorityMedium,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func TestRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[models.Task](db)

	created := createTask(t, db, "find me", uuid.NewString())

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, created.Title, found.Title)

	absent, err := repo.GetByID(uuid.NewString())
	require.NoError(t, err)
	require.Nil(t, absent)
}

func TestRepository_Get_WithFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[models.Task](db)

	owner := uuid.NewString()
	createTask(t, db, "mine", owner)
	createTask(t, db, "also mine", owner)
	createTask(t, db, "someone else's", uuid.NewString())

	tasks, err := repo.Get(Filter{"user_id": owner})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	all, err := repo.Get(nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestRepository_Update_MergesOnlySuppliedFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[models.Task](db)

	created := createTask(t, db, "original title", uuid.NewString())

	updated, err := repo.Update(created.ID, map[string]any{
		"status": models.TaskStatusCompleted,
	})
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusCompleted, updated.Status)

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, "original title", stored.Title)
	require.Equal(t, "some description", stored.Description)
	require.Equal(t, models.TaskStatusCompleted, stored.Status)
}

func TestRepository_Update_ZeroValueOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[models.Task](db)

	created := createTask(t, db, "task", uuid.NewString())

	// A field present in the changes overwrites even with its zero value
	_, err := repo.Update(created.ID, map[string]any{
		"status":      models.TaskStatusWaiting,
		"description": "",
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusWaiting, stored.Status)
	require.Empty(t, stored.Description)
	require.Equal(t, "task", stored.Title)
}

func TestRepository_Update_PreservesCreatedAt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[models.Task](db)

	created := createTask(t, db, "task", uuid.NewString())

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	createdAt := stored.CreatedAt

	_, err = repo.Update(created.ID, map[string]any{"title": "renamed"})
	require.NoError(t, err)

	stored, err = repo.GetByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, createdAt, stored.CreatedAt)
	require.False(t, stored.UpdatedAt.Before(createdAt))
}

func TestRepository_Update_InvalidID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[models.Task](db)

	_, err := repo.Update("not-a-valid-id", map[string]any{"title": "x"})
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apierrors.ErrCodeBadRequest, apiErr.Code)
}

func TestRepository_Update_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[models.Task](db)

	_, err := repo.Update(uuid.NewString(), map[string]any{"title": "x"})
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apierrors.ErrCodeNotFound, apiErr.Code)
}

func TestRepository_Count(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[models.Task](db)

	owner := uuid.NewString()
	createTask(t, db, "one", owner)
	createTask(t, db, "two", owner)
	createTask(t, db, "other", uuid.NewString())

	count, err := repo.Count(Filter{"user_id": owner})
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[models.Task](db)

	created := createTask(t, db, "doomed", uuid.NewString())

	removed, err := repo.Delete(created.ID)
	require.NoError(t, err)
	require.NotNil(t, removed)
	require.Equal(t, created.ID, removed.ID)

	gone, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	// Deleting again matches nothing and is not an error
	removed, err = repo.Delete(created.ID)
	require.NoError(t, err)
	require.Nil(t, removed)
}
