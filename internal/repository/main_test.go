package repository

import (
	"context"
	"testing"

	"forkful/internal/database"
	"forkful/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory sqlite database with the full schema.
// TranslateError is on so unique index violations surface as
// gorm.ErrDuplicatedKey, matching the postgres configuration.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled second connection would see an empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Name:     "Test " + username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestRecipe(t *testing.T, db *gorm.DB, authorID uint, title string, public bool) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Title:       title,
		Description: "A test recipe",
		Ingredients: []string{"flour", "water"},
		Steps:       []string{"mix", "bake"},
		Tags:        []string{"test"},
		IsPublic:    public,
		AuthorID:    authorID,
	}
	commit := &models.Commit{Message: models.InitialCommitMessage}
	require.NoError(t, NewRecipeRepository(db).Create(context.Background(), recipe, commit))
	return recipe
}
