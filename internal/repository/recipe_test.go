package repository

import (
	"context"
	"testing"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeRepository_Create_WritesInitialCommit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")

	recipe := &models.Recipe{
		Title:       "Sourdough",
		Ingredients: []string{"flour", "water", "salt"},
		Steps:       []string{"mix", "wait", "bake"},
		IsPublic:    true,
		AuthorID:    author.ID,
	}
	commit := &models.Commit{Message: models.InitialCommitMessage}

	require.NoError(t, repo.Create(ctx, recipe, commit))
	assert.NotZero(t, recipe.ID)
	assert.Equal(t, recipe.ID, commit.RecipeID)
	assert.Equal(t, 1, commit.Version)

	var count int64
	require.NoError(t, db.Model(&models.Commit{}).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecipeRepository_Update_AppendsContiguousVersions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	commits := NewCommitRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	recipe := createTestRecipe(t, db, author.ID, "Sourdough", true)

	recipe.Title = "Sourdough v2"
	require.NoError(t, repo.Update(ctx, recipe, &models.Commit{Message: "Less salt"}))

	recipe.Title = "Sourdough v3"
	third := &models.Commit{Message: "More salt after all"}
	require.NoError(t, repo.Update(ctx, recipe, third))
	assert.Equal(t, 3, third.Version)

	history, err := commits.ListByRecipe(ctx, recipe.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 3, history[0].Version)
	assert.Equal(t, 2, history[1].Version)
	assert.Equal(t, 1, history[2].Version)
	assert.Equal(t, models.InitialCommitMessage, history[2].Message)
}

func TestRecipeRepository_Like_DuplicateIsConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	fan := createTestUser(t, db, "bob")
	recipe := createTestRecipe(t, db, author.ID, "Sourdough", true)

	require.NoError(t, repo.Like(ctx, fan.ID, recipe.ID))

	liked, err := repo.IsLiked(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	err = repo.Like(ctx, fan.ID, recipe.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestRecipeRepository_Unlike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	fan := createTestUser(t, db, "bob")
	recipe := createTestRecipe(t, db, author.ID, "Sourdough", true)

	err := repo.Unlike(ctx, fan.ID, recipe.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	require.NoError(t, repo.Like(ctx, fan.ID, recipe.ID))
	require.NoError(t, repo.Unlike(ctx, fan.ID, recipe.ID))

	liked, err := repo.IsLiked(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestRecipeRepository_List_OnlyPublicAndUnarchived(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	createTestRecipe(t, db, author.ID, "Public Bread", true)
	createTestRecipe(t, db, author.ID, "Secret Sauce", false)

	archived := createTestRecipe(t, db, author.ID, "Retired Stew", true)
	archived.IsArchived = true
	require.NoError(t, repo.Update(ctx, archived, &models.Commit{Message: "Archived"}))

	recipes, err := repo.List(ctx, RecipeFilter{}, 0)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Public Bread", recipes[0].Title)
}

func TestRecipeRepository_List_SearchFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	createTestRecipe(t, db, author.ID, "Thai Green Curry", true)
	createTestRecipe(t, db, author.ID, "Banana Bread", true)

	recipes, err := repo.List(ctx, RecipeFilter{Search: "CURRY"}, 0)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Thai Green Curry", recipes[0].Title)

	recipes, err = repo.List(ctx, RecipeFilter{Search: "pizza"}, 0)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestRecipeRepository_GetByID_DerivedCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	recipe := createTestRecipe(t, db, author.ID, "Sourdough", true)

	require.NoError(t, repo.Like(ctx, bob.ID, recipe.ID))
	require.NoError(t, repo.Like(ctx, carol.ID, recipe.ID))
	require.NoError(t, db.Create(&models.Comment{
		RecipeID: recipe.ID,
		AuthorID: bob.ID,
		Content:  "Crust looks perfect",
	}).Error)

	fork := &models.Recipe{
		Title:        "Sourdough (my twist)",
		IsPublic:     true,
		AuthorID:     bob.ID,
		ForkedFromID: &recipe.ID,
	}
	require.NoError(t, repo.Create(ctx, fork, &models.Commit{Message: models.InitialCommitMessage}))

	got, err := repo.GetByID(ctx, recipe.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.LikesCount)
	assert.Equal(t, 1, got.CommentsCount)
	assert.Equal(t, 1, got.ForksCount)
	assert.True(t, got.Liked)
	assert.Equal(t, "alice", got.User.Username)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "bob", got.Comments[0].Author.Username)

	// Anonymous readers never see a liked flag.
	anon, err := repo.GetByID(ctx, recipe.ID, 0)
	require.NoError(t, err)
	assert.False(t, anon.Liked)
	assert.Equal(t, 2, anon.LikesCount)
}

func TestRecipeRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)

	_, err := repo.GetByID(context.Background(), 9999, 0)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestRecipeRepository_ForkSummary(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	// The summary resolves even for private ancestors; it carries no content.
	recipe := createTestRecipe(t, db, author.ID, "Secret Sauce", false)

	summary, err := repo.ForkSummary(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, summary.ID)
	assert.Equal(t, "Secret Sauce", summary.Title)
	assert.Equal(t, "alice", summary.AuthorUsername)

	_, err = repo.ForkSummary(ctx, 9999)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestRecipeRepository_CountForks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	recipe := createTestRecipe(t, db, author.ID, "Sourdough", true)

	count, err := repo.CountForks(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	fork := &models.Recipe{Title: "Fork", IsPublic: true, AuthorID: bob.ID, ForkedFromID: &recipe.ID}
	require.NoError(t, repo.Create(ctx, fork, &models.Commit{Message: models.InitialCommitMessage}))

	count, err = repo.CountForks(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
