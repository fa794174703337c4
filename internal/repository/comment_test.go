package repository

import (
	"context"
	"testing"
	"time"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	recipe := createTestRecipe(t, db, author.ID, "Sourdough", true)

	now := time.Now()
	first := &models.Comment{
		RecipeID:  recipe.ID,
		AuthorID:  bob.ID,
		Content:   "Looks great",
		CreatedAt: now.Add(-time.Hour),
	}
	second := &models.Comment{
		RecipeID:  recipe.ID,
		AuthorID:  author.ID,
		Content:   "Thanks!",
		CreatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	comments, err := repo.ListByRecipe(ctx, recipe.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	// Newest first, authors preloaded.
	assert.Equal(t, "Thanks!", comments[0].Content)
	assert.Equal(t, "alice", comments[0].Author.Username)
	assert.Equal(t, "Looks great", comments[1].Content)
	assert.Equal(t, "bob", comments[1].Author.Username)
}

func TestCommentRepository_ListByRecipe_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	comments, err := repo.ListByRecipe(context.Background(), 42, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
