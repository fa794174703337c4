package service

import (
	"context"
	"strings"
	"testing"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	listByRecipeFn func(context.Context, uint, int, int) ([]models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByRecipe(ctx context.Context, recipeID uint, limit, offset int) ([]models.Comment, error) {
	return s.listByRecipeFn(ctx, recipeID, limit, offset)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, comment *models.Comment) error {
			comment.ID = 1
			return nil
		},
		listByRecipeFn: func(_ context.Context, _ uint, _, _ int) ([]models.Comment, error) { return nil, nil },
	}
}

func TestAddComment_Validation(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopRecipeRepo(), noopUserRepo())
	ctx := context.Background()

	_, err := svc.AddComment(ctx, 1, 3, "")
	assertErrorCode(t, err, "VALIDATION_ERROR")

	_, err = svc.AddComment(ctx, 1, 3, "   \n\t ")
	assertErrorCode(t, err, "VALIDATION_ERROR")

	_, err = svc.AddComment(ctx, 1, 3, strings.Repeat("x", 2001))
	assertErrorCode(t, err, "VALIDATION_ERROR")
}

func TestAddComment_PrivateRecipeHidden(t *testing.T) {
	recipes := noopRecipeRepo()
	recipes.getByIDFn = func(_ context.Context, id, _ uint) (*models.Recipe, error) {
		return &models.Recipe{ID: id, IsPublic: false, AuthorID: 2}, nil
	}
	svc := NewCommentService(noopCommentRepo(), recipes, noopUserRepo())

	_, err := svc.AddComment(context.Background(), 1, 3, "nice")
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestAddComment_TrimsAndSetsAuthor(t *testing.T) {
	comments := noopCommentRepo()
	var gotComment *models.Comment
	comments.createFn = func(_ context.Context, comment *models.Comment) error {
		comment.ID = 9
		gotComment = comment
		return nil
	}
	svc := NewCommentService(comments, noopRecipeRepo(), noopUserRepo())

	comment, err := svc.AddComment(context.Background(), 1, 3, "  Crust looks perfect  ")
	require.NoError(t, err)
	require.NotNil(t, gotComment)
	assert.Equal(t, "Crust looks perfect", gotComment.Content)
	assert.Equal(t, uint(9), comment.ID)
	assert.Equal(t, "alice", comment.Author.Username)
}

func TestListComments_PrivateRecipeHidden(t *testing.T) {
	recipes := noopRecipeRepo()
	recipes.getByIDFn = func(_ context.Context, id, _ uint) (*models.Recipe, error) {
		return &models.Recipe{ID: id, IsPublic: false, AuthorID: 2}, nil
	}
	svc := NewCommentService(noopCommentRepo(), recipes, noopUserRepo())

	_, err := svc.ListComments(context.Background(), 3, 0, 10, 0)
	assertErrorCode(t, err, "NOT_FOUND")
}
