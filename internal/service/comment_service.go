package service

import (
	"context"
	"strings"

	"forkful/internal/models"
	"forkful/internal/repository"
)

const maxCommentLen = 2000

type CommentService struct {
	commentRepo repository.CommentRepository
	recipeRepo  repository.RecipeRepository
	userRepo    repository.UserRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	recipeRepo repository.RecipeRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		recipeRepo:  recipeRepo,
		userRepo:    userRepo,
	}
}

// AddComment appends a comment to a recipe the author can see. Comments are
// never edited or removed afterwards.
func (s *CommentService) AddComment(ctx context.Context, userID, recipeID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if !recipe.IsPublic && recipe.AuthorID != userID {
		return nil, models.NewNotFoundError("Recipe", recipeID)
	}

	comment := &models.Comment{
		RecipeID: recipeID,
		AuthorID: userID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	comment.Author = *author
	return comment, nil
}

// ListComments returns a recipe's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, recipeID, currentUserID uint, limit, offset int) ([]models.Comment, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, currentUserID)
	if err != nil {
		return nil, err
	}
	if !recipe.IsPublic && recipe.AuthorID != currentUserID {
		return nil, models.NewNotFoundError("Recipe", recipeID)
	}
	return s.commentRepo.ListByRecipe(ctx, recipeID, normalizeLimit(limit), offset)
}
