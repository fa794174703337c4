// Package service implements the domain rules on top of the repositories.
package service

import (
	"context"
	"encoding/json"
	"errors"

	"forkful/internal/cache"
	"forkful/internal/models"
	"forkful/internal/repository"
	"forkful/internal/validation"
)

// DefaultUpdateMessage is used when an update carries no commit message.
const DefaultUpdateMessage = "Update recipe"

type RecipeService struct {
	recipeRepo repository.RecipeRepository
	commitRepo repository.CommitRepository
}

type CreateRecipeInput struct {
	UserID       uint
	Title        string
	Description  string
	Ingredients  []string
	Steps        []string
	Tags         []string
	DietaryTags  []string
	Notes        string
	PrepTime     int
	CookTime     int
	Servings     int
	Difficulty   models.Difficulty
	Cuisine      string
	ImageURL     string
	IsPublic     *bool
	ForkedFromID *uint
}

type UpdateRecipeInput struct {
	UserID        uint
	RecipeID      uint
	Title         *string
	Description   *string
	Ingredients   []string
	Steps         []string
	Tags          []string
	DietaryTags   []string
	Notes         *string
	PrepTime      *int
	CookTime      *int
	Servings      *int
	Difficulty    *models.Difficulty
	Cuisine       *string
	ImageURL      *string
	IsPublic      *bool
	IsArchived    *bool
	CommitMessage string
}

type ListRecipesInput struct {
	Search        string
	AuthorID      uint
	Tag           string
	Limit         int
	CurrentUserID uint
}

func NewRecipeService(recipeRepo repository.RecipeRepository, commitRepo repository.CommitRepository) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		commitRepo: commitRepo,
	}
}

// commitChanges is the serialized payload stored in a commit's Changes field.
type commitChanges struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

func encodeChanges(changeType string, data map[string]any) string {
	b, err := json.Marshal(commitChanges{Type: changeType, Data: data})
	if err != nil {
		return `{"type":"` + changeType + `"}`
	}
	return string(b)
}

// CreateRecipe validates and persists a new recipe together with its
// version-1 commit. When ForkedFromID is set the ancestor must exist and be
// readable by the creator; nothing is copied from it.
func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	if err := s.validateFields(in.Title, in.Description, in.Difficulty, in.ImageURL,
		in.Ingredients, in.Steps, in.Tags, in.DietaryTags); err != nil {
		return nil, err
	}

	if in.ForkedFromID != nil {
		ancestor, err := s.recipeRepo.GetByID(ctx, *in.ForkedFromID, in.UserID)
		if err != nil {
			return nil, err
		}
		if !ancestor.IsPublic && ancestor.AuthorID != in.UserID {
			return nil, models.NewNotFoundError("Recipe", *in.ForkedFromID)
		}
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	recipe := &models.Recipe{
		Title:        in.Title,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Steps:        in.Steps,
		Tags:         in.Tags,
		DietaryTags:  in.DietaryTags,
		Notes:        in.Notes,
		PrepTime:     in.PrepTime,
		CookTime:     in.CookTime,
		Servings:     in.Servings,
		Difficulty:   in.Difficulty,
		Cuisine:      in.Cuisine,
		ImageURL:     in.ImageURL,
		IsPublic:     isPublic,
		AuthorID:     in.UserID,
		ForkedFromID: in.ForkedFromID,
	}

	// The version-1 commit carries the full initial state so the history
	// reconstructs the recipe as created.
	commit := &models.Commit{
		Message: models.InitialCommitMessage,
		Changes: encodeChanges(models.CommitTypeCreate, map[string]any{
			"title":        in.Title,
			"description":  in.Description,
			"ingredients":  in.Ingredients,
			"steps":        in.Steps,
			"tags":         in.Tags,
			"dietary_tags": in.DietaryTags,
			"notes":        in.Notes,
			"prep_time":    in.PrepTime,
			"cook_time":    in.CookTime,
			"servings":     in.Servings,
			"difficulty":   in.Difficulty,
			"cuisine":      in.Cuisine,
			"image_url":    in.ImageURL,
			"is_public":    isPublic,
		}),
	}

	if err := s.recipeRepo.Create(ctx, recipe, commit); err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, recipe.ID, in.UserID)
}

// UpdateRecipe applies the non-nil fields and appends a commit with the next
// version number, atomically with the row update. Owner only.
func (s *RecipeService) UpdateRecipe(ctx context.Context, in UpdateRecipeInput) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, in.RecipeID, in.UserID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own recipes")
	}

	changed := map[string]any{}
	if in.Title != nil {
		if err := validation.ValidateTitle(*in.Title); err != nil {
			return nil, err
		}
		recipe.Title = *in.Title
		changed["title"] = *in.Title
	}
	if in.Description != nil {
		if err := validation.ValidateDescription(*in.Description); err != nil {
			return nil, err
		}
		recipe.Description = *in.Description
		changed["description"] = true
	}
	if in.Ingredients != nil {
		if err := validation.ValidateStringList("ingredients", in.Ingredients); err != nil {
			return nil, err
		}
		recipe.Ingredients = in.Ingredients
		changed["ingredients"] = true
	}
	if in.Steps != nil {
		if err := validation.ValidateStringList("steps", in.Steps); err != nil {
			return nil, err
		}
		recipe.Steps = in.Steps
		changed["steps"] = true
	}
	if in.Tags != nil {
		if err := validation.ValidateStringList("tags", in.Tags); err != nil {
			return nil, err
		}
		recipe.Tags = in.Tags
		changed["tags"] = true
	}
	if in.DietaryTags != nil {
		if err := validation.ValidateStringList("dietary_tags", in.DietaryTags); err != nil {
			return nil, err
		}
		recipe.DietaryTags = in.DietaryTags
		changed["dietary_tags"] = true
	}
	if in.Notes != nil {
		recipe.Notes = *in.Notes
		changed["notes"] = true
	}
	if in.PrepTime != nil {
		recipe.PrepTime = *in.PrepTime
		changed["prep_time"] = *in.PrepTime
	}
	if in.CookTime != nil {
		recipe.CookTime = *in.CookTime
		changed["cook_time"] = *in.CookTime
	}
	if in.Servings != nil {
		recipe.Servings = *in.Servings
		changed["servings"] = *in.Servings
	}
	if in.Difficulty != nil {
		if err := validation.ValidateDifficulty(*in.Difficulty); err != nil {
			return nil, err
		}
		recipe.Difficulty = *in.Difficulty
		changed["difficulty"] = string(*in.Difficulty)
	}
	if in.Cuisine != nil {
		recipe.Cuisine = *in.Cuisine
		changed["cuisine"] = *in.Cuisine
	}
	if in.ImageURL != nil {
		if err := validation.ValidateImageURL(*in.ImageURL); err != nil {
			return nil, err
		}
		recipe.ImageURL = *in.ImageURL
		changed["image_url"] = true
	}
	if in.IsPublic != nil {
		recipe.IsPublic = *in.IsPublic
		changed["is_public"] = *in.IsPublic
	}
	if in.IsArchived != nil {
		recipe.IsArchived = *in.IsArchived
		changed["is_archived"] = *in.IsArchived
	}

	if len(changed) == 0 {
		return nil, models.NewValidationError("No fields to update")
	}

	message := in.CommitMessage
	if message == "" {
		message = DefaultUpdateMessage
	}
	if err := validation.ValidateCommitMessage(message); err != nil {
		return nil, err
	}

	commit := &models.Commit{
		Message: message,
		Changes: encodeChanges(models.CommitTypeUpdate, changed),
	}
	if err := s.recipeRepo.Update(ctx, recipe, commit); err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, in.RecipeID, in.UserID)
}

// GetRecipe returns the full recipe detail. A private recipe is visible only
// to its author; everyone else gets NotFound so its existence never leaks.
// Anonymous reads go through the redis cache-aside.
func (s *RecipeService) GetRecipe(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	if currentUserID == 0 {
		var recipe models.Recipe
		err := cache.Aside(ctx, cache.RecipeKey(id), &recipe, cache.RecipeTTL, func() error {
			fetched, fetchErr := s.fetchRecipe(ctx, id, 0)
			if fetchErr != nil {
				return fetchErr
			}
			recipe = *fetched
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &recipe, nil
	}
	return s.fetchRecipe(ctx, id, currentUserID)
}

func (s *RecipeService) fetchRecipe(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if !recipe.IsPublic && recipe.AuthorID != currentUserID {
		return nil, models.NewNotFoundError("Recipe", id)
	}

	if recipe.ForkedFromID != nil {
		summary, err := s.recipeRepo.ForkSummary(ctx, *recipe.ForkedFromID)
		if err != nil {
			// A deleted ancestor leaves the weak reference dangling; the
			// detail keeps forked_from_id and drops the summary.
			var appErr *models.AppError
			if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
				return nil, err
			}
		} else {
			recipe.ForkedFrom = summary
		}
	}
	return recipe, nil
}

// ListRecipes browses public, non-archived recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, in ListRecipesInput) ([]*models.Recipe, error) {
	return s.recipeRepo.List(ctx, repository.RecipeFilter{
		Search:   in.Search,
		AuthorID: in.AuthorID,
		Tag:      in.Tag,
		Limit:    in.Limit,
	}, in.CurrentUserID)
}

// ListCommits returns the recipe's history, newest version first. The same
// visibility rule as the detail endpoint applies.
func (s *RecipeService) ListCommits(ctx context.Context, recipeID, currentUserID uint, limit, offset int) ([]models.Commit, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, currentUserID)
	if err != nil {
		return nil, err
	}
	if !recipe.IsPublic && recipe.AuthorID != currentUserID {
		return nil, models.NewNotFoundError("Recipe", recipeID)
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.commitRepo.ListByRecipe(ctx, recipeID, limit, offset)
}

// LikeRecipe records a like. Liking an already-liked recipe is a Conflict,
// decided by the unique index rather than a read-then-write check.
func (s *RecipeService) LikeRecipe(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	if _, err := s.fetchRecipe(ctx, recipeID, userID); err != nil {
		return nil, err
	}
	if err := s.recipeRepo.Like(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	return s.fetchRecipe(ctx, recipeID, userID)
}

// UnlikeRecipe removes a like; absent likes are NotFound.
func (s *RecipeService) UnlikeRecipe(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	if err := s.recipeRepo.Unlike(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	return s.fetchRecipe(ctx, recipeID, userID)
}

func (s *RecipeService) validateFields(title, description string, difficulty models.Difficulty,
	imageURL string, ingredients, steps, tags, dietaryTags []string) error {
	if err := validation.ValidateTitle(title); err != nil {
		return err
	}
	if err := validation.ValidateDescription(description); err != nil {
		return err
	}
	if err := validation.ValidateDifficulty(difficulty); err != nil {
		return err
	}
	if err := validation.ValidateImageURL(imageURL); err != nil {
		return err
	}
	if err := validation.ValidateStringList("ingredients", ingredients); err != nil {
		return err
	}
	if err := validation.ValidateStringList("steps", steps); err != nil {
		return err
	}
	if err := validation.ValidateStringList("tags", tags); err != nil {
		return err
	}
	return validation.ValidateStringList("dietary_tags", dietaryTags)
}
