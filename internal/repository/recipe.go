// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"forkful/internal/cache"
	"forkful/internal/models"

	"gorm.io/gorm"
)

// maxListResults caps browse queries regardless of the requested limit.
const maxListResults = 50

// RecipeFilter holds the browse query filters. Browse results are always
// restricted to public, non-archived recipes.
type RecipeFilter struct {
	Search   string
	AuthorID uint
	Tag      string
	Limit    int
}

// RecipeRepository defines the interface for recipe data operations.
type RecipeRepository interface {
	// Create persists a recipe together with its version-1 commit in a
	// single transaction. Either both rows exist afterwards or neither.
	Create(ctx context.Context, recipe *models.Recipe, commit *models.Commit) error
	// Update saves recipe changes and appends a commit with the next
	// contiguous version number, atomically.
	Update(ctx context.Context, recipe *models.Recipe, commit *models.Commit) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter, currentUserID uint) ([]*models.Recipe, error)
	ListByAuthor(ctx context.Context, authorID uint, currentUserID uint) ([]*models.Recipe, error)
	ForkSummary(ctx context.Context, recipeID uint) (*models.ForkSummary, error)
	CountForks(ctx context.Context, recipeID uint) (int64, error)
	IsLiked(ctx context.Context, userID, recipeID uint) (bool, error)
	Like(ctx context.Context, userID, recipeID uint) error
	Unlike(ctx context.Context, userID, recipeID uint) error
}

// recipeRepository implements RecipeRepository
type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe, commit *models.Commit) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		commit.RecipeID = recipe.ID
		commit.Version = 1
		return tx.Create(commit).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe, commit *models.Commit) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		// Next contiguous version; the unique (recipe_id, version) index
		// rejects the loser if two updates race.
		var latest int
		if err := tx.Model(&models.Commit{}).
			Where("recipe_id = ?", recipe.ID).
			Select("COALESCE(MAX(version), 0)").
			Scan(&latest).Error; err != nil {
			return err
		}
		commit.RecipeID = recipe.ID
		commit.Version = latest + 1
		return tx.Create(commit).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("Recipe was updated concurrently")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, recipe.ID)
	return nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.applyRecipeDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Commits", func(db *gorm.DB) *gorm.DB {
			return db.Order("version DESC").Limit(10)
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.Author").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter, currentUserID uint) ([]*models.Recipe, error) {
	limit := filter.Limit
	if limit <= 0 || limit > maxListResults {
		limit = maxListResults
	}

	q := r.applyRecipeDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("recipes.is_public = ? AND recipes.is_archived = ?", true, false)

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(recipes.title) LIKE ? OR LOWER(recipes.description) LIKE ?", like, like)
	}
	if filter.AuthorID != 0 {
		q = q.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if filter.Tag != "" {
		q = q.Where("recipes.tags LIKE ?", "%"+filter.Tag+"%")
	}

	var recipes []*models.Recipe
	err := q.Order("recipes.created_at DESC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) ListByAuthor(ctx context.Context, authorID uint, currentUserID uint) ([]*models.Recipe, error) {
	return r.List(ctx, RecipeFilter{AuthorID: authorID}, currentUserID)
}

// ForkSummary resolves the reduced ancestor view by identifier. It reads only
// title and author fields so a private or archived ancestor still resolves
// without exposing restricted content.
func (r *recipeRepository) ForkSummary(ctx context.Context, recipeID uint) (*models.ForkSummary, error) {
	var summary models.ForkSummary
	err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Select("recipes.id, recipes.title, users.username AS author_username, users.name AS author_name").
		Joins("JOIN users ON users.id = recipes.author_id").
		Where("recipes.id = ?", recipeID).
		Scan(&summary).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if summary.ID == 0 {
		return nil, models.NewNotFoundError("Recipe", recipeID)
	}
	return &summary, nil
}

func (r *recipeRepository) CountForks(ctx context.Context, recipeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("forked_from_id = ?", recipeID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *recipeRepository) IsLiked(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *recipeRepository) Like(ctx context.Context, userID, recipeID uint) error {
	like := &models.Like{UserID: userID, RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		// The unique (recipe_id, user_id) index arbitrates racing likes;
		// the loser gets a well-defined conflict, never a duplicate row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("Already liked")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, recipeID)
	return nil
}

func (r *recipeRepository) Unlike(ctx context.Context, userID, recipeID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Like{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Like", recipeID)
	}
	cache.InvalidateRecipe(ctx, recipeID)
	return nil
}

// applyRecipeDetails adds subqueries to fetch derived counts and liked status
// in a single query. Counts are always live; they are never stored.
func (r *recipeRepository) applyRecipeDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "recipes.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.recipe_id = recipes.id) AS likes_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.recipe_id = recipes.id) AS comments_count, " +
		"(SELECT COUNT(*) FROM recipes AS forks WHERE forks.forked_from_id = recipes.id) AS forks_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.recipe_id = recipes.id AND likes.user_id = ?) AS liked", currentUserID)
	}

	return db.Select(selectQuery + ", FALSE AS liked")
}
