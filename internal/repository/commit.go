package repository

import (
	"context"

	"forkful/internal/models"

	"gorm.io/gorm"
)

// CommitRepository reads recipe history. Commits are only ever written inside
// the recipe repository's transactions; there is no standalone create, and no
// update or delete at all.
type CommitRepository interface {
	ListByRecipe(ctx context.Context, recipeID uint, limit, offset int) ([]models.Commit, error)
}

type commitRepository struct {
	db *gorm.DB
}

// NewCommitRepository creates a new commit repository
func NewCommitRepository(db *gorm.DB) CommitRepository {
	return &commitRepository{db: db}
}

func (r *commitRepository) ListByRecipe(ctx context.Context, recipeID uint, limit, offset int) ([]models.Commit, error) {
	var commits []models.Commit
	err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("version DESC").
		Limit(limit).
		Offset(offset).
		Find(&commits).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return commits, nil
}
