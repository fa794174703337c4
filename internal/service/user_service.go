package service

import (
	"context"

	"forkful/internal/cache"
	"forkful/internal/models"
	"forkful/internal/repository"
)

type UserService struct {
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
}

func NewUserService(userRepo repository.UserRepository, recipeRepo repository.RecipeRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
	}
}

// GetProfile returns a user's public profile with derived counts and their
// public, non-archived recipes. Anonymous reads go through the cache.
func (s *UserService) GetProfile(ctx context.Context, username string, currentUserID uint) (*models.User, error) {
	if currentUserID == 0 {
		var user models.User
		err := cache.Aside(ctx, cache.UserKey(username), &user, cache.UserTTL, func() error {
			fetched, fetchErr := s.fetchProfile(ctx, username, 0)
			if fetchErr != nil {
				return fetchErr
			}
			user = *fetched
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &user, nil
	}
	return s.fetchProfile(ctx, username, currentUserID)
}

func (s *UserService) fetchProfile(ctx context.Context, username string, currentUserID uint) (*models.User, error) {
	user, err := s.userRepo.GetProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipeRepo.ListByAuthor(ctx, user.ID, currentUserID)
	if err != nil {
		return nil, err
	}
	user.Recipes = make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		user.Recipes = append(user.Recipes, *r)
	}
	return user, nil
}
