package service

import (
	"context"

	"forkful/internal/cache"
	"forkful/internal/models"
	"forkful/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates a follow edge towards the named user. Self-follows are
// rejected before any write; a second follow of the same user is a Conflict.
func (s *FollowService) Follow(ctx context.Context, followerID uint, targetUsername string) error {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}
	if target.ID == followerID {
		return models.NewValidationError("You cannot follow yourself")
	}

	if err := s.followRepo.Create(ctx, &models.Follow{
		FollowerID:  followerID,
		FollowingID: target.ID,
	}); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, targetUsername)
	return nil
}

// Unfollow removes the edge; unfollowing someone not followed is NotFound.
func (s *FollowService) Unfollow(ctx context.Context, followerID uint, targetUsername string) error {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}
	if target.ID == followerID {
		return models.NewValidationError("You cannot unfollow yourself")
	}

	if err := s.followRepo.Delete(ctx, followerID, target.ID); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, targetUsername)
	return nil
}

// IsFollowing reports whether followerID follows the named user.
func (s *FollowService) IsFollowing(ctx context.Context, followerID uint, targetUsername string) (bool, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return false, err
	}
	return s.followRepo.IsFollowing(ctx, followerID, target.ID)
}

// Followers lists the users following the named user, newest edge first.
func (s *FollowService) Followers(ctx context.Context, username string, limit, offset int) ([]models.User, error) {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowers(ctx, target.ID, normalizeLimit(limit), offset)
}

// Following lists who the named user follows, newest edge first.
func (s *FollowService) Following(ctx context.Context, username string, limit, offset int) ([]models.User, error) {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowing(ctx, target.ID, normalizeLimit(limit), offset)
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
