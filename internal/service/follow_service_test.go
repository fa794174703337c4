package service

import (
	"context"
	"testing"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	createFn       func(context.Context, *models.Follow) error
	deleteFn       func(context.Context, uint, uint) error
	isFollowingFn  func(context.Context, uint, uint) (bool, error)
	getFollowersFn func(context.Context, uint, int, int) ([]models.User, error)
	getFollowingFn func(context.Context, uint, int, int) ([]models.User, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followingID uint) error {
	return s.deleteFn(ctx, followerID, followingID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followingID)
}
func (s *followRepoStub) GetFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.getFollowersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) GetFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.getFollowingFn(ctx, userID, limit, offset)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:       func(_ context.Context, _ *models.Follow) error { return nil },
		deleteFn:       func(_ context.Context, _, _ uint) error { return nil },
		isFollowingFn:  func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		getFollowersFn: func(_ context.Context, _ uint, _, _ int) ([]models.User, error) { return nil, nil },
		getFollowingFn: func(_ context.Context, _ uint, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getProfileFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetProfile(ctx context.Context, username string) (*models.User, error) {
	return s.getProfileFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice"}, nil
		},
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 2, Username: username}, nil
		},
		getProfileFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 2, Username: username}, nil
		},
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		listFn:   func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

func TestFollow_Self(t *testing.T) {
	follows := noopFollowRepo()
	created := false
	follows.createFn = func(_ context.Context, _ *models.Follow) error {
		created = true
		return nil
	}
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 1, Username: username}, nil
	}
	svc := NewFollowService(follows, users)

	err := svc.Follow(context.Background(), 1, "alice")
	assertErrorCode(t, err, "VALIDATION_ERROR")
	assert.False(t, created, "self-follow must be rejected before any write")
}

func TestFollow_UnknownUser(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return nil, models.NewNotFoundError("User", username)
	}
	svc := NewFollowService(noopFollowRepo(), users)

	err := svc.Follow(context.Background(), 1, "ghost")
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestFollow_DuplicateIsConflict(t *testing.T) {
	follows := noopFollowRepo()
	follows.createFn = func(_ context.Context, _ *models.Follow) error {
		return models.NewConflictError("Already following")
	}
	svc := NewFollowService(follows, noopUserRepo())

	err := svc.Follow(context.Background(), 1, "bob")
	assertErrorCode(t, err, "CONFLICT")
}

func TestFollow_BuildsDirectedEdge(t *testing.T) {
	follows := noopFollowRepo()
	var gotFollow *models.Follow
	follows.createFn = func(_ context.Context, follow *models.Follow) error {
		gotFollow = follow
		return nil
	}
	svc := NewFollowService(follows, noopUserRepo())

	require.NoError(t, svc.Follow(context.Background(), 1, "bob"))
	require.NotNil(t, gotFollow)
	assert.Equal(t, uint(1), gotFollow.FollowerID)
	assert.Equal(t, uint(2), gotFollow.FollowingID)
}

func TestUnfollow_AbsentIsNotFound(t *testing.T) {
	follows := noopFollowRepo()
	follows.deleteFn = func(_ context.Context, _, followingID uint) error {
		return models.NewNotFoundError("Follow", followingID)
	}
	svc := NewFollowService(follows, noopUserRepo())

	err := svc.Unfollow(context.Background(), 1, "bob")
	assertErrorCode(t, err, "NOT_FOUND")
}
