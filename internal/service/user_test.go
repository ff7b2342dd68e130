package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUserService_GetProfile(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username != "leo" {
			return nil, models.NewNotFoundError("User", username)
		}
		return &models.User{ID: 3, Username: "leo"}, nil
	}
	postRepo := noopPostRepo()
	postRepo.countByAuthorFn = func(_ context.Context, _ uint) (int64, error) { return 5, nil }

	svc := NewUserService(userRepo, postRepo)

	profile, err := svc.GetProfile(context.Background(), "leo")
	require.NoError(t, err)
	assert.Equal(t, int64(5), profile.PostsCount)

	_, err = svc.GetProfile(context.Background(), "ghost")
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	newRepo := func() *userRepoStub {
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "leo", Bio: "old bio"}, nil
		}
		return repo
	}

	t.Run("Updates Provided Fields Only", func(t *testing.T) {
		repo := newRepo()
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}

		svc := NewUserService(repo, noopPostRepo())
		user, err := svc.UpdateProfile(ctx, 3, UpdateProfileInput{Bio: strPtr("new bio")})
		require.NoError(t, err)
		assert.Equal(t, "new bio", user.Bio)
		assert.Equal(t, "leo", user.Username, "username untouched")
		assert.Equal(t, saved, user)
	})

	t.Run("Rejects Bad Username", func(t *testing.T) {
		svc := NewUserService(newRepo(), noopPostRepo())
		_, err := svc.UpdateProfile(ctx, 3, UpdateProfileInput{Username: strPtr("-bad-")})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("Rejects Oversized Bio", func(t *testing.T) {
		svc := NewUserService(newRepo(), noopPostRepo())
		_, err := svc.UpdateProfile(ctx, 3, UpdateProfileInput{Bio: strPtr(strings.Repeat("b", maxBioLength+1))})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})
}
