package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

const maxBioLength = 500

// UserService handles user profile reads and updates.
type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

type UpdateProfileInput struct {
	Username *string
	Bio      *string
	Avatar   *string
}

func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

// GetProfile returns a user's public profile with their post count populated.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	count, err := s.postRepo.CountByAuthorID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.PostsCount = count
	return user, nil
}

// UpdateProfile applies the provided fields to the user's profile.
// Nil fields are left unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewFieldValidationError("username", err.Error())
		}
		user.Username = username
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLength {
			return nil, models.NewFieldValidationError("bio", "Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
