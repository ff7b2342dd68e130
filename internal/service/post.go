package service

import (
	"context"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// MaxPostLength caps post text at 10K characters.
const MaxPostLength = 10000

// PostService handles creation and editing of posts.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

type CreatePostInput struct {
	AuthorID  uint
	Text      string
	GroupSlug string
}

type EditPostInput struct {
	ActorID   uint
	PostID    uint
	Text      string
	GroupSlug string
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
	}
}

// CanEdit reports whether userID may edit the given post. Only the author may.
func CanEdit(userID uint, post *models.Post) bool {
	return userID != 0 && post != nil && post.AuthorID == userID
}

func (s *PostService) validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return models.NewFieldValidationError("text", "Text is required")
	}
	if len(text) > MaxPostLength {
		return models.NewFieldValidationError("text", "Text too long (max 10000 characters)")
	}
	return nil
}

// resolveGroup maps a group slug to its ID. An empty slug means no group.
func (s *PostService) resolveGroup(ctx context.Context, slug string) (*uint, error) {
	if slug == "" {
		return nil, nil
	}
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return nil, models.NewFieldValidationError("group", "Unknown group")
		}
		return nil, err
	}
	return &group.ID, nil
}

// CreatePost validates and stores a new post for the given author.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.AuthorID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if err := s.validateText(in.Text); err != nil {
		return nil, err
	}
	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     in.Text,
		AuthorID: in.AuthorID,
		GroupID:  groupID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	middleware.PostsCreated.Inc()

	// Reload so Author and Group come back populated.
	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	created.CanEdit = true
	return created, nil
}

// EditPost rewrites a post's text and group assignment. Only the author may
// edit; authorship and creation time are never altered. An empty GroupSlug
// removes the post from its group.
func (s *PostService) EditPost(ctx context.Context, in EditPostInput) (*models.Post, error) {
	if in.ActorID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !CanEdit(in.ActorID, post) {
		return nil, models.NewForbiddenError("Only the author can edit this post")
	}

	if err := s.validateText(in.Text); err != nil {
		return nil, err
	}
	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.UpdateContent(ctx, in.PostID, in.Text, groupID); err != nil {
		return nil, err
	}
	middleware.PostsEdited.Inc()

	updated, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	updated.CanEdit = true
	return updated, nil
}

// GetPost returns a single post with CanEdit computed for the viewer and the
// author's total post count populated. viewerID is zero for anonymous requests.
func (s *PostService) GetPost(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if count, err := s.postRepo.CountByAuthorID(ctx, post.AuthorID); err == nil {
		post.Author.PostsCount = count
	}
	post.CanEdit = CanEdit(viewerID, post)
	return post, nil
}
