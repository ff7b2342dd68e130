package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/gosimple/slug"
)

// GroupService handles group creation and lookups.
type GroupService struct {
	groupRepo repository.GroupRepository
}

type CreateGroupInput struct {
	Title       string
	Slug        string
	Description string
}

func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// CreateGroup validates and stores a new group. When no slug is supplied
// one is derived from the title.
func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	title := strings.TrimSpace(in.Title)
	if err := validation.ValidateGroupTitle(title); err != nil {
		return nil, models.NewFieldValidationError("title", err.Error())
	}

	groupSlug := strings.TrimSpace(in.Slug)
	if groupSlug == "" {
		groupSlug = slug.Make(title)
	}
	if err := validation.ValidateGroupSlug(groupSlug); err != nil {
		return nil, models.NewFieldValidationError("slug", err.Error())
	}

	group := &models.Group{
		Title:       title,
		Slug:        groupSlug,
		Description: in.Description,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// GetGroup returns the group identified by slug.
func (s *GroupService) GetGroup(ctx context.Context, groupSlug string) (*models.Group, error) {
	return s.groupRepo.GetBySlug(ctx, groupSlug)
}

// ListGroups returns groups ordered by title.
func (s *GroupService) ListGroups(ctx context.Context, limit, offset int) ([]models.Group, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.groupRepo.List(ctx, limit, offset)
}
