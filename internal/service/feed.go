// Package service holds the application's business logic.
package service

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// PageSize is the fixed number of posts per feed page.
const PageSize = 10

// Page is one page of a post feed together with its pagination metadata.
// Out-of-range page numbers yield an empty Posts slice with truthful counters.
type Page struct {
	Posts       []*models.Post `json:"posts"`
	Number      int            `json:"number"`
	TotalPages  int            `json:"total_pages"`
	TotalPosts  int64          `json:"total_posts"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// FeedService assembles paginated post feeds: global, per-group, per-author.
type FeedService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
) *FeedService {
	return &FeedService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func buildPage(posts []*models.Post, total int64, page int) *Page {
	if posts == nil {
		posts = []*models.Post{}
	}
	totalPages := int((total + PageSize - 1) / PageSize)
	return &Page{
		Posts:       posts,
		Number:      page,
		TotalPages:  totalPages,
		TotalPosts:  total,
		HasNext:     page < totalPages,
		HasPrevious: page > 1 && totalPages > 0,
	}
}

// ListAll returns one page of the global feed, newest posts first.
// The leading pages are served cache-aside from Redis.
func (s *FeedService) ListAll(ctx context.Context, page int) (*Page, error) {
	page = normalizePage(page)
	middleware.FeedPagesServed.WithLabelValues("all").Inc()

	fetch := func() (*Page, error) {
		total, err := s.postRepo.CountAll(ctx)
		if err != nil {
			return nil, err
		}
		posts, err := s.postRepo.List(ctx, PageSize, (page-1)*PageSize)
		if err != nil {
			return nil, err
		}
		return buildPage(posts, total, page), nil
	}

	if page <= cache.FeedCachedPages {
		var result Page
		err := cache.Aside(ctx, cache.FeedPageKey(page), &result, cache.FeedPageTTL, func() error {
			p, err := fetch()
			if err != nil {
				return err
			}
			result = *p
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &result, nil
	}

	return fetch()
}

// ListByGroup returns the group identified by slug and one page of its posts.
func (s *FeedService) ListByGroup(ctx context.Context, slug string, page int) (*models.Group, *Page, error) {
	page = normalizePage(page)

	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	middleware.FeedPagesServed.WithLabelValues("group").Inc()

	total, err := s.postRepo.CountByGroupID(ctx, group.ID)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.postRepo.ListByGroupID(ctx, group.ID, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, nil, err
	}
	return group, buildPage(posts, total, page), nil
}

// ListByAuthor returns the author identified by username and one page of their posts.
func (s *FeedService) ListByAuthor(ctx context.Context, username string, page int) (*models.User, *Page, error) {
	page = normalizePage(page)

	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	middleware.FeedPagesServed.WithLabelValues("author").Inc()

	total, err := s.postRepo.CountByAuthorID(ctx, author.ID)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.postRepo.ListByAuthorID(ctx, author.ID, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, nil, err
	}
	author.PostsCount = total
	return author, buildPage(posts, total, page), nil
}
