package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanEdit(t *testing.T) {
	post := &models.Post{ID: 1, AuthorID: 10}

	assert.True(t, CanEdit(10, post))
	assert.False(t, CanEdit(11, post))
	assert.False(t, CanEdit(0, post), "anonymous users can never edit")
	assert.False(t, CanEdit(10, nil))
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		postRepo := noopPostRepo()
		var created *models.Post
		postRepo.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 42
			created = p
			return nil
		}
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			require.Equal(t, uint(42), id)
			return created, nil
		}

		svc := NewPostService(postRepo, noopGroupRepo())
		post, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 1, Text: "hello"})
		require.NoError(t, err)
		assert.Equal(t, uint(42), post.ID)
		assert.Equal(t, uint(1), post.AuthorID)
		assert.Nil(t, post.GroupID)
		assert.True(t, post.CanEdit)
	})

	t.Run("With Group", func(t *testing.T) {
		groupRepo := noopGroupRepo()
		groupRepo.getBySlugFn = func(_ context.Context, slug string) (*models.Group, error) {
			require.Equal(t, "travel", slug)
			return &models.Group{ID: 7, Slug: "travel"}, nil
		}
		postRepo := noopPostRepo()
		postRepo.createFn = func(_ context.Context, p *models.Post) error {
			require.NotNil(t, p.GroupID)
			assert.Equal(t, uint(7), *p.GroupID)
			return nil
		}

		svc := NewPostService(postRepo, groupRepo)
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 1, Text: "hello", GroupSlug: "travel"})
		require.NoError(t, err)
	})

	t.Run("Anonymous", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), noopGroupRepo())
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 0, Text: "hello"})
		assertAppErrorCode(t, err, "UNAUTHORIZED")
	})

	t.Run("Empty Text", func(t *testing.T) {
		called := false
		postRepo := noopPostRepo()
		postRepo.createFn = func(_ context.Context, _ *models.Post) error {
			called = true
			return nil
		}

		svc := NewPostService(postRepo, noopGroupRepo())
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 1, Text: "   "})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "text", appErr.Field)
		assert.False(t, called, "nothing should be stored")
	})

	t.Run("Text Too Long", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), noopGroupRepo())
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 1, Text: strings.Repeat("x", MaxPostLength+1)})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("Unknown Group Slug", func(t *testing.T) {
		groupRepo := noopGroupRepo()
		groupRepo.getBySlugFn = func(_ context.Context, slug string) (*models.Group, error) {
			return nil, models.NewNotFoundError("Group", slug)
		}

		svc := NewPostService(noopPostRepo(), groupRepo)
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 1, Text: "hello", GroupSlug: "nope"})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "group", appErr.Field)
	})
}

func TestPostService_EditPost(t *testing.T) {
	ctx := context.Background()
	existing := &models.Post{ID: 5, Text: "original", AuthorID: 10}

	newRepo := func() *postRepoStub {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			if id != 5 {
				return nil, models.NewNotFoundError("Post", id)
			}
			copied := *existing
			return &copied, nil
		}
		return repo
	}

	t.Run("Author Can Edit", func(t *testing.T) {
		repo := newRepo()
		var gotText string
		var gotGroup *uint
		repo.updateContentFn = func(_ context.Context, id uint, text string, groupID *uint) error {
			require.Equal(t, uint(5), id)
			gotText = text
			gotGroup = groupID
			return nil
		}

		svc := NewPostService(repo, noopGroupRepo())
		post, err := svc.EditPost(ctx, EditPostInput{ActorID: 10, PostID: 5, Text: "rewritten"})
		require.NoError(t, err)
		assert.Equal(t, "rewritten", gotText)
		assert.Nil(t, gotGroup, "empty slug clears the group")
		assert.True(t, post.CanEdit)
	})

	t.Run("Non Author Is Forbidden", func(t *testing.T) {
		repo := newRepo()
		called := false
		repo.updateContentFn = func(_ context.Context, _ uint, _ string, _ *uint) error {
			called = true
			return nil
		}

		svc := NewPostService(repo, noopGroupRepo())
		_, err := svc.EditPost(ctx, EditPostInput{ActorID: 11, PostID: 5, Text: "hijacked"})
		assertAppErrorCode(t, err, "FORBIDDEN")
		assert.False(t, called, "the post must remain unchanged")
	})

	t.Run("Anonymous", func(t *testing.T) {
		svc := NewPostService(newRepo(), noopGroupRepo())
		_, err := svc.EditPost(ctx, EditPostInput{ActorID: 0, PostID: 5, Text: "x"})
		assertAppErrorCode(t, err, "UNAUTHORIZED")
	})

	t.Run("Missing Post", func(t *testing.T) {
		svc := NewPostService(newRepo(), noopGroupRepo())
		_, err := svc.EditPost(ctx, EditPostInput{ActorID: 10, PostID: 99, Text: "x"})
		assertAppErrorCode(t, err, "NOT_FOUND")
	})
}

func TestPostService_GetPostComputesCanEdit(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 10}, nil
	}
	svc := NewPostService(repo, noopGroupRepo())
	ctx := context.Background()

	post, err := svc.GetPost(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, post.CanEdit)

	post, err = svc.GetPost(ctx, 1, 0)
	require.NoError(t, err)
	assert.False(t, post.CanEdit)
}
