package server

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
	))

	return db
}

func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db := setupHandlerTestDB(t)
	cfg := &config.Config{
		JWTSecret: "test-secret",
		Env:       "test",
	}
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)
	return s, db
}

// newTestApp mounts the handlers under test. When authUserID is non-zero an
// injected middleware stands in for AuthRequired.
func newTestApp(s *Server, authUserID uint) *fiber.App {
	app := fiber.New()
	if authUserID != 0 {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userID", authUserID)
			return c.Next()
		})
	}

	app.Get("/api/posts", s.GetPosts)
	app.Get("/api/posts/:id", s.GetPost)
	app.Post("/api/posts", s.CreatePost)
	app.Put("/api/posts/:id", s.UpdatePost)
	app.Get("/api/groups", s.GetGroups)
	app.Get("/api/groups/:slug/posts", s.GetGroupPosts)
	app.Get("/api/groups/:slug", s.GetGroupBySlug)
	app.Post("/api/groups", s.CreateGroup)
	app.Get("/api/users/me", s.GetMyProfile)
	app.Put("/api/users/me", s.UpdateMyProfile)
	app.Get("/api/users/:username/posts", s.GetUserPosts)
	app.Get("/api/users/:username", s.GetUserProfile)

	return app
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Password: "pw"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestGroup(t *testing.T, db *gorm.DB, title, slug string) models.Group {
	t.Helper()
	group := models.Group{Title: title, Slug: slug}
	require.NoError(t, db.Create(&group).Error)
	return group
}

// createTestPosts inserts n posts for the author with ascending creation times
// so the expected feed order is the reverse of creation order.
func createTestPosts(t *testing.T, db *gorm.DB, authorID uint, groupID *uint, n int) []models.Post {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	posts := make([]models.Post, n)
	for i := 0; i < n; i++ {
		posts[i] = models.Post{
			Text:      "entry",
			AuthorID:  authorID,
			GroupID:   groupID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&posts[i]).Error)
	}
	return posts
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}
