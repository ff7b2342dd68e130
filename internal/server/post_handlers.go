package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Text  string `json:"text"`
	Group string `json:"group"`
}

// GetPosts handles GET /api/posts. Returns one page of the global feed,
// newest posts first. Page numbers start at 1; out-of-range pages are empty.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, err := s.feedService.ListAll(c.Context(), parsePage(c))
	if err != nil {
		return respondAppError(c, err)
	}

	// Compute edit permission for the viewer, if any.
	if viewerID, ok := s.optionalUserID(c); ok {
		for _, post := range page.Posts {
			post.CanEdit = service.CanEdit(viewerID, post)
		}
	}

	return c.JSON(page)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)
	post, err := s.postService.GetPost(c.Context(), id, viewerID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID:  userID,
		Text:      req.Text,
		GroupSlug: req.Group,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id. Only the author may edit; authorship
// and creation time never change. An empty group removes the group assignment.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.EditPost(c.Context(), service.EditPostInput{
		ActorID:   userID,
		PostID:    id,
		Text:      req.Text,
		GroupSlug: req.Group,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(post)
}
