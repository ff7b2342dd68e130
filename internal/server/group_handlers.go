package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetGroups handles GET /api/groups
func (s *Server) GetGroups(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	groups, err := s.groupService.ListGroups(c.Context(), limit, offset)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"groups": groups})
}

// GetGroupBySlug handles GET /api/groups/:slug
func (s *Server) GetGroupBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	group, err := s.groupService.GetGroup(c.Context(), slug)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(group)
}

// GetGroupPosts handles GET /api/groups/:slug/posts. Returns the group and
// one page of its posts, newest first.
func (s *Server) GetGroupPosts(c *fiber.Ctx) error {
	slug := c.Params("slug")

	group, page, err := s.feedService.ListByGroup(c.Context(), slug, parsePage(c))
	if err != nil {
		return respondAppError(c, err)
	}

	if viewerID, ok := s.optionalUserID(c); ok {
		for _, post := range page.Posts {
			post.CanEdit = service.CanEdit(viewerID, post)
		}
	}

	return c.JSON(fiber.Map{
		"group": group,
		"page":  page,
	})
}

// CreateGroup handles POST /api/groups (admin only)
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.CreateGroup(c.Context(), service.CreateGroupInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(group)
}
