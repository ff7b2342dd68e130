package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	count, err := s.postRepo.CountByAuthorID(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}
	user.PostsCount = count

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Username *string `json:"username"`
		Bio      *string `json:"bio"`
		Avatar   *string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), userID, service.UpdateProfileInput{
		Username: req.Username,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:username
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.userService.GetProfile(c.Context(), username)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(user)
}

// GetUserPosts handles GET /api/users/:username/posts. Returns the author and
// one page of their posts, newest first.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	username := c.Params("username")

	author, page, err := s.feedService.ListByAuthor(c.Context(), username, parsePage(c))
	if err != nil {
		return respondAppError(c, err)
	}

	if viewerID, ok := s.optionalUserID(c); ok {
		for _, post := range page.Posts {
			post.CanEdit = service.CanEdit(viewerID, post)
		}
	}

	return c.JSON(fiber.Map{
		"author": author,
		"page":   page,
	})
}
