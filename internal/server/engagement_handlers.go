package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Text string `json:"text"`
}

type shareRequest struct {
	Platform string `json:"platform"`
}

// ToggleLike handles PUT /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	result, err := s.engagementService.ToggleLike(c.Context(), userID, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(result)
}

// AddComment handles POST /api/posts/:id/comment
func (s *Server) AddComment(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	comments, err := s.engagementService.AddComment(c.Context(), userID, id, req.Text)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comments": comments})
}

// SharePost handles PUT /api/posts/:id/share. No authentication: anyone who
// can see a post can report sharing it.
func (s *Server) SharePost(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	var req shareRequest
	// Body is optional; a bare PUT still counts as one share.
	_ = c.BodyParser(&req)

	shares, err := s.engagementService.IncrementShare(c.Context(), id, req.Platform)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"shares": shares})
}
