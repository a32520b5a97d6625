package server

import (
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondErr(c, err)
	}

	payload, image, err := parsePostPayload(c)
	if err != nil {
		return respondErr(c, err)
	}

	in := service.CreatePostInput{
		AuthorID:    userID,
		Title:       payload.Title,
		SubTitle:    payload.SubTitle,
		Category:    payload.Category,
		Description: payload.Description,
		Image:       image,
	}
	if payload.IsPublished != nil {
		in.IsPublished = *payload.IsPublished
	}

	post, err := s.postService.CreatePost(c.Context(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(post)
}

// ListMyPosts handles GET /api/posts/mine
func (s *Server) ListMyPosts(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondErr(c, err)
	}

	posts, err := s.postService.ListByAuthor(c.Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// Dashboard handles GET /api/posts/dashboard
func (s *Server) Dashboard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondErr(c, err)
	}

	stats, err := s.postService.Dashboard(c.Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(stats)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	payload, image, err := parsePostPayload(c)
	if err != nil {
		return respondErr(c, err)
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		CallerID:    userID,
		PostID:      id,
		Title:       payload.Title,
		SubTitle:    payload.SubTitle,
		Category:    payload.Category,
		Description: payload.Description,
		Image:       image,
		IsPublished: payload.IsPublished,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(post)
}

// PublishPost handles PUT /api/posts/:id/publish
func (s *Server) PublishPost(c *fiber.Ctx) error {
	return s.setPublished(c, true)
}

// UnpublishPost handles PUT /api/posts/:id/unpublish
func (s *Server) UnpublishPost(c *fiber.Ctx) error {
	return s.setPublished(c, false)
}

func (s *Server) setPublished(c *fiber.Ctx, published bool) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	post, err := s.postService.SetPublished(c.Context(), userID, id, published)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	if err := s.postService.DeletePost(c.Context(), userID, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}
