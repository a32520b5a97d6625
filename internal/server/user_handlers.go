package server

import (
	"io"
	"strings"

	"inkwell/internal/imaging"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

// Profile handles GET /api/users/me
func (s *Server) Profile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondErr(c, err)
	}

	user, err := s.userService.Profile(c.Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(user)
}

// UpdateProfile handles PUT /api/users/me. Accepts either a JSON body with an
// inline data URI image, or multipart form fields with an "image" file part.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondErr(c, err)
	}

	var req updateProfileRequest
	var image []byte

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		req.Username = c.FormValue("username")
		req.Email = c.FormValue("email")
		req.Bio = c.FormValue("bio")
		if fh, fhErr := c.FormFile("image"); fhErr == nil {
			f, openErr := fh.Open()
			if openErr != nil {
				return respondErr(c, models.NewValidationError("Unreadable image upload"))
			}
			defer f.Close()
			data, readErr := io.ReadAll(f)
			if readErr != nil {
				return respondErr(c, models.NewValidationError("Unreadable image upload"))
			}
			image = data
		}
	} else {
		if err := c.BodyParser(&req); err != nil {
			return respondErr(c, models.NewValidationError("Invalid request body"))
		}
		if req.Image != "" {
			_, data, uriErr := imaging.ParseDataURI(req.Image)
			if uriErr != nil {
				return respondErr(c, models.NewValidationError(uriErr.Error()))
			}
			image = data
		}
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   userID,
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
		Image:    image,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(user)
}
