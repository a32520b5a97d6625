package server

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"inkwell/internal/imaging"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondErr writes the standardized error response. Unknown error types fall
// back to 500.
func respondErr(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// currentUserID reads the authenticated caller id placed by AuthRequired.
func currentUserID(c *fiber.Ctx) (uint, error) {
	id, ok := c.Locals("userID").(uint)
	if !ok || id == 0 {
		return 0, models.NewUnauthenticatedError("Authentication required")
	}
	return id, nil
}

// parseIDParam parses the :id route parameter.
func parseIDParam(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid post ID")
	}
	return uint(id), nil
}

// postPayload is the wire shape of post create/update requests. It arrives
// either as a plain JSON body or as multipart form data with the JSON under a
// "blog" field and the image as an "image" file part. In the JSON case the
// image travels inline as a base64 data URI.
type postPayload struct {
	Title       string `json:"title"`
	SubTitle    string `json:"sub_title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsPublished *bool  `json:"is_published"`
}

// parsePostPayload decodes a post body from either encoding and returns the
// payload plus raw image bytes (nil when no image was supplied).
func parsePostPayload(c *fiber.Ctx) (*postPayload, []byte, error) {
	var payload postPayload

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		doc := c.FormValue("blog")
		if doc == "" {
			return nil, nil, models.NewValidationError("Missing blog field")
		}
		if err := json.Unmarshal([]byte(doc), &payload); err != nil {
			return nil, nil, models.NewValidationError("Invalid blog JSON")
		}

		fh, err := c.FormFile("image")
		if err != nil {
			// image part is optional
			return &payload, nil, nil
		}
		f, err := fh.Open()
		if err != nil {
			return nil, nil, models.NewValidationError("Unreadable image upload")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, nil, models.NewValidationError("Unreadable image upload")
		}
		return &payload, data, nil
	}

	if err := c.BodyParser(&payload); err != nil {
		return nil, nil, models.NewValidationError("Invalid request body")
	}
	if payload.Image != "" {
		_, data, err := imaging.ParseDataURI(payload.Image)
		if err != nil {
			return nil, nil, models.NewValidationError(err.Error())
		}
		return &payload, data, nil
	}
	return &payload, nil, nil
}
