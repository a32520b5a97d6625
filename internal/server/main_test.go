package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	// No Redis in handler tests: the cache degrades to pass-through and the
	// custom rate limiter fails open.
	cache.SetClient(nil)

	cfg := &config.Config{
		JWTSecret: "handler-test-secret-key-0123456789",
		Port:      "0",
		Env:       "test",
	}
	s := NewServerWithDeps(cfg, db, nil)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func jsonRequest(t *testing.T, method, path string, body any, token string) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request, out any) int {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, out), "body: %s", b)
	}
	return resp.StatusCode
}

// signupUser registers an account through the API and returns its token and id.
func signupUser(t *testing.T, app *fiber.App, username string) (string, uint) {
	t.Helper()
	var parsed struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	status := doJSON(t, app, jsonRequest(t, "POST", "/api/auth/signup", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "Password1",
	}, ""), &parsed)
	require.Equal(t, fiber.StatusCreated, status)
	require.NotEmpty(t, parsed.Token)
	return parsed.Token, parsed.User.ID
}

// createPost creates a post through the API and returns its id.
func createPost(t *testing.T, app *fiber.App, token string, body fiber.Map) uint {
	t.Helper()
	var parsed struct {
		ID uint `json:"id"`
	}
	status := doJSON(t, app, jsonRequest(t, "POST", "/api/posts/", body, token), &parsed)
	require.Equal(t, fiber.StatusCreated, status)
	require.NotZero(t, parsed.ID)
	return parsed.ID
}

func postPath(id uint, suffix string) string {
	return fmt.Sprintf("/api/posts/%d%s", id, suffix)
}

// multipartPostRequest builds a multipart create/update request with a JSON
// "blog" field and an optional "image" file part.
func multipartPostRequest(t *testing.T, method, path string, blog fiber.Map, image []byte, token string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	blogJSON, err := json.Marshal(blog)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("blog", string(blogJSON)))

	if image != nil {
		part, err := w.CreateFormFile("image", "upload.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
