package server

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"inkwell/internal/imaging"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestCreatePostDefaults(t *testing.T) {
	_, app := newTestServer(t)
	token, authorID := signupUser(t, app, "alice")

	var post models.Post
	status := doJSON(t, app, jsonRequest(t, "POST", "/api/posts/", fiber.Map{
		"title":       "My first post",
		"description": "Hello world",
	}, token), &post)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, models.DefaultCategory, post.Category)
	assert.False(t, post.IsPublished, "new posts start as drafts")
	assert.Equal(t, authorID, post.AuthorID)
	assert.Zero(t, post.Shares)
}

func TestCreatePostValidation(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "alice")

	status := doJSON(t, app, jsonRequest(t, "POST", "/api/posts/", fiber.Map{
		"title": "No body",
	}, token), nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status = doJSON(t, app, jsonRequest(t, "POST", "/api/posts/", fiber.Map{
		"description": "No title",
	}, token), nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGetPostPubliclyReadableIncludingDrafts(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "alice")
	postID := createPost(t, app, token, fiber.Map{
		"title":       "Draft",
		"description": "not published yet",
	})

	// No Authorization header at all.
	var post models.Post
	status := doJSON(t, app, jsonRequest(t, "GET", postPath(postID, ""), nil, ""), &post)
	require.Equal(t, fiber.StatusOK, status)
	assert.False(t, post.IsPublished)
	assert.Equal(t, "Draft", post.Title)
}

func TestGetPostUnknownID(t *testing.T) {
	_, app := newTestServer(t)

	status := doJSON(t, app, jsonRequest(t, "GET", "/api/posts/9999", nil, ""), nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status = doJSON(t, app, jsonRequest(t, "GET", "/api/posts/not-a-number", nil, ""), nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUpdatePostPartialMerge(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "alice")
	postID := createPost(t, app, token, fiber.Map{
		"title":       "Original",
		"sub_title":   "Sub",
		"category":    "Tech",
		"description": "Body",
	})

	var post models.Post
	status := doJSON(t, app, jsonRequest(t, "PUT", postPath(postID, ""), fiber.Map{
		"title": "Renamed",
	}, token), &post)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Renamed", post.Title)
	assert.Equal(t, "Sub", post.SubTitle)
	assert.Equal(t, "Tech", post.Category)
	assert.Equal(t, "Body", post.Description)
}

func TestUpdatePostForbiddenForNonOwner(t *testing.T) {
	_, app := newTestServer(t)
	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, _ := signupUser(t, app, "bob")
	postID := createPost(t, app, aliceToken, fiber.Map{
		"title":       "Alice's post",
		"description": "Body",
	})

	status := doJSON(t, app, jsonRequest(t, "PUT", postPath(postID, ""), fiber.Map{
		"title": "Bob was here",
	}, bobToken), nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	// Confirm nothing changed.
	var post models.Post
	doJSON(t, app, jsonRequest(t, "GET", postPath(postID, ""), nil, ""), &post)
	assert.Equal(t, "Alice's post", post.Title)
}

func TestPublishUnpublishLifecycle(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "alice")
	postID := createPost(t, app, token, fiber.Map{
		"title":       "Lifecycle",
		"description": "Body",
	})

	var post models.Post
	status := doJSON(t, app, jsonRequest(t, "PUT", postPath(postID, "/publish"), nil, token), &post)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, post.IsPublished)

	// Publishing again is a no-op success.
	status = doJSON(t, app, jsonRequest(t, "PUT", postPath(postID, "/publish"), nil, token), &post)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, post.IsPublished)

	status = doJSON(t, app, jsonRequest(t, "PUT", postPath(postID, "/unpublish"), nil, token), &post)
	require.Equal(t, fiber.StatusOK, status)
	assert.False(t, post.IsPublished)
}

func TestPublishForbiddenForNonOwner(t *testing.T) {
	_, app := newTestServer(t)
	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, _ := signupUser(t, app, "bob")
	postID := createPost(t, app, aliceToken, fiber.Map{
		"title":       "Alice's draft",
		"description": "Body",
	})

	status := doJSON(t, app, jsonRequest(t, "PUT", postPath(postID, "/publish"), nil, bobToken), nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestDeletePost(t *testing.T) {
	_, app := newTestServer(t)
	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, _ := signupUser(t, app, "bob")
	postID := createPost(t, app, aliceToken, fiber.Map{
		"title":       "Doomed",
		"description": "Body",
	})

	status := doJSON(t, app, jsonRequest(t, "DELETE", postPath(postID, ""), nil, bobToken), nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status = doJSON(t, app, jsonRequest(t, "DELETE", postPath(postID, ""), nil, aliceToken), nil)
	assert.Equal(t, fiber.StatusOK, status)

	status = doJSON(t, app, jsonRequest(t, "GET", postPath(postID, ""), nil, ""), nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	// Deleting again reports not found; the first delete was permanent.
	status = doJSON(t, app, jsonRequest(t, "DELETE", postPath(postID, ""), nil, aliceToken), nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestListMineIncludesDrafts(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "alice")
	otherToken, _ := signupUser(t, app, "bob")

	published := createPost(t, app, token, fiber.Map{
		"title": "Published", "description": "Body",
	})
	doJSON(t, app, jsonRequest(t, "PUT", postPath(published, "/publish"), nil, token), nil)
	createPost(t, app, token, fiber.Map{
		"title": "Draft", "description": "Body",
	})
	createPost(t, app, otherToken, fiber.Map{
		"title": "Bob's", "description": "Body",
	})

	var parsed struct {
		Posts []models.Post `json:"posts"`
	}
	status := doJSON(t, app, jsonRequest(t, "GET", "/api/posts/mine", nil, token), &parsed)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, parsed.Posts, 2)
}

func TestDashboardAggregatesPublishedOnly(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "alice")

	for i := 0; i < 2; i++ {
		id := createPost(t, app, token, fiber.Map{
			"title": "Published", "description": "Body", "category": "Tech",
		})
		doJSON(t, app, jsonRequest(t, "PUT", postPath(id, "/publish"), nil, token), nil)
	}
	createPost(t, app, token, fiber.Map{
		"title": "Draft", "description": "Body",
	})

	var stats struct {
		TotalPublished int64               `json:"total_published"`
		Latest         []models.Post       `json:"latest"`
		Topics         []models.TopicCount `json:"topics"`
	}
	status := doJSON(t, app, jsonRequest(t, "GET", "/api/posts/dashboard", nil, token), &stats)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, int64(2), stats.TotalPublished)
	assert.Len(t, stats.Latest, 2)
	require.Len(t, stats.Topics, 1)
	assert.Equal(t, "Tech", stats.Topics[0].Category)
	assert.Equal(t, int64(2), stats.Topics[0].Count)
}

func TestCreatePostWithInlineImageRoundTrip(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "alice")

	data := testPNG(t)
	uri := imaging.DataURI("image/png", data)

	var post models.Post
	status := doJSON(t, app, jsonRequest(t, "POST", "/api/posts/", fiber.Map{
		"title":       "With image",
		"description": "Body",
		"image":       uri,
	}, token), &post)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, uri, post.Image, "stored bytes project back to the identical data URI")

	// And the projection survives a fresh read.
	var fetched models.Post
	doJSON(t, app, jsonRequest(t, "GET", postPath(post.ID, ""), nil, ""), &fetched)
	assert.Equal(t, uri, fetched.Image)
}

func TestCreatePostMultipartUpload(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "alice")

	data := testPNG(t)
	req := multipartPostRequest(t, "POST", "/api/posts/", fiber.Map{
		"title":       "Multipart",
		"description": "Body",
		"category":    "Photos",
	}, data, token)

	var post models.Post
	status := doJSON(t, app, req, &post)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Photos", post.Category)
	assert.Equal(t, imaging.DataURI("image/png", data), post.Image)
}

func TestCreatePostRejectsBogusImage(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "alice")

	req := multipartPostRequest(t, "POST", "/api/posts/", fiber.Map{
		"title":       "Bad image",
		"description": "Body",
	}, []byte("not an image at all"), token)

	status := doJSON(t, app, req, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
