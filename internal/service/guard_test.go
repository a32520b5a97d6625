package service

import (
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeOwner(t *testing.T) {
	post := &models.Post{ID: 1, AuthorID: 7}
	assert.NoError(t, Authorize(7, post, RelationOwner))
}

func TestAuthorizeNonOwner(t *testing.T) {
	post := &models.Post{ID: 1, AuthorID: 7}
	assertAppErrorCode(t, Authorize(8, post, RelationOwner), models.CodeForbidden)
}

func TestAuthorizeNilPost(t *testing.T) {
	assertAppErrorCode(t, Authorize(7, nil, RelationOwner), models.CodeNotFound)
}

func TestAuthorizeAnonymousCaller(t *testing.T) {
	post := &models.Post{ID: 1, AuthorID: 7}
	assertAppErrorCode(t, Authorize(0, post, RelationOwner), models.CodeUnauthenticated)
}
