// Package service implements the application's business logic on top of the
// repository layer: the authorization guard, the post lifecycle manager, the
// engagement engine, and user account handling.
package service

import (
	"inkwell/internal/models"
)

// Relation names the relationship a caller must hold to a post for a
// mutation to be permitted.
type Relation string

// RelationOwner requires the caller to be the post's author. Engagement
// operations (likes, comments) carry no relation requirement beyond an
// authenticated identity.
const RelationOwner Relation = "owner"

// Authorize decides whether callerID may act on post with the required
// relation. It is a pure function of its arguments: no store access, no side
// effects. A nil post yields NotFound so callers can pass through lookup
// results directly.
func Authorize(callerID uint, post *models.Post, relation Relation) error {
	if post == nil {
		return models.NewNotFoundError("Post", "unknown")
	}
	if callerID == 0 {
		return models.NewUnauthenticatedError("Authentication required")
	}
	if relation == RelationOwner && post.AuthorID != callerID {
		return models.NewForbiddenError("You are not the author of this post")
	}
	return nil
}
