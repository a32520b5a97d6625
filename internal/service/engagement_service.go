package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// EngagementService is the engagement engine: like toggling, comment
// appending, and share counting. Likes and comments require an authenticated
// caller but no ownership; shares require nothing at all.
type EngagementService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// NewEngagementService creates a new EngagementService.
func NewEngagementService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *EngagementService {
	return &EngagementService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// LikeResult is the response of a like toggle: the new count and the full
// membership set.
type LikeResult struct {
	Likes   int    `json:"likes"`
	LikedBy []uint `json:"liked_by"`
}

// ToggleLike flips the caller's membership in the post's like set: present
// removes, absent appends. Two successive toggles restore the prior state,
// so a retried request flips the state instead of repeating it.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, postID uint) (*LikeResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, mapPostLookupErr(err, postID)
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
		observability.EngagementEvents.WithLabelValues("unlike").Inc()
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, err
		}
		observability.EngagementEvents.WithLabelValues("like").Inc()
	}

	likedBy, err := s.postRepo.LikedUserIDs(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{
		Likes:   len(likedBy),
		LikedBy: likedBy,
	}, nil
}

// AddComment appends to the post's comment sequence and returns the full
// updated sequence with commenter display names resolved.
func (s *EngagementService) AddComment(ctx context.Context, userID, postID uint, text string) ([]*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, mapPostLookupErr(err, postID)
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.EngagementEvents.WithLabelValues("comment").Inc()

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return decorateComments(comments), nil
}

// IncrementShare adds exactly one share event. The platform is accepted for
// symmetry with the client but does not affect the counter; every call is a
// distinct event with no de-duplication.
func (s *EngagementService) IncrementShare(ctx context.Context, postID uint, platform string) (uint, error) {
	_ = platform

	shares, err := s.postRepo.IncrementShare(ctx, postID)
	if err != nil {
		return 0, mapPostLookupErr(err, postID)
	}
	observability.EngagementEvents.WithLabelValues("share").Inc()
	return shares, nil
}
