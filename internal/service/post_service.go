package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/imaging"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// PostService is the post lifecycle manager: creation, partial update,
// publish/unpublish, deletion, and reads. All field mutations and deletion
// are owner-only; reads are public, including drafts fetched by id.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the fields of a new post. Image bytes are optional;
// when present, the content type is sniffed from the payload.
type CreatePostInput struct {
	AuthorID    uint
	Title       string
	SubTitle    string
	Category    string
	Description string
	Image       []byte
	IsPublished bool
}

// UpdatePostInput carries a partial update. Empty string fields are treated
// as "not supplied" and retain their prior value; IsPublished uses a pointer
// for the same reason.
type UpdatePostInput struct {
	CallerID    uint
	PostID      uint
	Title       string
	SubTitle    string
	Category    string
	Description string
	Image       []byte
	IsPublished *bool
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

const (
	maxTitleLen       = 300
	maxDescriptionLen = 100000
)

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 100000 characters)")
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	post := &models.Post{
		Title:       title,
		SubTitle:    strings.TrimSpace(in.SubTitle),
		Category:    category,
		Description: in.Description,
		IsPublished: in.IsPublished,
		AuthorID:    in.AuthorID,
	}

	if len(in.Image) > 0 {
		ct, err := imaging.Sniff(in.Image)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.ImageData = in.Image
		post.ImageContentType = ct
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostLifecycleEvents.WithLabelValues("create").Inc()

	return s.getDecorated(ctx, post.ID)
}

// GetPost returns a post by id with its inline image projection. Publication
// state is not filtered: drafts are readable by anyone holding the id.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		fetched, fetchErr := s.postRepo.GetByID(ctx, id)
		if fetchErr != nil {
			return fetchErr
		}
		post = *decoratePost(fetched)
		return nil
	})
	if err != nil {
		return nil, mapPostLookupErr(err, id)
	}
	return &post, nil
}

// ListByAuthor returns all of the author's posts, drafts included, newest
// first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return decoratePosts(posts), nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, mapPostLookupErr(err, in.PostID)
	}
	if err := Authorize(in.CallerID, post, RelationOwner); err != nil {
		return nil, err
	}

	if t := strings.TrimSpace(in.Title); t != "" {
		if len(t) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = t
	}
	if st := strings.TrimSpace(in.SubTitle); st != "" {
		post.SubTitle = st
	}
	if c := strings.TrimSpace(in.Category); c != "" {
		post.Category = c
	}
	if strings.TrimSpace(in.Description) != "" {
		if len(in.Description) > maxDescriptionLen {
			return nil, models.NewValidationError("Description too long (max 100000 characters)")
		}
		post.Description = in.Description
	}
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
	}
	if len(in.Image) > 0 {
		ct, sniffErr := imaging.Sniff(in.Image)
		if sniffErr != nil {
			return nil, models.NewValidationError(sniffErr.Error())
		}
		post.ImageData = in.Image
		post.ImageContentType = ct
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	observability.PostLifecycleEvents.WithLabelValues("update").Inc()
	return decoratePost(post), nil
}

// SetPublished moves the post between Draft and Published. The transition is
// idempotent: setting the current state is a no-op success.
func (s *PostService) SetPublished(ctx context.Context, callerID, postID uint, published bool) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, mapPostLookupErr(err, postID)
	}
	if err := Authorize(callerID, post, RelationOwner); err != nil {
		return nil, err
	}

	if post.IsPublished == published {
		return decoratePost(post), nil
	}

	post.IsPublished = published
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	kind := "unpublish"
	if published {
		kind = "publish"
	}
	observability.PostLifecycleEvents.WithLabelValues(kind).Inc()
	return decoratePost(post), nil
}

// DeletePost permanently removes the post and its engagement data. There is
// no soft delete or recovery path.
func (s *PostService) DeletePost(ctx context.Context, callerID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return mapPostLookupErr(err, postID)
	}
	if err := Authorize(callerID, post, RelationOwner); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	observability.PostLifecycleEvents.WithLabelValues("delete").Inc()
	return nil
}

// DashboardStats aggregates an author's published posts for the dashboard.
type DashboardStats struct {
	TotalPublished int64               `json:"total_published"`
	Latest         []*models.Post      `json:"latest"`
	Topics         []models.TopicCount `json:"topics"`
}

// Dashboard returns the author's published-post aggregates: total count,
// five most recent, and per-category counts.
func (s *PostService) Dashboard(ctx context.Context, authorID uint) (*DashboardStats, error) {
	total, err := s.postRepo.CountPublishedByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	latest, err := s.postRepo.LatestPublishedByAuthor(ctx, authorID, 5)
	if err != nil {
		return nil, err
	}
	topics, err := s.postRepo.TopicCountsByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		TotalPublished: total,
		Latest:         decoratePosts(latest),
		Topics:         topics,
	}, nil
}

func (s *PostService) getDecorated(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, mapPostLookupErr(err, postID)
	}
	return decoratePost(post), nil
}

// mapPostLookupErr converts a repository record-not-found into the API's
// NotFound error, passing other errors through unchanged.
func mapPostLookupErr(err error, postID uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Post", postID)
	}
	return err
}
