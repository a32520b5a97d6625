package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn                  func(context.Context, *models.Post) error
	getByIDFn                 func(context.Context, uint) (*models.Post, error)
	listByAuthorFn            func(context.Context, uint) ([]*models.Post, error)
	countByAuthorFn           func(context.Context, uint) (int64, error)
	countPublishedByAuthorFn  func(context.Context, uint) (int64, error)
	latestPublishedByAuthorFn func(context.Context, uint, int) ([]*models.Post, error)
	topicCountsByAuthorFn     func(context.Context, uint) ([]models.TopicCount, error)
	updateFn                  func(context.Context, *models.Post) error
	deleteFn                  func(context.Context, uint) error
	isLikedFn                 func(context.Context, uint, uint) (bool, error)
	likeFn                    func(context.Context, uint, uint) error
	unlikeFn                  func(context.Context, uint, uint) error
	likedUserIDsFn            func(context.Context, uint) ([]uint, error)
	incrementShareFn          func(context.Context, uint) (uint, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) CountPublishedByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countPublishedByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) LatestPublishedByAuthor(ctx context.Context, authorID uint, limit int) ([]*models.Post, error) {
	return s.latestPublishedByAuthorFn(ctx, authorID, limit)
}
func (s *postRepoStub) TopicCountsByAuthor(ctx context.Context, authorID uint) ([]models.TopicCount, error) {
	return s.topicCountsByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) LikedUserIDs(ctx context.Context, postID uint) ([]uint, error) {
	return s.likedUserIDsFn(ctx, postID)
}
func (s *postRepoStub) IncrementShare(ctx context.Context, postID uint) (uint, error) {
	return s.incrementShareFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:       func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:      func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listByAuthorFn: func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		countByAuthorFn: func(_ context.Context, _ uint) (int64, error) {
			return 0, nil
		},
		countPublishedByAuthorFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		latestPublishedByAuthorFn: func(_ context.Context, _ uint, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		topicCountsByAuthorFn: func(_ context.Context, _ uint) ([]models.TopicCount, error) {
			return nil, nil
		},
		updateFn:         func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		isLikedFn:        func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:           func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:         func(_ context.Context, _, _ uint) error { return nil },
		likedUserIDsFn:   func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		incrementShareFn: func(_ context.Context, _ uint) (uint, error) { return 1, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn     func(context.Context, *models.User) error
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	updateFn     func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:    func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
