package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/imaging"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles account creation, credential checks, and profile
// maintenance.
type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

// Signup registers a new account. Username and email uniqueness is enforced
// by the store's unique indexes and surfaced as Conflict.
func (s *UserService) Signup(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials. Unknown email and wrong password produce the
// same failure so the endpoint does not leak which accounts exist.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthenticatedError("Invalid credentials")
	}
	return user, nil
}

// Profile returns the user with total post count and image projection.
func (s *UserService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", userID)
		}
		return nil, err
	}

	total, err := s.postRepo.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.TotalPosts = total
	return decorateUser(user), nil
}

// UpdateProfileInput carries a partial profile update. Empty fields retain
// their prior value.
type UpdateProfileInput struct {
	UserID   uint
	Username string
	Email    string
	Bio      string
	Image    []byte
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", in.UserID)
		}
		return nil, err
	}

	if u := strings.TrimSpace(in.Username); u != "" {
		if err := validation.ValidateUsername(u); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = u
	}
	if e := strings.TrimSpace(in.Email); e != "" {
		e = validation.NormalizeEmail(e)
		if err := validation.ValidateEmail(e); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = e
	}
	if b := strings.TrimSpace(in.Bio); b != "" {
		user.Bio = b
	}
	if len(in.Image) > 0 {
		ct, sniffErr := imaging.Sniff(in.Image)
		if sniffErr != nil {
			return nil, models.NewValidationError(sniffErr.Error())
		}
		user.ImageData = in.Image
		user.ImageContentType = ct
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return decorateUser(user), nil
}
