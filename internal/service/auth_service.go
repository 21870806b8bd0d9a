package service

import (
	"context"
	"errors"

	"github.com/chirp-social/internal/models"
	"github.com/chirp-social/internal/repository"
	"github.com/chirp-social/internal/session"
	"github.com/chirp-social/pkg/password"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
)

// AuthService handles signup, login and session lifecycle
type AuthService struct {
	userRepo *repository.UserRepository
	sessions *session.Store
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo *repository.UserRepository, sessions *session.Store) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// SignupRequest represents the signup request
type SignupRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=50"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6,max=100"`
	ImageURL       string `json:"image_url" binding:"omitempty,max=255"`
	HeaderImageURL string `json:"header_image_url" binding:"omitempty,max=255"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a new user and opens a session for them.
// Missing profile images fall back to the defaults.
func (s *AuthService) Signup(ctx context.Context, req *SignupRequest) (*models.User, string, error) {
	exists, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrUsernameTaken
	}

	exists, err = s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hash,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
	}
	if user.ImageURL == "" {
		user.ImageURL = models.DefaultImageURL
	}
	if user.HeaderImageURL == "" {
		user.HeaderImageURL = models.DefaultHeaderImageURL
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials and opens a session. An unknown username and
// a wrong password both surface as ErrInvalidCredentials so the response
// does not reveal which usernames exist.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !password.Check(req.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout drops the session unconditionally. Logging out an anonymous or
// already-expired session is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

// CurrentUser resolves a session token to a live user. A token whose user
// row no longer exists is treated as anonymous and the stale session is
// dropped.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, bool, error) {
	if token == "" {
		return nil, false, nil
	}

	userID, ok, err := s.sessions.Lookup(ctx, token)
	if err != nil || !ok {
		return nil, false, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = s.sessions.Destroy(ctx, token)
			return nil, false, nil
		}
		return nil, false, err
	}

	return user, true, nil
}
