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
	ErrWrongPassword    = errors.New("current password does not match")
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)

// UserService handles profiles, account maintenance and the follow graph
type UserService struct {
	userRepo    *repository.UserRepository
	messageRepo *repository.MessageRepository
	followRepo  *repository.FollowRepository
	likeRepo    *repository.LikeRepository
	sessions    *session.Store
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo *repository.UserRepository,
	messageRepo *repository.MessageRepository,
	followRepo *repository.FollowRepository,
	likeRepo *repository.LikeRepository,
	sessions *session.Store,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		followRepo:  followRepo,
		likeRepo:    likeRepo,
		sessions:    sessions,
	}
}

// ProfileResponse is a public profile with graph counts
type ProfileResponse struct {
	models.UserProfile
	MessageCount   int64 `json:"message_count"`
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
}

// UpdateProfileRequest represents the profile edit form. The current
// password must be re-entered; nothing is mutated unless it matches.
type UpdateProfileRequest struct {
	CurrentPassword string  `json:"current_password" binding:"required"`
	Username        string  `json:"username" binding:"omitempty,min=3,max=50"`
	Email           string  `json:"email" binding:"omitempty,email"`
	ImageURL        string  `json:"image_url" binding:"omitempty,max=255"`
	HeaderImageURL  string  `json:"header_image_url" binding:"omitempty,max=255"`
	Bio             *string `json:"bio" binding:"omitempty"`
	Location        *string `json:"location" binding:"omitempty,max=100"`
}

// GetProfile returns the public profile of a user
func (s *UserService) GetProfile(id uint) (*ProfileResponse, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	messageCount, err := s.messageRepo.CountByUserID(id)
	if err != nil {
		return nil, err
	}
	followerCount, err := s.followRepo.CountFollowers(id)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.followRepo.CountFollowing(id)
	if err != nil {
		return nil, err
	}

	return &ProfileResponse{
		UserProfile:    user.Profile(),
		MessageCount:   messageCount,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
	}, nil
}

// UpdateProfile applies a profile edit for the session identity. The
// request is rejected without touching any field when the re-entered
// password does not match the stored hash.
func (s *UserService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if !password.Check(req.CurrentPassword, user.PasswordHash) {
		return nil, ErrWrongPassword
	}

	if req.Username != "" && req.Username != user.Username {
		taken, err := s.userRepo.ExistsByUsername(req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
		user.Username = req.Username
	}
	if req.Email != "" && req.Email != user.Email {
		taken, err := s.userRepo.ExistsByEmail(req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		user.Email = req.Email
	}
	if req.ImageURL != "" {
		user.ImageURL = req.ImageURL
	}
	if req.HeaderImageURL != "" {
		user.HeaderImageURL = req.HeaderImageURL
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Location != nil {
		user.Location = req.Location
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteAccount removes the user, their messages and every edge touching
// them, and closes the session
func (s *UserService) DeleteAccount(ctx context.Context, userID uint, token string) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return err
	}
	if token != "" {
		return s.sessions.Destroy(ctx, token)
	}
	return nil
}

// Follow adds a follow edge from follower to target. A nonexistent
// target is a not-found outcome; following yourself is rejected.
// Re-following is a no-op.
func (s *UserService) Follow(followerID, targetID uint) error {
	if followerID == targetID {
		return ErrCannotFollowSelf
	}
	if _, err := s.userRepo.GetByID(targetID); err != nil {
		return err
	}
	return s.followRepo.Create(followerID, targetID)
}

// Unfollow removes the follow edge. A nonexistent target is a not-found
// outcome; unfollowing someone not followed is a no-op.
func (s *UserService) Unfollow(followerID, targetID uint) error {
	if _, err := s.userRepo.GetByID(targetID); err != nil {
		return err
	}
	return s.followRepo.Delete(followerID, targetID)
}

// Following returns the users the target follows. Viewable anonymously.
func (s *UserService) Following(targetID uint) ([]models.UserProfile, error) {
	if _, err := s.userRepo.GetByID(targetID); err != nil {
		return nil, err
	}
	users, err := s.followRepo.Following(targetID)
	if err != nil {
		return nil, err
	}
	return profiles(users), nil
}

// Followers returns the users following the target. Viewable anonymously.
func (s *UserService) Followers(targetID uint) ([]models.UserProfile, error) {
	if _, err := s.userRepo.GetByID(targetID); err != nil {
		return nil, err
	}
	users, err := s.followRepo.Followers(targetID)
	if err != nil {
		return nil, err
	}
	return profiles(users), nil
}

// LikedMessages returns the messages the target user has liked
func (s *UserService) LikedMessages(targetID uint) ([]models.MessageView, error) {
	if _, err := s.userRepo.GetByID(targetID); err != nil {
		return nil, err
	}
	return s.likeRepo.MessagesLikedBy(targetID)
}

func profiles(users []models.User) []models.UserProfile {
	out := make([]models.UserProfile, 0, len(users))
	for i := range users {
		out = append(out, users[i].Profile())
	}
	return out
}
