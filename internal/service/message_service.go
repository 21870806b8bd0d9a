package service

import (
	"errors"

	"github.com/chirp-social/internal/models"
	"github.com/chirp-social/internal/repository"
)

var (
	ErrNotMessageOwner = errors.New("message belongs to another user")
	ErrCannotLikeOwn   = errors.New("cannot like your own message")
)

// FeedLimit caps every timeline regardless of how many messages qualify
const FeedLimit = 100

// FeedPublisher receives newly posted messages for live delivery
type FeedPublisher interface {
	Publish(view models.MessageView)
}

// MessageService handles posting, deletion, likes and timelines
type MessageService struct {
	messageRepo *repository.MessageRepository
	followRepo  *repository.FollowRepository
	likeRepo    *repository.LikeRepository
	publisher   FeedPublisher
}

// NewMessageService creates a new MessageService. publisher may be nil
// when live delivery is not wired (tests).
func NewMessageService(
	messageRepo *repository.MessageRepository,
	followRepo *repository.FollowRepository,
	likeRepo *repository.LikeRepository,
	publisher FeedPublisher,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		followRepo:  followRepo,
		likeRepo:    likeRepo,
		publisher:   publisher,
	}
}

// PostRequest represents the new-message form
type PostRequest struct {
	Text string `json:"text" binding:"required,max=140"`
}

// Post creates a message owned by the session identity
func (s *MessageService) Post(userID uint, req *PostRequest) (*models.MessageView, error) {
	message := &models.Message{
		Text:   req.Text,
		UserID: userID,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	view, err := s.messageRepo.GetViewByID(message.ID)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(*view)
	}

	return view, nil
}

// Get returns a single message. Viewable anonymously.
func (s *MessageService) Get(id uint) (*models.MessageView, error) {
	return s.messageRepo.GetViewByID(id)
}

// Delete removes a message. Only the owner may delete; anyone else leaves
// the message intact and gets ErrNotMessageOwner.
func (s *MessageService) Delete(userID, messageID uint) error {
	message, err := s.messageRepo.GetByID(messageID)
	if err != nil {
		return err
	}
	if message.UserID != userID {
		return ErrNotMessageOwner
	}
	return s.messageRepo.Delete(messageID)
}

// Like adds a like edge. Liking your own message is rejected; liking an
// already-liked message is a no-op.
func (s *MessageService) Like(userID, messageID uint) error {
	message, err := s.messageRepo.GetByID(messageID)
	if err != nil {
		return err
	}
	if message.UserID == userID {
		return ErrCannotLikeOwn
	}
	return s.likeRepo.Create(userID, messageID)
}

// Unlike removes a like edge. Unliking a message never liked is a no-op.
func (s *MessageService) Unlike(userID, messageID uint) error {
	if _, err := s.messageRepo.GetByID(messageID); err != nil {
		return err
	}
	return s.likeRepo.Delete(userID, messageID)
}

// FeedAuthors returns the identity itself plus everyone it follows:
// the set of authors whose messages make up its home feed
func (s *MessageService) FeedAuthors(userID uint) ([]uint, error) {
	followingIDs, err := s.followRepo.FollowingIDs(userID)
	if err != nil {
		return nil, err
	}
	return append(followingIDs, userID), nil
}

// HomeFeed returns the union of the identity's own messages and the
// messages of everyone it follows, newest first, capped at FeedLimit.
// Followers the identity does not follow back are excluded.
func (s *MessageService) HomeFeed(userID uint) ([]models.MessageView, error) {
	authors, err := s.FeedAuthors(userID)
	if err != nil {
		return nil, err
	}
	return s.messageRepo.Timeline(authors, FeedLimit)
}

// PublicFeed returns the newest messages across all users
func (s *MessageService) PublicFeed() ([]models.MessageView, error) {
	return s.messageRepo.PublicTimeline(FeedLimit)
}
