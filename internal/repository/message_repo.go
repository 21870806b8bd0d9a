package repository

import (
	"errors"

	"github.com/chirp-social/internal/models"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound = errors.New("message not found")
)

const messageViewSelect = "messages.id, messages.text, messages.user_id, users.username, messages.created_at, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.message_id = messages.id) AS like_count"

// MessageRepository handles message data access
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create creates a new message
func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// GetByID retrieves a message by ID
func (r *MessageRepository) GetByID(id uint) (*models.Message, error) {
	var message models.Message
	result := r.db.First(&message, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, result.Error
	}
	return &message, nil
}

// GetViewByID retrieves a message by ID with its author and like count
func (r *MessageRepository) GetViewByID(id uint) (*models.MessageView, error) {
	var view models.MessageView
	result := r.db.Table("messages").
		Select(messageViewSelect).
		Joins("JOIN users ON users.id = messages.user_id").
		Where("messages.id = ?", id).
		Scan(&view)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrMessageNotFound
	}
	return &view, nil
}

// GetByUserID retrieves a user's messages, newest first
func (r *MessageRepository) GetByUserID(userID uint, limit int) ([]models.MessageView, error) {
	views := []models.MessageView{}
	result := r.db.Table("messages").
		Select(messageViewSelect).
		Joins("JOIN users ON users.id = messages.user_id").
		Where("messages.user_id = ?", userID).
		Order("messages.created_at DESC, messages.id DESC").
		Limit(limit).
		Scan(&views)
	if result.Error != nil {
		return nil, result.Error
	}
	return views, nil
}

// Timeline retrieves the newest messages authored by any of the given
// users, newest first, capped at limit
func (r *MessageRepository) Timeline(userIDs []uint, limit int) ([]models.MessageView, error) {
	views := []models.MessageView{}
	if len(userIDs) == 0 {
		return views, nil
	}
	result := r.db.Table("messages").
		Select(messageViewSelect).
		Joins("JOIN users ON users.id = messages.user_id").
		Where("messages.user_id IN ?", userIDs).
		Order("messages.created_at DESC, messages.id DESC").
		Limit(limit).
		Scan(&views)
	if result.Error != nil {
		return nil, result.Error
	}
	return views, nil
}

// PublicTimeline retrieves the newest messages across all users
func (r *MessageRepository) PublicTimeline(limit int) ([]models.MessageView, error) {
	views := []models.MessageView{}
	result := r.db.Table("messages").
		Select(messageViewSelect).
		Joins("JOIN users ON users.id = messages.user_id").
		Order("messages.created_at DESC, messages.id DESC").
		Limit(limit).
		Scan(&views)
	if result.Error != nil {
		return nil, result.Error
	}
	return views, nil
}

// Delete removes a message and its like edges in one transaction
func (r *MessageRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, id).Error
	})
}

// CountByUserID counts messages owned by a user
func (r *MessageRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
