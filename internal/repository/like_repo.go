package repository

import (
	"github.com/chirp-social/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository handles like edge data access
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Create inserts a like edge. Liking an already-liked message is a no-op;
// the composite unique index keeps the pair a set even under concurrent
// identical requests.
func (r *LikeRepository) Create(userID, messageID uint) error {
	like := models.Like{
		UserID:    userID,
		MessageID: messageID,
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

// Delete removes a like edge. Removing an absent edge is a no-op.
func (r *LikeRepository) Delete(userID, messageID uint) error {
	return r.db.Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error
}

// Exists reports whether the user likes the message
func (r *LikeRepository) Exists(userID, messageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	return count > 0, err
}

// CountByMessage counts likes on a message
func (r *LikeRepository) CountByMessage(messageID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("message_id = ?", messageID).Count(&count).Error
	return count, err
}

// MessagesLikedBy returns the messages a user has liked, most recently
// liked first
func (r *LikeRepository) MessagesLikedBy(userID uint) ([]models.MessageView, error) {
	views := []models.MessageView{}
	result := r.db.Table("messages").
		Select(messageViewSelect).
		Joins("JOIN users ON users.id = messages.user_id").
		Joins("JOIN likes l ON l.message_id = messages.id").
		Where("l.user_id = ?", userID).
		Order("l.created_at DESC, l.id DESC").
		Scan(&views)
	if result.Error != nil {
		return nil, result.Error
	}
	return views, nil
}
