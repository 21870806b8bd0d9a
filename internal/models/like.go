package models

import (
	"time"
)

// Like represents a user liking a message.
// The (user, message) pair is unique, so likes behave as a set:
// inserting an existing edge is a no-op at the storage layer.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_message" json:"user_id"`
	MessageID uint      `gorm:"not null;uniqueIndex:idx_user_message" json:"message_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Message Message `gorm:"foreignKey:MessageID" json:"-"`
}

// TableName specifies the table name for Like model
func (Like) TableName() string {
	return "likes"
}
