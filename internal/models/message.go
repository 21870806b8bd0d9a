package models

import (
	"time"
)

// Message represents a short message posted by a user
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:140;not null" json:"text"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Likes []Like `gorm:"foreignKey:MessageID" json:"-"`
}

// TableName specifies the table name for Message model
func (Message) TableName() string {
	return "messages"
}

// MessageView is the message representation returned by the API,
// carrying the author's username alongside the row
type MessageView struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
}
