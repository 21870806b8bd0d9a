package models

import (
	"time"
)

// Follow represents a directed follow edge: follower follows followed.
// The pair is unique; A following B says nothing about B following A.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"follower_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Follower User `gorm:"foreignKey:FollowerID" json:"-"`
	Followed User `gorm:"foreignKey:FollowedID" json:"-"`
}

// TableName specifies the table name for Follow model
func (Follow) TableName() string {
	return "follows"
}
