package models

import (
	"time"
)

// Default profile images applied at signup when the user does not supply one
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents a registered user
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	ImageURL       string    `gorm:"size:255" json:"image_url"`
	HeaderImageURL string    `gorm:"size:255" json:"header_image_url"`
	Bio            *string   `gorm:"size:500" json:"bio"`
	Location       *string   `gorm:"size:100" json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Messages []Message `gorm:"foreignKey:UserID" json:"messages,omitempty"`
	Likes    []Like    `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// UserProfile is the public view of a user
type UserProfile struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	ImageURL       string    `json:"image_url"`
	HeaderImageURL string    `json:"header_image_url"`
	Bio            *string   `json:"bio,omitempty"`
	Location       *string   `json:"location,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Profile returns the public view of the user
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:             u.ID,
		Username:       u.Username,
		ImageURL:       u.ImageURL,
		HeaderImageURL: u.HeaderImageURL,
		Bio:            u.Bio,
		Location:       u.Location,
		CreatedAt:      u.CreatedAt,
	}
}
