package repository

import (
	"github.com/chirp-social/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository handles follow edge data access
type FollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create inserts a follow edge. Inserting an edge that already exists is
// a no-op; the composite unique index keeps the pair a set.
func (r *FollowRepository) Create(followerID, followedID uint) error {
	follow := models.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
}

// Delete removes a follow edge. Removing an absent edge is a no-op.
func (r *FollowRepository) Delete(followerID, followedID uint) error {
	return r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

// Exists reports whether follower follows followed
func (r *FollowRepository) Exists(followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// FollowingIDs returns the IDs of every user the given user follows
func (r *FollowRepository) FollowingIDs(userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Following returns the users the given user follows
func (r *FollowRepository) Following(userID uint) ([]models.User, error) {
	users := []models.User{}
	err := r.db.
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Followers returns the users following the given user
func (r *FollowRepository) Followers(userID uint) ([]models.User, error) {
	users := []models.User{}
	err := r.db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CountFollowers counts users following the given user
func (r *FollowRepository) CountFollowers(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFollowing counts users the given user follows
func (r *FollowRepository) CountFollowing(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
