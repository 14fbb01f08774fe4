package repositories

import (
	"github.com/uduakgabriel-netizen/disbod/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines follow graph persistence operations.
type FollowRepository interface {
	Create(follow *models.Follow) error
	Delete(followerID, followingID uint) (bool, error)
	Exists(followerID, followingID uint) (bool, error)
	CountFollowers(userID uint) (int64, error)
	ListFollowers(userID uint, limit, offset int) ([]models.User, int64, error)
	ListFollowing(userID uint, limit, offset int) ([]models.User, int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(follow *models.Follow) error {
	if err := r.db.Create(follow).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRecord
		}
		return ErrDatabaseOperation
	}
	return nil
}

// Delete removes a follow edge. It reports whether an edge existed.
func (r *followRepository) Delete(followerID, followingID uint) (bool, error) {
	result := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, ErrDatabaseOperation
	}
	return result.RowsAffected > 0, nil
}

func (r *followRepository) Exists(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, ErrDatabaseOperation
	}
	return count > 0, nil
}

// CountFollowers returns the live number of follow rows pointing at the
// user. Aggregate maintenance recounts instead of incrementing.
func (r *followRepository) CountFollowers(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, ErrDatabaseOperation
	}
	return count, nil
}

func (r *followRepository) ListFollowers(userID uint, limit, offset int) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var users []models.User
	err := r.db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return users, total, nil
}

func (r *followRepository) ListFollowing(userID uint, limit, offset int) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var users []models.User
	err := r.db.
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return users, total, nil
}
