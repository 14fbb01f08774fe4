package repositories

import (
	"errors"

	"github.com/uduakgabriel-netizen/disbod/internal/models"

	"gorm.io/gorm"
)

// RatingRepository defines rating persistence operations.
type RatingRepository interface {
	Create(rating *models.Rating) error
	GetByID(id uint) (*models.Rating, error)
	Update(rating *models.Rating) error
	Delete(id uint) error
	StarsFor(ratedUserID uint) ([]int, error)
	ListPaginated(ratedUserID uint, limit, offset int) ([]models.Rating, int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(rating *models.Rating) error {
	if err := r.db.Create(rating).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRecord
		}
		return ErrDatabaseOperation
	}
	return nil
}

func (r *ratingRepository) GetByID(id uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.Preload("Rater").Preload("RatedUser").First(&rating, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &rating, nil
}

func (r *ratingRepository) Update(rating *models.Rating) error {
	if err := r.db.Save(rating).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *ratingRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Rating{}, id)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}
	return nil
}

// StarsFor returns every star value the user has received. The caller
// recomputes the exact mean from the full set rather than keeping a
// running average.
func (r *ratingRepository) StarsFor(ratedUserID uint) ([]int, error) {
	var stars []int
	err := r.db.Model(&models.Rating{}).
		Where("rated_user_id = ?", ratedUserID).
		Pluck("stars", &stars).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return stars, nil
}

// ListPaginated lists ratings, optionally filtered by rated user
// (ratedUserID == 0 means no filter), newest first.
func (r *ratingRepository) ListPaginated(ratedUserID uint, limit, offset int) ([]models.Rating, int64, error) {
	query := r.db.Model(&models.Rating{})
	if ratedUserID != 0 {
		query = query.Where("rated_user_id = ?", ratedUserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var ratings []models.Rating
	err := query.Preload("Rater").Preload("RatedUser").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return ratings, total, nil
}
