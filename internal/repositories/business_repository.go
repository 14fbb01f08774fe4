package repositories

import (
	"errors"
	"time"

	"github.com/uduakgabriel-netizen/disbod/internal/models"

	"gorm.io/gorm"
)

// BusinessRepository defines business persistence operations.
type BusinessRepository interface {
	Create(business *models.Business) error
	GetByID(id uint) (*models.Business, error)
	GetByOwner(ownerID uint) (*models.Business, error)
	Update(business *models.Business) error
	Delete(id uint) error
	ListPaginated(limit, offset int) ([]models.Business, int64, error)

	SetFeatured(businessID uint, until *time.Time, note string) error
	RemoveFeatured(businessID uint) error

	CreateVerificationRequest(req *models.BusinessVerificationRequest) error
	GetVerificationRequest(id uint) (*models.BusinessVerificationRequest, error)
	HasVerificationRequest(businessID uint) (bool, error)
	UpdateVerificationRequest(req *models.BusinessVerificationRequest) error
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(business *models.Business) error {
	if err := r.db.Create(business).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRecord
		}
		return ErrDatabaseOperation
	}
	return nil
}

func (r *businessRepository) GetByID(id uint) (*models.Business, error) {
	var business models.Business
	if err := r.db.Preload("Owner").First(&business, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &business, nil
}

func (r *businessRepository) GetByOwner(ownerID uint) (*models.Business, error) {
	var business models.Business
	if err := r.db.Where("owner_id = ?", ownerID).First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &business, nil
}

func (r *businessRepository) Update(business *models.Business) error {
	if err := r.db.Save(business).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *businessRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Business{}, id)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

func (r *businessRepository) ListPaginated(limit, offset int) ([]models.Business, int64, error) {
	var total int64
	if err := r.db.Model(&models.Business{}).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var businesses []models.Business
	err := r.db.Preload("Owner").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&businesses).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return businesses, total, nil
}

// SetFeatured creates or refreshes the business's promotion entry.
func (r *businessRepository) SetFeatured(businessID uint, until *time.Time, note string) error {
	var featured models.FeaturedBusiness
	err := r.db.Where("business_id = ?", businessID).First(&featured).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDatabaseOperation
		}
		featured = models.FeaturedBusiness{BusinessID: businessID}
	}
	featured.PromotedUntil = until
	featured.Note = note
	if err := r.db.Save(&featured).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *businessRepository) RemoveFeatured(businessID uint) error {
	if err := r.db.Where("business_id = ?", businessID).Delete(&models.FeaturedBusiness{}).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *businessRepository) CreateVerificationRequest(req *models.BusinessVerificationRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRecord
		}
		return ErrDatabaseOperation
	}
	return nil
}

func (r *businessRepository) GetVerificationRequest(id uint) (*models.BusinessVerificationRequest, error) {
	var req models.BusinessVerificationRequest
	if err := r.db.Preload("Business").First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &req, nil
}

func (r *businessRepository) HasVerificationRequest(businessID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.BusinessVerificationRequest{}).
		Where("business_id = ?", businessID).Count(&count).Error
	if err != nil {
		return false, ErrDatabaseOperation
	}
	return count > 0, nil
}

func (r *businessRepository) UpdateVerificationRequest(req *models.BusinessVerificationRequest) error {
	if err := r.db.Save(req).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}
