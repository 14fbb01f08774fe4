package repositories

import (
	"github.com/uduakgabriel-netizen/disbod/internal/models"

	"gorm.io/gorm"
)

// MediaRepository defines media file persistence operations.
type MediaRepository interface {
	Create(media *models.MediaFile) error
	ListPaginated(limit, offset int) ([]models.MediaFile, int64, error)
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(media *models.MediaFile) error {
	if err := r.db.Create(media).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *mediaRepository) ListPaginated(limit, offset int) ([]models.MediaFile, int64, error) {
	var total int64
	if err := r.db.Model(&models.MediaFile{}).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var files []models.MediaFile
	err := r.db.Preload("Owner").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&files).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return files, total, nil
}
