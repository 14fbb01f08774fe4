package media

import (
	"errors"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"
	"github.com/uduakgabriel-netizen/disbod/internal/validation"
)

var ErrInvalidMediaType = errors.New("media type must be image or video")

type Service interface {
	Create(ownerID uint, input *models.CreateMediaInput) (*models.MediaFile, error)
	ListPaginated(limit, offset int) ([]models.MediaFile, int64, error)
}

type service struct {
	mediaRepo repositories.MediaRepository
}

func NewService(mediaRepo repositories.MediaRepository) Service {
	return &service{mediaRepo: mediaRepo}
}

// Create records an uploaded file's storage key. The bytes themselves
// live in external storage; only the reference is kept here.
func (s *service) Create(ownerID uint, input *models.CreateMediaInput) (*models.MediaFile, error) {
	if input.MediaType != models.MediaTypeImage && input.MediaType != models.MediaTypeVideo {
		return nil, ErrInvalidMediaType
	}

	v := validation.New()
	v.Required("storage_key", input.StorageKey)
	if !v.Valid() {
		return nil, errors.New(v.FirstError())
	}

	media := &models.MediaFile{
		OwnerID:    ownerID,
		MediaType:  input.MediaType,
		StorageKey: input.StorageKey,
		Caption:    input.Caption,
	}
	if err := s.mediaRepo.Create(media); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, errors.New("storage key already registered")
		}
		return nil, err
	}
	return media, nil
}

func (s *service) ListPaginated(limit, offset int) ([]models.MediaFile, int64, error) {
	return s.mediaRepo.ListPaginated(limit, offset)
}
