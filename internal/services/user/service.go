package user

import (
	"errors"
	"log"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrNameTaken     = errors.New("business name already taken")
)

type Service interface {
	GetByID(id uint) (*models.User, error)
	UpdateProfile(userID uint, input *models.UpdateProfileInput) (*models.User, error)
	Delete(id uint) error
	ListPaginated(limit, offset int) ([]models.User, int64, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{
		userRepo: userRepo,
	}
}

// GetByID loads a user and lapses an expired premium subscription back
// to the account type held before the upgrade.
func (s *service) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if user.PremiumExpired() {
		restored := user.PrePremiumType
		if restored == "" || restored == models.AccountTypePremium {
			restored = models.AccountTypeNormal
		}
		user.AccountType = restored
		user.PrePremiumType = ""
		user.PremiumUntil = nil
		if err := s.userRepo.Update(user); err != nil {
			log.Printf("user: lapsing expired premium for user %d failed: %v", id, err)
		}
	}
	return user, nil
}

func (s *service) UpdateProfile(userID uint, input *models.UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if input.Username != nil && *input.Username != user.Username {
		if existing, _ := s.userRepo.GetByUsername(*input.Username); existing != nil {
			return nil, ErrUsernameTaken
		}
		user.Username = *input.Username
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = *input.ProfilePicture
	}
	if input.Country != nil {
		user.Country = *input.Country
	}
	if input.Region != nil {
		user.Region = *input.Region
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.BusinessName != nil && user.IsBusinessAccount() {
		user.BusinessName = input.BusinessName
	}
	if input.BusinessType != nil {
		user.BusinessType = *input.BusinessType
	}
	if input.SubCategory != nil {
		user.SubCategory = *input.SubCategory
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *service) Delete(id uint) error {
	return s.userRepo.Delete(id)
}

func (s *service) ListPaginated(limit, offset int) ([]models.User, int64, error) {
	return s.userRepo.ListPaginated(limit, offset)
}
