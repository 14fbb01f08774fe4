package business

import (
	"errors"
	"time"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"
	"github.com/uduakgabriel-netizen/disbod/internal/services/notification"
	"github.com/uduakgabriel-netizen/disbod/internal/validation"
)

var (
	ErrNotBusinessAccount = errors.New("account cannot own a business profile")
	ErrAlreadyOwnsOne     = errors.New("user already owns a business")
	ErrBusinessNotFound   = errors.New("business not found")
	ErrNotOwner           = errors.New("not the business owner")
	ErrNameTaken          = errors.New("business name already taken")
	ErrRequestPending     = errors.New("verification request already submitted")
	ErrRequestNotFound    = errors.New("verification request not found")
)

type Service interface {
	Create(ownerID uint, input *models.CreateBusinessInput) (*models.Business, error)
	GetByID(id uint) (*models.Business, error)
	GetByOwner(ownerID uint) (*models.Business, error)
	Update(id, callerID uint, input *models.UpdateBusinessInput) (*models.Business, error)
	Delete(id, callerID uint) error
	ListPaginated(limit, offset int) ([]models.Business, int64, error)

	RequestVerification(callerID uint, message string) (*models.BusinessVerificationRequest, error)
	ApproveVerification(requestID, reviewerID uint) error

	Feature(businessID uint, until *time.Time, note string) error
	Unfeature(businessID uint) error
}

type service struct {
	businessRepo repositories.BusinessRepository
	userRepo     repositories.UserRepository
	notifier     notification.Service
}

func NewService(businessRepo repositories.BusinessRepository, userRepo repositories.UserRepository, notifier notification.Service) Service {
	return &service{
		businessRepo: businessRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

func (s *service) Create(ownerID uint, input *models.CreateBusinessInput) (*models.Business, error) {
	v := validation.New()
	v.BusinessCreate(input)
	if !v.Valid() {
		return nil, errors.New(v.FirstError())
	}

	owner, err := s.userRepo.GetByID(ownerID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if !owner.IsBusinessAccount() {
		return nil, ErrNotBusinessAccount
	}
	if existing, _ := s.businessRepo.GetByOwner(ownerID); existing != nil {
		return nil, ErrAlreadyOwnsOne
	}

	business := &models.Business{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Logo:        input.Logo,
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
		Address:     input.Address,
		Website:     input.Website,
		Country:     input.Country,
		Region:      input.Region,
		City:        input.City,
	}
	if err := s.businessRepo.Create(business); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	business.Owner = owner
	return business, nil
}

func (s *service) GetByID(id uint) (*models.Business, error) {
	business, err := s.businessRepo.GetByID(id)
	if err != nil {
		return nil, ErrBusinessNotFound
	}
	return business, nil
}

func (s *service) GetByOwner(ownerID uint) (*models.Business, error) {
	business, err := s.businessRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, ErrBusinessNotFound
	}
	return business, nil
}

func (s *service) Update(id, callerID uint, input *models.UpdateBusinessInput) (*models.Business, error) {
	business, err := s.businessRepo.GetByID(id)
	if err != nil {
		return nil, ErrBusinessNotFound
	}
	if business.OwnerID != callerID {
		return nil, ErrNotOwner
	}

	if input.Name != nil && *input.Name != business.Name {
		business.Name = *input.Name
		business.Slug = models.Slugify(*input.Name)
	}
	if input.Description != nil {
		business.Description = *input.Description
	}
	if input.Category != nil {
		business.Category = *input.Category
	}
	if input.Logo != nil {
		business.Logo = *input.Logo
	}
	if input.PhoneNumber != nil {
		business.PhoneNumber = *input.PhoneNumber
	}
	if input.Email != nil {
		business.Email = *input.Email
	}
	if input.Address != nil {
		business.Address = *input.Address
	}
	if input.Website != nil {
		business.Website = *input.Website
	}
	if input.Country != nil {
		business.Country = *input.Country
	}
	if input.Region != nil {
		business.Region = *input.Region
	}
	if input.City != nil {
		business.City = *input.City
	}

	if err := s.businessRepo.Update(business); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return business, nil
}

func (s *service) Delete(id, callerID uint) error {
	business, err := s.businessRepo.GetByID(id)
	if err != nil {
		return ErrBusinessNotFound
	}
	if business.OwnerID != callerID {
		return ErrNotOwner
	}
	return s.businessRepo.Delete(id)
}

func (s *service) ListPaginated(limit, offset int) ([]models.Business, int64, error) {
	return s.businessRepo.ListPaginated(limit, offset)
}

// RequestVerification opens a verification request for the caller's
// business. A business carries at most one request, pending or decided.
func (s *service) RequestVerification(callerID uint, message string) (*models.BusinessVerificationRequest, error) {
	business, err := s.businessRepo.GetByOwner(callerID)
	if err != nil {
		return nil, ErrBusinessNotFound
	}

	pending, err := s.businessRepo.HasVerificationRequest(business.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrRequestPending
	}

	req := &models.BusinessVerificationRequest{
		BusinessID: business.ID,
		Message:    message,
	}
	if err := s.businessRepo.CreateVerificationRequest(req); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, ErrRequestPending
		}
		return nil, err
	}
	return req, nil
}

// ApproveVerification marks the request approved, flags the business
// verified and grants the owner's verification badge.
func (s *service) ApproveVerification(requestID, reviewerID uint) error {
	req, err := s.businessRepo.GetVerificationRequest(requestID)
	if err != nil {
		return ErrRequestNotFound
	}

	req.IsApproved = true
	req.ReviewedByID = &reviewerID
	if err := s.businessRepo.UpdateVerificationRequest(req); err != nil {
		return err
	}

	business, err := s.businessRepo.GetByID(req.BusinessID)
	if err != nil {
		return ErrBusinessNotFound
	}
	business.IsVerified = true
	if err := s.businessRepo.Update(business); err != nil {
		return err
	}

	owner, err := s.userRepo.GetByID(business.OwnerID)
	if err == nil {
		owner.VerificationBadge = true
		if updateErr := s.userRepo.Update(owner); updateErr != nil {
			return updateErr
		}
		if s.notifier != nil {
			s.notifier.NotifyVerification(owner.ID, business.Name)
		}
	}
	return nil
}

func (s *service) Feature(businessID uint, until *time.Time, note string) error {
	if _, err := s.businessRepo.GetByID(businessID); err != nil {
		return ErrBusinessNotFound
	}
	return s.businessRepo.SetFeatured(businessID, until, note)
}

func (s *service) Unfeature(businessID uint) error {
	return s.businessRepo.RemoveFeatured(businessID)
}
