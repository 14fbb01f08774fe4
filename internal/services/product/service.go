package product

import (
	"errors"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrNotOwner          = errors.New("not the owner of this product")
	ErrNoBusiness        = errors.New("user does not own a business")
	ErrDuplicateCategory = errors.New("category already exists for this business")
)

type Service interface {
	CreateCategory(callerID uint, input *models.CreateCategoryInput) (*models.ProductCategory, error)
	ListCategories() ([]models.ProductCategory, error)

	Create(callerID uint, input *models.CreateProductInput) (*models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Update(id, callerID uint, input *models.UpdateProductInput) (*models.Product, error)
	Delete(id, callerID uint) error
	ListPaginated(limit, offset int) ([]models.Product, int64, error)

	RecordView(productID, viewerID uint) error
	ListViews(productID uint, limit, offset int) ([]models.ProductView, int64, error)
}

type service struct {
	productRepo  repositories.ProductRepository
	businessRepo repositories.BusinessRepository
}

func NewService(productRepo repositories.ProductRepository, businessRepo repositories.BusinessRepository) Service {
	return &service{
		productRepo:  productRepo,
		businessRepo: businessRepo,
	}
}

// CreateCategory creates a category under the caller's business.
// Category names are unique per business, not globally.
func (s *service) CreateCategory(callerID uint, input *models.CreateCategoryInput) (*models.ProductCategory, error) {
	if input.Name == "" {
		return nil, errors.New("category name is required")
	}

	business, err := s.businessRepo.GetByOwner(callerID)
	if err != nil {
		return nil, ErrNoBusiness
	}

	category := &models.ProductCategory{
		BusinessID:  business.ID,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.productRepo.CreateCategory(category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	category.Business = business
	return category, nil
}

func (s *service) ListCategories() ([]models.ProductCategory, error) {
	return s.productRepo.ListCategories()
}

func (s *service) Create(callerID uint, input *models.CreateProductInput) (*models.Product, error) {
	if input.Name == "" {
		return nil, errors.New("product name is required")
	}
	if input.Price < 0 {
		return nil, errors.New("price cannot be negative")
	}

	category, err := s.productRepo.GetCategory(input.CategoryID)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	if err := s.requireOwner(category, callerID); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:  category.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		IsFeatured:  input.IsFeatured,
		Stock:       input.Stock,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	product.Category = category
	return product, nil
}

func (s *service) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *service) Update(id, callerID uint, input *models.UpdateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if err := s.requireOwner(product.Category, callerID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, errors.New("price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) Delete(id, callerID uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return ErrProductNotFound
	}
	if err := s.requireOwner(product.Category, callerID); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *service) ListPaginated(limit, offset int) ([]models.Product, int64, error) {
	return s.productRepo.ListPaginated(limit, offset)
}

// RecordView stores one view per viewer per product. A repeat view by
// the same viewer succeeds without creating a second row.
func (s *service) RecordView(productID, viewerID uint) error {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return ErrProductNotFound
	}

	err := s.productRepo.RecordView(&models.ProductView{
		ProductID: productID,
		ViewerID:  viewerID,
	})
	if errors.Is(err, repositories.ErrDuplicateRecord) {
		return nil
	}
	return err
}

func (s *service) ListViews(productID uint, limit, offset int) ([]models.ProductView, int64, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, 0, ErrProductNotFound
	}
	return s.productRepo.ListViews(productID, limit, offset)
}

func (s *service) requireOwner(category *models.ProductCategory, callerID uint) error {
	if category == nil {
		return ErrCategoryNotFound
	}
	if category.Business == nil || category.Business.OwnerID != callerID {
		business, err := s.businessRepo.GetByID(category.BusinessID)
		if err != nil {
			return ErrCategoryNotFound
		}
		if business.OwnerID != callerID {
			return ErrNotOwner
		}
		return nil
	}
	return nil
}
