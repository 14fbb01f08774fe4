package repositories

import (
	"errors"

	"github.com/uduakgabriel-netizen/disbod/internal/models"

	"gorm.io/gorm"
)

// ProductRepository defines product catalog persistence operations.
type ProductRepository interface {
	CreateCategory(category *models.ProductCategory) error
	GetCategory(id uint) (*models.ProductCategory, error)
	ListCategories() ([]models.ProductCategory, error)
	ListCategoriesByBusiness(businessID uint) ([]models.ProductCategory, error)

	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
	ListPaginated(limit, offset int) ([]models.Product, int64, error)

	RecordView(view *models.ProductView) error
	ListViews(productID uint, limit, offset int) ([]models.ProductView, int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) CreateCategory(category *models.ProductCategory) error {
	if err := r.db.Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRecord
		}
		return ErrDatabaseOperation
	}
	return nil
}

func (r *productRepository) GetCategory(id uint) (*models.ProductCategory, error) {
	var category models.ProductCategory
	if err := r.db.Preload("Business").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &category, nil
}

func (r *productRepository) ListCategories() ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return categories, nil
}

func (r *productRepository) ListCategoriesByBusiness(businessID uint) ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	err := r.db.Where("business_id = ?", businessID).Order("name").Find(&categories).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return categories, nil
}

func (r *productRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").Preload("Category.Business").First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &product, nil
}

func (r *productRepository) Update(product *models.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) ListPaginated(limit, offset int) ([]models.Product, int64, error) {
	var total int64
	if err := r.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var products []models.Product
	err := r.db.Preload("Category").Preload("Category.Business").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return products, total, nil
}

// RecordView inserts a view row; one row per (product, viewer) pair.
func (r *productRepository) RecordView(view *models.ProductView) error {
	if err := r.db.Create(view).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRecord
		}
		return ErrDatabaseOperation
	}
	return nil
}

func (r *productRepository) ListViews(productID uint, limit, offset int) ([]models.ProductView, int64, error) {
	var total int64
	if err := r.db.Model(&models.ProductView{}).Where("product_id = ?", productID).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var views []models.ProductView
	err := r.db.Preload("Viewer").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&views).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return views, total, nil
}
