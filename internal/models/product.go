package models

import (
	"time"

	"gorm.io/gorm"
)

type ProductCategory struct {
	gorm.Model
	BusinessID  uint      `gorm:"index:idx_category_business_name,unique;not null"`
	Business    *Business `gorm:"foreignKey:BusinessID"`
	Name        string    `gorm:"index:idx_category_business_name,unique;not null"`
	Description string
}

type Product struct {
	gorm.Model
	CategoryID  uint             `gorm:"index;not null"`
	Category    *ProductCategory `gorm:"foreignKey:CategoryID"`
	Name        string           `gorm:"not null"`
	Description string
	Price       float64 `gorm:"not null"`
	Image       string
	IsFeatured  bool `gorm:"default:false"`
	Stock       int  `gorm:"default:0"`
}

// ProductView records that a viewer opened a product page, once per viewer.
type ProductView struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	ProductID uint     `gorm:"index:idx_view_product_viewer,unique;not null"`
	Product   *Product `gorm:"foreignKey:ProductID"`
	ViewerID  uint     `gorm:"index:idx_view_product_viewer,unique;not null"`
	Viewer    *User    `gorm:"foreignKey:ViewerID"`
}

// CreateCategoryInput is the product category creation payload.
type CreateCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateProductInput is the product creation payload.
type CreateProductInput struct {
	CategoryID  uint    `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	IsFeatured  bool    `json:"is_featured"`
	Stock       int     `json:"stock"`
}

// UpdateProductInput is the partial product update payload.
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	IsFeatured  *bool    `json:"is_featured"`
	Stock       *int     `json:"stock"`
}
