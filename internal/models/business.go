package models

import (
	"regexp"
	"strings"

	"gorm.io/gorm"
)

type Business struct {
	gorm.Model
	OwnerID     uint   `gorm:"uniqueIndex;not null"` // One business per user
	Owner       *User  `gorm:"foreignKey:OwnerID"`
	Name        string `gorm:"uniqueIndex;not null"`
	Slug        string `gorm:"uniqueIndex"`
	Description string
	Category    string `gorm:"not null"`
	Logo        string
	PhoneNumber string
	Email       string
	Address     string
	Website     string
	Country     string
	Region      string
	City        string
	IsVerified  bool `gorm:"default:false"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// BeforeCreate derives the slug from the name when one was not supplied.
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.Slug == "" {
		b.Slug = Slugify(b.Name)
	}
	return nil
}

// Slugify lowercases a name and collapses non-alphanumeric runs to hyphens.
func Slugify(name string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

type BusinessVerificationRequest struct {
	gorm.Model
	BusinessID   uint      `gorm:"uniqueIndex;not null"` // One request per business
	Business     *Business `gorm:"foreignKey:BusinessID"`
	Message      string
	IsApproved   bool  `gorm:"default:false"`
	ReviewedByID *uint `gorm:"default:null"`
	ReviewedBy   *User `gorm:"foreignKey:ReviewedByID"`
}

// CreateBusinessInput is the business registration payload.
type CreateBusinessInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Logo        string `json:"logo"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Website     string `json:"website"`
	Country     string `json:"country"`
	Region      string `json:"region"`
	City        string `json:"city"`
}

// UpdateBusinessInput is the partial business update payload.
type UpdateBusinessInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Logo        *string `json:"logo"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	Website     *string `json:"website"`
	Country     *string `json:"country"`
	Region      *string `json:"region"`
	City        *string `json:"city"`
}
