package models

import (
	"time"

	"gorm.io/gorm"
)

// Account types
const (
	AccountTypeNormal   = "normal"
	AccountTypeBusiness = "business"
	AccountTypePremium  = "premium"
)

// Business types
const (
	BusinessTypeStore   = "store"
	BusinessTypeService = "service"
	BusinessTypeNGO     = "ngo"
	BusinessTypeGovt    = "govt"
)

type User struct {
	gorm.Model
	Username        string `gorm:"uniqueIndex;not null"`
	Email           string `gorm:"uniqueIndex;not null"` // Unique index on Email
	Password        string `gorm:"not null"`
	AccountType     string `gorm:"default:'normal'"`
	Role            string `gorm:"default:'user'"`
	IsEmailVerified bool   `gorm:"default:false"`
	PhoneNumber     string
	ProfilePicture  string

	// Location
	Country string
	Region  string
	City    string

	// Business fields (only for business/premium accounts)
	BusinessName      *string `gorm:"uniqueIndex;default:null"` // Pointer to allow NULL
	BusinessType      string
	SubCategory       string
	VerificationBadge bool `gorm:"default:false"`

	// Aggregates recomputed on every follow/rating write, never incremented
	FollowersCount int     `gorm:"default:0"`
	AverageRating  float64 `gorm:"default:0"`

	// Account type before the premium upgrade, restored when the
	// subscription lapses.
	PrePremiumType string

	PremiumUntil *time.Time
	IsSuspended  bool   `gorm:"default:false"`
	Status       string `gorm:"default:'active'"`
	TokenVersion int    `gorm:"default:1"`
}

// IsBusinessAccount reports whether the account can own a business profile.
func (u *User) IsBusinessAccount() bool {
	return u.AccountType == AccountTypeBusiness || u.AccountType == AccountTypePremium
}

// PremiumExpired reports whether a premium account has lapsed.
func (u *User) PremiumExpired() bool {
	return u.AccountType == AccountTypePremium &&
		u.PremiumUntil != nil && u.PremiumUntil.Before(time.Now())
}

type EmailVerificationCode struct {
	gorm.Model
	UserID uint   `gorm:"index;not null"`
	User   *User  `gorm:"foreignKey:UserID"`
	Code   string `gorm:"not null"`
	IsUsed bool   `gorm:"default:false"`
}

// CreateUserInput is the registration payload.
type CreateUserInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccountType string `json:"account_type"`
	PhoneNumber string `json:"phone_number"`
	Country     string `json:"country"`
	Region      string `json:"region"`
	City        string `json:"city"`
}

// UpdateProfileInput is the partial profile update payload.
type UpdateProfileInput struct {
	Username       *string `json:"username"`
	PhoneNumber    *string `json:"phone_number"`
	ProfilePicture *string `json:"profile_picture"`
	Country        *string `json:"country"`
	Region         *string `json:"region"`
	City           *string `json:"city"`
	BusinessName   *string `json:"business_name"`
	BusinessType   *string `json:"business_type"`
	SubCategory    *string `json:"sub_category"`
}
