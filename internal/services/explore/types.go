package explore

import (
	"time"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
)

// MiniUser is the trimmed owner view embedded in business results.
type MiniUser struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

// BusinessResult is the business payload returned by every discovery
// surface.
type BusinessResult struct {
	ID             uint     `json:"id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Category       string   `json:"category"`
	Logo           string   `json:"logo"`
	Description    string   `json:"description"`
	Owner          MiniUser `json:"owner"`
	AverageRating  float64  `json:"average_rating"`
	FollowersCount int      `json:"followers_count"`
	Country        string   `json:"country"`
	Region         string   `json:"region"`
	City           string   `json:"city"`
	IsVerified     bool     `json:"is_verified"`
	IsFeatured     bool     `json:"is_featured"`
}

// ProductResult is the product payload returned by every discovery
// surface.
type ProductResult struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Image        string    `json:"image"`
	IsFeatured   bool      `json:"is_featured"`
	Stock        int       `json:"stock"`
	CreatedAt    time.Time `json:"created_at"`
	CategoryID   uint      `json:"category_id"`
	CategoryName string    `json:"category_name"`
	BusinessID   uint      `json:"business_id"`
	BusinessName string    `json:"business_name"`
}

// SearchParams carries the unified search query.
type SearchParams struct {
	Q        string
	Type     string // business | product | both
	Sort     string
	Country  string
	Region   string
	City     string
	Category string
}

// SearchResult holds both search branches. When both entity types are
// requested only the product branch is paginated; the business branch
// is the full result set.
type SearchResult struct {
	Businesses []BusinessResult `json:"businesses"`
	Products   []ProductResult  `json:"products"`
}

func businessResult(b *models.Business, featured bool) BusinessResult {
	result := BusinessResult{
		ID:          b.ID,
		Name:        b.Name,
		Slug:        b.Slug,
		Category:    b.Category,
		Logo:        b.Logo,
		Description: b.Description,
		Country:     b.Country,
		Region:      b.Region,
		City:        b.City,
		IsVerified:  b.IsVerified,
		IsFeatured:  featured,
	}
	if b.Owner != nil {
		result.Owner = MiniUser{
			ID:             b.Owner.ID,
			Username:       b.Owner.Username,
			ProfilePicture: b.Owner.ProfilePicture,
		}
		result.AverageRating = b.Owner.AverageRating
		result.FollowersCount = b.Owner.FollowersCount
	}
	return result
}

func productResult(p *models.Product) ProductResult {
	result := ProductResult{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		IsFeatured:  p.IsFeatured,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		CategoryID:  p.CategoryID,
	}
	if p.Category != nil {
		result.CategoryName = p.Category.Name
		if p.Category.Business != nil {
			result.BusinessID = p.Category.Business.ID
			result.BusinessName = p.Category.Business.Name
		}
	}
	return result
}
