package repositories

import (
	"time"

	"github.com/uduakgabriel-netizen/disbod/internal/models"

	"gorm.io/gorm"
)

// TrendingFeaturedBonus is added to a product's trending score when the
// product carries the featured flag.
const TrendingFeaturedBonus = 10

// ExploreFilters narrows ranking and search queries. Empty fields mean
// "no filter"; all matching is case-insensitive substring.
type ExploreFilters struct {
	Country  string
	Region   string
	City     string
	Category string
}

// ExploreRepository runs the read-only ranking and search queries.
type ExploreRepository interface {
	TrendingProducts(since time.Time, filters ExploreFilters, limit, offset int) ([]models.Product, int64, error)
	SuggestedCandidates(filters ExploreFilters) ([]models.Business, error)
	ActiveFeaturedBusinessIDs() (map[uint]bool, error)
	TopRatedBusinesses(filters ExploreFilters, limit, offset int) ([]models.Business, int64, error)
	SearchBusinesses(q string, filters ExploreFilters, sort string) ([]models.Business, error)
	SearchProducts(q string, filters ExploreFilters, sort string, limit, offset int) ([]models.Product, int64, error)
}

type exploreRepository struct {
	db *gorm.DB
}

func NewExploreRepository(db *gorm.DB) ExploreRepository {
	return &exploreRepository{db: db}
}

func contains(q string) string {
	return "%" + q + "%"
}

func applyBusinessLocation(query *gorm.DB, filters ExploreFilters) *gorm.DB {
	if filters.Country != "" {
		query = query.Where("businesses.country ILIKE ?", contains(filters.Country))
	}
	if filters.Region != "" {
		query = query.Where("businesses.region ILIKE ?", contains(filters.Region))
	}
	if filters.City != "" {
		query = query.Where("businesses.city ILIKE ?", contains(filters.City))
	}
	return query
}

// TrendingProducts orders products by recent-view count plus a fixed
// bonus for featured status, ties broken by creation recency. A product
// with no recent views and no featured flag scores zero and sorts last.
func (r *exploreRepository) TrendingProducts(since time.Time, filters ExploreFilters, limit, offset int) ([]models.Product, int64, error) {
	base := r.db.Model(&models.Product{}).
		Joins("JOIN product_categories ON product_categories.id = products.category_id").
		Joins("JOIN businesses ON businesses.id = product_categories.business_id")
	base = applyBusinessLocation(base, filters)

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("products.id").Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var products []models.Product
	err := base.
		Select("products.*, COUNT(pv.id) + CASE WHEN products.is_featured THEN ? ELSE 0 END AS score", TrendingFeaturedBonus).
		Joins("LEFT JOIN product_views pv ON pv.product_id = products.id AND pv.created_at >= ?", since).
		Group("products.id").
		Order("score DESC, products.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	if err := r.preloadProductAssociations(products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// SuggestedCandidates returns businesses eligible for the suggestion
// surface: business or premium owners with at least 20 followers, an
// average rating of 4 or better, or an active featured promotion. Final
// ordering and the result cap happen in the explore service.
func (r *exploreRepository) SuggestedCandidates(filters ExploreFilters) ([]models.Business, error) {
	now := time.Now()
	query := r.db.Model(&models.Business{}).Preload("Owner").
		Joins("JOIN users ON users.id = businesses.owner_id").
		Joins("LEFT JOIN featured_businesses fb ON fb.business_id = businesses.id AND (fb.promoted_until IS NULL OR fb.promoted_until > ?)", now).
		Where("users.account_type IN ?", []string{models.AccountTypeBusiness, models.AccountTypePremium}).
		Where("users.followers_count >= ? OR users.average_rating >= ? OR fb.id IS NOT NULL", 20, 4.0)
	query = applyBusinessLocation(query, filters)

	var businesses []models.Business
	if err := query.Find(&businesses).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return businesses, nil
}

func (r *exploreRepository) ActiveFeaturedBusinessIDs() (map[uint]bool, error) {
	var ids []uint
	err := r.db.Model(&models.FeaturedBusiness{}).
		Where("promoted_until IS NULL OR promoted_until > ?", time.Now()).
		Pluck("business_id", &ids).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}

	active := make(map[uint]bool, len(ids))
	for _, id := range ids {
		active[id] = true
	}
	return active, nil
}

// TopRatedBusinesses orders by the owner's average rating, then follower
// count, then creation recency. average_rating defaults to zero, so
// unrated businesses sort last without null handling.
func (r *exploreRepository) TopRatedBusinesses(filters ExploreFilters, limit, offset int) ([]models.Business, int64, error) {
	base := r.db.Model(&models.Business{}).
		Joins("JOIN users ON users.id = businesses.owner_id")
	base = applyBusinessLocation(base, filters)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var businesses []models.Business
	err := base.Preload("Owner").
		Order("users.average_rating DESC, users.followers_count DESC, businesses.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&businesses).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return businesses, total, nil
}

// SearchBusinesses matches q against name, description and owner
// username; unknown sort keys keep the default ordering.
func (r *exploreRepository) SearchBusinesses(q string, filters ExploreFilters, sort string) ([]models.Business, error) {
	query := r.db.Model(&models.Business{}).Preload("Owner").
		Joins("JOIN users ON users.id = businesses.owner_id")

	if q != "" {
		query = query.Where(
			"businesses.name ILIKE ? OR businesses.description ILIKE ? OR users.username ILIKE ?",
			contains(q), contains(q), contains(q))
	}
	if filters.Category != "" {
		query = query.Where("businesses.category ILIKE ?", contains(filters.Category))
	}
	query = applyBusinessLocation(query, filters)

	switch sort {
	case "followers":
		query = query.Order("users.followers_count DESC")
	case "rating":
		query = query.Order("users.average_rating DESC")
	case "recent":
		query = query.Order("businesses.created_at DESC")
	}

	var businesses []models.Business
	if err := query.Find(&businesses).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return businesses, nil
}

// SearchProducts matches q against product name, description and
// category name; unknown sort keys keep the default ordering.
func (r *exploreRepository) SearchProducts(q string, filters ExploreFilters, sort string, limit, offset int) ([]models.Product, int64, error) {
	base := r.db.Model(&models.Product{}).
		Joins("JOIN product_categories ON product_categories.id = products.category_id").
		Joins("JOIN businesses ON businesses.id = product_categories.business_id")

	if q != "" {
		base = base.Where(
			"products.name ILIKE ? OR products.description ILIKE ? OR product_categories.name ILIKE ?",
			contains(q), contains(q), contains(q))
	}
	if filters.Category != "" {
		base = base.Where("product_categories.name ILIKE ?", contains(filters.Category))
	}
	base = applyBusinessLocation(base, filters)

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("products.id").Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var products []models.Product
	query := base
	switch sort {
	case "views":
		query = query.
			Select("products.*, COUNT(pv.id) AS vcount").
			Joins("LEFT JOIN product_views pv ON pv.product_id = products.id").
			Group("products.id").
			Order("vcount DESC")
	case "recent":
		query = query.Order("products.created_at DESC")
	case "price_asc":
		query = query.Order("products.price")
	case "price_desc":
		query = query.Order("products.price DESC")
	}

	if err := query.Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	if err := r.preloadProductAssociations(products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// preloadProductAssociations fills Category and Category.Business on
// result sets produced by grouped queries, where Preload cannot ride
// along with the aggregate select.
func (r *exploreRepository) preloadProductAssociations(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	categoryIDs := make([]uint, 0, len(products))
	for i := range products {
		categoryIDs = append(categoryIDs, products[i].CategoryID)
	}

	var categories []models.ProductCategory
	if err := r.db.Preload("Business").Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
		return ErrDatabaseOperation
	}

	byID := make(map[uint]*models.ProductCategory, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	for i := range products {
		products[i].Category = byID[products[i].CategoryID]
	}
	return nil
}
