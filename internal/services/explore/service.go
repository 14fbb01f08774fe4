package explore

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/uduakgabriel-netizen/disbod/internal/repositories"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"
)

// Entity kinds accepted by the unified search.
const (
	SearchTypeBusiness = "business"
	SearchTypeProduct  = "product"
	SearchTypeBoth     = "both"
)

const (
	// DefaultTrendingDays is the view-count lookback used when the
	// caller omits the window or sends something unparseable.
	DefaultTrendingDays = 7

	// SuggestedLimit caps the suggested-businesses surface.
	SuggestedLimit = 10

	resultTTL = 2 * time.Minute
)

// ResultCache stores rendered explore responses for a short TTL.
type ResultCache interface {
	CacheExploreResult(ctx context.Context, queryKey string, value interface{}, ttl time.Duration) error
	GetExploreResult(ctx context.Context, queryKey string, dest interface{}) (bool, error)
}

// Service serves the discovery surfaces: trending products, suggested
// and top-rated businesses, and unified search.
type Service interface {
	Trending(ctx context.Context, daysRaw string, filters repositories.ExploreFilters, pagination *utils.Pagination) ([]ProductResult, error)
	Suggested(ctx context.Context, filters repositories.ExploreFilters) ([]BusinessResult, error)
	TopRated(ctx context.Context, filters repositories.ExploreFilters, pagination *utils.Pagination) ([]BusinessResult, error)
	Search(ctx context.Context, params SearchParams, pagination *utils.Pagination) (*SearchResult, error)
}

type service struct {
	exploreRepo repositories.ExploreRepository
	cache       ResultCache
}

func NewService(exploreRepo repositories.ExploreRepository, cache ResultCache) Service {
	return &service{
		exploreRepo: exploreRepo,
		cache:       cache,
	}
}

// LookbackDays parses the trending window, falling back to the default
// when the value is missing, unparseable or not positive.
func LookbackDays(raw string) int {
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return DefaultTrendingDays
	}
	return days
}

func (s *service) Trending(ctx context.Context, daysRaw string, filters repositories.ExploreFilters, pagination *utils.Pagination) ([]ProductResult, error) {
	days := LookbackDays(daysRaw)

	key := fmt.Sprintf("trending:%d:%s:%s:%s:%d:%d",
		days, filters.Country, filters.Region, filters.City, pagination.Page, pagination.PageSize)
	type cached struct {
		Products []ProductResult `json:"products"`
		Total    int64           `json:"total"`
	}
	if s.cache != nil {
		var hit cached
		if ok, err := s.cache.GetExploreResult(ctx, key, &hit); err == nil && ok {
			pagination.SetTotal(hit.Total)
			return hit.Products, nil
		}
	}

	since := time.Now().AddDate(0, 0, -days)
	products, total, err := s.exploreRepo.TrendingProducts(since, filters, pagination.PageSize, pagination.Offset)
	if err != nil {
		return nil, err
	}
	pagination.SetTotal(total)

	results := make([]ProductResult, 0, len(products))
	for i := range products {
		results = append(results, productResult(&products[i]))
	}

	if s.cache != nil {
		if err := s.cache.CacheExploreResult(ctx, key, cached{Products: results, Total: total}, resultTTL); err != nil {
			log.Printf("explore: caching trending result failed: %v", err)
		}
	}
	return results, nil
}

// Suggested returns up to SuggestedLimit businesses, actively featured
// ones first, then by follower count and average rating.
func (s *service) Suggested(ctx context.Context, filters repositories.ExploreFilters) ([]BusinessResult, error) {
	candidates, err := s.exploreRepo.SuggestedCandidates(filters)
	if err != nil {
		return nil, err
	}
	featured, err := s.exploreRepo.ActiveFeaturedBusinessIDs()
	if err != nil {
		return nil, err
	}

	results := make([]BusinessResult, 0, len(candidates))
	for i := range candidates {
		results = append(results, businessResult(&candidates[i], featured[candidates[i].ID]))
	}
	SortSuggested(results)

	if len(results) > SuggestedLimit {
		results = results[:SuggestedLimit]
	}
	return results, nil
}

// SortSuggested orders suggestion results in place: featured first,
// then follower count descending, then average rating descending.
func SortSuggested(results []BusinessResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.IsFeatured != b.IsFeatured {
			return a.IsFeatured
		}
		if a.FollowersCount != b.FollowersCount {
			return a.FollowersCount > b.FollowersCount
		}
		return a.AverageRating > b.AverageRating
	})
}

func (s *service) TopRated(ctx context.Context, filters repositories.ExploreFilters, pagination *utils.Pagination) ([]BusinessResult, error) {
	businesses, total, err := s.exploreRepo.TopRatedBusinesses(filters, pagination.PageSize, pagination.Offset)
	if err != nil {
		return nil, err
	}
	pagination.SetTotal(total)

	featured, err := s.exploreRepo.ActiveFeaturedBusinessIDs()
	if err != nil {
		return nil, err
	}

	results := make([]BusinessResult, 0, len(businesses))
	for i := range businesses {
		results = append(results, businessResult(&businesses[i], featured[businesses[i].ID]))
	}
	return results, nil
}

// Search runs the unified search. The business branch returns its full
// result set; only the product branch honors pagination.
func (s *service) Search(ctx context.Context, params SearchParams, pagination *utils.Pagination) (*SearchResult, error) {
	entityType := params.Type
	switch entityType {
	case SearchTypeBusiness, SearchTypeProduct, SearchTypeBoth:
	default:
		entityType = SearchTypeBoth
	}

	filters := repositories.ExploreFilters{
		Country:  params.Country,
		Region:   params.Region,
		City:     params.City,
		Category: params.Category,
	}
	result := &SearchResult{
		Businesses: []BusinessResult{},
		Products:   []ProductResult{},
	}

	if entityType == SearchTypeBusiness || entityType == SearchTypeBoth {
		businesses, err := s.exploreRepo.SearchBusinesses(params.Q, filters, params.Sort)
		if err != nil {
			return nil, err
		}
		featured, err := s.exploreRepo.ActiveFeaturedBusinessIDs()
		if err != nil {
			return nil, err
		}
		for i := range businesses {
			result.Businesses = append(result.Businesses, businessResult(&businesses[i], featured[businesses[i].ID]))
		}
	}

	if entityType == SearchTypeProduct || entityType == SearchTypeBoth {
		products, total, err := s.exploreRepo.SearchProducts(params.Q, filters, params.Sort, pagination.PageSize, pagination.Offset)
		if err != nil {
			return nil, err
		}
		pagination.SetTotal(total)
		for i := range products {
			result.Products = append(result.Products, productResult(&products[i]))
		}
	}
	return result, nil
}
