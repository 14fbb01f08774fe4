package handlers

import (
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"
	"github.com/uduakgabriel-netizen/disbod/internal/services/explore"
	"github.com/uduakgabriel-netizen/disbod/internal/services/product"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ExploreHandler struct {
	exploreService explore.Service
	productService product.Service
}

func NewExploreHandler(exploreService explore.Service, productService product.Service) *ExploreHandler {
	return &ExploreHandler{
		exploreService: exploreService,
		productService: productService,
	}
}

// TrendingProducts ranks products by recent views plus the featured
// bonus. The days window defaults when absent or invalid.
func (h *ExploreHandler) TrendingProducts(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)
	products, err := h.exploreService.Trending(c.Context(), c.Query("days"), exploreFilters(c), &pagination)
	if err != nil {
		return utils.InternalError(c, "Failed to load trending products")
	}
	return utils.Success(c, utils.NewPaginatedResponse(products, pagination))
}

// SuggestedBusinesses returns up to ten suggested businesses,
// unpaginated.
func (h *ExploreHandler) SuggestedBusinesses(c *fiber.Ctx) error {
	businesses, err := h.exploreService.Suggested(c.Context(), exploreFilters(c))
	if err != nil {
		return utils.InternalError(c, "Failed to load suggested businesses")
	}
	return utils.Success(c, businesses)
}

// TopBusinesses ranks businesses by owner rating, then followers.
func (h *ExploreHandler) TopBusinesses(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)
	businesses, err := h.exploreService.TopRated(c.Context(), exploreFilters(c), &pagination)
	if err != nil {
		return utils.InternalError(c, "Failed to load top businesses")
	}
	return utils.Success(c, utils.NewPaginatedResponse(businesses, pagination))
}

// Search runs the unified business and product search.
func (h *ExploreHandler) Search(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)
	params := explore.SearchParams{
		Q:        c.Query("q"),
		Type:     c.Query("type"),
		Sort:     c.Query("sort"),
		Country:  c.Query("country"),
		Region:   c.Query("region"),
		City:     c.Query("city"),
		Category: c.Query("category"),
	}

	result, err := h.exploreService.Search(c.Context(), params, &pagination)
	if err != nil {
		return utils.InternalError(c, "Search failed")
	}

	return utils.Success(c, fiber.Map{
		"businesses": result.Businesses,
		"products":   result.Products,
		"pagination": pagination,
	})
}

// Categories lists every product category, unpaginated, in name order.
func (h *ExploreHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.productService.ListCategories()
	if err != nil {
		return utils.InternalError(c, "Failed to load categories")
	}

	payloads := make([]fiber.Map, 0, len(categories))
	for i := range categories {
		payloads = append(payloads, categoryPayload(&categories[i]))
	}
	return utils.Success(c, payloads)
}

func exploreFilters(c *fiber.Ctx) repositories.ExploreFilters {
	return repositories.ExploreFilters{
		Country:  c.Query("country"),
		Region:   c.Query("region"),
		City:     c.Query("city"),
		Category: c.Query("category"),
	}
}
