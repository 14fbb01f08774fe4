package handlers

import (
	"errors"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/services/product"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	productService product.Service
}

func NewProductHandler(productService product.Service) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// ListCategories returns every product category in name order.
func (h *ProductHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.productService.ListCategories()
	if err != nil {
		return utils.InternalError(c, "Failed to list categories")
	}

	payloads := make([]fiber.Map, 0, len(categories))
	for i := range categories {
		payloads = append(payloads, categoryPayload(&categories[i]))
	}
	return utils.Success(c, payloads)
}

// CreateCategory adds a category under the caller's business.
func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)

	var input models.CreateCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	category, err := h.productService.CreateCategory(callerID, &input)
	if err != nil {
		if errors.Is(err, product.ErrNoBusiness) {
			return utils.Forbidden(c, err.Error())
		}
		return utils.BadRequest(c, err.Error())
	}
	return utils.Created(c, categoryPayload(category))
}

// ListProducts returns the paginated product catalog.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)
	products, total, err := h.productService.ListPaginated(pagination.PageSize, pagination.Offset)
	if err != nil {
		return utils.InternalError(c, "Failed to list products")
	}
	pagination.SetTotal(total)

	return utils.Success(c, utils.NewPaginatedResponse(productPayloads(products), pagination))
}

// CreateProduct adds a product to one of the caller's categories.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)

	var input models.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	p, err := h.productService.Create(callerID, &input)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrCategoryNotFound):
			return utils.NotFound(c, "Category not found")
		case errors.Is(err, product.ErrNotOwner):
			return utils.Forbidden(c, "Only the business owner can add products here")
		default:
			return utils.BadRequest(c, err.Error())
		}
	}
	return utils.Created(c, productPayload(p))
}

// GetProduct returns one product.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid product ID")
	}

	p, err := h.productService.GetByID(id)
	if err != nil {
		return utils.NotFound(c, "Product not found")
	}
	return utils.Success(c, productPayload(p))
}

// UpdateProduct applies a partial update. Only the owner may update.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid product ID")
	}

	var input models.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	p, err := h.productService.Update(id, callerID, &input)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrProductNotFound):
			return utils.NotFound(c, "Product not found")
		case errors.Is(err, product.ErrNotOwner):
			return utils.Forbidden(c, "Only the owner can update this product")
		default:
			return utils.BadRequest(c, err.Error())
		}
	}
	return utils.Success(c, productPayload(p))
}

// DeleteProduct removes a product. Only the owner may delete.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid product ID")
	}

	if err := h.productService.Delete(id, callerID); err != nil {
		switch {
		case errors.Is(err, product.ErrProductNotFound):
			return utils.NotFound(c, "Product not found")
		case errors.Is(err, product.ErrNotOwner):
			return utils.Forbidden(c, "Only the owner can delete this product")
		default:
			return utils.InternalError(c, "Failed to delete product")
		}
	}
	return utils.Success(c, fiber.Map{"message": "Product deleted"})
}

// RecordView counts the caller's view of a product. A repeat view is a
// no-op success.
func (h *ProductHandler) RecordView(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid product ID")
	}

	if err := h.productService.RecordView(id, callerID); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return utils.NotFound(c, "Product not found")
		}
		return utils.InternalError(c, "Failed to record view")
	}
	return utils.Success(c, fiber.Map{"message": "View recorded"})
}

// ListViews returns who viewed a product.
func (h *ProductHandler) ListViews(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid product ID")
	}

	pagination := utils.GetPagination(c)
	views, total, err := h.productService.ListViews(id, pagination.PageSize, pagination.Offset)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return utils.NotFound(c, "Product not found")
		}
		return utils.InternalError(c, "Failed to list views")
	}
	pagination.SetTotal(total)

	payloads := make([]fiber.Map, 0, len(views))
	for i := range views {
		entry := fiber.Map{
			"id":        views[i].ID,
			"viewer_id": views[i].ViewerID,
			"viewed_at": views[i].CreatedAt,
		}
		if views[i].Viewer != nil {
			entry["viewer"] = fiber.Map{
				"id":       views[i].Viewer.ID,
				"username": views[i].Viewer.Username,
			}
		}
		payloads = append(payloads, entry)
	}
	return utils.Success(c, utils.NewPaginatedResponse(payloads, pagination))
}

func categoryPayload(category *models.ProductCategory) fiber.Map {
	payload := fiber.Map{
		"id":          category.ID,
		"name":        category.Name,
		"description": category.Description,
		"business_id": category.BusinessID,
	}
	if category.Business != nil {
		payload["business_name"] = category.Business.Name
	}
	return payload
}

func productPayload(p *models.Product) fiber.Map {
	payload := fiber.Map{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"image":       p.Image,
		"is_featured": p.IsFeatured,
		"stock":       p.Stock,
		"category_id": p.CategoryID,
		"created_at":  p.CreatedAt,
	}
	if p.Category != nil {
		payload["category_name"] = p.Category.Name
		if p.Category.Business != nil {
			payload["business_id"] = p.Category.Business.ID
			payload["business_name"] = p.Category.Business.Name
		}
	}
	return payload
}

func productPayloads(products []models.Product) []fiber.Map {
	payloads := make([]fiber.Map, 0, len(products))
	for i := range products {
		payloads = append(payloads, productPayload(&products[i]))
	}
	return payloads
}
