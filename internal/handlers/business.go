package handlers

import (
	"errors"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/services/business"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type BusinessHandler struct {
	businessService business.Service
}

func NewBusinessHandler(businessService business.Service) *BusinessHandler {
	return &BusinessHandler{
		businessService: businessService,
	}
}

// ListBusinesses returns a paginated business directory.
func (h *BusinessHandler) ListBusinesses(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)
	businesses, total, err := h.businessService.ListPaginated(pagination.PageSize, pagination.Offset)
	if err != nil {
		return utils.InternalError(c, "Failed to list businesses")
	}
	pagination.SetTotal(total)

	return utils.Success(c, utils.NewPaginatedResponse(businessPayloads(businesses), pagination))
}

// CreateBusiness registers the caller's business profile.
func (h *BusinessHandler) CreateBusiness(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)

	var input models.CreateBusinessInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	b, err := h.businessService.Create(callerID, &input)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	return utils.Created(c, businessPayload(b))
}

// GetBusiness returns one business profile.
func (h *BusinessHandler) GetBusiness(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid business ID")
	}

	b, err := h.businessService.GetByID(id)
	if err != nil {
		return utils.NotFound(c, "Business not found")
	}
	return utils.Success(c, businessPayload(b))
}

// UpdateBusiness applies a partial update. Only the owner may update.
func (h *BusinessHandler) UpdateBusiness(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid business ID")
	}

	var input models.UpdateBusinessInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	b, err := h.businessService.Update(id, callerID, &input)
	if err != nil {
		switch {
		case errors.Is(err, business.ErrBusinessNotFound):
			return utils.NotFound(c, "Business not found")
		case errors.Is(err, business.ErrNotOwner):
			return utils.Forbidden(c, "Only the owner can update this business")
		case errors.Is(err, business.ErrNameTaken):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to update business")
		}
	}
	return utils.Success(c, businessPayload(b))
}

// DeleteBusiness removes the caller's business profile.
func (h *BusinessHandler) DeleteBusiness(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid business ID")
	}

	if err := h.businessService.Delete(id, callerID); err != nil {
		switch {
		case errors.Is(err, business.ErrBusinessNotFound):
			return utils.NotFound(c, "Business not found")
		case errors.Is(err, business.ErrNotOwner):
			return utils.Forbidden(c, "Only the owner can delete this business")
		default:
			return utils.InternalError(c, "Failed to delete business")
		}
	}
	return utils.Success(c, fiber.Map{"message": "Business deleted"})
}

// RequestVerification opens a verification request for the caller's
// business.
func (h *BusinessHandler) RequestVerification(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)

	var input struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	req, err := h.businessService.RequestVerification(callerID, input.Message)
	if err != nil {
		switch {
		case errors.Is(err, business.ErrBusinessNotFound):
			return utils.NotFound(c, "Business not found")
		case errors.Is(err, business.ErrRequestPending):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to submit verification request")
		}
	}

	return utils.Created(c, fiber.Map{
		"id":          req.ID,
		"business_id": req.BusinessID,
		"message":     req.Message,
		"is_approved": req.IsApproved,
	})
}

func businessPayload(b *models.Business) fiber.Map {
	payload := fiber.Map{
		"id":           b.ID,
		"name":         b.Name,
		"slug":         b.Slug,
		"description":  b.Description,
		"category":     b.Category,
		"logo":         b.Logo,
		"phone_number": b.PhoneNumber,
		"email":        b.Email,
		"address":      b.Address,
		"website":      b.Website,
		"country":      b.Country,
		"region":       b.Region,
		"city":         b.City,
		"is_verified":  b.IsVerified,
		"created_at":   b.CreatedAt,
	}
	if b.Owner != nil {
		payload["owner"] = fiber.Map{
			"id":              b.Owner.ID,
			"username":        b.Owner.Username,
			"profile_picture": b.Owner.ProfilePicture,
			"followers_count": b.Owner.FollowersCount,
			"average_rating":  b.Owner.AverageRating,
		}
	}
	return payload
}

func businessPayloads(businesses []models.Business) []fiber.Map {
	payloads := make([]fiber.Map, 0, len(businesses))
	for i := range businesses {
		payloads = append(payloads, businessPayload(&businesses[i]))
	}
	return payloads
}
