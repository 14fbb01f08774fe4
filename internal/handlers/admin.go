package handlers

import (
	"errors"
	"time"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/services/business"
	"github.com/uduakgabriel-netizen/disbod/internal/services/user"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	userService     user.Service
	businessService business.Service
}

func NewAdminHandler(userService user.Service, businessService business.Service) *AdminHandler {
	return &AdminHandler{
		userService:     userService,
		businessService: businessService,
	}
}

// ListUsers returns every account, paginated.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)
	users, total, err := h.userService.ListPaginated(pagination.PageSize, pagination.Offset)
	if err != nil {
		return utils.InternalError(c, "Failed to list users")
	}
	pagination.SetTotal(total)

	payloads := make([]fiber.Map, 0, len(users))
	for i := range users {
		u := &users[i]
		payloads = append(payloads, fiber.Map{
			"id":                u.ID,
			"username":          u.Username,
			"email":             u.Email,
			"account_type":      u.AccountType,
			"role":              u.Role,
			"is_email_verified": u.IsEmailVerified,
			"is_suspended":      u.IsSuspended,
			"status":            u.Status,
			"created_at":        u.CreatedAt,
		})
	}
	return utils.Success(c, utils.NewPaginatedResponse(payloads, pagination))
}

// DeleteUser removes an account.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.Delete(id); err != nil {
		return utils.InternalError(c, "Failed to delete user")
	}
	return utils.Success(c, fiber.Map{"message": "User deleted"})
}

// ApproveVerification approves a business verification request and
// grants the badge.
func (h *AdminHandler) ApproveVerification(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid request ID")
	}

	if err := h.businessService.ApproveVerification(id, claims.UserID); err != nil {
		if errors.Is(err, business.ErrRequestNotFound) {
			return utils.NotFound(c, "Verification request not found")
		}
		return utils.InternalError(c, "Failed to approve verification")
	}
	return utils.Success(c, fiber.Map{"message": "Business verified"})
}

// FeatureBusiness starts a featured promotion, optionally time-bound.
func (h *AdminHandler) FeatureBusiness(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid business ID")
	}

	var input struct {
		PromotedUntil *time.Time `json:"promoted_until"`
		Note          string     `json:"note"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if err := h.businessService.Feature(id, input.PromotedUntil, input.Note); err != nil {
		if errors.Is(err, business.ErrBusinessNotFound) {
			return utils.NotFound(c, "Business not found")
		}
		return utils.InternalError(c, "Failed to feature business")
	}
	return utils.Success(c, fiber.Map{"message": "Business featured"})
}

// UnfeatureBusiness ends a featured promotion.
func (h *AdminHandler) UnfeatureBusiness(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid business ID")
	}

	if err := h.businessService.Unfeature(id); err != nil {
		return utils.InternalError(c, "Failed to unfeature business")
	}
	return utils.Success(c, fiber.Map{"message": "Business promotion removed"})
}
