package handlers

import (
	"errors"

	"github.com/uduakgabriel-netizen/disbod/internal/services/premium"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PremiumHandler struct {
	premiumService premium.Service
}

func NewPremiumHandler(premiumService premium.Service) *PremiumHandler {
	return &PremiumHandler{
		premiumService: premiumService,
	}
}

// Subscribe charges the card and upgrades the account to premium.
func (h *PremiumHandler) Subscribe(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)

	var input premium.CardInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	user, err := h.premiumService.Subscribe(callerID, &input)
	if err != nil {
		switch {
		case errors.Is(err, premium.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, premium.ErrInvalidCard),
			errors.Is(err, premium.ErrExpiredCard),
			errors.Is(err, premium.ErrAlreadySubscribed):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "Subscription failed")
		}
	}

	return utils.Success(c, fiber.Map{
		"message":       "Premium subscription active",
		"account_type":  user.AccountType,
		"premium_until": user.PremiumUntil,
	})
}
