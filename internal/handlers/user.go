package handlers

import (
	"errors"
	"strconv"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/services/follow"
	"github.com/uduakgabriel-netizen/disbod/internal/services/user"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService   user.Service
	followService follow.Service
}

func NewUserHandler(userService user.Service, followService follow.Service) *UserHandler {
	return &UserHandler{
		userService:   userService,
		followService: followService,
	}
}

// GetProfile returns the authenticated user's own profile.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	u, err := h.userService.GetByID(userID)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}
	return utils.Success(c, profilePayload(u, true))
}

// UpdateProfile applies a partial update to the caller's profile.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input models.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	u, err := h.userService.UpdateProfile(userID, &input)
	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) || errors.Is(err, user.ErrNameTaken) {
			return utils.BadRequest(c, err.Error())
		}
		if errors.Is(err, user.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalError(c, "Failed to update profile")
	}
	return utils.Success(c, profilePayload(u, true))
}

// GetUser returns another user's public profile.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	u, err := h.userService.GetByID(id)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}
	return utils.Success(c, profilePayload(u, false))
}

// FollowUser follows the user in the path. Following twice is an error,
// never a second row.
func (h *UserHandler) FollowUser(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	target, err := h.followService.Follow(callerID, id)
	if err != nil {
		switch {
		case errors.Is(err, follow.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, follow.ErrSelfFollow), errors.Is(err, follow.ErrAlreadyFollowing):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to follow user")
		}
	}

	return utils.Success(c, fiber.Map{
		"message":         "Now following " + target.Username,
		"followers_count": target.FollowersCount,
	})
}

// UnfollowUser removes the caller's follow of the user in the path.
func (h *UserHandler) UnfollowUser(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	target, err := h.followService.Unfollow(callerID, id)
	if err != nil {
		switch {
		case errors.Is(err, follow.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, follow.ErrNotFollowing):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to unfollow user")
		}
	}

	return utils.Success(c, fiber.Map{
		"message":         "Unfollowed " + target.Username,
		"followers_count": target.FollowersCount,
	})
}

// GetFollowers lists the users following the user in the path.
func (h *UserHandler) GetFollowers(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	pagination := utils.GetPagination(c)
	followers, total, err := h.followService.Followers(id, pagination.PageSize, pagination.Offset)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}
	pagination.SetTotal(total)

	return utils.Success(c, utils.NewPaginatedResponse(userSummaries(followers), pagination))
}

// GetFollowing lists the users the user in the path follows.
func (h *UserHandler) GetFollowing(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	pagination := utils.GetPagination(c)
	following, total, err := h.followService.Following(id, pagination.PageSize, pagination.Offset)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}
	pagination.SetTotal(total)

	return utils.Success(c, utils.NewPaginatedResponse(userSummaries(following), pagination))
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func profilePayload(u *models.User, private bool) fiber.Map {
	payload := fiber.Map{
		"id":                 u.ID,
		"username":           u.Username,
		"account_type":       u.AccountType,
		"profile_picture":    u.ProfilePicture,
		"country":            u.Country,
		"region":             u.Region,
		"city":               u.City,
		"business_name":      u.BusinessName,
		"business_type":      u.BusinessType,
		"sub_category":       u.SubCategory,
		"verification_badge": u.VerificationBadge,
		"followers_count":    u.FollowersCount,
		"average_rating":     u.AverageRating,
		"created_at":         u.CreatedAt,
	}
	if private {
		payload["email"] = u.Email
		payload["phone_number"] = u.PhoneNumber
		payload["is_email_verified"] = u.IsEmailVerified
		payload["premium_until"] = u.PremiumUntil
	}
	return payload
}

func userSummaries(users []models.User) []fiber.Map {
	summaries := make([]fiber.Map, 0, len(users))
	for i := range users {
		summaries = append(summaries, fiber.Map{
			"id":              users[i].ID,
			"username":        users[i].Username,
			"profile_picture": users[i].ProfilePicture,
			"account_type":    users[i].AccountType,
		})
	}
	return summaries
}
