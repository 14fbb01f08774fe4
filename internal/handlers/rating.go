package handlers

import (
	"errors"
	"strconv"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/services/rating"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type RatingHandler struct {
	ratingService rating.Service
}

func NewRatingHandler(ratingService rating.Service) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// ListRatings returns ratings, optionally filtered by rated user.
func (h *RatingHandler) ListRatings(c *fiber.Ctx) error {
	var ratedUserID uint
	if raw := c.Query("rated_user"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return utils.BadRequest(c, "Invalid rated_user filter")
		}
		ratedUserID = uint(id)
	}

	pagination := utils.GetPagination(c)
	ratings, total, err := h.ratingService.List(ratedUserID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return utils.InternalError(c, "Failed to list ratings")
	}
	pagination.SetTotal(total)

	payloads := make([]fiber.Map, 0, len(ratings))
	for i := range ratings {
		payloads = append(payloads, ratingPayload(&ratings[i]))
	}
	return utils.Success(c, utils.NewPaginatedResponse(payloads, pagination))
}

// CreateRating rates another user once. Creation recomputes the
// target's average rating.
func (h *RatingHandler) CreateRating(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)

	var input models.CreateRatingInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	r, err := h.ratingService.Create(callerID, &input)
	if err != nil {
		switch {
		case errors.Is(err, rating.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, rating.ErrInvalidStars),
			errors.Is(err, rating.ErrSelfRating),
			errors.Is(err, rating.ErrAlreadyRated):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to create rating")
		}
	}
	return utils.Created(c, ratingPayload(r))
}

// GetRating returns one rating.
func (h *RatingHandler) GetRating(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid rating ID")
	}

	r, err := h.ratingService.Get(id)
	if err != nil {
		return utils.NotFound(c, "Rating not found")
	}
	return utils.Success(c, ratingPayload(r))
}

// UpdateRating changes the stars or comment. Only the rater may update.
func (h *RatingHandler) UpdateRating(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid rating ID")
	}

	var input struct {
		Stars   int    `json:"stars"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	r, err := h.ratingService.Update(callerID, id, input.Stars, input.Comment)
	if err != nil {
		switch {
		case errors.Is(err, rating.ErrRatingMissing):
			return utils.NotFound(c, "Rating not found")
		case errors.Is(err, rating.ErrNotRater):
			return utils.Forbidden(c, "You can only modify your own rating")
		case errors.Is(err, rating.ErrInvalidStars):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to update rating")
		}
	}
	return utils.Success(c, ratingPayload(r))
}

// DeleteRating removes a rating. Only the rater may delete.
func (h *RatingHandler) DeleteRating(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid rating ID")
	}

	if err := h.ratingService.Delete(callerID, id); err != nil {
		switch {
		case errors.Is(err, rating.ErrRatingMissing):
			return utils.NotFound(c, "Rating not found")
		case errors.Is(err, rating.ErrNotRater):
			return utils.Forbidden(c, "You can only delete your own rating")
		default:
			return utils.InternalError(c, "Failed to delete rating")
		}
	}
	return utils.Success(c, fiber.Map{"message": "Rating deleted"})
}

func ratingPayload(r *models.Rating) fiber.Map {
	payload := fiber.Map{
		"id":            r.ID,
		"rater_id":      r.RaterID,
		"rated_user_id": r.RatedUserID,
		"stars":         r.Stars,
		"comment":       r.Comment,
		"created_at":    r.CreatedAt,
	}
	if r.Rater != nil {
		payload["rater"] = fiber.Map{
			"id":       r.Rater.ID,
			"username": r.Rater.Username,
		}
	}
	return payload
}
