package handlers

import (
	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/services/media"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

// ListMedia returns registered media records, paginated.
func (h *MediaHandler) ListMedia(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)
	files, total, err := h.mediaService.ListPaginated(pagination.PageSize, pagination.Offset)
	if err != nil {
		return utils.InternalError(c, "Failed to list media")
	}
	pagination.SetTotal(total)

	payloads := make([]fiber.Map, 0, len(files))
	for i := range files {
		payloads = append(payloads, mediaPayload(&files[i]))
	}
	return utils.Success(c, utils.NewPaginatedResponse(payloads, pagination))
}

// CreateMedia registers an uploaded file by storage key.
func (h *MediaHandler) CreateMedia(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)

	var input models.CreateMediaInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	file, err := h.mediaService.Create(callerID, &input)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	return utils.Created(c, mediaPayload(file))
}

func mediaPayload(file *models.MediaFile) fiber.Map {
	return fiber.Map{
		"id":          file.ID,
		"owner_id":    file.OwnerID,
		"media_type":  file.MediaType,
		"storage_key": file.StorageKey,
		"caption":     file.Caption,
		"created_at":  file.CreatedAt,
	}
}
