package handlers

import (
	"errors"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/services/notification"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// ListNotifications returns the caller's notifications, newest first.
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)

	pagination := utils.GetPagination(c)
	notifications, total, err := h.notificationService.List(callerID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return utils.InternalError(c, "Failed to list notifications")
	}
	pagination.SetTotal(total)

	payloads := make([]fiber.Map, 0, len(notifications))
	for i := range notifications {
		payloads = append(payloads, notificationPayload(&notifications[i]))
	}
	return utils.Success(c, utils.NewPaginatedResponse(payloads, pagination))
}

// MarkRead marks one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(id, callerID); err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			return utils.NotFound(c, "Notification not found")
		}
		return utils.InternalError(c, "Failed to mark notification read")
	}
	return utils.Success(c, fiber.Map{"message": "Notification marked read"})
}

// ClearNotifications deletes all of the caller's notifications.
func (h *NotificationHandler) ClearNotifications(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)

	if err := h.notificationService.Clear(callerID); err != nil {
		return utils.InternalError(c, "Failed to clear notifications")
	}
	return utils.Success(c, fiber.Map{"message": "Notifications cleared"})
}

func notificationPayload(n *models.Notification) fiber.Map {
	return fiber.Map{
		"id":                n.ID,
		"sender_id":         n.SenderID,
		"type":              n.Type,
		"message":           n.Message,
		"related_object_id": n.RelatedObjectID,
		"is_read":           n.IsRead,
		"created_at":        n.CreatedAt,
	}
}
