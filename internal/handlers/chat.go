package handlers

import (
	"errors"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/services/chat"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	chatService chat.Service
}

func NewChatHandler(chatService chat.Service) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ListConversations returns the caller's conversations.
func (h *ChatHandler) ListConversations(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)

	conversations, err := h.chatService.ListConversations(callerID)
	if err != nil {
		return utils.InternalError(c, "Failed to list conversations")
	}

	payloads := make([]fiber.Map, 0, len(conversations))
	for i := range conversations {
		payloads = append(payloads, conversationPayload(&conversations[i]))
	}
	return utils.Success(c, payloads)
}

// StartConversation finds or creates the conversation between the
// caller and the user in the path.
func (h *ChatHandler) StartConversation(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)
	otherID, err := parseIDParam(c, "userId")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	conversation, err := h.chatService.StartConversation(callerID, otherID)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, chat.ErrSelfConversation):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to start conversation")
		}
	}
	return utils.Success(c, conversationPayload(conversation))
}

// ListMessages returns a conversation's messages, oldest first.
// Participants only.
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)
	conversationID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid conversation ID")
	}

	pagination := utils.GetPagination(c)
	messages, total, err := h.chatService.ListMessages(conversationID, callerID, pagination.PageSize, pagination.Offset)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrConversationNotFound):
			return utils.NotFound(c, "Conversation not found")
		case errors.Is(err, chat.ErrNotParticipant):
			return utils.Forbidden(c, "Not a participant in this conversation")
		default:
			return utils.InternalError(c, "Failed to list messages")
		}
	}
	pagination.SetTotal(total)

	payloads := make([]fiber.Map, 0, len(messages))
	for i := range messages {
		payloads = append(payloads, messagePayload(&messages[i]))
	}
	return utils.Success(c, utils.NewPaginatedResponse(payloads, pagination))
}

// SendMessage posts a message into a conversation. Participants only.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)
	conversationID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid conversation ID")
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	message, err := h.chatService.SendMessage(conversationID, callerID, input.Content)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrConversationNotFound):
			return utils.NotFound(c, "Conversation not found")
		case errors.Is(err, chat.ErrNotParticipant):
			return utils.Forbidden(c, "Not a participant in this conversation")
		case errors.Is(err, chat.ErrEmptyMessage):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to send message")
		}
	}
	return utils.Created(c, messagePayload(message))
}

func conversationPayload(conversation *models.Conversation) fiber.Map {
	participants := make([]fiber.Map, 0, len(conversation.Participants))
	for _, p := range conversation.Participants {
		participants = append(participants, fiber.Map{
			"id":              p.ID,
			"username":        p.Username,
			"profile_picture": p.ProfilePicture,
		})
	}
	return fiber.Map{
		"id":           conversation.ID,
		"participants": participants,
		"created_at":   conversation.CreatedAt,
	}
}

func messagePayload(message *models.Message) fiber.Map {
	return fiber.Map{
		"id":              message.ID,
		"conversation_id": message.ConversationID,
		"sender_id":       message.SenderID,
		"receiver_id":     message.ReceiverID,
		"content":         message.Content,
		"is_read":         message.IsRead,
		"created_at":      message.CreatedAt,
	}
}
