package chat

import (
	"errors"
	"log"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"
	"github.com/uduakgabriel-netizen/disbod/internal/services/notification"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant in this conversation")
	ErrSelfConversation     = errors.New("cannot start a conversation with yourself")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmptyMessage         = errors.New("message content is required")
)

type Service interface {
	ListConversations(userID uint) ([]models.Conversation, error)
	StartConversation(callerID, otherID uint) (*models.Conversation, error)
	ListMessages(conversationID, callerID uint, limit, offset int) ([]models.Message, int64, error)
	SendMessage(conversationID, senderID uint, content string) (*models.Message, error)
}

type service struct {
	chatRepo repositories.ChatRepository
	userRepo repositories.UserRepository
	notifier notification.Service
}

func NewService(chatRepo repositories.ChatRepository, userRepo repositories.UserRepository, notifier notification.Service) Service {
	return &service{
		chatRepo: chatRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (s *service) ListConversations(userID uint) ([]models.Conversation, error) {
	return s.chatRepo.ListConversations(userID)
}

// StartConversation returns the existing conversation between the two
// users or creates one. A pair of users shares a single conversation.
func (s *service) StartConversation(callerID, otherID uint) (*models.Conversation, error) {
	if callerID == otherID {
		return nil, ErrSelfConversation
	}

	caller, err := s.userRepo.GetByID(callerID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	other, err := s.userRepo.GetByID(otherID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.chatRepo.FindConversationBetween(callerID, otherID)
	if err == nil && existing != nil {
		return existing, nil
	}
	if err != nil && !errors.Is(err, repositories.ErrConversationNotFound) {
		return nil, err
	}

	return s.chatRepo.CreateConversation(caller, other)
}

func (s *service) ListMessages(conversationID, callerID uint, limit, offset int) ([]models.Message, int64, error) {
	if err := s.requireParticipant(conversationID, callerID); err != nil {
		return nil, 0, err
	}
	return s.chatRepo.ListMessages(conversationID, limit, offset)
}

// SendMessage stores the message and fans out a notification to the
// other participant. Notification failure is logged, never returned.
func (s *service) SendMessage(conversationID, senderID uint, content string) (*models.Message, error) {
	if content == "" {
		return nil, ErrEmptyMessage
	}

	conversation, err := s.chatRepo.GetConversation(conversationID)
	if err != nil {
		return nil, ErrConversationNotFound
	}

	var receiverID uint
	isParticipant := false
	for _, p := range conversation.Participants {
		if p.ID == senderID {
			isParticipant = true
		} else {
			receiverID = p.ID
		}
	}
	if !isParticipant {
		return nil, ErrNotParticipant
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
	}
	if err := s.chatRepo.CreateMessage(message); err != nil {
		return nil, err
	}

	if s.notifier != nil && receiverID != 0 {
		sender, err := s.userRepo.GetByID(senderID)
		if err == nil {
			if err := s.notifier.NotifyMessage(sender, receiverID, content, message.ID); err != nil {
				log.Printf("chat: message notification for conversation %d failed: %v", conversationID, err)
			}
		}
	}
	return message, nil
}

func (s *service) requireParticipant(conversationID, userID uint) error {
	conversation, err := s.chatRepo.GetConversation(conversationID)
	if err != nil {
		return ErrConversationNotFound
	}
	for _, p := range conversation.Participants {
		if p.ID == userID {
			return nil
		}
	}
	return ErrNotParticipant
}
