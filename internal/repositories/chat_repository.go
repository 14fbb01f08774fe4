package repositories

import (
	"errors"

	"github.com/uduakgabriel-netizen/disbod/internal/models"

	"gorm.io/gorm"
)

// ChatRepository defines conversation and message persistence operations.
type ChatRepository interface {
	ListConversations(userID uint) ([]models.Conversation, error)
	GetConversation(id uint) (*models.Conversation, error)
	FindConversationBetween(userA, userB uint) (*models.Conversation, error)
	CreateConversation(participants ...*models.User) (*models.Conversation, error)
	ListMessages(conversationID uint, limit, offset int) ([]models.Message, int64, error)
	CreateMessage(message *models.Message) error
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) ListConversations(userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.Preload("Participants").
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Order("conversations.created_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return conversations, nil
}

func (r *chatRepository) GetConversation(id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.Preload("Participants").First(&conversation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &conversation, nil
}

func (r *chatRepository) FindConversationBetween(userA, userB uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.Preload("Participants").
		Joins("JOIN conversation_participants a ON a.conversation_id = conversations.id AND a.user_id = ?", userA).
		Joins("JOIN conversation_participants b ON b.conversation_id = conversations.id AND b.user_id = ?", userB).
		First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &conversation, nil
}

func (r *chatRepository) CreateConversation(participants ...*models.User) (*models.Conversation, error) {
	conversation := &models.Conversation{Participants: participants}
	if err := r.db.Create(conversation).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return conversation, nil
}

func (r *chatRepository) ListMessages(conversationID uint, limit, offset int) ([]models.Message, int64, error) {
	var total int64
	if err := r.db.Model(&models.Message{}).Where("conversation_id = ?", conversationID).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var messages []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return messages, total, nil
}

func (r *chatRepository) CreateMessage(message *models.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}
