package models

import (
	"gorm.io/gorm"
)

// Conversation is a two-party chat thread.
type Conversation struct {
	gorm.Model
	Participants []*User   `gorm:"many2many:conversation_participants"`
	Messages     []Message `gorm:"foreignKey:ConversationID"`
}

type Message struct {
	gorm.Model
	ConversationID uint          `gorm:"index;not null"`
	Conversation   *Conversation `gorm:"foreignKey:ConversationID"`
	SenderID       uint          `gorm:"index;not null"`
	Sender         *User         `gorm:"foreignKey:SenderID"`
	ReceiverID     uint          `gorm:"index;not null"`
	Receiver       *User         `gorm:"foreignKey:ReceiverID"`
	Content        string        `gorm:"not null"`
	IsRead         bool          `gorm:"default:false"`
}
