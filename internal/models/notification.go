package models

import (
	"gorm.io/gorm"
)

// Notification types
const (
	NotificationFollow       = "follow"
	NotificationMessage      = "message"
	NotificationRating       = "rating"
	NotificationProduct      = "product"
	NotificationSystem       = "system"
	NotificationVerification = "verification"
)

type Notification struct {
	gorm.Model
	SenderID        *uint  `gorm:"index"` // Nil for system notifications
	Sender          *User  `gorm:"foreignKey:SenderID"`
	ReceiverID      uint   `gorm:"index;not null"`
	Receiver        *User  `gorm:"foreignKey:ReceiverID"`
	Type            string `gorm:"not null"`
	Message         string `gorm:"not null"`
	RelatedObjectID *uint
	IsRead          bool `gorm:"default:false"`
}
