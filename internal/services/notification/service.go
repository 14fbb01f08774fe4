// Package notification implements the fan-out that reacts to follow,
// message and rating writes by creating one notification record for the
// recipient. Fan-out runs in-band with the triggering write and is
// best-effort: callers log a failure and never roll back the trigger.
package notification

import (
	"errors"
	"fmt"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"
)

const messagePreviewLen = 40

type Service interface {
	NotifyFollow(follower, following *models.User) error
	NotifyMessage(sender *models.User, receiverID uint, content string, messageID uint) error
	NotifyRating(rater, ratedUser *models.User, stars int, ratingID uint) error
	NotifyVerification(receiverID uint, businessName string) error

	List(receiverID uint, limit, offset int) ([]models.Notification, int64, error)
	MarkRead(id, receiverID uint) error
	Clear(receiverID uint) error
}

// ErrNotificationNotFound is returned when the notification does not
// exist or belongs to another receiver.
var ErrNotificationNotFound = errors.New("notification not found")

type service struct {
	repo repositories.NotificationRepository
}

func NewService(repo repositories.NotificationRepository) Service {
	return &service{repo: repo}
}

func (s *service) NotifyFollow(follower, following *models.User) error {
	return s.repo.Create(&models.Notification{
		SenderID:   &follower.ID,
		ReceiverID: following.ID,
		Type:       models.NotificationFollow,
		Message:    fmt.Sprintf("%s started following you.", follower.Username),
	})
}

func (s *service) NotifyMessage(sender *models.User, receiverID uint, content string, messageID uint) error {
	// Truncate on rune boundaries so multibyte content stays valid UTF-8.
	preview := content
	if runes := []rune(preview); len(runes) > messagePreviewLen {
		preview = string(runes[:messagePreviewLen])
	}
	return s.repo.Create(&models.Notification{
		SenderID:        &sender.ID,
		ReceiverID:      receiverID,
		Type:            models.NotificationMessage,
		Message:         fmt.Sprintf("New message from %s: %s", sender.Username, preview),
		RelatedObjectID: &messageID,
	})
}

func (s *service) NotifyRating(rater, ratedUser *models.User, stars int, ratingID uint) error {
	return s.repo.Create(&models.Notification{
		SenderID:        &rater.ID,
		ReceiverID:      ratedUser.ID,
		Type:            models.NotificationRating,
		Message:         fmt.Sprintf("%s rated you %d stars.", rater.Username, stars),
		RelatedObjectID: &ratingID,
	})
}

func (s *service) NotifyVerification(receiverID uint, businessName string) error {
	return s.repo.Create(&models.Notification{
		ReceiverID: receiverID,
		Type:       models.NotificationVerification,
		Message:    fmt.Sprintf("%s has been verified.", businessName),
	})
}

func (s *service) List(receiverID uint, limit, offset int) ([]models.Notification, int64, error) {
	return s.repo.ListForReceiver(receiverID, limit, offset)
}

// MarkRead flips a single notification to read. Receivers can only
// touch their own notifications.
func (s *service) MarkRead(id, receiverID uint) error {
	notification, err := s.repo.GetForReceiver(id, receiverID)
	if err != nil {
		return ErrNotificationNotFound
	}
	return s.repo.MarkRead(notification.ID)
}

func (s *service) Clear(receiverID uint) error {
	return s.repo.ClearForReceiver(receiverID)
}
