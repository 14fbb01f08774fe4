package repositories

import (
	"errors"

	"github.com/uduakgabriel-netizen/disbod/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines notification persistence operations.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetForReceiver(id, receiverID uint) (*models.Notification, error)
	ListForReceiver(receiverID uint, limit, offset int) ([]models.Notification, int64, error)
	MarkRead(id uint) error
	ClearForReceiver(receiverID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *models.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *notificationRepository) GetForReceiver(id, receiverID uint) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.Where("id = ? AND receiver_id = ?", id, receiverID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &notification, nil
}

func (r *notificationRepository) ListForReceiver(receiverID uint, limit, offset int) ([]models.Notification, int64, error) {
	var total int64
	if err := r.db.Model(&models.Notification{}).Where("receiver_id = ?", receiverID).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var notifications []models.Notification
	err := r.db.Preload("Sender").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(id uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).
		UpdateColumn("is_read", true).Error
}

func (r *notificationRepository) ClearForReceiver(receiverID uint) error {
	if err := r.db.Where("receiver_id = ?", receiverID).Delete(&models.Notification{}).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}
