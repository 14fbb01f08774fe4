package models

import (
	"gorm.io/gorm"
)

// Media types
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// MediaFile references an uploaded file by storage key; the storage
// backend itself lives outside this service.
type MediaFile struct {
	gorm.Model
	OwnerID    uint   `gorm:"index;not null"`
	Owner      *User  `gorm:"foreignKey:OwnerID"`
	MediaType  string `gorm:"not null"`
	StorageKey string `gorm:"uniqueIndex;not null"`
	Caption    string
}

// CreateMediaInput is the media registration payload.
type CreateMediaInput struct {
	MediaType  string `json:"media_type"`
	StorageKey string `json:"storage_key"`
	Caption    string `json:"caption"`
}
