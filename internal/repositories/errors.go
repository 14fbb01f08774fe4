package repositories

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrBusinessNotFound     = errors.New("business not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrRatingNotFound       = errors.New("rating not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrDuplicateRecord      = errors.New("duplicate record")
	ErrDatabaseOperation    = errors.New("database operation failed")
)

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a postgres unique constraint
// violation, either surfaced directly by lib/pq or wrapped by gorm.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
