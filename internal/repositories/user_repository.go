package repositories

import (
	"github.com/uduakgabriel-netizen/disbod/internal/models"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	IncrementTokenVersion(userID uint) error
	ListPaginated(limit, offset int) ([]models.User, int64, error)

	CreateVerificationCode(code *models.EmailVerificationCode) error
	LatestUnusedCode(userID uint, code string) (*models.EmailVerificationCode, error)
	MarkCodeUsed(codeID uint) error
}
