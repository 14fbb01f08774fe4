package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// User permissions
	PermissionProfileWrite   = "profile:write"
	PermissionFollowWrite    = "follow:write"
	PermissionRatingWrite    = "rating:write"
	PermissionChatWrite      = "chat:write"
	PermissionMediaWrite     = "media:write"
	PermissionChangePassword = "user:change-password"

	// Business permissions
	PermissionBusinessRead  = "business:read"
	PermissionBusinessWrite = "business:write"
	PermissionProductWrite  = "product:write"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	AccountType  string   `json:"account_type"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role and account type
func GetDefaultPermissions(role, accountType string) []string {
	base := []string{
		PermissionProfileWrite,
		PermissionFollowWrite,
		PermissionRatingWrite,
		PermissionChatWrite,
		PermissionMediaWrite,
		PermissionChangePassword,
		PermissionBusinessRead,
	}

	if role == "admin" {
		return append(base,
			PermissionBusinessWrite,
			PermissionProductWrite,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		)
	}

	switch accountType {
	case AccountTypeBusiness, AccountTypePremium:
		return append(base,
			PermissionBusinessWrite,
			PermissionProductWrite,
		)
	default:
		return base
	}
}
