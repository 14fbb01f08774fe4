// Package middleware provides the request processing middleware used
// with the fiber web framework: JWT authentication, admin gating and
// permission checks.
package middleware

import (
	"context"
	"log"
	"strings"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// BlacklistChecker reports whether a token jti has been revoked.
type BlacklistChecker interface {
	IsTokenBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware validates bearer tokens and stores the claims on the
// request context.
type AuthMiddleware struct {
	userRepo  repositories.UserRepository
	blacklist BlacklistChecker
}

func NewAuthMiddleware(userRepo repositories.UserRepository, blacklist BlacklistChecker) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo:  userRepo,
		blacklist: blacklist,
	}
}

// Handler checks the Authorization header for a bearer token, verifies
// its signature and expiry, rejects blacklisted jtis, and confirms the
// token version still matches the user's current one.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	_, claims, err := utils.ParseToken(tokenString)
	if err != nil {
		log.Printf("token validation error: %v", err)
		return utils.Unauthorized(c, "invalid token")
	}

	if m.blacklist != nil && claims.ID != "" {
		revoked, err := m.blacklist.IsTokenBlacklisted(c.Context(), claims.ID)
		if err != nil {
			log.Printf("blacklist lookup error: %v", err)
		} else if revoked {
			return utils.Unauthorized(c, "session expired")
		}
	}

	user, err := m.userRepo.GetByID(claims.UserID)
	if err != nil {
		log.Printf("user %d from token not found", claims.UserID)
		return utils.Unauthorized(c, "invalid token")
	}
	if user.TokenVersion != claims.TokenVersion {
		return utils.Unauthorized(c, "session expired")
	}
	if user.IsSuspended {
		return utils.Forbidden(c, "account suspended")
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)

	return c.Next()
}

// AdminAuthMiddleware verifies that the request carries admin claims.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	if claims.Role != "admin" {
		return utils.Forbidden(c, "insufficient permissions")
	}
	return c.Next()
}

// HasPermission returns a middleware that requires a specific
// permission. Admins pass every check.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*models.UserClaims)
		if !ok {
			return utils.Unauthorized(c, "unauthorized")
		}
		if claims.Role == "admin" {
			return c.Next()
		}
		if claims.HasPermission(permission) {
			return c.Next()
		}
		return utils.Forbidden(c, "insufficient permissions")
	}
}
