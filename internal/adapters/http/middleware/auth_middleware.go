package middleware

import (
	"errors"
	"strings"

	"petfind/internal/core/domain"
	"petfind/internal/pkg/jwt"
	"petfind/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the auth middleware
const (
	LocalUserID = "userID"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// bearerToken reads the access token from the cookie or the Authorization header
func bearerToken(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

func setClaims(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalEmail, claims.Email)
	c.Locals(LocalRole, claims.Role)
}

// AuthMiddleware creates authentication middleware
func AuthMiddleware(tokens *jwt.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := bearerToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := tokens.Validate(accessToken)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		setClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth doesn't require auth but sets user info if a valid token is present
func OptionalAuth(tokens *jwt.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if accessToken := bearerToken(c); accessToken != "" {
			if claims, err := tokens.Validate(accessToken); err == nil {
				setClaims(c, claims)
			}
		}
		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware.
// The role claim is a hint for routing; services re-check permissions.
func RoleMiddleware(allowedRoles ...domain.SystemRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == string(allowedRole) {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin system role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.SystemRoleAdmin)
}

// UserID returns the authenticated user, or 0 for anonymous requests
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}
