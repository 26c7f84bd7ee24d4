package auth

import (
	"strings"

	"poultry-backend/internal/config"
	"poultry-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUserRoleKey = "user_role"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID   uint
	Role models.UserRole
}

// JWTMiddleware resolves the principal from the bearer token. Requests
// without a valid token are rejected with 401 before any handler runs.
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized, no token")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
		}

		claims, err := ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized, token failed")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserRoleKey, claims.Role)

		return c.Next()
	}
}

// RequireRole limits an endpoint to an explicit set of roles. Most
// mutations are gated through rbac.RequirePermission instead; this exists
// for the few endpoints outside the resource action tables.
func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Role information unavailable")
		}
		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "You do not have permission to perform this action")
	}
}

// PrincipalFromCtx returns the principal stored by JWTMiddleware.
func PrincipalFromCtx(c *fiber.Ctx) (Principal, error) {
	id, okID := c.Locals(CtxUserIDKey).(uint)
	role, okRole := c.Locals(CtxUserRoleKey).(models.UserRole)
	if !okID || !okRole {
		return Principal{}, fiber.NewError(fiber.StatusUnauthorized, "Not authorized")
	}
	return Principal{ID: id, Role: role}, nil
}
