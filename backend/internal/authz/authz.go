package authz

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Role is the caller's privilege level.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// RoleResolver resolves the role for an authenticated user id. The database
// package provides the production implementation; tests substitute fakes.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID uuid.UUID) (Role, error)
}

// RequireAdmin gates a route group to administrators. It fails closed: any
// resolution error is treated as forbidden, never as admin.
func RequireAdmin(resolver RoleResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uuid.UUID)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID in token"})
		}

		role, err := resolver.ResolveRole(c.Context(), userID)
		if err != nil {
			log.Printf("Role resolution failed for user %s: %v", userID, err)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin access required"})
		}
		if role != RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin access required"})
		}

		c.Locals("role", role)
		return c.Next()
	}
}
