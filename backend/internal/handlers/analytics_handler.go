package handlers

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/user/nairaswap/backend/internal/database"
)

// GetAnalytics retrieves the admin dashboard snapshot. Advisory only: the
// figures may trail concurrent reviews by a moment.
func GetAnalytics(c *fiber.Ctx) error {
	stats, err := database.GetAdminStats(c.Context())
	if err != nil {
		log.Printf("Error computing admin stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve analytics"})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
