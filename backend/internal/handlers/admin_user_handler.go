package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/user/nairaswap/backend/internal/database"
)

// UpdateKYCRequest defines the expected JSON body for a KYC decision
type UpdateKYCRequest struct {
	KYCStatus string `json:"kyc_status"` // "pending", "verified", "rejected"
}

// ListUsers retrieves the user roster with roles and KYC status.
func ListUsers(c *fiber.Ctx) error {
	users, err := database.ListUsers(c.Context())
	if err != nil {
		log.Printf("Error fetching user roster: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve users"})
	}

	return c.Status(fiber.StatusOK).JSON(users)
}

// UpdateKYC sets a user's KYC status.
func UpdateKYC(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	req := new(UpdateKYCRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	status := strings.ToLower(strings.TrimSpace(req.KYCStatus))
	if status != "pending" && status != "verified" && status != "rejected" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "KYC status must be 'pending', 'verified' or 'rejected'"})
	}

	if err := database.UpdateKYCStatus(c.Context(), userID, status); err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "KYC status updated"})
}
