package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/user/nairaswap/backend/internal/database"
	"github.com/user/nairaswap/backend/internal/models"
)

// ReviewTradeRequest defines the expected JSON body for a review decision
type ReviewTradeRequest struct {
	Decision   string `json:"decision"` // "approved" or "rejected"
	AdminNotes string `json:"admin_notes"`
	TxHash     string `json:"tx_hash"` // settlement reference, bitcoin approvals only
}

// ListTradesByStatus retrieves the review queue. Defaults to pending.
func ListTradesByStatus(c *fiber.Ctx) error {
	status := models.TradeStatus(c.Query("status", string(models.StatusPending)))
	if !models.ValidStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status filter"})
	}

	trades, err := database.GetTradesByStatus(c.Context(), status)
	if err != nil {
		log.Printf("Error fetching %s trades: %v", status, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve trades"})
	}

	return c.Status(fiber.StatusOK).JSON(trades)
}

// ReviewTrade applies an admin decision to a pending trade. Approval credits
// the owner's wallet and settles the ledger entry atomically; a trade already
// out of pending conflicts instead of double-applying.
func ReviewTrade(c *fiber.Ctx) error {
	tradeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trade ID format"})
	}

	req := new(ReviewTradeRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	decision := models.TradeStatus(strings.ToLower(strings.TrimSpace(req.Decision)))
	if decision != models.StatusApproved && decision != models.StatusRejected {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Decision must be 'approved' or 'rejected'"})
	}

	var adminNotes *string
	if notes := strings.TrimSpace(req.AdminNotes); notes != "" {
		adminNotes = &notes
	}
	var txHash *string
	if hash := strings.TrimSpace(req.TxHash); hash != "" {
		txHash = &hash
	}

	trade, err := database.ReviewTrade(c.Context(), tradeID, decision, adminNotes, txHash, Currency)
	if err != nil {
		log.Printf("Review of trade %s failed: %v", tradeID, err)
		return jsonError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(trade)
}
