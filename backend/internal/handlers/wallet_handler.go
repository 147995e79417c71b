package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/user/nairaswap/backend/internal/database"
	"github.com/user/nairaswap/backend/internal/models"
)

// minWithdrawal is the product floor for withdrawal requests (₦1,000).
var minWithdrawal = decimal.NewFromInt(1000)

// AmountRequest defines the expected JSON body for deposit/withdraw
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// GetWallet retrieves the caller's wallet, creating a zero-balance one on
// first access.
func GetWallet(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID in token"})
	}

	wallet, err := database.GetOrCreateWallet(c.Context(), userID, Currency)
	if err != nil {
		log.Printf("Error fetching wallet for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve wallet"})
	}

	return c.Status(fiber.StatusOK).JSON(wallet)
}

// GetTransactions retrieves the caller's ledger history, most recent first.
func GetTransactions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID in token"})
	}

	entries, err := database.GetUserTransactions(c.Context(), userID)
	if err != nil {
		log.Printf("Error fetching transactions for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve transactions"})
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}

// Deposit acknowledges a deposit request. Bank transfer execution is handled
// outside this service; no balance moves here.
func Deposit(c *fiber.Ctx) error {
	req := new(AmountRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount must be positive"})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Deposit acknowledged; payment processing is handled externally"})
}

// Withdraw validates a withdrawal request and acknowledges it. The actual
// bank transfer is external; the balance is untouched here.
func Withdraw(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID in token"})
	}

	req := new(AmountRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount must be positive"})
	}
	if req.Amount.LessThan(minWithdrawal) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Minimum withdrawal is ₦1,000"})
	}

	wallet, err := database.GetOrCreateWallet(c.Context(), userID, Currency)
	if err != nil {
		log.Printf("Error fetching wallet for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve wallet"})
	}
	if req.Amount.GreaterThan(wallet.Balance) {
		return jsonError(c, fmt.Errorf("%w: balance is %s", models.ErrInsufficientFunds, wallet.Balance))
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Withdrawal acknowledged; bank transfer is handled externally"})
}
