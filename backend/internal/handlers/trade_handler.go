package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/user/nairaswap/backend/internal/database"
	"github.com/user/nairaswap/backend/internal/models"
)

// SubmitGiftCardTradeRequest defines the expected JSON body for a gift card trade
type SubmitGiftCardTradeRequest struct {
	Brand     string          `json:"brand"`
	Country   string          `json:"country"`
	CardValue decimal.Decimal `json:"card_value"` // declared face value in USD
	ImageURL  string          `json:"image_url"`  // evidence reference, uploaded externally
}

// SubmitBitcoinTradeRequest defines the expected JSON body for a bitcoin trade
type SubmitBitcoinTradeRequest struct {
	BTCAmount  decimal.Decimal `json:"btc_amount"`
	BTCAddress string          `json:"btc_address"` // refund address
}

func validateGiftCardSubmission(req *SubmitGiftCardTradeRequest) error {
	req.Brand = strings.TrimSpace(req.Brand)
	req.Country = strings.TrimSpace(req.Country)
	req.ImageURL = strings.TrimSpace(req.ImageURL)

	if req.Brand == "" || req.Country == "" {
		return fmt.Errorf("%w: brand and country are required", models.ErrInvalidInput)
	}
	if req.CardValue.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: card value must be positive", models.ErrInvalidInput)
	}
	if req.ImageURL == "" {
		return fmt.Errorf("%w: card image is required", models.ErrInvalidInput)
	}
	return nil
}

func validateBitcoinSubmission(req *SubmitBitcoinTradeRequest) error {
	req.BTCAddress = strings.TrimSpace(req.BTCAddress)

	if req.BTCAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: btc amount must be positive", models.ErrInvalidInput)
	}
	if req.BTCAddress == "" {
		return fmt.Errorf("%w: btc address is required", models.ErrInvalidInput)
	}
	return nil
}

// SubmitGiftCardTrade locks the active (brand, country) rate, computes the
// payout once, and persists the trade in pending along with its ledger row.
func SubmitGiftCardTrade(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID in token"})
	}

	req := new(SubmitGiftCardTradeRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validateGiftCardSubmission(req); err != nil {
		return jsonError(c, err)
	}

	rate, err := database.GetActiveGiftCardRate(c.Context(), req.Brand, req.Country)
	if err != nil {
		return jsonError(c, err)
	}

	trade := &models.Trade{
		UserID:    userID,
		Kind:      models.KindGiftCard,
		Rate:      rate.Rate,
		Payout:    models.ComputePayout(req.CardValue, rate.Rate),
		Brand:     &req.Brand,
		Country:   &req.Country,
		CardValue: &req.CardValue,
		ImageURL:  &req.ImageURL,
	}

	description := fmt.Sprintf("%s %s Gift Card - $%s", req.Brand, req.Country, req.CardValue.String())
	if err := persistSubmission(c.Context(), trade, models.TxTypeGiftCardTrade, description); err != nil {
		log.Printf("Error persisting gift card trade for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save trade"})
	}
	return c.Status(fiber.StatusCreated).JSON(trade)
}

// SubmitBitcoinTrade locks the newest bitcoin rate and persists the trade in
// pending along with its ledger row.
func SubmitBitcoinTrade(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID in token"})
	}

	req := new(SubmitBitcoinTradeRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validateBitcoinSubmission(req); err != nil {
		return jsonError(c, err)
	}

	rate, err := database.GetCurrentBitcoinRate(c.Context())
	if err != nil {
		return jsonError(c, err)
	}

	trade := &models.Trade{
		UserID:     userID,
		Kind:       models.KindBitcoin,
		Rate:       rate.Rate,
		Payout:     models.ComputePayout(req.BTCAmount, rate.Rate),
		BTCAmount:  &req.BTCAmount,
		BTCAddress: &req.BTCAddress,
	}

	description := fmt.Sprintf("Bitcoin - %s BTC", req.BTCAmount.String())
	if err := persistSubmission(c.Context(), trade, models.TxTypeBitcoinTrade, description); err != nil {
		log.Printf("Error persisting bitcoin trade for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save trade"})
	}
	return c.Status(fiber.StatusCreated).JSON(trade)
}

// persistSubmission writes the trade and its pending ledger row in one
// transaction. Either both exist afterwards or neither does.
func persistSubmission(ctx context.Context, trade *models.Trade, txType, description string) error {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting submission transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := database.CreateTrade(ctx, tx, trade); err != nil {
		return err
	}

	reference := trade.ID.String()
	entry := &models.Transaction{
		UserID:      trade.UserID,
		Type:        txType,
		Amount:      trade.Payout,
		Status:      models.TxStatusPending,
		Reference:   &reference,
		Description: &description,
	}
	if err := database.InsertTransactionInTx(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing submission for trade %s: %w", trade.ID, err)
	}

	log.Printf("Trade %s submitted by user %s (payout %s)", trade.ID, trade.UserID, trade.Payout.String())
	return nil
}

// GetTrades retrieves the authenticated user's trades, most recent first.
func GetTrades(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID in token"})
	}

	trades, err := database.GetUserTrades(c.Context(), userID)
	if err != nil {
		log.Printf("Error fetching trades for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve trades"})
	}

	return c.Status(fiber.StatusOK).JSON(trades)
}

// GetTradeByID retrieves a specific trade owned by the caller.
func GetTradeByID(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID in token"})
	}

	tradeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trade ID format"})
	}

	trade, err := database.GetTradeByID(c.Context(), tradeID)
	if err != nil {
		return jsonError(c, err)
	}

	// Self-access only; admins use the review endpoints.
	if trade.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have permission to view this trade"})
	}

	return c.Status(fiber.StatusOK).JSON(trade)
}
