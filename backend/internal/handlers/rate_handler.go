package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/user/nairaswap/backend/internal/database"
	"github.com/user/nairaswap/backend/internal/models"
	"github.com/user/nairaswap/backend/internal/ratefeed"
)

// SetGiftCardRateRequest defines the expected JSON body for a rate upsert
type SetGiftCardRateRequest struct {
	Brand    string          `json:"brand"`
	Country  string          `json:"country"`
	Rate     decimal.Decimal `json:"rate"`
	IsActive *bool           `json:"is_active,omitempty"` // defaults to true
}

// AppendBitcoinRateRequest defines the expected JSON body for a rate append
type AppendBitcoinRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

// GetRates is the public rate board: active gift card rates plus the current
// bitcoin rate (null before the first append).
func GetRates(c *fiber.Ctx) error {
	giftCardRates, err := database.ListGiftCardRates(c.Context(), true)
	if err != nil {
		log.Printf("Error fetching gift card rates: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve rates"})
	}

	var bitcoinRate *models.BitcoinRate
	bitcoinRate, err = database.GetCurrentBitcoinRate(c.Context())
	if err != nil {
		if !errors.Is(err, models.ErrRateUnavailable) {
			log.Printf("Error fetching bitcoin rate: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve rates"})
		}
		bitcoinRate = nil
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"gift_card_rates": giftCardRates,
		"bitcoin_rate":    bitcoinRate,
	})
}

// SetGiftCardRate upserts a (brand, country) rate. Brand and country are
// stored exactly as given; "Amazon"/"amazon" are distinct pairs.
func SetGiftCardRate(c *fiber.Ctx) error {
	req := new(SetGiftCardRateRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	req.Brand = strings.TrimSpace(req.Brand)
	req.Country = strings.TrimSpace(req.Country)
	if req.Brand == "" || req.Country == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Brand and country are required"})
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rate must be positive"})
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	rate, err := database.UpsertGiftCardRate(c.Context(), req.Brand, req.Country, req.Rate, isActive)
	if err != nil {
		log.Printf("Error upserting rate %s/%s: %v", req.Brand, req.Country, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save rate"})
	}

	return c.Status(fiber.StatusOK).JSON(rate)
}

// DeactivateGiftCardRate takes a pair out of circulation. Historical trades
// keep their locked rate.
func DeactivateGiftCardRate(c *fiber.Ctx) error {
	rateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rate ID format"})
	}

	if err := database.DeactivateGiftCardRate(c.Context(), rateID); err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Rate deactivated"})
}

// AppendBitcoinRate appends to the rate series and pushes the new rate to
// websocket subscribers.
func AppendBitcoinRate(c *fiber.Ctx) error {
	req := new(AppendBitcoinRateRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rate must be positive"})
	}

	rate, err := database.AppendBitcoinRate(c.Context(), req.Rate)
	if err != nil {
		log.Printf("Error appending bitcoin rate: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save rate"})
	}

	ratefeed.Publish(rate.Rate)

	return c.Status(fiber.StatusCreated).JSON(rate)
}
