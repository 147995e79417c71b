package handlers

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/user/nairaswap/backend/internal/models"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.ErrInvalidInput, fiber.StatusBadRequest},
		{models.ErrInvalidAmount, fiber.StatusBadRequest},
		{models.ErrInsufficientFunds, fiber.StatusBadRequest},
		{models.ErrRateUnavailable, fiber.StatusUnprocessableEntity},
		{models.ErrNotFound, fiber.StatusNotFound},
		{models.ErrForbidden, fiber.StatusForbidden},
		{models.ErrInvalidTransition, fiber.StatusConflict},
		{fmt.Errorf("wrapped: %w", models.ErrInvalidTransition), fiber.StatusConflict},
		{fmt.Errorf("connection reset"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, statusForError(tt.err), "error %v", tt.err)
	}
}

func TestValidateGiftCardSubmission(t *testing.T) {
	valid := func() SubmitGiftCardTradeRequest {
		return SubmitGiftCardTradeRequest{
			Brand:     "Amazon",
			Country:   "US",
			CardValue: decimal.RequireFromString("50"),
			ImageURL:  "https://storage.example.com/cards/abc.jpg",
		}
	}

	t.Run("valid", func(t *testing.T) {
		req := valid()
		require.NoError(t, validateGiftCardSubmission(&req))
	})

	t.Run("zero value rejected", func(t *testing.T) {
		req := valid()
		req.CardValue = decimal.Zero
		err := validateGiftCardSubmission(&req)
		require.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("negative value rejected", func(t *testing.T) {
		req := valid()
		req.CardValue = decimal.RequireFromString("-10")
		require.ErrorIs(t, validateGiftCardSubmission(&req), models.ErrInvalidInput)
	})

	t.Run("missing evidence rejected", func(t *testing.T) {
		req := valid()
		req.ImageURL = "   "
		require.ErrorIs(t, validateGiftCardSubmission(&req), models.ErrInvalidInput)
	})

	t.Run("missing brand rejected", func(t *testing.T) {
		req := valid()
		req.Brand = ""
		require.ErrorIs(t, validateGiftCardSubmission(&req), models.ErrInvalidInput)
	})
}

func TestValidateBitcoinSubmission(t *testing.T) {
	valid := func() SubmitBitcoinTradeRequest {
		return SubmitBitcoinTradeRequest{
			BTCAmount:  decimal.RequireFromString("0.05"),
			BTCAddress: "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh",
		}
	}

	t.Run("valid", func(t *testing.T) {
		req := valid()
		require.NoError(t, validateBitcoinSubmission(&req))
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		req := valid()
		req.BTCAmount = decimal.Zero
		require.ErrorIs(t, validateBitcoinSubmission(&req), models.ErrInvalidInput)
	})

	t.Run("missing address rejected", func(t *testing.T) {
		req := valid()
		req.BTCAddress = ""
		require.ErrorIs(t, validateBitcoinSubmission(&req), models.ErrInvalidInput)
	})
}
