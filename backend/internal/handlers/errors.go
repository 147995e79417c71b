package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/user/nairaswap/backend/internal/models"
)

// Currency is the wallet currency for this deployment; main sets it from config.
var Currency = "NGN"

// statusForError maps engine sentinel errors to HTTP statuses. Anything
// unrecognized is an opaque store failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInsufficientFunds):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrRateUnavailable):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrInvalidTransition):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// jsonError writes the error as a JSON body with the mapped status. Store
// failures are surfaced opaquely; their detail stays in the logs.
func jsonError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "Internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
