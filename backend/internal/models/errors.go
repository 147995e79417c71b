package models

import "errors"

// Sentinel errors returned by the stores and settlement path. Handlers map
// these to HTTP statuses; everything else surfaces as an opaque store failure.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrRateUnavailable   = errors.New("no active rate available")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient balance")
)
