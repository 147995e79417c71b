package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/user/nairaswap/backend/internal/models"
)

// GetActiveGiftCardRate returns the rate for a (brand, country) pair if it
// exists and is active. Brand and country match exactly as stored; no
// normalization is applied. Returns models.ErrRateUnavailable otherwise.
func GetActiveGiftCardRate(ctx context.Context, brand, country string) (*models.GiftCardRate, error) {
	r := &models.GiftCardRate{}
	var rateStr string
	query := `SELECT id, brand, country, rate::text, is_active, created_at, updated_at
			  FROM gift_card_rates WHERE brand = $1 AND country = $2 AND is_active = TRUE`

	err := DB.QueryRow(ctx, query, brand, country).
		Scan(&r.ID, &r.Brand, &r.Country, &rateStr, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrRateUnavailable
		}
		return nil, fmt.Errorf("error getting rate for %s/%s: %w", brand, country, err)
	}

	if r.Rate, err = decimal.NewFromString(rateStr); err != nil {
		return nil, fmt.Errorf("parse rate for %s/%s: %w", brand, country, err)
	}
	return r, nil
}

// ListGiftCardRates returns all rates; activeOnly restricts to active pairs.
func ListGiftCardRates(ctx context.Context, activeOnly bool) ([]*models.GiftCardRate, error) {
	rates := make([]*models.GiftCardRate, 0)
	query := `SELECT id, brand, country, rate::text, is_active, created_at, updated_at
			  FROM gift_card_rates`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY brand, country`

	rows, err := DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying gift card rates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		r := &models.GiftCardRate{}
		var rateStr string
		if err := rows.Scan(&r.ID, &r.Brand, &r.Country, &rateStr, &r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning gift card rate row: %w", err)
		}
		if r.Rate, err = decimal.NewFromString(rateStr); err != nil {
			return nil, fmt.Errorf("parse gift card rate: %w", err)
		}
		rates = append(rates, r)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating gift card rate rows: %w", rows.Err())
	}
	return rates, nil
}

// UpsertGiftCardRate creates the (brand, country) pair active, or updates the
// rate and active flag if the pair already exists.
func UpsertGiftCardRate(ctx context.Context, brand, country string, rate decimal.Decimal, isActive bool) (*models.GiftCardRate, error) {
	r := &models.GiftCardRate{Brand: brand, Country: country, Rate: rate, IsActive: isActive}
	query := `INSERT INTO gift_card_rates (brand, country, rate, is_active)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (brand, country)
			  DO UPDATE SET rate = EXCLUDED.rate, is_active = EXCLUDED.is_active, updated_at = NOW()
			  RETURNING id, created_at, updated_at`

	err := DB.QueryRow(ctx, query, brand, country, rate.String(), isActive).
		Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error upserting rate for %s/%s: %w", brand, country, err)
	}
	return r, nil
}

// DeactivateGiftCardRate flips a rate to inactive. The row is kept so trades
// that locked it remain explainable.
func DeactivateGiftCardRate(ctx context.Context, rateID uuid.UUID) error {
	cmdTag, err := DB.Exec(ctx,
		`UPDATE gift_card_rates SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, rateID)
	if err != nil {
		return fmt.Errorf("error deactivating rate %s: %w", rateID, err)
	}
	if cmdTag.RowsAffected() != 1 {
		return models.ErrNotFound
	}
	return nil
}

// AppendBitcoinRate inserts a new rate entry. The series is append-only;
// existing entries are never touched.
func AppendBitcoinRate(ctx context.Context, rate decimal.Decimal) (*models.BitcoinRate, error) {
	r := &models.BitcoinRate{Rate: rate}
	query := `INSERT INTO bitcoin_rates (rate) VALUES ($1) RETURNING id, created_at`

	err := DB.QueryRow(ctx, query, rate.String()).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error appending bitcoin rate: %w", err)
	}
	return r, nil
}

// GetCurrentBitcoinRate returns the newest entry of the series, or
// models.ErrRateUnavailable if no rate has ever been set. Ordering by the
// serial key keeps "current" deterministic for appends in the same instant.
func GetCurrentBitcoinRate(ctx context.Context) (*models.BitcoinRate, error) {
	r := &models.BitcoinRate{}
	var rateStr string
	query := `SELECT id, rate::text, created_at FROM bitcoin_rates
			  ORDER BY id DESC LIMIT 1`

	err := DB.QueryRow(ctx, query).Scan(&r.ID, &rateStr, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrRateUnavailable
		}
		return nil, fmt.Errorf("error getting current bitcoin rate: %w", err)
	}

	if r.Rate, err = decimal.NewFromString(rateStr); err != nil {
		return nil, fmt.Errorf("parse bitcoin rate: %w", err)
	}
	return r, nil
}
