package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/user/nairaswap/backend/internal/models"
)

const tradeColumns = `id, user_id, kind, rate::text, payout_amount::text, status, admin_notes,
	brand, country, card_value::text, image_url, btc_amount::text, btc_address, tx_hash,
	created_at, updated_at`

// scanTrade maps one row (selected with tradeColumns) into a Trade,
// converting the NUMERIC text representations back to decimals.
func scanTrade(row pgx.Row) (*models.Trade, error) {
	t := &models.Trade{}
	var rateStr, payoutStr string
	var cardValueStr, btcAmountStr *string

	err := row.Scan(
		&t.ID, &t.UserID, &t.Kind, &rateStr, &payoutStr, &t.Status, &t.AdminNotes,
		&t.Brand, &t.Country, &cardValueStr, &t.ImageURL, &btcAmountStr, &t.BTCAddress, &t.TxHash,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if t.Rate, err = decimal.NewFromString(rateStr); err != nil {
		return nil, fmt.Errorf("parse trade rate: %w", err)
	}
	if t.Payout, err = decimal.NewFromString(payoutStr); err != nil {
		return nil, fmt.Errorf("parse trade payout: %w", err)
	}
	if cardValueStr != nil {
		v, err := decimal.NewFromString(*cardValueStr)
		if err != nil {
			return nil, fmt.Errorf("parse card value: %w", err)
		}
		t.CardValue = &v
	}
	if btcAmountStr != nil {
		v, err := decimal.NewFromString(*btcAmountStr)
		if err != nil {
			return nil, fmt.Errorf("parse btc amount: %w", err)
		}
		t.BTCAmount = &v
	}
	return t, nil
}

// CreateTrade inserts a new trade. Every trade starts in "pending"; the
// status column is left to its default so no trade can be born terminal.
func CreateTrade(ctx context.Context, tx pgx.Tx, trade *models.Trade) error {
	if !models.ValidKind(trade.Kind) {
		return fmt.Errorf("%w: unknown trade kind %q", models.ErrInvalidInput, trade.Kind)
	}

	query := `INSERT INTO trades (user_id, kind, rate, payout_amount, brand, country, card_value, image_url, btc_amount, btc_address)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id, status, created_at, updated_at`

	var cardValue, btcAmount *string
	if trade.CardValue != nil {
		s := trade.CardValue.String()
		cardValue = &s
	}
	if trade.BTCAmount != nil {
		s := trade.BTCAmount.String()
		btcAmount = &s
	}

	querier := Querier(tx)
	err := querier.QueryRow(ctx, query,
		trade.UserID, trade.Kind, trade.Rate.String(), trade.Payout.String(),
		trade.Brand, trade.Country, cardValue, trade.ImageURL, btcAmount, trade.BTCAddress,
	).Scan(&trade.ID, &trade.Status, &trade.CreatedAt, &trade.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating trade for user %s: %w", trade.UserID, err)
	}
	return nil
}

// GetTradeByID retrieves a trade, or models.ErrNotFound.
func GetTradeByID(ctx context.Context, tradeID uuid.UUID) (*models.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE id = $1`

	trade, err := scanTrade(DB.QueryRow(ctx, query, tradeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("error getting trade %s: %w", tradeID, err)
	}
	return trade, nil
}

// GetUserTrades retrieves all trades for a user, most recent first.
func GetUserTrades(ctx context.Context, userID uuid.UUID) ([]*models.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades
			  WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := DB.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying trades for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectTrades(rows)
}

// GetTradesByStatus retrieves all trades in a status, most recent first.
// Used by the admin review queue.
func GetTradesByStatus(ctx context.Context, status models.TradeStatus) ([]*models.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades
			  WHERE status = $1 ORDER BY created_at DESC`

	rows, err := DB.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("error querying trades with status %s: %w", status, err)
	}
	defer rows.Close()

	return collectTrades(rows)
}

func collectTrades(rows pgx.Rows) ([]*models.Trade, error) {
	trades := make([]*models.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning trade row: %w", err)
		}
		trades = append(trades, trade)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", rows.Err())
	}
	return trades, nil
}

// Helper type to allow using either pgx.Pool or pgx.Tx
type PgxQuerier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// Querier returns the transaction if not nil, otherwise the pool.
func Querier(tx pgx.Tx) PgxQuerier {
	if tx != nil {
		return tx
	}
	return DB
}
