package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/user/nairaswap/backend/internal/models"
)

const walletColumns = `id, user_id, currency, balance::text, created_at, updated_at`

func scanWallet(row pgx.Row) (*models.Wallet, error) {
	w := &models.Wallet{}
	var balanceStr string
	err := row.Scan(&w.ID, &w.UserID, &w.Currency, &balanceStr, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if w.Balance, err = decimal.NewFromString(balanceStr); err != nil {
		return nil, fmt.Errorf("parse wallet balance: %w", err)
	}
	return w, nil
}

// GetWallet retrieves a user's wallet for a currency.
// Returns nil, nil if no wallet exists yet.
func GetWallet(ctx context.Context, userID uuid.UUID, currency string) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 AND currency = $2`

	wallet, err := scanWallet(DB.QueryRow(ctx, query, userID, currency))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No wallet for this currency yet
		}
		return nil, fmt.Errorf("error getting wallet for user %s currency %s: %w", userID, currency, err)
	}
	return wallet, nil
}

// GetOrCreateWallet retrieves a wallet or creates it with a zero balance if it
// doesn't exist. Reads never fail for a valid user.
func GetOrCreateWallet(ctx context.Context, userID uuid.UUID, currency string) (*models.Wallet, error) {
	wallet, err := GetWallet(ctx, userID, currency)
	if err != nil {
		return nil, err
	}
	if wallet != nil {
		return wallet, nil
	}

	// Wallet doesn't exist, create it
	query := `INSERT INTO wallets (user_id, currency)
			  VALUES ($1, $2)
			  ON CONFLICT (user_id, currency) DO NOTHING
			  RETURNING ` + walletColumns

	wallet, err = scanWallet(DB.QueryRow(ctx, query, userID, currency))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict occurred, the row exists now, so re-fetch it.
			log.Printf("Conflict creating wallet for user %s currency %s, re-fetching...", userID, currency)
			return GetWallet(ctx, userID, currency)
		}
		return nil, fmt.Errorf("error creating wallet for user %s currency %s: %w", userID, currency, err)
	}
	return wallet, nil
}

// EnsureWalletInTx creates the wallet row inside a transaction if missing,
// so a later credit has a row to update.
func EnsureWalletInTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, currency string) error {
	query := `INSERT INTO wallets (user_id, currency)
			  VALUES ($1, $2)
			  ON CONFLICT (user_id, currency) DO NOTHING`
	if _, err := tx.Exec(ctx, query, userID, currency); err != nil {
		return fmt.Errorf("error ensuring wallet for user %s currency %s: %w", userID, currency, err)
	}
	return nil
}

// CreditWalletInTx increases a wallet's balance. The caller must run it in
// the same transaction as the ledger write so the two commit or fail as one.
// Rejects non-positive amounts with models.ErrInvalidAmount.
func CreditWalletInTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, currency string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return models.ErrInvalidAmount
	}

	query := `UPDATE wallets
			  SET balance = balance + $1, updated_at = NOW()
			  WHERE user_id = $2 AND currency = $3`

	cmdTag, err := tx.Exec(ctx, query, amount.String(), userID, currency)
	if err != nil {
		return fmt.Errorf("error crediting wallet for user %s currency %s: %w", userID, currency, err)
	}
	if cmdTag.RowsAffected() != 1 {
		return fmt.Errorf("wallet not found for user %s currency %s", userID, currency)
	}
	return nil
}
