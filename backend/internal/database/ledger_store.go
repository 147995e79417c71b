package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/user/nairaswap/backend/internal/models"
)

// InsertTransactionInTx appends one ledger row. The ledger is append-only:
// rows are inserted here and settled exactly once via SettleTradeTransactionInTx;
// nothing else touches them.
func InsertTransactionInTx(ctx context.Context, tx pgx.Tx, entry *models.Transaction) error {
	query := `INSERT INTO transactions (user_id, type, amount, status, reference, description)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at`

	querier := Querier(tx)
	err := querier.QueryRow(ctx, query,
		entry.UserID, entry.Type, entry.Amount.String(), entry.Status, entry.Reference, entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("error inserting transaction for user %s: %w", entry.UserID, err)
	}
	return nil
}

// SettleTradeTransactionInTx flips the ledger row referencing a trade from
// "pending" to its settled status. A missing or already-settled row means the
// caller's view of the trade is stale.
func SettleTradeTransactionInTx(ctx context.Context, tx pgx.Tx, tradeID uuid.UUID, status string) error {
	query := `UPDATE transactions SET status = $1
			  WHERE reference = $2 AND status = $3`

	cmdTag, err := tx.Exec(ctx, query, status, tradeID.String(), models.TxStatusPending)
	if err != nil {
		return fmt.Errorf("error settling transaction for trade %s: %w", tradeID, err)
	}
	if cmdTag.RowsAffected() != 1 {
		return fmt.Errorf("no pending transaction found for trade %s", tradeID)
	}
	return nil
}

// GetUserTransactions retrieves a user's ledger rows, most recent first.
func GetUserTransactions(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error) {
	entries := make([]*models.Transaction, 0)
	query := `SELECT id, user_id, type, amount::text, status, reference, description, created_at
			  FROM transactions WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := DB.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		entry := &models.Transaction{}
		var amountStr string
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Type, &amountStr, &entry.Status,
			&entry.Reference, &entry.Description, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction row for user %s: %w", userID, err)
		}
		if entry.Amount, err = decimal.NewFromString(amountStr); err != nil {
			return nil, fmt.Errorf("parse transaction amount: %w", err)
		}
		entries = append(entries, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows for user %s: %w", userID, rows.Err())
	}
	return entries, nil
}

// SumCompletedCredits returns the sum of a user's completed ledger amounts.
// Audit helper: it should always equal the wallet balance.
func SumCompletedCredits(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var sumStr string
	query := `SELECT COALESCE(SUM(amount), 0)::text FROM transactions
			  WHERE user_id = $1 AND status = $2`

	err := DB.QueryRow(ctx, query, userID, models.TxStatusCompleted).Scan(&sumStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error summing credits for user %s: %w", userID, err)
	}
	sum, err := decimal.NewFromString(sumStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse credit sum: %w", err)
	}
	return sum, nil
}
