package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/user/nairaswap/backend/internal/models"
)

// ReviewTrade drives the pending -> approved | rejected transition.
//
// The status flip is a conditional update on status = 'pending', so it acts
// as the optimistic concurrency guard: of two concurrent reviews exactly one
// flips the row, the other sees zero rows affected and gets
// models.ErrInvalidTransition. On approval the status flip, the wallet credit
// and the ledger settlement commit as one transaction; the trade can never be
// approved without its credit, nor credited twice.
//
// Rejection is final. A rejected trade is not re-reviewable; the user
// submits a new trade instead.
func ReviewTrade(ctx context.Context, tradeID uuid.UUID, decision models.TradeStatus, adminNotes *string, settlementRef *string, currency string) (*models.Trade, error) {
	if !decision.IsTerminal() {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", models.ErrInvalidInput)
	}

	trade, err := GetTradeByID(ctx, tradeID)
	if err != nil {
		return nil, err // models.ErrNotFound or store failure
	}
	if !models.CanTransition(trade.Status, decision) {
		return nil, models.ErrInvalidTransition
	}

	tx, err := DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting review transaction for trade %s: %w", tradeID, err)
	}
	defer tx.Rollback(ctx)

	// The settlement reference only applies to approved bitcoin trades.
	var txHash *string
	if decision == models.StatusApproved && trade.Kind == models.KindBitcoin {
		txHash = settlementRef
	}

	// 1. Conditional status flip. This is the only write path out of pending.
	query := `UPDATE trades
			  SET status = $1, admin_notes = $2, tx_hash = COALESCE($3, tx_hash), updated_at = NOW()
			  WHERE id = $4 AND status = $5`

	cmdTag, err := tx.Exec(ctx, query, decision, adminNotes, txHash, tradeID, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("error updating trade %s status: %w", tradeID, err)
	}
	if cmdTag.RowsAffected() != 1 {
		// A concurrent reviewer already resolved this trade.
		return nil, models.ErrInvalidTransition
	}

	if decision == models.StatusApproved {
		// 2. Credit the owner's wallet by the locked payout.
		if err := EnsureWalletInTx(ctx, tx, trade.UserID, currency); err != nil {
			return nil, err
		}
		if err := CreditWalletInTx(ctx, tx, trade.UserID, currency, trade.Payout); err != nil {
			return nil, fmt.Errorf("error crediting payout for trade %s: %w", tradeID, err)
		}
		// 3. Settle the ledger entry referencing the trade.
		if err := SettleTradeTransactionInTx(ctx, tx, tradeID, models.TxStatusCompleted); err != nil {
			return nil, err
		}
	} else {
		// Rejection moves no money; the ledger entry records the outcome.
		if err := SettleTradeTransactionInTx(ctx, tx, tradeID, models.TxStatusFailed); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing review of trade %s: %w", tradeID, err)
	}

	log.Printf("Trade %s reviewed: %s", tradeID, decision)
	return GetTradeByID(ctx, tradeID)
}
