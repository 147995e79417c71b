package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/user/nairaswap/backend/internal/models"
)

// ListBankAccounts retrieves a user's saved payout destinations.
func ListBankAccounts(ctx context.Context, userID uuid.UUID) ([]*models.BankAccount, error) {
	accounts := make([]*models.BankAccount, 0)
	query := `SELECT id, user_id, bank_name, account_name, account_number, is_default, created_at
			  FROM bank_accounts WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := DB.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying bank accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		a := &models.BankAccount{}
		err := rows.Scan(&a.ID, &a.UserID, &a.BankName, &a.AccountName, &a.AccountNumber, &a.IsDefault, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning bank account row for user %s: %w", userID, err)
		}
		accounts = append(accounts, a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating bank account rows for user %s: %w", userID, rows.Err())
	}
	return accounts, nil
}

// CreateBankAccount saves a payout destination. Setting a default clears the
// previous one in the same transaction.
func CreateBankAccount(ctx context.Context, account *models.BankAccount) error {
	tx, err := DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting bank account transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if account.IsDefault {
		if _, err := tx.Exec(ctx,
			`UPDATE bank_accounts SET is_default = FALSE WHERE user_id = $1`, account.UserID); err != nil {
			return fmt.Errorf("error clearing default bank account for user %s: %w", account.UserID, err)
		}
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO bank_accounts (user_id, bank_name, account_name, account_number, is_default)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		account.UserID, account.BankName, account.AccountName, account.AccountNumber, account.IsDefault,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating bank account for user %s: %w", account.UserID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing bank account for user %s: %w", account.UserID, err)
	}
	return nil
}

// DeleteBankAccount removes a payout destination owned by the user.
func DeleteBankAccount(ctx context.Context, userID, accountID uuid.UUID) error {
	cmdTag, err := DB.Exec(ctx,
		`DELETE FROM bank_accounts WHERE id = $1 AND user_id = $2`, accountID, userID)
	if err != nil {
		return fmt.Errorf("error deleting bank account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() != 1 {
		return models.ErrNotFound
	}
	return nil
}
