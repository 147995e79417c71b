package database

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/user/nairaswap/backend/internal/models"
)

const testCurrency = "NGN"

// openTestDB connects the package globals to the database named by
// DATABASE_URL and applies the schema. Tests needing a live database skip
// when none is configured.
func openTestDB(t *testing.T) context.Context {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database-backed test in short mode")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	require.NoError(t, InitDB(dsn))
	t.Cleanup(CloseDB)
	require.NoError(t, Migrate(ctx))
	return ctx
}

func createTestUser(ctx context.Context, t *testing.T) *models.User {
	t.Helper()
	email := fmt.Sprintf("settle-%s@example.com", uuid.NewString())
	user, err := CreateUser(ctx, email, "not-a-real-hash", "Settle Tester", nil, testCurrency)
	require.NoError(t, err)
	return user
}

// submitTestTrade creates a pending gift card trade plus its pending ledger
// row the same way the submission handler does: 50 USD at 900 NGN/$.
func submitTestTrade(ctx context.Context, t *testing.T, userID uuid.UUID) *models.Trade {
	t.Helper()
	brand, country := "Amazon", "US"
	cardValue := decimal.NewFromInt(50)
	rate := decimal.NewFromInt(900)

	trade := &models.Trade{
		UserID:    userID,
		Kind:      models.KindGiftCard,
		Rate:      rate,
		Payout:    models.ComputePayout(cardValue, rate),
		Brand:     &brand,
		Country:   &country,
		CardValue: &cardValue,
	}

	tx, err := DB.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	require.NoError(t, CreateTrade(ctx, tx, trade))

	ref := trade.ID.String()
	desc := "Amazon US gift card"
	entry := &models.Transaction{
		UserID:      userID,
		Type:        models.TxTypeGiftCardTrade,
		Amount:      trade.Payout,
		Status:      models.TxStatusPending,
		Reference:   &ref,
		Description: &desc,
	}
	require.NoError(t, InsertTransactionInTx(ctx, tx, entry))
	require.NoError(t, tx.Commit(ctx))
	return trade
}

func walletBalance(ctx context.Context, t *testing.T, userID uuid.UUID) decimal.Decimal {
	t.Helper()
	wallet, err := GetWallet(ctx, userID, testCurrency)
	require.NoError(t, err)
	require.NotNil(t, wallet)
	return wallet.Balance
}

func TestReviewTradeApproveCreditsExactlyOnce(t *testing.T) {
	ctx := openTestDB(t)
	user := createTestUser(ctx, t)
	trade := submitTestTrade(ctx, t, user.ID)
	want := decimal.NewFromInt(45000)
	require.True(t, trade.Payout.Equal(want), "payout %s, want %s", trade.Payout, want)

	// A rate change after submission must not move the locked payout.
	_, err := UpsertGiftCardRate(ctx, "Amazon", "US", decimal.NewFromInt(1200), true)
	require.NoError(t, err)

	notes := "card verified"
	reviewed, err := ReviewTrade(ctx, trade.ID, models.StatusApproved, &notes, nil, testCurrency)
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, reviewed.Status)
	require.True(t, reviewed.Payout.Equal(want), "payout moved to %s after rate change", reviewed.Payout)

	balance := walletBalance(ctx, t, user.ID)
	require.True(t, balance.Equal(want), "balance %s, want %s", balance, want)

	// Exactly one completed ledger row, and it reconciles with the balance.
	entries, err := GetUserTransactions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, models.TxStatusCompleted, entries[0].Status)

	sum, err := SumCompletedCredits(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, sum.Equal(balance), "ledger sum %s, balance %s", sum, balance)

	// Re-reviewing a settled trade conflicts and moves no money.
	_, err = ReviewTrade(ctx, trade.ID, models.StatusApproved, nil, nil, testCurrency)
	require.ErrorIs(t, err, models.ErrInvalidTransition)
	require.True(t, walletBalance(ctx, t, user.ID).Equal(want))
}

func TestReviewTradeRejectIsTerminal(t *testing.T) {
	ctx := openTestDB(t)
	user := createTestUser(ctx, t)
	trade := submitTestTrade(ctx, t, user.ID)

	notes := "image unreadable"
	reviewed, err := ReviewTrade(ctx, trade.ID, models.StatusRejected, &notes, nil, testCurrency)
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, reviewed.Status)

	require.True(t, walletBalance(ctx, t, user.ID).IsZero(), "rejection must not credit")

	entries, err := GetUserTransactions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, models.TxStatusFailed, entries[0].Status)

	// A rejected trade cannot be flipped to approved afterwards.
	_, err = ReviewTrade(ctx, trade.ID, models.StatusApproved, nil, nil, testCurrency)
	require.ErrorIs(t, err, models.ErrInvalidTransition)
	require.True(t, walletBalance(ctx, t, user.ID).IsZero())
}

func TestConcurrentReviewsCreditExactlyOnce(t *testing.T) {
	ctx := openTestDB(t)
	user := createTestUser(ctx, t)
	trade := submitTestTrade(ctx, t, user.ID)

	const reviewers = 8
	errs := make([]error, reviewers)
	var wg sync.WaitGroup
	for i := 0; i < reviewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ReviewTrade(ctx, trade.ID, models.StatusApproved, nil, nil, testCurrency)
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			require.ErrorIs(t, err, models.ErrInvalidTransition)
		}
	}
	require.Equal(t, 1, won, "exactly one reviewer may win the status flip")

	balance := walletBalance(ctx, t, user.ID)
	require.True(t, balance.Equal(trade.Payout), "balance %s, want single payout %s", balance, trade.Payout)

	sum, err := SumCompletedCredits(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, sum.Equal(trade.Payout))
}

func TestReviewTradeUnknownID(t *testing.T) {
	ctx := openTestDB(t)

	_, err := ReviewTrade(ctx, uuid.New(), models.StatusApproved, nil, nil, testCurrency)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestReviewTradeRejectsNonTerminalDecision(t *testing.T) {
	ctx := openTestDB(t)
	user := createTestUser(ctx, t)
	trade := submitTestTrade(ctx, t, user.ID)

	_, err := ReviewTrade(ctx, trade.ID, models.StatusPending, nil, nil, testCurrency)
	require.ErrorIs(t, err, models.ErrInvalidInput)
	require.True(t, walletBalance(ctx, t, user.ID).IsZero())
}
