package database

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCurrentBitcoinRateIsLastAppended(t *testing.T) {
	ctx := openTestDB(t)

	first, err := AppendBitcoinRate(ctx, decimal.NewFromInt(95000000))
	require.NoError(t, err)
	second, err := AppendBitcoinRate(ctx, decimal.NewFromInt(96000000))
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID, "ids must follow insertion order")

	// Both rows may share a created_at tick; the serial key decides.
	current, err := GetCurrentBitcoinRate(ctx)
	require.NoError(t, err)
	require.Equal(t, second.ID, current.ID)
	require.True(t, current.Rate.Equal(second.Rate))
}
