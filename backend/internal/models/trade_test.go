package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestComputePayout(t *testing.T) {
	tests := []struct {
		name  string
		value string
		rate  string
		want  string
	}{
		{"gift card at 900 per dollar", "50", "900", "45000"},
		{"fractional card value", "25.50", "900", "22950"},
		{"bitcoin fraction", "0.05", "95000000", "4750000"},
		{"rounds to minor units", "0.015", "900", "13.5"},
		{"tiny btc amount rounds", "0.00000001", "95000000", "0.95"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := decimal.RequireFromString(tt.value)
			rate := decimal.RequireFromString(tt.rate)
			want := decimal.RequireFromString(tt.want)

			got := ComputePayout(value, rate)
			require.True(t, want.Equal(got), "want %s, got %s", want, got)
		})
	}
}

// Repeated credits of a decimal payout must sum exactly; this is why the
// wallet is decimal rather than float64.
func TestPayoutSumExact(t *testing.T) {
	payout := ComputePayout(decimal.RequireFromString("0.10"), decimal.RequireFromString("900"))

	sum := decimal.Zero
	for i := 0; i < 1000; i++ {
		sum = sum.Add(payout)
	}
	require.True(t, sum.Equal(decimal.RequireFromString("90000")), "got %s", sum)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from TradeStatus
		to   TradeStatus
		ok   bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusApproved, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusPending, false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.ok, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	require.False(t, StatusPending.IsTerminal())
	require.True(t, StatusApproved.IsTerminal())
	require.True(t, StatusRejected.IsTerminal())
}

func TestValidStatusAndKind(t *testing.T) {
	require.True(t, ValidStatus(StatusPending))
	require.True(t, ValidStatus(StatusApproved))
	require.True(t, ValidStatus(StatusRejected))
	require.False(t, ValidStatus(TradeStatus("cancelled")))

	require.True(t, ValidKind(KindGiftCard))
	require.True(t, ValidKind(KindBitcoin))
	require.False(t, ValidKind(TradeKind("stock")))
}
