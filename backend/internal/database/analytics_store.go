package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/user/nairaswap/backend/internal/models"
)

// GetAdminStats derives the read-only analytics snapshot from the trade
// ledger and user roster. It never writes; concurrent reviews may make it
// momentarily stale, which is fine for a dashboard.
func GetAdminStats(ctx context.Context) (*models.AdminStats, error) {
	stats := &models.AdminStats{}
	monthStart := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1-time.Now().UTC().Day())

	query := `SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM users WHERE created_at >= $1),
		(SELECT COUNT(*) FROM trades),
		(SELECT COUNT(*) FROM trades WHERE created_at >= $1),
		(SELECT COUNT(*) FROM trades WHERE kind = 'gift_card'),
		(SELECT COUNT(*) FROM trades WHERE kind = 'bitcoin'),
		(SELECT COUNT(*) FROM trades WHERE status = 'pending'),
		(SELECT COUNT(*) FROM trades WHERE status = 'approved'),
		(SELECT COALESCE(SUM(payout_amount), 0)::text FROM trades WHERE status = 'approved'),
		(SELECT COALESCE(SUM(payout_amount), 0)::text FROM trades WHERE status = 'approved' AND created_at >= $1)`

	var totalVolumeStr, volumeMonthStr string
	err := DB.QueryRow(ctx, query, monthStart).Scan(
		&stats.TotalUsers, &stats.NewUsersMonth,
		&stats.TotalTrades, &stats.TradesMonth,
		&stats.GiftCardTrades, &stats.BitcoinTrades,
		&stats.PendingTrades, &stats.CompletedTrades,
		&totalVolumeStr, &volumeMonthStr,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying admin stats: %w", err)
	}

	if stats.TotalVolume, err = decimal.NewFromString(totalVolumeStr); err != nil {
		return nil, fmt.Errorf("parse total volume: %w", err)
	}
	if stats.VolumeMonth, err = decimal.NewFromString(volumeMonthStr); err != nil {
		return nil, fmt.Errorf("parse month volume: %w", err)
	}
	return stats, nil
}
