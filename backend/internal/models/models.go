package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a registered account
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // Store hash, exclude from JSON responses
	CreatedAt time.Time `json:"created_at"`
}

// Profile holds the user-facing details kept separate from credentials
type Profile struct {
	UserID    uuid.UUID `json:"user_id"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone,omitempty"`
	KYCStatus string    `json:"kyc_status"` // "pending", "verified", "rejected"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GiftCardRate is the admin-managed rate for a (brand, country) pair.
// Deactivated rates stay in place so historical trades keep their locked rate.
type GiftCardRate struct {
	ID        uuid.UUID       `json:"id"`
	Brand     string          `json:"brand"`
	Country   string          `json:"country"`
	Rate      decimal.Decimal `json:"rate"` // NGN per $1 of face value
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BitcoinRate is one entry of the append-only rate series. The ID is the
// insertion order; the highest ID is the current rate.
type BitcoinRate struct {
	ID        int64           `json:"id"`
	Rate      decimal.Decimal `json:"rate"` // NGN per BTC
	CreatedAt time.Time       `json:"created_at"`
}

// Trade is a single submission, gift card or bitcoin, discriminated by Kind.
// Rate and Payout are frozen at submission and never recomputed.
type Trade struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	Kind       TradeKind       `json:"kind"`
	Rate       decimal.Decimal `json:"rate"`
	Payout     decimal.Decimal `json:"payout_amount"`
	Status     TradeStatus     `json:"status"`
	AdminNotes *string         `json:"admin_notes,omitempty"`

	// Gift card fields (nil for bitcoin trades)
	Brand     *string          `json:"brand,omitempty"`
	Country   *string          `json:"country,omitempty"`
	CardValue *decimal.Decimal `json:"card_value,omitempty"` // declared face value in USD
	ImageURL  *string          `json:"image_url,omitempty"`  // evidence reference in object storage

	// Bitcoin fields (nil for gift card trades)
	BTCAmount  *decimal.Decimal `json:"btc_amount,omitempty"`
	BTCAddress *string          `json:"btc_address,omitempty"` // user's refund address
	TxHash     *string          `json:"tx_hash,omitempty"`     // settlement reference, set on approval only

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Wallet is the per-user balance for one currency. Exactly one row per
// (user, currency); only the settlement path mutates Balance.
type Wallet struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Transaction is one row of the append-only ledger tying a wallet movement to
// its originating trade. Created at submission in "pending" and settled once.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Type        string          `json:"type"` // e.g. "gift_card_trade", "bitcoin_trade"
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"` // "pending", "completed", "failed"
	Reference   *string         `json:"reference,omitempty"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BankAccount is a saved payout destination. No funds move through it here.
type BankAccount struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	BankName      string    `json:"bank_name"`
	AccountName   string    `json:"account_name"`
	AccountNumber string    `json:"account_number"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
}

// AdminStats is the read-only analytics snapshot.
type AdminStats struct {
	TotalUsers      int64           `json:"total_users"`
	NewUsersMonth   int64           `json:"new_users_month"`
	TotalTrades     int64           `json:"total_trades"`
	TradesMonth     int64           `json:"trades_month"`
	GiftCardTrades  int64           `json:"gift_card_trades"`
	BitcoinTrades   int64           `json:"bitcoin_trades"`
	PendingTrades   int64           `json:"pending_trades"`
	CompletedTrades int64           `json:"completed_trades"`
	TotalVolume     decimal.Decimal `json:"total_volume"` // sum of approved payouts
	VolumeMonth     decimal.Decimal `json:"volume_month"`
}
