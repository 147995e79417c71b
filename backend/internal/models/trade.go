package models

import "github.com/shopspring/decimal"

// TradeKind discriminates the two trade variants.
type TradeKind string

const (
	KindGiftCard TradeKind = "gift_card"
	KindBitcoin  TradeKind = "bitcoin"
)

// TradeStatus is the review state machine. "pending" is the sole initial
// state; "approved" and "rejected" are terminal.
type TradeStatus string

const (
	StatusPending  TradeStatus = "pending"
	StatusApproved TradeStatus = "approved"
	StatusRejected TradeStatus = "rejected"
)

// Ledger transaction types and statuses (mirrors the trades they track).
const (
	TxTypeGiftCardTrade = "gift_card_trade"
	TxTypeBitcoinTrade  = "bitcoin_trade"

	TxStatusPending   = "pending"
	TxStatusCompleted = "completed"
	TxStatusFailed    = "failed"
)

// ValidKind reports whether k is a known trade kind.
func ValidKind(k TradeKind) bool {
	return k == KindGiftCard || k == KindBitcoin
}

// ValidStatus reports whether s is a known trade status.
func ValidStatus(s TradeStatus) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// IsTerminal reports whether no further transition may leave s.
func (s TradeStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether from -> to is a legal review transition.
// Only pending -> approved and pending -> rejected are allowed.
func CanTransition(from, to TradeStatus) bool {
	return from == StatusPending && (to == StatusApproved || to == StatusRejected)
}

// ComputePayout returns declaredValue * rate rounded to currency minor units
// (2 fraction digits, bankers-free half-up). This runs once at submission;
// the result is stored on the trade and never recomputed.
func ComputePayout(declaredValue, rate decimal.Decimal) decimal.Decimal {
	return declaredValue.Mul(rate).Round(2)
}
