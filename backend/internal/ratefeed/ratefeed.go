package ratefeed

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/user/nairaswap/backend/internal/database"
)

// RateUpdate is one bitcoin rate broadcast to websocket clients.
type RateUpdate struct {
	Rate decimal.Decimal `json:"rate"`
	Ts   int64           `json:"ts"` // Unix timestamp milliseconds
}

// Updates is the broadcast channel the websocket hub drains.
var Updates = make(chan RateUpdate, 100)

// Publish pushes a rate update without blocking; if the channel is full the
// update is dropped, the next poll re-broadcasts the latest rate anyway.
func Publish(rate decimal.Decimal) {
	update := RateUpdate{Rate: rate, Ts: time.Now().UnixMilli()}
	select {
	case Updates <- update:
	default:
		log.Println("Rate update channel full, dropping update")
	}
}

// InitFeed starts the background poller that re-reads the registry's current
// bitcoin rate and broadcasts changes. Admin appends also Publish directly,
// so clients see new rates immediately; the poller is the safety net.
func InitFeed() {
	log.Println("Initializing bitcoin rate feed...")
	go runFeed()
}

func runFeed() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	var last decimal.Decimal

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		current, err := database.GetCurrentBitcoinRate(ctx)
		cancel()
		if err != nil {
			// No rate yet, or the store hiccuped. Either way, nothing to broadcast.
			continue
		}
		if !current.Rate.Equal(last) {
			last = current.Rate
			Publish(current.Rate)
		}
	}
}
