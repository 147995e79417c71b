package ratefeed

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func drainUpdates() {
	for {
		select {
		case <-Updates:
		default:
			return
		}
	}
}

func TestPublishDeliversUpdate(t *testing.T) {
	drainUpdates()

	rate := decimal.RequireFromString("95000000")
	Publish(rate)

	select {
	case update := <-Updates:
		require.True(t, rate.Equal(update.Rate))
		require.NotZero(t, update.Ts)
	case <-time.After(time.Second):
		t.Fatal("expected a rate update")
	}
}

// A full channel must not block the publisher; the update is dropped instead.
func TestPublishNeverBlocks(t *testing.T) {
	drainUpdates()

	rate := decimal.RequireFromString("1")
	for i := 0; i < cap(Updates)+10; i++ {
		done := make(chan struct{})
		go func() {
			Publish(rate)
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Publish blocked on a full channel")
		}
	}

	drainUpdates()
}
