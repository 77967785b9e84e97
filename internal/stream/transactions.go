package stream

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mariusrugan/credit-card-tx-api/internal/domain"
	"github.com/mariusrugan/credit-card-tx-api/internal/hub"
)

// mockInterval is the emission cadence of the mock transaction source.
const mockInterval = 100 * time.Millisecond

// Source is an upstream transaction feed. The returned channel is closed
// when the source stops, at the latest when ctx is cancelled.
type Source interface {
	Stream(ctx context.Context) <-chan domain.Transaction
}

// MockSource emits randomized transactions on a fixed short interval.
type MockSource struct {
	clock    clockwork.Clock
	interval time.Duration
}

func NewMockSource(clock clockwork.Clock) *MockSource {
	return &MockSource{clock: clock, interval: mockInterval}
}

func (m *MockSource) Stream(ctx context.Context) <-chan domain.Transaction {
	out := make(chan domain.Transaction)

	go func() {
		defer close(out)
		ticker := m.clock.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				select {
				case out <- domain.NewMockTransaction(m.clock.Now()):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// TransactionProducer merges one or more sources into the transactions topic.
// The hub does not distinguish message origin.
type TransactionProducer struct {
	hub     *hub.Hub
	sources []Source
}

func NewTransactionProducer(h *hub.Hub, sources ...Source) *TransactionProducer {
	return &TransactionProducer{hub: h, sources: sources}
}

// Run publishes every merged transaction until ctx is cancelled or all
// sources stop.
func (p *TransactionProducer) Run(ctx context.Context) error {
	merged := merge(ctx, p.sources)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Transaction producer shutting down")
			return nil
		case tx, ok := <-merged:
			if !ok {
				slog.Info("All transaction sources stopped")
				return nil
			}
			p.hub.Transactions.Publish(tx)
		}
	}
}

// merge fans the sources into a single consolidated feed.
func merge(ctx context.Context, sources []Source) <-chan domain.Transaction {
	out := make(chan domain.Transaction)

	var wg sync.WaitGroup
	for _, src := range sources {
		ch := src.Stream(ctx)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tx := range ch {
				select {
				case out <- tx:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
