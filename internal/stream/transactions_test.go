package stream

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariusrugan/credit-card-tx-api/internal/domain"
	"github.com/mariusrugan/credit-card-tx-api/internal/hub"
)

// stubSource replays a fixed set of transactions and stops.
type stubSource struct {
	txs []domain.Transaction
}

func (s stubSource) Stream(ctx context.Context) <-chan domain.Transaction {
	out := make(chan domain.Transaction, len(s.txs))
	for _, tx := range s.txs {
		out <- tx
	}
	close(out)
	return out
}

func TestMockSourceEmitsOnCadence(t *testing.T) {
	clock := clockwork.NewFakeClock()
	h := hub.New(100)
	sub := h.Transactions.Subscribe()
	defer sub.Unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- NewTransactionProducer(h, NewMockSource(clock)).Run(ctx)
	}()

	clock.BlockUntil(1)

	for i := range 3 {
		clock.Advance(mockInterval)
		select {
		case tx := <-sub.C():
			assert.Regexp(t, "^[0-9a-f]{32}$", tx.ID)
			assert.Equal(t, clock.Now().Format(time.RFC3339), tx.Timestamp)
		case <-time.After(time.Second):
			t.Fatalf("no transaction after tick %d", i)
		}
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("producer did not stop after cancellation")
	}
}

func TestTransactionProducerMergesSources(t *testing.T) {
	h := hub.New(100)
	sub := h.Transactions.Subscribe()
	defer sub.Unsubscribe()

	a := stubSource{txs: []domain.Transaction{{ID: "a1"}, {ID: "a2"}}}
	b := stubSource{txs: []domain.Transaction{{ID: "b1"}}}

	done := make(chan error, 1)
	go func() {
		done <- NewTransactionProducer(h, a, b).Run(context.Background())
	}()

	// Run returns once every source is exhausted.
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("producer did not stop after sources drained")
	}

	got := make(map[string]bool)
	for range 3 {
		select {
		case tx := <-sub.C():
			got[tx.ID] = true
		case <-time.After(time.Second):
			t.Fatal("timed out collecting merged transactions")
		}
	}
	assert.Equal(t, map[string]bool{"a1": true, "a2": true, "b1": true}, got)
}

func TestTransactionProducerWithNoSourcesStops(t *testing.T) {
	h := hub.New(100)

	done := make(chan error, 1)
	go func() {
		done <- NewTransactionProducer(h).Run(context.Background())
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("producer with no sources should return immediately")
	}
}
