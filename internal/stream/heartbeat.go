package stream

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mariusrugan/credit-card-tx-api/internal/domain"
	"github.com/mariusrugan/credit-card-tx-api/internal/hub"
)

// HeartbeatInterval is the fixed liveness pulse cadence.
const HeartbeatInterval = 10 * time.Second

// HeartbeatProducer publishes a liveness pulse on a fixed cadence.
type HeartbeatProducer struct {
	hub   *hub.Hub
	clock clockwork.Clock
}

func NewHeartbeatProducer(h *hub.Hub, clock clockwork.Clock) *HeartbeatProducer {
	return &HeartbeatProducer{hub: h, clock: clock}
}

// Run publishes a heartbeat on every tick until ctx is cancelled, then
// returns without flushing.
func (p *HeartbeatProducer) Run(ctx context.Context) error {
	ticker := p.clock.NewTicker(HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Heartbeat producer shutting down")
			return nil
		case <-ticker.Chan():
			p.hub.Heartbeats.Publish(domain.Heartbeat{Status: "ok"})
		}
	}
}
