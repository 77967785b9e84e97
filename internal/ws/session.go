package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/mariusrugan/credit-card-tx-api/internal/domain"
	"github.com/mariusrugan/credit-card-tx-api/internal/hub"
	"github.com/mariusrugan/credit-card-tx-api/internal/metrics"
)

const writeDeadline = 5 * time.Second

// Session owns one upgraded client connection from accept to teardown.
type Session struct {
	conn     *websocket.Conn
	hub      *hub.Hub
	registry *Registry
	clock    clockwork.Clock
	log      *slog.Logger
}

func NewSession(conn *websocket.Conn, h *hub.Hub, clock clockwork.Clock) *Session {
	return &Session{
		conn:     conn,
		hub:      h,
		registry: NewRegistry(),
		clock:    clock,
		log:      slog.With("remote_addr", conn.RemoteAddr().String()),
	}
}

// Run drives both halves of the connection and blocks until the session is
// fully torn down. The first half to terminate cancels its sibling; the
// shared context unblocks the write half directly and a watcher closes the
// connection to unblock a pending read.
func (s *Session) Run(ctx context.Context) {
	heartbeats := s.hub.Heartbeats.Subscribe()
	defer heartbeats.Unsubscribe()
	transactions := s.hub.Transactions.Subscribe()
	defer transactions.Unsubscribe()

	s.log.Debug("Session opened")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.readLoop()
	})
	g.Go(func() error {
		return s.writeLoop(ctx, heartbeats, transactions)
	})
	g.Go(func() error {
		<-ctx.Done()
		return s.conn.Close()
	})

	if err := g.Wait(); err != nil {
		s.log.Debug("Session closed", "cause", err)
	}
}

// readLoop is the inbound half: it applies textual command frames to the
// registry and terminates when the inbound stream ends.
func (s *Session) readLoop() error {
	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if msgType != websocket.TextMessage {
			continue
		}
		s.handleCommand(data)
	}
}

// handleCommand applies one client frame. Bad input is logged and dropped;
// the client gets no error frame and the connection stays up.
func (s *Session) handleCommand(data []byte) {
	var cmd command
	if err := json.Unmarshal(data, &cmd); err != nil {
		s.log.Warn("Discarding malformed command frame", "error", err)
		metrics.SessionCommandErrorsTotal.WithLabelValues("malformed").Inc()
		return
	}

	if cmd.Method != methodSubscribe && cmd.Method != methodUnsubscribe {
		s.log.Warn("Discarding command with unknown method", "method", cmd.Method)
		metrics.SessionCommandErrorsTotal.WithLabelValues("unknown_method").Inc()
		return
	}

	topic, err := domain.ParseTopic(cmd.Params.Channel)
	if err != nil {
		s.log.Warn("Discarding command for unknown channel", "channel", cmd.Params.Channel)
		metrics.SessionCommandErrorsTotal.WithLabelValues("unknown_channel").Inc()
		return
	}

	switch cmd.Method {
	case methodSubscribe:
		s.registry.Subscribe(topic)
		s.log.Debug("Subscribed", "channel", topic)
	case methodUnsubscribe:
		s.registry.Unsubscribe(topic)
		s.log.Debug("Unsubscribed", "channel", topic)
	}
}

// writeLoop is the outbound half: it races the topic receive handles and
// forwards what the registry admits. Heartbeats bypass the registry and go
// to every session. Receive-side lag is logged and survived; a write failure
// terminates the half.
func (s *Session) writeLoop(ctx context.Context, heartbeats *hub.Subscription[domain.Heartbeat], transactions *hub.Subscription[domain.Transaction]) error {
	hbCh := heartbeats.C()
	txCh := transactions.C()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case hb, ok := <-hbCh:
			if !ok {
				s.log.Warn("Heartbeat channel closed")
				hbCh = nil
				continue
			}
			if n := heartbeats.Missed(); n > 0 {
				s.log.Warn("Missed heartbeats for slow consumer", "missed", n)
			}
			if err := s.write(heartbeatEnvelope(hb)); err != nil {
				return fmt.Errorf("write heartbeat: %w", err)
			}

		case tx, ok := <-txCh:
			if !ok {
				s.log.Warn("Transactions channel closed")
				txCh = nil
				continue
			}
			if n := transactions.Missed(); n > 0 {
				s.log.Warn("Missed transactions for slow consumer", "missed", n)
			}
			if !s.registry.Contains(domain.TopicTransactions) {
				continue
			}
			if err := s.write(transactionsEnvelope(tx)); err != nil {
				return fmt.Errorf("write transaction: %w", err)
			}
		}
	}
}

func (s *Session) write(env envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	_ = s.conn.SetWriteDeadline(s.clock.Now().Add(writeDeadline))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}

	metrics.SessionMessagesSentTotal.WithLabelValues(env.Channel).Inc()
	return nil
}
