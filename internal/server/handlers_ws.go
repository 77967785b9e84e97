package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/mariusrugan/credit-card-tx-api/internal/metrics"
	"github.com/mariusrugan/credit-card-tx-api/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // streaming API consumed by arbitrary origins
	},
}

func (s *Server) handleWebSocket(c echo.Context) error {
	ip := c.RealIP()
	if !s.rateLimiter.Allow(ip) {
		metrics.WebSocketRejectedTotal.WithLabelValues("rate_limited").Inc()
		return c.String(http.StatusTooManyRequests, "Connection rate limit exceeded")
	}

	if !s.connLimiter.Acquire() {
		metrics.WebSocketRejectedTotal.WithLabelValues("capacity").Inc()
		return c.String(http.StatusServiceUnavailable, "Server at connection capacity")
	}
	defer s.connLimiter.Release()

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	metrics.WebSocketConnectionsTotal.Inc()
	metrics.WebSocketActiveConnections.Inc()
	defer metrics.WebSocketActiveConnections.Dec()

	slog.Debug("Client connected", "remote_addr", conn.RemoteAddr().String())

	// Process shutdown does not terminate open sessions; only their own
	// socket does. Hence a background context, not the request's.
	sess := ws.NewSession(conn, s.hub, s.clock)
	sess.Run(context.Background())

	return nil
}
