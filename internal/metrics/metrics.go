package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Broadcast Hub Metrics
var (
	// HubPublishedTotal tracks messages published per topic
	HubPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_published_messages_total",
			Help: "Total messages published to the broadcast hub by topic",
		},
		[]string{"topic"},
	)

	// HubDroppedTotal tracks messages evicted from slow subscribers' buffers
	HubDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_dropped_messages_total",
			Help: "Total messages dropped for lagging subscribers by topic",
		},
		[]string{"topic"},
	)

	// HubSubscribers tracks currently attached subscribers per topic
	HubSubscribers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hub_subscribers",
			Help: "Currently attached hub subscribers by topic",
		},
		[]string{"topic"},
	)
)

// WebSocket Metrics
var (
	// WebSocketActiveConnections tracks currently open client connections
	WebSocketActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_active_connections",
			Help: "Currently open WebSocket connections",
		},
	)

	// WebSocketConnectionsTotal tracks accepted connections since start
	WebSocketConnectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_connections_total",
			Help: "Total accepted WebSocket connections",
		},
	)

	// WebSocketRejectedTotal tracks refused upgrade attempts by reason
	WebSocketRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_rejected_connections_total",
			Help: "Total rejected WebSocket connection attempts by reason",
		},
		[]string{"reason"},
	)
)

// Session Metrics
var (
	// SessionMessagesSentTotal tracks envelopes written to clients by topic
	SessionMessagesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_messages_sent_total",
			Help: "Total broadcast envelopes written to clients by topic",
		},
		[]string{"topic"},
	)

	// SessionCommandErrorsTotal tracks discarded inbound commands by reason
	SessionCommandErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_command_errors_total",
			Help: "Total discarded inbound client commands by reason",
		},
		[]string{"reason"},
	)
)
