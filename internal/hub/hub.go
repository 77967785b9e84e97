package hub

import "github.com/mariusrugan/credit-card-tx-api/internal/domain"

// heartbeatBufferSize is small and fixed: heartbeats are tiny, frequent
// enough, and losing one is harmless.
const heartbeatBufferSize = 16

// Hub aggregates one broadcast topic per event category. It is constructed
// once at process start and dependency-injected into producers and sessions;
// there is no ambient global.
type Hub struct {
	Heartbeats   *Topic[domain.Heartbeat]
	Transactions *Topic[domain.Transaction]
}

// New creates the hub. transactionBufferSize bounds each subscriber's unread
// transaction backlog.
func New(transactionBufferSize int) *Hub {
	return &Hub{
		Heartbeats:   NewTopic[domain.Heartbeat](domain.TopicHeartbeat.String(), heartbeatBufferSize),
		Transactions: NewTopic[domain.Transaction](domain.TopicTransactions.String(), transactionBufferSize),
	}
}
