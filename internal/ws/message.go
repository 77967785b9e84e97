package ws

import "github.com/mariusrugan/credit-card-tx-api/internal/domain"

const (
	methodSubscribe   = "subscribe"
	methodUnsubscribe = "unsubscribe"
)

// command is the inbound client frame, discriminated by method.
type command struct {
	Method string        `json:"method"`
	Params commandParams `json:"params"`
}

type commandParams struct {
	Channel string `json:"channel"`
}

// envelope is the outbound broadcast frame, discriminated by channel.
type envelope struct {
	Channel string `json:"channel"`
	Data    any    `json:"data"`
}

func heartbeatEnvelope(hb domain.Heartbeat) envelope {
	return envelope{Channel: domain.TopicHeartbeat.String(), Data: hb}
}

// transactionsEnvelope wraps transactions in a batch. The schema supports
// batching; current producers always deliver batches of one.
func transactionsEnvelope(txs ...domain.Transaction) envelope {
	return envelope{Channel: domain.TopicTransactions.String(), Data: txs}
}
