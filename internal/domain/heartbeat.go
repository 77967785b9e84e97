package domain

// Heartbeat is the periodic liveness pulse broadcast to every client.
type Heartbeat struct {
	Status string `json:"status"`
}
