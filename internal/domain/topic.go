package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownTopic is returned by ParseTopic for channel names outside the
// closed topic set.
var ErrUnknownTopic = errors.New("unknown topic")

// Topic is a named category of event clients subscribe to independently.
// The set is closed; Topic doubles as the wire discriminator and as a set key.
type Topic string

const (
	TopicHeartbeat    Topic = "heartbeat"
	TopicTransactions Topic = "transactions"
)

// ParseTopic maps a wire channel name onto a Topic.
func ParseTopic(s string) (Topic, error) {
	switch Topic(s) {
	case TopicHeartbeat:
		return TopicHeartbeat, nil
	case TopicTransactions:
		return TopicTransactions, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTopic, s)
	}
}

func (t Topic) String() string {
	return string(t)
}
