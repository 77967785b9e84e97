// Package hub implements the multi-topic broadcast hub.
//
// Each topic fans out every published message to all attached subscribers
// over per-subscriber bounded buffers. Publishing never blocks: when a
// subscriber's buffer is full its oldest unread message is evicted, so one
// slow client can never stall producers or its peers. Evictions surface to
// the subscriber as a missed-message count it can log and move past.
package hub
