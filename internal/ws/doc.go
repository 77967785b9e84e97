// Package ws implements the per-connection WebSocket session.
//
// A session splits its connection into two concurrent halves: the read half
// parses subscribe/unsubscribe commands and mutates the session's private
// topic registry; the write half races receive handles on every hub topic
// and forwards events the registry admits. Whichever half terminates first
// cancels the other, so a session never leaks a socket or a goroutine once
// either direction is unusable.
package ws
