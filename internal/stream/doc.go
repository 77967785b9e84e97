// Package stream contains the event producers feeding the broadcast hub.
//
// Producers are long-lived background loops: generate an event, publish it,
// check the shutdown context, repeat. They exit promptly on cancellation
// without draining. The transaction feed is a fan-in merge of one or more
// sources; the bundled mock source can be swapped for a real upstream (a
// message queue, a database change feed) without touching the hub or the
// sessions.
package stream
