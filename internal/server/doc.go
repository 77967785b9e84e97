// Package server implements the HTTP server using Echo framework.
//
// Routes: /health (liveness for orchestrators), /metrics (prometheus),
// /ws/v1 (WebSocket upgrade into a connection session).
package server
