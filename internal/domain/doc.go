// Package domain defines the core domain types: topics, heartbeats, and
// credit card transactions.
//
// Concept-oriented files with shared types only. No transport or hub code
// lives here, which keeps the package import-free for every other layer.
package domain
