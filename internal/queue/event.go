// Package queue defines message payloads exchanged over the message broker.
package queue

// CatalogSeededQueue is the durable queue catalog.seeded events go to.
const CatalogSeededQueue = "catalog.seeded"

// CatalogSeededEvent is published after the store has been reset and the
// reference data loaded.  Consumers can use it to invalidate caches or
// audit restarts without querying the store.
type CatalogSeededEvent struct {
	Driver        string `json:"driver"`
	Manufacturers int64  `json:"manufacturers"`
	Models        int64  `json:"models"`
	Cars          int64  `json:"cars"`
	SeededAt      string `json:"seeded_at"`
}
