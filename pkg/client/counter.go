// Package client is the Go SDK for the counthub counter API. It wraps
// the HTTP transport with a two-tier cache: a session-scoped visit flag
// and a TTL-bounded value cache, both over an injectable Store.
package client

import "time"

// Counter mirrors the counter API response body.
type Counter struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Count     int64     `json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Actions accepted by UpdateCounter.
const (
	ActionIncrement = "increment"
	ActionReset     = "reset"
)

// DefaultTTL is the validity window for cached counter snapshots.
const DefaultTTL = 5 * time.Minute
