package repository

import (
	"context"

	"pagehits/counthub/internal/model"
)

// CounterRepository owns the authoritative counter rows. All mutation
// goes through single atomic statements; callers never read-then-write.
type CounterRepository interface {
	// GetOrCreate returns the row for name, inserting it with count 0 if
	// absent. Concurrent first visits must collapse onto one row.
	GetOrCreate(ctx context.Context, name string) (*model.Counter, error)
	// Increment atomically adds 1 to the row for name, inserting it with
	// count 1 if absent, and returns the resulting row. Concurrent
	// increments must all land.
	Increment(ctx context.Context, name string) (*model.Counter, error)
	// Reset sets count to 0 for an existing row. If no row exists it
	// returns a synthetic zero-count record without persisting one.
	Reset(ctx context.Context, name string) (*model.Counter, error)
}
