// Package progress reads the synchronization state of the monitored db-sync
// database: the newest ledger slot it has written and an estimate of how far
// through chain history it is.
package progress

import (
	"context"
	"errors"
)

var (
	// ErrNoMarker means the database holds no usable progress row yet, an
	// expected state right after db-sync starts on an empty schema.
	ErrNoMarker = errors.New("no progress marker yet")
	ErrQuery    = errors.New("progress query error")
)

// Source reports sync progress. Both calls fail transiently while the
// database is down; callers skip the tick and try again on the next one.
type Source interface {
	// Marker returns the monotonic progress marker, the slot number of the
	// newest fully recorded block.
	Marker(ctx context.Context) (int64, error)

	// SyncPercent estimates completion. It returns nil without error before
	// the database holds enough history to estimate from.
	SyncPercent(ctx context.Context) (*float64, error)
}
