package storage

import (
	"context"

	"github.com/syncscope/syncscope/sample"
)

// DefaultVersion tags rows appended without an explicit version tag, so that
// "no version" keeps a single representation in the store.
const DefaultVersion = "untagged"

// Store is an append-only time-series store for process samples. Loads never
// mutate; version filters with an empty tag list yield empty results.
type Store interface {
	AppendMemory(ctx context.Context, m sample.Memory) error
	AppendCPU(ctx context.Context, c sample.CPU) error
	AppendVersion(ctx context.Context, v sample.VersionRecord) error

	// DistinctVersions returns the version tags recorded in the store,
	// most recently observed first, without duplicates.
	DistinctVersions(ctx context.Context) ([]string, error)

	// LoadMemory returns memory samples for the given tags ordered by key,
	// insertion order preserved within equal keys.
	LoadMemory(ctx context.Context, versions []string) ([]sample.Memory, error)

	// LoadCPU is LoadMemory for the CPU series.
	LoadCPU(ctx context.Context, versions []string) ([]sample.CPU, error)

	Close() error
}
