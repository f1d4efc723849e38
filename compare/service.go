// Package compare selects version tags recorded in the store and assembles
// their sample series for side-by-side rendering.
package compare

import (
	"context"
	"errors"
	"fmt"

	"github.com/syncscope/syncscope/pkg/storage"
	"github.com/syncscope/syncscope/sample"
)

// ErrBadSelection rejects a selection as a whole: one bad index voids all of
// it, nothing is partially applied.
var ErrBadSelection = errors.New("invalid selection")

// SeriesSet holds aligned memory and CPU series for the same version tags.
// Every selected tag is present in both maps, possibly with an empty series;
// rows whose plotted reading was absent are skipped, never zero-filled.
type SeriesSet struct {
	Versions []string                  `json:"versions"`
	Memory   map[string][]sample.Point `json:"memory"`
	CPU      map[string][]sample.Point `json:"cpu"`
}

type Service interface {
	// ListVersions returns the recorded version tags, most recent first.
	ListVersions(ctx context.Context) ([]string, error)

	// Select resolves 1-based indices against the ListVersions order.
	Select(ctx context.Context, indices []int) ([]string, error)

	// Assemble loads the memory (RSS) and CPU (percent) series for the
	// given tags, ordered by key.
	Assemble(ctx context.Context, versions []string) (SeriesSet, error)
}

type service struct {
	store storage.Store
}

func NewService(store storage.Store) Service {
	return &service{store: store}
}

func (svc *service) ListVersions(ctx context.Context) ([]string, error) {
	return svc.store.DistinctVersions(ctx)
}

func (svc *service) Select(ctx context.Context, indices []int) ([]string, error) {
	versions, err := svc.store.DistinctVersions(ctx)
	if err != nil {
		return nil, err
	}

	chosen := make([]string, 0, len(indices))
	seen := make(map[string]bool, len(indices))
	for _, idx := range indices {
		if idx < 1 || idx > len(versions) {
			return nil, fmt.Errorf("%w: index %d out of range 1..%d", ErrBadSelection, idx, len(versions))
		}
		v := versions[idx-1]
		if seen[v] {
			continue
		}
		seen[v] = true
		chosen = append(chosen, v)
	}

	return chosen, nil
}

func (svc *service) Assemble(ctx context.Context, versions []string) (SeriesSet, error) {
	versions = dedupe(versions)

	set := SeriesSet{
		Versions: versions,
		Memory:   make(map[string][]sample.Point, len(versions)),
		CPU:      make(map[string][]sample.Point, len(versions)),
	}
	for _, v := range versions {
		set.Memory[v] = []sample.Point{}
		set.CPU[v] = []sample.Point{}
	}

	mems, err := svc.store.LoadMemory(ctx, versions)
	if err != nil {
		return SeriesSet{}, err
	}
	for _, m := range mems {
		if m.RSS == nil {
			continue
		}
		set.Memory[m.Version] = append(set.Memory[m.Version], sample.Point{Key: m.Key, Value: *m.RSS})
	}

	cpus, err := svc.store.LoadCPU(ctx, versions)
	if err != nil {
		return SeriesSet{}, err
	}
	for _, c := range cpus {
		if c.Percent == nil {
			continue
		}
		set.CPU[c.Version] = append(set.CPU[c.Version], sample.Point{Key: c.Key, Value: *c.Percent})
	}

	return set, nil
}

func dedupe(versions []string) []string {
	out := make([]string, 0, len(versions))
	seen := make(map[string]bool, len(versions))
	for _, v := range versions {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}

	return out
}
