// Package monitor drives the sampling loop: each tick resolves the progress
// key, locates the monitored process, extracts its samples and appends them
// to the store under the configured version tag.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/syncscope/syncscope/pkg/procwatch"
	"github.com/syncscope/syncscope/pkg/progress"
	"github.com/syncscope/syncscope/pkg/storage"
	"github.com/syncscope/syncscope/sample"
)

// Locator finds the monitored process. ErrNotFound is an expected state.
type Locator interface {
	Locate(ctx context.Context) (*procwatch.Target, error)
}

// Extractor reads resource samples off a located process.
type Extractor interface {
	Memory(ctx context.Context, t *procwatch.Target) (sample.Memory, error)
	CPU(ctx context.Context, t *procwatch.Target) (sample.CPU, error)
	Prime(ctx context.Context, t *procwatch.Target) error
}

// Status is what one tick observed, independent of what it persisted.
type Status struct {
	Key         int64
	SyncPercent *float64
	CPUPercent  *float64
	RSS         *float64
	Located     bool
	PID         int32
}

// String renders the per-tick status line. Missing readings show as N/A,
// never as zero.
func (s Status) String() string {
	syncPct := "N/A"
	if s.SyncPercent != nil {
		syncPct = fmt.Sprintf("%.2f", *s.SyncPercent)
	}
	cpu := "N/A"
	if s.CPUPercent != nil {
		cpu = fmt.Sprintf("%.1f", *s.CPUPercent)
	}
	rss := "N/A"
	if s.RSS != nil {
		rss = fmt.Sprintf("%.1f", *s.RSS)
	}

	return fmt.Sprintf("Slot %d | Sync Progress: %s%% | CPU %s%% | RSS %sMB", s.Key, syncPct, cpu, rss)
}

type Service interface {
	// Prime seeds the CPU percent baseline before the loop starts. A
	// missing process is not an error; the first located tick reads flat.
	Prime(ctx context.Context) error

	// Tick runs one sampling pass. It returns an error only when the whole
	// tick was skipped, before any sampling; contained per-channel failures
	// surface in logs and as gaps in the status.
	Tick(ctx context.Context) (Status, error)
}

type service struct {
	locator   Locator
	extractor Extractor
	source    progress.Source
	store     storage.Store
	version   string
	logger    *slog.Logger
}

// NewService wires the sampling loop. A nil source switches to wall-clock
// keys (Unix milliseconds) for setups without a reachable progress database.
func NewService(locator Locator, extractor Extractor, source progress.Source, store storage.Store, version string, logger *slog.Logger) Service {
	return &service{
		locator:   locator,
		extractor: extractor,
		source:    source,
		store:     store,
		version:   version,
		logger:    logger,
	}
}

func (svc *service) Prime(ctx context.Context) error {
	target, err := svc.locator.Locate(ctx)
	if err != nil {
		if errors.Is(err, procwatch.ErrNotFound) {
			return nil
		}

		return err
	}

	return svc.extractor.Prime(ctx, target)
}

func (svc *service) Tick(ctx context.Context) (Status, error) {
	key, syncPct, err := svc.resolveKey(ctx)
	if err != nil {
		return Status{}, err
	}

	status := Status{Key: key, SyncPercent: syncPct}

	target, err := svc.locator.Locate(ctx)
	switch {
	case err == nil:
		status.Located = true
		status.PID = target.PID
		svc.sampleMemory(ctx, target, key, &status)
		svc.sampleCPU(ctx, target, key, &status)
	case errors.Is(err, procwatch.ErrNotFound):
		svc.logger.Debug("monitored process not found", slog.Int64("key", key))
	default:
		svc.logger.Warn("process scan failed", slog.String("error", err.Error()))
	}

	record := sample.VersionRecord{Timestamp: time.Now(), Version: svc.version}
	if err := svc.store.AppendVersion(ctx, record); err != nil {
		svc.logger.Warn("version record append failed", slog.String("error", err.Error()))
	}

	return status, nil
}

// resolveKey gates the tick: without a key nothing gets written.
func (svc *service) resolveKey(ctx context.Context) (int64, *float64, error) {
	if svc.source == nil {
		return time.Now().UnixMilli(), nil, nil
	}

	key, err := svc.source.Marker(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("progress marker: %w", err)
	}

	syncPct, err := svc.source.SyncPercent(ctx)
	if err != nil {
		svc.logger.Warn("sync percent unavailable", slog.String("error", err.Error()))
		syncPct = nil
	}

	return key, syncPct, nil
}

func (svc *service) sampleMemory(ctx context.Context, target *procwatch.Target, key int64, status *Status) {
	m, err := svc.extractor.Memory(ctx, target)
	if err != nil {
		svc.logger.Warn("memory extraction failed", slog.String("error", err.Error()))

		return
	}

	m.Key = key
	m.Version = svc.version
	status.RSS = m.RSS

	if err := svc.store.AppendMemory(ctx, m); err != nil {
		svc.logger.Warn("memory append failed", slog.String("error", err.Error()))
	}
}

func (svc *service) sampleCPU(ctx context.Context, target *procwatch.Target, key int64, status *Status) {
	c, err := svc.extractor.CPU(ctx, target)
	if err != nil {
		svc.logger.Warn("cpu extraction failed", slog.String("error", err.Error()))

		return
	}

	c.Key = key
	c.Version = svc.version
	status.CPUPercent = c.Percent

	if err := svc.store.AppendCPU(ctx, c); err != nil {
		svc.logger.Warn("cpu append failed", slog.String("error", err.Error()))
	}
}
