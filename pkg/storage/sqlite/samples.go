package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/syncscope/syncscope/pkg/storage"
	"github.com/syncscope/syncscope/sample"
)

func (s *store) AppendMemory(ctx context.Context, m sample.Memory) error {
	query := `INSERT INTO memory_samples (key, rss, vms, uss, pss, swap, shared, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	if m.Version == "" {
		m.Version = storage.DefaultVersion
	}

	_, err := s.db.ExecContext(ctx, query,
		m.Key, m.RSS, m.VMS, m.USS, m.PSS, m.Swap, m.Shared, m.Version,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrAppend, err)
	}

	return nil
}

func (s *store) AppendCPU(ctx context.Context, c sample.CPU) error {
	query := `INSERT INTO cpu_samples (key, cpu_percent, user_time, system_time, children_user, children_system, iowait, ctx_switches, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if c.Version == "" {
		c.Version = storage.DefaultVersion
	}

	_, err := s.db.ExecContext(ctx, query,
		c.Key, c.Percent, c.UserTime, c.SystemTime,
		c.ChildrenUser, c.ChildrenSystem, c.IOWait, c.CtxSwitches, c.Version,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrAppend, err)
	}

	return nil
}

func (s *store) LoadMemory(ctx context.Context, versions []string) ([]sample.Memory, error) {
	samples := make([]sample.Memory, 0)
	if len(versions) == 0 {
		return samples, nil
	}

	query, args, err := sqlx.In(`SELECT key, rss, vms, uss, pss, swap, shared, version
		FROM memory_samples WHERE version IN (?) ORDER BY key, rowid`, versions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrDBQuery, err)
	}

	if err := s.db.SelectContext(ctx, &samples, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrDBScan, err)
	}

	return samples, nil
}

func (s *store) LoadCPU(ctx context.Context, versions []string) ([]sample.CPU, error) {
	samples := make([]sample.CPU, 0)
	if len(versions) == 0 {
		return samples, nil
	}

	query, args, err := sqlx.In(`SELECT key, cpu_percent, user_time, system_time, children_user, children_system, iowait, ctx_switches, version
		FROM cpu_samples WHERE version IN (?) ORDER BY key, rowid`, versions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrDBQuery, err)
	}

	if err := s.db.SelectContext(ctx, &samples, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrDBScan, err)
	}

	return samples, nil
}
