package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/syncscope/syncscope/pkg/storage"
	"github.com/syncscope/syncscope/sample"
)

func (s *store) AppendVersion(ctx context.Context, v sample.VersionRecord) error {
	query := `INSERT INTO sync_versions (timestamp, version) VALUES (?, ?)`

	if v.Version == "" {
		v.Version = storage.DefaultVersion
	}
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}

	// Stored in UTC so that MAX(timestamp) compares consistently.
	if _, err := s.db.ExecContext(ctx, query, v.Timestamp.UTC(), v.Version); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrAppend, err)
	}

	return nil
}

func (s *store) DistinctVersions(ctx context.Context) ([]string, error) {
	query := `SELECT version FROM sync_versions
		GROUP BY version ORDER BY MAX(timestamp) DESC, MAX(rowid) DESC`

	versions := make([]string, 0)
	if err := s.db.SelectContext(ctx, &versions, query); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrDBQuery, err)
	}

	return versions, nil
}
