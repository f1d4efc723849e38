package progress

import (
	"context"
	"fmt"
)

// EpochStat aggregates one epoch's worth of db-sync work.
type EpochStat struct {
	EpochNo     int64   `db:"epoch_no"`
	SyncSecs    float64 `db:"sync_secs"`
	TxCount     int64   `db:"tx_count"`
	SumTxSize   int64   `db:"sum_tx_size"`
	RewardCount int64   `db:"reward_count"`
	StakeCount  int64   `db:"stake_count"`
}

// TableSize is one relation's pretty-printed on-disk size.
type TableSize struct {
	Name string `db:"table_name"`
	Size string `db:"size"`
}

// SizeReport holds the database's total size and its relations, largest first.
type SizeReport struct {
	Total  string
	Tables []TableSize
}

// EpochStats folds rewards, stake snapshots, transactions and sync durations
// into one row per epoch. Each UNION branch contributes its own column and
// zeroes for the rest; the outer aggregate collapses them.
func (p *Postgres) EpochStats(ctx context.Context) ([]EpochStat, error) {
	query := `SELECT
			epoch_no,
			MAX(sync_secs)::double precision AS sync_secs,
			SUM(tx_count)::bigint            AS tx_count,
			SUM(sum_tx_size)::bigint         AS sum_tx_size,
			SUM(reward_count)::bigint        AS reward_count,
			SUM(stake_count)::bigint         AS stake_count
		FROM (
			SELECT earned_epoch AS epoch_no, 0 AS sync_secs, 0 AS tx_count, 0 AS sum_tx_size,
				COUNT(reward) AS reward_count, 0 AS stake_count
			FROM reward GROUP BY earned_epoch
			UNION
			SELECT epoch_no, 0, 0, 0, 0, COUNT(epoch_stake)
			FROM epoch_stake GROUP BY epoch_no
			UNION
			SELECT epoch_no, 0, COUNT(tx), SUM(tx.size), 0, 0
			FROM block INNER JOIN tx ON tx.block_id = block.id
			WHERE epoch_no IS NOT NULL GROUP BY epoch_no
			UNION
			SELECT no, seconds, 0, 0, 0, 0
			FROM epoch_sync_time
		) AS derived_table
		GROUP BY epoch_no
		ORDER BY epoch_no`

	stats := make([]EpochStat, 0)
	if err := p.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	return stats, nil
}

// Sizes reports the database's total size and every user relation's size.
func (p *Postgres) Sizes(ctx context.Context, dbname string) (SizeReport, error) {
	var report SizeReport

	if err := p.db.GetContext(ctx, &report.Total,
		`SELECT pg_size_pretty(pg_database_size($1))`, dbname); err != nil {
		return SizeReport{}, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	query := `SELECT
			pg_namespace.nspname || '.' || pg_class.relname AS table_name,
			pg_size_pretty(pg_total_relation_size(pg_class.oid)) AS size
		FROM pg_class
		JOIN pg_namespace ON pg_namespace.oid = pg_class.relnamespace
		WHERE pg_class.relkind = 'r'
			AND pg_namespace.nspname NOT IN ('pg_catalog', 'information_schema')
		ORDER BY pg_total_relation_size(pg_class.oid) DESC`

	report.Tables = make([]TableSize, 0)
	if err := p.db.SelectContext(ctx, &report.Tables, query); err != nil {
		return SizeReport{}, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	return report, nil
}
