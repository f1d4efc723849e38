package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Postgres reads progress straight off the db-sync schema.
type Postgres struct {
	db *sqlx.DB
}

func Connect(host, port, user, pass, name, sslMode string) (*Postgres, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s", host, port, user, pass, name, sslMode)
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	// The monitor must not become load on the database it watches.
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)

	return &Postgres{db: db}, nil
}

func (p *Postgres) Marker(ctx context.Context) (int64, error) {
	query := `SELECT slot_no FROM block WHERE block_no IS NOT NULL ORDER BY block_no DESC LIMIT 1`

	var slot sql.NullInt64
	if err := p.db.GetContext(ctx, &slot, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoMarker
		}

		return 0, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	if !slot.Valid {
		return 0, ErrNoMarker
	}

	return slot.Int64, nil
}

func (p *Postgres) SyncPercent(ctx context.Context) (*float64, error) {
	query := `SELECT 100 * (EXTRACT(EPOCH FROM (MAX(time) AT TIME ZONE 'UTC')) - EXTRACT(EPOCH FROM (MIN(time) AT TIME ZONE 'UTC')))
		/ (EXTRACT(EPOCH FROM (NOW() AT TIME ZONE 'UTC')) - EXTRACT(EPOCH FROM (MIN(time) AT TIME ZONE 'UTC')))
		FROM block`

	var pct sql.NullFloat64
	if err := p.db.GetContext(ctx, &pct, query); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	if !pct.Valid {
		return nil, nil
	}

	return &pct.Float64, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
