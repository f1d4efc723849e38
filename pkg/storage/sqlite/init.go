// Package sqlite implements the sample store on an embedded SQLite file.
// The daemon appends while the comparison CLI reads the same file from
// another process; the busy timeout in the DSN lets the two interleave.
package sqlite

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"

	"github.com/syncscope/syncscope/pkg/storage"
)

type Database struct {
	*sqlx.DB
}

func NewDatabase(path string) (*Database, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrDBConnection, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	database := &Database{DB: db}

	if err := database.Migrate(); err != nil {
		return nil, err
	}

	return database, nil
}

func (db *Database) Migrate() error {
	migrations := &migrate.MemoryMigrationSource{
		Migrations: []*migrate.Migration{
			{
				Id: "1_create_tables",
				Up: []string{
					`CREATE TABLE IF NOT EXISTS memory_samples (
						key INTEGER NOT NULL,
						rss REAL,
						vms REAL,
						uss REAL,
						pss REAL,
						swap REAL,
						shared REAL,
						version TEXT NOT NULL
					)`,
					`CREATE INDEX IF NOT EXISTS idx_memory_samples_version ON memory_samples(version, key)`,
					`CREATE TABLE IF NOT EXISTS cpu_samples (
						key INTEGER NOT NULL,
						cpu_percent REAL,
						user_time REAL,
						system_time REAL,
						children_user REAL,
						children_system REAL,
						iowait REAL,
						ctx_switches INTEGER,
						version TEXT NOT NULL
					)`,
					`CREATE INDEX IF NOT EXISTS idx_cpu_samples_version ON cpu_samples(version, key)`,
					`CREATE TABLE IF NOT EXISTS sync_versions (
						timestamp TIMESTAMP NOT NULL,
						version TEXT NOT NULL
					)`,
					`CREATE INDEX IF NOT EXISTS idx_sync_versions_version ON sync_versions(version)`,
				},
				Down: []string{
					`DROP INDEX IF EXISTS idx_sync_versions_version`,
					`DROP TABLE IF EXISTS sync_versions`,
					`DROP INDEX IF EXISTS idx_cpu_samples_version`,
					`DROP TABLE IF EXISTS cpu_samples`,
					`DROP INDEX IF EXISTS idx_memory_samples_version`,
					`DROP TABLE IF EXISTS memory_samples`,
				},
			},
		},
	}

	if _, err := migrate.Exec(db.DB.DB, "sqlite3", migrations, migrate.Up); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrMigration, err)
	}

	return nil
}
