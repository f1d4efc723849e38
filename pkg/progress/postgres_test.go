package progress_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncscope/syncscope/pkg/progress"
)

var (
	testPG  *progress.Postgres
	testFix *sqlx.DB
)

const testSchema = `
CREATE TABLE block (
	id bigint PRIMARY KEY,
	block_no bigint,
	slot_no bigint,
	epoch_no bigint,
	time timestamp without time zone
);
CREATE TABLE tx (
	id bigint PRIMARY KEY,
	block_id bigint REFERENCES block (id),
	size bigint
);
CREATE TABLE reward (
	earned_epoch bigint,
	amount bigint
);
CREATE TABLE epoch_stake (
	epoch_no bigint,
	amount bigint
);
CREATE TABLE epoch_sync_time (
	no bigint,
	seconds double precision
);
`

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not connect to docker: %s", err)
	}

	container, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16.2-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start container: %s", err)
	}

	port := container.GetPort("5432/tcp")

	pool.MaxWait = 120 * time.Second
	if err := pool.Retry(func() error {
		url := fmt.Sprintf("host=localhost port=%s user=test dbname=test password=test sslmode=disable", port)
		db, err := sqlx.Connect("pgx", url)
		if err != nil {
			return err
		}
		testFix = db

		return db.Ping()
	}); err != nil {
		log.Fatalf("Could not connect to docker: %s", err)
	}

	if _, err := testFix.Exec(testSchema); err != nil {
		log.Fatalf("Could not create test schema: %s", err)
	}

	testPG, err = progress.Connect("localhost", port, "test", "test", "test", "disable")
	if err != nil {
		log.Fatalf("Could not setup test DB connection: %s", err)
	}

	code := m.Run()

	testPG.Close()
	testFix.Close()
	if err := pool.Purge(container); err != nil {
		log.Fatalf("Could not purge container: %s", err)
	}

	os.Exit(code)
}

func cleanTables(t *testing.T) {
	t.Helper()

	for _, table := range []string{"tx", "block", "reward", "epoch_stake", "epoch_sync_time"} {
		_, err := testFix.Exec("DELETE FROM " + table)
		require.Nil(t, err)
	}
}

func TestMarker(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		desc     string
		setup    func(t *testing.T)
		expected int64
		err      error
	}{
		{
			desc:     "empty block table",
			setup:    func(_ *testing.T) {},
			expected: 0,
			err:      progress.ErrNoMarker,
		},
		{
			desc: "only unfinished rows",
			setup: func(t *testing.T) {
				t.Helper()
				_, err := testFix.Exec(`INSERT INTO block (id, block_no, slot_no, time) VALUES (1, NULL, 55, NOW())`)
				require.Nil(t, err)
			},
			expected: 0,
			err:      progress.ErrNoMarker,
		},
		{
			desc: "newest recorded block wins",
			setup: func(t *testing.T) {
				t.Helper()
				_, err := testFix.Exec(`INSERT INTO block (id, block_no, slot_no, time) VALUES
					(1, 10, 100, NOW()),
					(2, 12, 144, NOW()),
					(3, NULL, 999, NOW())`)
				require.Nil(t, err)
			},
			expected: 144,
			err:      nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			cleanTables(t)
			tc.setup(t)

			marker, err := testPG.Marker(ctx)
			assert.Equal(t, tc.err, err, fmt.Sprintf("%s: expected error %v, got %v", tc.desc, tc.err, err))
			assert.Equal(t, tc.expected, marker)
		})
	}
}

func TestSyncPercent(t *testing.T) {
	ctx := context.Background()

	t.Run("empty block table", func(t *testing.T) {
		cleanTables(t)

		pct, err := testPG.SyncPercent(ctx)
		require.Nil(t, err)
		assert.Nil(t, pct)
	})

	t.Run("halfway through history", func(t *testing.T) {
		cleanTables(t)

		_, err := testFix.Exec(`INSERT INTO block (id, block_no, slot_no, time) VALUES
			(1, 1, 10, NOW() - INTERVAL '2 hours'),
			(2, 2, 20, NOW() - INTERVAL '1 hour')`)
		require.Nil(t, err)

		pct, err := testPG.SyncPercent(ctx)
		require.Nil(t, err)
		require.NotNil(t, pct)
		assert.InDelta(t, 50.0, *pct, 1.0)
	})
}

func TestEpochStats(t *testing.T) {
	ctx := context.Background()
	cleanTables(t)

	_, err := testFix.Exec(`INSERT INTO block (id, block_no, slot_no, epoch_no, time) VALUES
		(1, 1, 10, 0, NOW() - INTERVAL '2 hours'),
		(2, 2, 20, 1, NOW() - INTERVAL '1 hour')`)
	require.Nil(t, err)
	_, err = testFix.Exec(`INSERT INTO tx (id, block_id, size) VALUES
		(1, 1, 100), (2, 1, 200), (3, 2, 400)`)
	require.Nil(t, err)
	_, err = testFix.Exec(`INSERT INTO reward (earned_epoch, amount) VALUES (0, 7), (0, 8), (1, 9)`)
	require.Nil(t, err)
	_, err = testFix.Exec(`INSERT INTO epoch_stake (epoch_no, amount) VALUES (1, 5), (1, 6), (1, 7)`)
	require.Nil(t, err)
	_, err = testFix.Exec(`INSERT INTO epoch_sync_time (no, seconds) VALUES (0, 10.5), (1, 20)`)
	require.Nil(t, err)

	stats, err := testPG.EpochStats(ctx)
	require.Nil(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, int64(0), stats[0].EpochNo)
	assert.Equal(t, 10.5, stats[0].SyncSecs)
	assert.Equal(t, int64(2), stats[0].TxCount)
	assert.Equal(t, int64(300), stats[0].SumTxSize)
	assert.Equal(t, int64(2), stats[0].RewardCount)
	assert.Equal(t, int64(0), stats[0].StakeCount)

	assert.Equal(t, int64(1), stats[1].EpochNo)
	assert.Equal(t, 20.0, stats[1].SyncSecs)
	assert.Equal(t, int64(1), stats[1].TxCount)
	assert.Equal(t, int64(400), stats[1].SumTxSize)
	assert.Equal(t, int64(1), stats[1].RewardCount)
	assert.Equal(t, int64(3), stats[1].StakeCount)
}

func TestSizes(t *testing.T) {
	ctx := context.Background()

	report, err := testPG.Sizes(ctx, "test")
	require.Nil(t, err)
	assert.NotEmpty(t, report.Total)
	assert.NotEmpty(t, report.Tables)

	names := make([]string, 0, len(report.Tables))
	for _, table := range report.Tables {
		assert.NotEmpty(t, table.Size)
		names = append(names, table.Name)
	}
	assert.Contains(t, names, "public.block")
}
