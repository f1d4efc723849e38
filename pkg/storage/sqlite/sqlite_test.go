package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncscope/syncscope/pkg/storage"
	"github.com/syncscope/syncscope/pkg/storage/sqlite"
	"github.com/syncscope/syncscope/sample"
)

var testDB *sqlite.Database

func TestMain(m *testing.M) {
	tmpDir := os.TempDir()
	dbPath := filepath.Join(tmpDir, "test_"+uuid.NewString()+".db")

	var err error
	testDB, err = sqlite.NewDatabase(dbPath)
	if err != nil {
		panic(err)
	}

	code := m.Run()

	testDB.Close()
	os.Remove(dbPath)

	os.Exit(code)
}

func TestStore_AppendMemory(t *testing.T) {
	st := sqlite.NewStore(testDB)
	ctx := context.Background()

	cases := []struct {
		desc   string
		sample sample.Memory
		err    error
	}{
		{
			desc: "append full sample",
			sample: sample.Memory{
				Key:     100,
				RSS:     sample.Ptr(1532.4),
				VMS:     sample.Ptr(2048.0),
				USS:     sample.Ptr(1500.1),
				PSS:     sample.Ptr(1510.7),
				Swap:    sample.Ptr(0.0),
				Shared:  sample.Ptr(12.3),
				Version: "cardano-db-sync 13.2.0 mainnet",
			},
			err: nil,
		},
		{
			desc: "append sample with missing optional readings",
			sample: sample.Memory{
				Key:     101,
				RSS:     sample.Ptr(1540.0),
				Version: "cardano-db-sync 13.2.0 mainnet",
			},
			err: nil,
		},
		{
			desc:   "append sample without version",
			sample: sample.Memory{Key: 102, RSS: sample.Ptr(1.0)},
			err:    nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := st.AppendMemory(ctx, tc.sample)
			assert.Equal(t, tc.err, err, fmt.Sprintf("%s: expected error %v, got %v", tc.desc, tc.err, err))
		})
	}

	untagged, err := st.LoadMemory(ctx, []string{storage.DefaultVersion})
	require.Nil(t, err)
	assert.Equal(t, 1, len(untagged))
	assert.Equal(t, int64(102), untagged[0].Key)

	testDB.ExecContext(ctx, "DELETE FROM memory_samples")
}

func TestStore_AppendCPU_NullRoundTrip(t *testing.T) {
	st := sqlite.NewStore(testDB)
	ctx := context.Background()

	// Percent deliberately absent: the first observation of a process has
	// nothing to diff against and must come back nil, not zero.
	in := sample.CPU{
		Key:         200,
		UserTime:    sample.Ptr(8123.5),
		SystemTime:  sample.Ptr(911.2),
		IOWait:      sample.Ptr(4.75),
		CtxSwitches: sample.Ptr(int64(123456)),
		Version:     "cardano-db-sync 13.2.0 mainnet",
	}
	require.Nil(t, st.AppendCPU(ctx, in))

	out, err := st.LoadCPU(ctx, []string{in.Version})
	require.Nil(t, err)
	require.Equal(t, 1, len(out))

	assert.Nil(t, out[0].Percent)
	assert.Nil(t, out[0].ChildrenUser)
	assert.Nil(t, out[0].ChildrenSystem)
	assert.Equal(t, in.UserTime, out[0].UserTime)
	assert.Equal(t, in.SystemTime, out[0].SystemTime)
	assert.Equal(t, in.IOWait, out[0].IOWait)
	assert.Equal(t, in.CtxSwitches, out[0].CtxSwitches)
	assert.Equal(t, in.Version, out[0].Version)

	testDB.ExecContext(ctx, "DELETE FROM cpu_samples")
}

func TestStore_LoadMemory(t *testing.T) {
	st := sqlite.NewStore(testDB)
	ctx := context.Background()

	testDB.ExecContext(ctx, "DELETE FROM memory_samples")

	// Out-of-key-order appends, two versions, one duplicate key.
	appends := []sample.Memory{
		{Key: 7, RSS: sample.Ptr(200.0), Version: "v2"},
		{Key: 5, RSS: sample.Ptr(100.0), Version: "v1"},
		{Key: 9, RSS: sample.Ptr(210.0), Version: "v2"},
		{Key: 7, RSS: sample.Ptr(205.0), Version: "v2"},
	}
	for _, m := range appends {
		require.Nil(t, st.AppendMemory(ctx, m))
	}

	cases := []struct {
		desc     string
		versions []string
		keys     []int64
		err      error
	}{
		{
			desc:     "load single version ordered by key",
			versions: []string{"v2"},
			keys:     []int64{7, 7, 9},
			err:      nil,
		},
		{
			desc:     "load both versions",
			versions: []string{"v1", "v2"},
			keys:     []int64{5, 7, 7, 9},
			err:      nil,
		},
		{
			desc:     "load unknown version",
			versions: []string{"v3"},
			keys:     []int64{},
			err:      nil,
		},
		{
			desc:     "load with no versions",
			versions: []string{},
			keys:     []int64{},
			err:      nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			samples, err := st.LoadMemory(ctx, tc.versions)
			assert.Equal(t, tc.err, err)

			keys := make([]int64, 0, len(samples))
			for _, m := range samples {
				keys = append(keys, m.Key)
			}
			assert.Equal(t, tc.keys, keys)
		})
	}

	// Duplicate keys keep insertion order: key 7 appended 200.0 before 205.0.
	v2, err := st.LoadMemory(ctx, []string{"v2"})
	require.Nil(t, err)
	require.Equal(t, 3, len(v2))
	assert.Equal(t, sample.Ptr(200.0), v2[0].RSS)
	assert.Equal(t, sample.Ptr(205.0), v2[1].RSS)

	testDB.ExecContext(ctx, "DELETE FROM memory_samples")
}

func TestStore_LoadCPU(t *testing.T) {
	st := sqlite.NewStore(testDB)
	ctx := context.Background()

	testDB.ExecContext(ctx, "DELETE FROM cpu_samples")

	appends := []sample.CPU{
		{Key: 30, Percent: sample.Ptr(81.3), Version: "v1"},
		{Key: 10, Percent: sample.Ptr(75.0), Version: "v1"},
		{Key: 20, Version: "v2"},
	}
	for _, c := range appends {
		require.Nil(t, st.AppendCPU(ctx, c))
	}

	cases := []struct {
		desc     string
		versions []string
		keys     []int64
	}{
		{
			desc:     "load one version",
			versions: []string{"v1"},
			keys:     []int64{10, 30},
		},
		{
			desc:     "load both versions interleaved by key",
			versions: []string{"v1", "v2"},
			keys:     []int64{10, 20, 30},
		},
		{
			desc:     "load with no versions",
			versions: []string{},
			keys:     []int64{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			samples, err := st.LoadCPU(ctx, tc.versions)
			assert.Nil(t, err)

			keys := make([]int64, 0, len(samples))
			for _, c := range samples {
				keys = append(keys, c.Key)
			}
			assert.Equal(t, tc.keys, keys)
		})
	}

	testDB.ExecContext(ctx, "DELETE FROM cpu_samples")
}

func TestStore_DistinctVersions(t *testing.T) {
	st := sqlite.NewStore(testDB)
	ctx := context.Background()

	testDB.ExecContext(ctx, "DELETE FROM sync_versions")

	now := time.Now()
	records := []sample.VersionRecord{
		{Timestamp: now.Add(-3 * time.Hour), Version: "v1"},
		{Timestamp: now.Add(-2 * time.Hour), Version: "v1"},
		{Timestamp: now.Add(-1 * time.Hour), Version: "v2"},
		{Timestamp: now.Add(-30 * time.Minute), Version: "v2"},
	}
	for _, r := range records {
		require.Nil(t, st.AppendVersion(ctx, r))
	}

	versions, err := st.DistinctVersions(ctx)
	require.Nil(t, err)
	assert.Equal(t, []string{"v2", "v1"}, versions)

	// A fresh v1 record moves it back to the front.
	require.Nil(t, st.AppendVersion(ctx, sample.VersionRecord{Timestamp: now, Version: "v1"}))

	versions, err = st.DistinctVersions(ctx)
	require.Nil(t, err)
	assert.Equal(t, []string{"v1", "v2"}, versions)

	testDB.ExecContext(ctx, "DELETE FROM sync_versions")
}

func TestStore_DistinctVersions_Empty(t *testing.T) {
	st := sqlite.NewStore(testDB)
	ctx := context.Background()

	testDB.ExecContext(ctx, "DELETE FROM sync_versions")

	versions, err := st.DistinctVersions(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []string{}, versions)
}
