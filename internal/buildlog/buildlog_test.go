package buildlog

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i, outcome := range []string{"success", "failed", "success"} {
		require.NoError(t, store.Append(ctx, Record{
			BuildID:   "build-" + string(rune('a'+i)),
			StartedAt: time.Now().Add(time.Duration(i) * time.Second),
			Duration:  120 * time.Millisecond,
			Outcome:   outcome,
			Pages:     7,
			Assets:    12,
		}))
	}

	records, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, "build-c", records[0].BuildID)
	assert.Equal(t, "build-b", records[1].BuildID)
	assert.Equal(t, "failed", records[1].Outcome)
	assert.Equal(t, 7, records[0].Pages)
	assert.Equal(t, 120*time.Millisecond, records[0].Duration)
}

func TestGetRoundTripsStageDurations(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Record{
		BuildID:   "build-x",
		StartedAt: time.Now(),
		Outcome:   "success",
		StageDurations: map[string]time.Duration{
			"pages":   80 * time.Millisecond,
			"seating": 15 * time.Millisecond,
		},
	}))

	rec, err := store.Get(ctx, "build-x")
	require.NoError(t, err)
	assert.Equal(t, 80*time.Millisecond, rec.StageDurations["pages"])
	assert.Equal(t, 15*time.Millisecond, rec.StageDurations["seating"])
}

func TestGetUnknownBuild(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestOpenPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "builds.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), Record{
		BuildID: "build-p", StartedAt: time.Now(), Outcome: "success",
	}))
	require.NoError(t, store.Close())

	reopened, err := Open(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	records, err := reopened.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "build-p", records[0].BuildID)
}
