package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chisyliu/trackingAlg-dbscan/internal/core/run"
)

func newRecord(id, datasetID string, ts time.Time) *run.Record {
	return &run.Record{
		ID:        id,
		DatasetID: datasetID,
		Eps:       0.3,
		MinPts:    3,
		Points:    100,
		Clusters:  2,
		Noise:     5,
		Metadata:  run.Metadata{IndexKind: "brute", CreatedBy: "test"},
		Timestamp: ts,
		Version:   "1",
	}
}

func TestInMemoryRunStore_SaveLoad(t *testing.T) {
	store := DefaultInMemoryRunStore()
	defer store.Close()
	ctx := context.Background()

	record := newRecord("run-1", "iris", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, store.Save(ctx, record))

	loaded, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, record.ID, loaded.ID)
	assert.Equal(t, record.DatasetID, loaded.DatasetID)
	assert.Equal(t, record.Eps, loaded.Eps)
	assert.Equal(t, record.MinPts, loaded.MinPts)
	assert.Equal(t, record.Metadata.IndexKind, loaded.Metadata.IndexKind)
	assert.True(t, record.Timestamp.Equal(loaded.Timestamp))
}

func TestInMemoryRunStore_SaveInvalid(t *testing.T) {
	store := DefaultInMemoryRunStore()
	defer store.Close()
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, nil))
	assert.ErrorIs(t, store.Save(ctx, &run.Record{DatasetID: "d"}), run.ErrInvalidRunID)
}

func TestInMemoryRunStore_LoadMissing(t *testing.T) {
	store := DefaultInMemoryRunStore()
	defer store.Close()

	_, err := store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, run.ErrRunNotFound)
}

func TestInMemoryRunStore_List(t *testing.T) {
	store := DefaultInMemoryRunStore()
	defer store.Close()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.Save(ctx, newRecord("run-1", "iris", base.Add(-2*time.Hour))))
	require.NoError(t, store.Save(ctx, newRecord("run-2", "iris", base.Add(-time.Hour))))
	require.NoError(t, store.Save(ctx, newRecord("run-3", "blobs", base)))

	// Newest first.
	records, err := store.List(ctx, run.Filter{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "run-3", records[0].ID)
	assert.Equal(t, "run-1", records[2].ID)

	// Dataset filter.
	records, err = store.List(ctx, run.Filter{DatasetID: "iris"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run-2", records[0].ID)

	// Offset and limit page through the sorted list.
	records, err = store.List(ctx, run.Filter{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "run-2", records[0].ID)

	// Invalid filter fails fast.
	_, err = store.List(ctx, run.Filter{Limit: -1})
	assert.ErrorIs(t, err, run.ErrInvalidLimit)
}

func TestInMemoryRunStore_Delete(t *testing.T) {
	store := DefaultInMemoryRunStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newRecord("run-1", "iris", time.Now())))
	require.NoError(t, store.Delete(ctx, "run-1"))

	_, err := store.Load(ctx, "run-1")
	assert.ErrorIs(t, err, run.ErrRunNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "run-1"), run.ErrRunNotFound)
}

func TestInMemoryRunStore_TTLExpiry(t *testing.T) {
	store := NewInMemoryRunStore(Config{DefaultTTL: -time.Second})
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newRecord("run-1", "iris", time.Now())))

	_, err := store.Load(ctx, "run-1")
	assert.ErrorIs(t, err, run.ErrRunNotFound)

	records, err := store.List(ctx, run.Filter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestInMemoryRunStore_LRUEviction(t *testing.T) {
	store := NewInMemoryRunStore(Config{MaxRecords: 2})
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newRecord("run-1", "iris", time.Now())))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, store.Save(ctx, newRecord("run-2", "iris", time.Now())))
	time.Sleep(2 * time.Millisecond)

	// Touch run-1 so run-2 becomes least recently used.
	_, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)

	require.NoError(t, store.Save(ctx, newRecord("run-3", "iris", time.Now())))

	assert.Equal(t, 2, store.Count())
	_, err = store.Load(ctx, "run-2")
	assert.ErrorIs(t, err, run.ErrRunNotFound)
	_, err = store.Load(ctx, "run-1")
	assert.NoError(t, err)
}

func TestInMemoryRunStore_ConcurrentSaves(t *testing.T) {
	store := DefaultInMemoryRunStore()
	defer store.Close()
	ctx := context.Background()

	done := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func(i int) {
			done <- store.Save(ctx, newRecord(fmt.Sprintf("run-%d", i), "iris", time.Now()))
		}(i)
	}
	for i := 0; i < 20; i++ {
		assert.NoError(t, <-done)
	}
	assert.Equal(t, 20, store.Count())
}
