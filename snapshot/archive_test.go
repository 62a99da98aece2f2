package snapshot

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bitgrid/grid"
	"github.com/hupe1980/bitgrid/resource"
)

func encodedSnapshot(t *testing.T, row, col int, value uint8, seq uint64) []byte {
	t.Helper()

	g := grid.New()
	require.NoError(t, g.Set(row, col, value))

	data, err := Encode(Capture(g, seq), nil)
	require.NoError(t, err)

	return data
}

func TestArchiveRoundTrip(t *testing.T) {
	ctx := context.Background()

	snapshots := map[string][]byte{
		"seq-000001": encodedSnapshot(t, 0, 0, 1, 1),
		"seq-000002": encodedSnapshot(t, 0, 1, 2, 2),
		"seq-000003": encodedSnapshot(t, 1, 0, 3, 3),
	}

	for _, ct := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		store := NewMemoryStore()

		err := WriteArchive(ctx, store, "archives/game-1", snapshots, ct, nil)
		require.NoError(t, err, "type=%d", ct)

		got, err := ReadArchive(ctx, store, "archives/game-1", nil)
		require.NoError(t, err, "type=%d", ct)
		assert.Equal(t, snapshots, got)
	}
}

func TestArchiveEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, WriteArchive(ctx, store, "archives/empty", nil, CompressionZSTD, nil))

	got, err := ReadArchive(ctx, store, "archives/empty", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestArchiveMissing(t *testing.T) {
	_, err := ReadArchive(context.Background(), NewMemoryStore(), "archives/missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArchiveCorrupt(t *testing.T) {
	ctx := context.Background()

	t.Run("BadMagic", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Put(ctx, "a", []byte("XXXXXXXXXX")))

		_, err := ReadArchive(ctx, store, "a", nil)
		assert.ErrorContains(t, err, "magic")
	})

	t.Run("TruncatedItem", func(t *testing.T) {
		store := NewMemoryStore()

		snapshots := map[string][]byte{"seq-1": encodedSnapshot(t, 0, 0, 1, 1)}
		require.NoError(t, WriteArchive(ctx, store, "a", snapshots, CompressionNone, nil))

		blob, err := store.Get(ctx, "a")
		require.NoError(t, err)

		// Shrink the stored payload so the last item overruns it.
		blob = blob[:len(blob)-4]
		binary.LittleEndian.PutUint32(blob[6:], uint32(len(blob)-6-blockHeaderSize))
		require.NoError(t, store.Put(ctx, "a", blob))

		_, err = ReadArchive(ctx, store, "a", nil)
		assert.ErrorContains(t, err, "truncated")
	})
}

func TestArchiveThrottled(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	ctrl := resource.NewController(resource.Config{
		MaxBackgroundWorkers: 1,
		IOLimitBytesPerSec:   1 << 20,
	})

	snapshots := map[string][]byte{"seq-1": encodedSnapshot(t, 3, 3, 2, 1)}

	require.NoError(t, WriteArchive(ctx, store, "archives/game-1", snapshots, CompressionZSTD, ctrl))

	got, err := ReadArchive(ctx, store, "archives/game-1", ctrl)
	require.NoError(t, err)
	assert.Equal(t, snapshots, got)
}
