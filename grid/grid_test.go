package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	g := New()

	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			want := uint8((row + col) % (MaxValue + 1))
			require.NoError(t, g.Set(row, col, want))

			got, err := g.Get(row, col)
			require.NoError(t, err)
			assert.Equal(t, want, got, "cell (%d,%d)", row, col)
		}
	}

	// Overwriting reassigns both plane bits instead of toggling.
	require.NoError(t, g.Set(4, 4, 3))
	require.NoError(t, g.Set(4, 4, 1))
	got, err := g.Get(4, 4)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), got)
}

func TestSetIdempotent(t *testing.T) {
	g := New()
	require.NoError(t, g.Set(2, 5, 2))
	lo, hi := g.Planes()

	require.NoError(t, g.Set(2, 5, 2))
	lo2, hi2 := g.Planes()
	assert.Equal(t, lo, lo2)
	assert.Equal(t, hi, hi2)
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name  string
		row   int
		col   int
		value uint8
	}{
		{"NegativeRow", -1, 0, 1},
		{"NegativeCol", 0, -1, 1},
		{"RowTooLarge", 8, 0, 1},
		{"ColTooLarge", 0, 8, 1},
	}

	g := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Set(tt.row, tt.col, tt.value)
			var oob *ErrCellOutOfRange
			require.ErrorAs(t, err, &oob)
			assert.Equal(t, tt.row, oob.Row)
			assert.Equal(t, tt.col, oob.Col)

			_, err = g.Get(tt.row, tt.col)
			require.ErrorAs(t, err, &oob)
		})
	}

	t.Run("ValueTooLarge", func(t *testing.T) {
		err := g.Set(0, 0, 4)
		var ev *ErrValueOutOfRange
		require.ErrorAs(t, err, &ev)
		assert.Equal(t, uint8(4), ev.Value)
	})

	// A rejected write never touches the planes.
	lo, hi := g.Planes()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestPlanesRoundTrip(t *testing.T) {
	g := New()
	require.NoError(t, g.Set(0, 0, 1))
	require.NoError(t, g.Set(7, 7, 3))
	require.NoError(t, g.Set(3, 4, 2))

	lo, hi := g.Planes()
	restored := FromPlanes(lo, hi)
	assert.True(t, g.Equal(restored))
}

func TestCounts(t *testing.T) {
	g := New()
	require.NoError(t, g.Set(0, 0, 1))
	require.NoError(t, g.Set(1, 0, 1))
	require.NoError(t, g.Set(2, 0, 2))
	require.NoError(t, g.Set(3, 0, 3))

	assert.Equal(t, 4, g.Count())

	ones, err := g.CountValue(1)
	require.NoError(t, err)
	assert.Equal(t, 2, ones)

	twos, err := g.CountValue(2)
	require.NoError(t, err)
	assert.Equal(t, 1, twos)

	empties, err := g.CountValue(0)
	require.NoError(t, err)
	assert.Equal(t, Cells-4, empties)
}

func TestCloneIsolation(t *testing.T) {
	g := New()
	require.NoError(t, g.Set(5, 5, 3))

	c := g.Clone()
	require.NoError(t, c.Set(5, 5, 0))

	got, err := g.Get(5, 5)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), got)
	assert.False(t, g.Equal(c))
}

func TestString(t *testing.T) {
	g := New()
	require.NoError(t, g.Set(0, 0, 1))
	require.NoError(t, g.Set(7, 7, 3))

	want := ".......3\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		"1......."
	assert.Equal(t, want, g.String())
}

func TestBinaryRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g := randomBoard(t, rng)

	data, err := g.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, 16)

	out := New()
	require.NoError(t, out.UnmarshalBinary(data))
	assert.True(t, out.Equal(g))

	assert.Error(t, out.UnmarshalBinary(data[:15]))
}

// randomBoard fills a board with a deterministic scatter of cells.
func randomBoard(t *testing.T, rng *rand.Rand) *Grid {
	t.Helper()
	g := New()
	for n := rng.Intn(40); n > 0; n-- {
		require.NoError(t, g.Set(rng.Intn(Rows), rng.Intn(Cols), uint8(rng.Intn(MaxValue+1))))
	}
	return g
}
