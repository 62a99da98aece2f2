package grid

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func column(t *testing.T, g *Grid, col int) [Rows]uint8 {
	t.Helper()
	c, err := g.Column(col)
	require.NoError(t, err)
	return c
}

func TestSettleSingleColumn(t *testing.T) {
	g := New()
	require.NoError(t, g.Set(7, 3, 1))
	require.NoError(t, g.Set(5, 3, 2))
	require.NoError(t, g.Set(3, 3, 3))
	require.NoError(t, g.Set(0, 3, 1))

	passes := g.Settle()
	assert.Equal(t, 7, passes)

	// Occupied cells compact onto row 0 with their vertical order kept.
	assert.Equal(t, [Rows]uint8{1, 3, 2, 1, 0, 0, 0, 0}, column(t, g, 3))

	// Columns never interact.
	for c := 0; c < Cols; c++ {
		if c == 3 {
			continue
		}
		assert.Equal(t, [Rows]uint8{}, column(t, g, c))
	}
}

func TestStepIntermediateStates(t *testing.T) {
	g := New()
	require.NoError(t, g.Set(7, 3, 1))
	require.NoError(t, g.Set(5, 3, 2))
	require.NoError(t, g.Set(3, 3, 3))
	require.NoError(t, g.Set(0, 3, 1))

	// Each pass moves a falling cell by exactly one row, so the
	// intermediate boards are observable for animation staging.
	want := [][Rows]uint8{
		{1, 0, 3, 0, 0, 2, 0, 1},
		{1, 3, 0, 0, 2, 0, 0, 1},
		{1, 3, 0, 2, 0, 0, 0, 1},
		{1, 3, 2, 0, 0, 0, 1, 0},
		{1, 3, 2, 0, 0, 1, 0, 0},
		{1, 3, 2, 0, 1, 0, 0, 0},
		{1, 3, 2, 1, 0, 0, 0, 0},
	}
	for pass, wantCol := range want {
		require.True(t, g.Step(), "pass %d should move", pass+1)
		assert.Equal(t, wantCol, column(t, g, 3), "after pass %d", pass+1)
	}
	assert.False(t, g.Step())
}

func TestSettleIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		g := randomBoard(t, rng)
		g.Settle()
		settled := g.Clone()

		passes := g.Settle()
		assert.Zero(t, passes)
		assert.True(t, g.Equal(settled))
	}
}

func values(t *testing.T, g *Grid) []uint8 {
	t.Helper()
	var vs []uint8
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			v, err := g.Get(r, c)
			require.NoError(t, err)
			if v != 0 {
				vs = append(vs, v)
			}
		}
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	return vs
}

func TestSettleConservesValues(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		g := randomBoard(t, rng)
		before := values(t, g)
		g.Settle()
		assert.Equal(t, before, values(t, g))
	}
}

func TestSettleNoGaps(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		g := randomBoard(t, rng)
		g.Settle()
		for c := 0; c < Cols; c++ {
			col := column(t, g, c)
			n := 0
			for _, v := range col {
				if v != 0 {
					n++
				}
			}
			for r := 0; r < Rows; r++ {
				if r < n {
					assert.NotZero(t, col[r], "gap at (%d,%d)", r, c)
				} else {
					assert.Zero(t, col[r], "floater at (%d,%d)", r, c)
				}
			}
		}
	}
}

func TestSettleColumnIndependence(t *testing.T) {
	// A board populated in one column settles without touching others.
	g := New()
	require.NoError(t, g.Set(6, 1, 2))
	require.NoError(t, g.Set(2, 1, 1))
	require.NoError(t, g.Set(7, 6, 3))
	full := g.Clone()
	full.Settle()

	only1 := New()
	require.NoError(t, only1.Set(6, 1, 2))
	require.NoError(t, only1.Set(2, 1, 1))
	only1.Settle()

	assert.Equal(t, column(t, only1, 1), column(t, full, 1))
	assert.Equal(t, [Rows]uint8{3}, column(t, full, 6))
}

func TestSettlePreservesOrder(t *testing.T) {
	g := New()
	require.NoError(t, g.Set(1, 0, 1))
	require.NoError(t, g.Set(4, 0, 2))
	require.NoError(t, g.Set(6, 0, 3))

	g.Settle()
	assert.Equal(t, [Rows]uint8{1, 2, 3, 0, 0, 0, 0, 0}, column(t, g, 0))
}

func TestSettleEmptyAndFullBoards(t *testing.T) {
	empty := New()
	assert.Zero(t, empty.Settle())
	assert.True(t, empty.Equal(New()))

	full := New()
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			require.NoError(t, full.Set(r, c, uint8(1+(r+c)%MaxValue)))
		}
	}
	before := full.Clone()
	assert.Zero(t, full.Settle())
	assert.True(t, full.Equal(before))
}

func BenchmarkSettle(b *testing.B) {
	rng := rand.New(rand.NewSource(4))
	boards := make([]*Grid, 64)
	for i := range boards {
		g := New()
		for n := 0; n < 24; n++ {
			_ = g.Set(rng.Intn(Rows), rng.Intn(Cols), uint8(1+rng.Intn(MaxValue)))
		}
		boards[i] = g
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		boards[i%len(boards)].Clone().Settle()
	}
}
