package grid

import "math/bits"

// Step performs a single gravity pass and reports whether any cell
// moved. One pass moves each falling cell down by at most one row, so
// the sequence of boards produced by repeated Step calls is the
// animation of the settling process.
//
// A pass visits destination rows bottom-up (rows 0 through 6; the top
// row is never a destination). An empty cell is a landing row only
// once every cell beneath it in its column is occupied, or it sits on
// the floor. For a valid landing row the lowest occupied cell strictly
// above it in the column is isolated with x & -x and shifted down by
// one row in both planes.
func (g *Grid) Step() bool {
	moved := false
	for r := 0; r < Rows-1; r++ {
		occ := g.lo | g.hi
		empty := ^occ & rowMask(r)
		for empty != 0 {
			target := empty & -empty
			empty &= empty - 1

			col := colMask(bits.TrailingZeros64(target) & (Cols - 1))

			// target-1 masks all bit positions beneath the cell;
			// a gap there means the space below is still settling.
			if col&(target-1)&^occ != 0 {
				continue
			}

			above := occ & col &^ (target | (target - 1))
			if above == 0 {
				continue
			}
			src := above & -above

			// Rows between the target and its nearest occupied cell
			// are empty, so shifting down one row cannot collide.
			g.lo = g.lo&^src | (g.lo&src)>>Cols
			g.hi = g.hi&^src | (g.hi&src)>>Cols
			occ = g.lo | g.hi
			moved = true
		}
	}
	return moved
}

// Settle runs gravity to its fixed point and returns the number of
// passes performed. After Settle the occupied cells of every column
// form a contiguous prefix from row 0 with their relative vertical
// order preserved; columns never interact.
//
// Termination is guaranteed: every pass either moves at least one cell
// down, strictly decreasing the sum of occupied row indices, or moves
// nothing and the loop exits.
func (g *Grid) Settle() int {
	passes := 0
	for g.Step() {
		passes++
	}
	return passes
}
