package bitmatrix

import "math/bits"

// The transpose swaps sub-blocks recursively: single bits inside every
// 2×2 block, 2×2 blocks inside every 4×4 block, then the two 4×4
// off-diagonal blocks. Each mask selects the lower-left block of its
// recursion level (bit layout r*8+c, so moving one row up and one
// column left is a shift by 8-1 = 7 positions, scaled per level).
const (
	k1 = 0x5500550055005500 // odd rows, even cols: the (1,0) bit of every 2×2 block
	k2 = 0x3333000033330000 // the (1,0) 2×2 sub-block of every 4×4 block
	k4 = 0x0f0f0f0f00000000 // the lower-left 4×4 block of the matrix
)

// deltaSwap exchanges the bits selected by mask with the bits shift
// positions below them. It is self-inverse.
func deltaSwap(m uint64, shift uint, mask uint64) uint64 {
	t := (m ^ m<<shift) & mask
	return m ^ t ^ t>>shift
}

// Transpose mirrors the matrix across its main diagonal:
// Transpose(m) holds input[c][r] at bit r*8+c. It composes three
// self-inverse butterfly stages, so Transpose is its own inverse.
func Transpose(m uint64) uint64 {
	m = deltaSwap(m, 7, k1)
	m = deltaSwap(m, 14, k2)
	return deltaSwap(m, 28, k4)
}

// FlipRows mirrors the matrix vertically (row r becomes row 7-r).
func FlipRows(m uint64) uint64 {
	return bits.ReverseBytes64(m)
}

// FlipCols mirrors the matrix horizontally (column c becomes 7-c).
func FlipCols(m uint64) uint64 {
	return bits.Reverse64(bits.ReverseBytes64(m))
}

// Rotate90 rotates the matrix a quarter turn: the bit at (r,c) moves
// to (c, 7-r).
func Rotate90(m uint64) uint64 {
	return FlipCols(Transpose(m))
}

// Rotate180 rotates the matrix a half turn.
func Rotate180(m uint64) uint64 {
	return bits.Reverse64(m)
}

// Rotate270 is the inverse of Rotate90: the bit at (r,c) moves to
// (7-c, r).
func Rotate270(m uint64) uint64 {
	return FlipRows(Transpose(m))
}

// Bit reports whether matrix[row][col] is set. Coordinates outside
// [0,8) read as false.
func Bit(m uint64, row, col int) bool {
	if row < 0 || row >= 8 || col < 0 || col >= 8 {
		return false
	}
	return m>>(uint(row)*8+uint(col))&1 == 1
}

// SetBit returns m with matrix[row][col] set. Coordinates outside
// [0,8) leave m unchanged.
func SetBit(m uint64, row, col int) uint64 {
	if row < 0 || row >= 8 || col < 0 || col >= 8 {
		return m
	}
	return m | 1<<(uint(row)*8+uint(col))
}

// Count returns the number of set bits in the matrix.
func Count(m uint64) int {
	return bits.OnesCount64(m)
}
