package grid

import (
	"encoding/binary"
	"errors"
	"math/bits"
	"strings"
)

// Board geometry. The planes are uint64, so the board is fixed at 8×8.
const (
	Rows  = 8
	Cols  = 8
	Cells = Rows * Cols

	// MaxValue is the largest cell value the two planes can encode.
	MaxValue = 3
)

const (
	// colStride repeats a single column bit across all eight rows.
	colStride = 0x0101010101010101
	// rowByte masks one full row (eight consecutive bits).
	rowByte = 0xff
)

// Grid is an 8×8 board of 2-bit cells packed into two bit planes.
// The zero value is an empty board.
type Grid struct {
	lo uint64 // low bit of every cell value
	hi uint64 // high bit of every cell value
}

// New creates an empty board.
func New() *Grid {
	return &Grid{}
}

// FromPlanes reconstructs a board from raw planes, e.g. a decoded
// snapshot. Every plane combination is a valid board.
func FromPlanes(lo, hi uint64) *Grid {
	return &Grid{lo: lo, hi: hi}
}

// Planes returns the raw low and high bit planes.
func (g *Grid) Planes() (lo, hi uint64) {
	return g.lo, g.hi
}

func bitIndex(row, col int) uint {
	return uint(row*Cols + col)
}

func rowMask(row int) uint64 {
	return rowByte << uint(row*Cols)
}

func colMask(col int) uint64 {
	return colStride << uint(col)
}

// Get returns the value of the cell at (row, col).
func (g *Grid) Get(row, col int) (uint8, error) {
	if err := checkCell(row, col); err != nil {
		return 0, err
	}
	i := bitIndex(row, col)
	return uint8((g.hi>>i&1)<<1 | g.lo>>i&1), nil
}

// Set assigns value to the cell at (row, col). The assignment is
// masked, not a toggle: both plane bits are cleared before the value
// bits are ORed in, so setting the same value twice is idempotent.
func (g *Grid) Set(row, col int, value uint8) error {
	if err := checkCell(row, col); err != nil {
		return err
	}
	if err := checkValue(value); err != nil {
		return err
	}
	i := bitIndex(row, col)
	g.lo = g.lo&^(1<<i) | uint64(value&1)<<i
	g.hi = g.hi&^(1<<i) | uint64(value>>1&1)<<i
	return nil
}

// Occupancy returns a bitmask with a set bit for every nonzero cell.
func (g *Grid) Occupancy() uint64 {
	return g.lo | g.hi
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	return bits.OnesCount64(g.Occupancy())
}

// CountValue returns the number of cells holding the given value.
func (g *Grid) CountValue(value uint8) (int, error) {
	if err := checkValue(value); err != nil {
		return 0, err
	}
	lo, hi := g.lo, g.hi
	if value&1 == 0 {
		lo = ^lo
	}
	if value>>1&1 == 0 {
		hi = ^hi
	}
	return bits.OnesCount64(lo & hi), nil
}

// Column returns the values of column col, index 0 = bottom row.
func (g *Grid) Column(col int) ([Rows]uint8, error) {
	var out [Rows]uint8
	if col < 0 || col >= Cols {
		return out, &ErrCellOutOfRange{Row: 0, Col: col}
	}
	for r := 0; r < Rows; r++ {
		i := bitIndex(r, col)
		out[r] = uint8((g.hi>>i&1)<<1 | g.lo>>i&1)
	}
	return out, nil
}

// Clone returns a deep copy of the board.
func (g *Grid) Clone() *Grid {
	c := *g
	return &c
}

// Equal reports whether both boards hold the same cells.
func (g *Grid) Equal(other *Grid) bool {
	return other != nil && g.lo == other.lo && g.hi == other.hi
}

// MarshalBinary encodes the board as its two little-endian planes,
// 16 bytes total. It implements encoding.BinaryMarshaler.
func (g *Grid) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 16)
	buf = binary.LittleEndian.AppendUint64(buf, g.lo)
	buf = binary.LittleEndian.AppendUint64(buf, g.hi)
	return buf, nil
}

// UnmarshalBinary restores a board from its 16-byte plane encoding.
// It implements encoding.BinaryUnmarshaler.
func (g *Grid) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return errors.New("board encoding must be 16 bytes")
	}
	g.lo = binary.LittleEndian.Uint64(data[0:8])
	g.hi = binary.LittleEndian.Uint64(data[8:16])
	return nil
}

// Reset empties the board.
func (g *Grid) Reset() {
	g.lo, g.hi = 0, 0
}

// String renders the board with the top row first. Empty cells print
// as '.', occupied cells as their value digit.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(Rows * (Cols + 1))
	for r := Rows - 1; r >= 0; r-- {
		for c := 0; c < Cols; c++ {
			i := bitIndex(r, c)
			v := (g.hi>>i&1)<<1 | g.lo>>i&1
			if v == 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + byte(v))
			}
		}
		if r > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
