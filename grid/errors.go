package grid

import "fmt"

// ErrCellOutOfRange indicates a row or column outside [0,8).
//
// The board used to wrap such coordinates silently, which corrupted
// unrelated cells. Out-of-range input now fails fast instead.
type ErrCellOutOfRange struct {
	Row int
	Col int
}

func (e *ErrCellOutOfRange) Error() string {
	return fmt.Sprintf("cell out of range: row=%d col=%d", e.Row, e.Col)
}

// ErrValueOutOfRange indicates a cell value outside [0,3].
type ErrValueOutOfRange struct {
	Value uint8
}

func (e *ErrValueOutOfRange) Error() string {
	return fmt.Sprintf("cell value out of range: %d", e.Value)
}

func checkCell(row, col int) error {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return &ErrCellOutOfRange{Row: row, Col: col}
	}
	return nil
}

func checkValue(value uint8) error {
	if value > MaxValue {
		return &ErrValueOutOfRange{Value: value}
	}
	return nil
}
