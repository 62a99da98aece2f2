// Package grid implements a fixed 8×8 board whose 2-bit cell values are
// packed into two 64-bit planes.
//
// Bit i = row*8+col of the low and high plane together encode the cell
// value v = hi<<1 | lo, with v in [0,3]. Value 0 is an empty cell;
// values 1-3 are three distinct occupied colors. Row 0 is the bottom of
// the board and the destination of gravity.
//
// A Grid is a small value-like object and is not safe for concurrent
// use; callers that share a Grid across goroutines must serialize
// access.
package grid
