// Package bitmatrix provides pure operations on an 8×8 binary matrix
// packed into a single uint64.
//
// Bit r*8+c holds matrix[r][c]. All functions are stateless, total and
// referentially transparent; every 64-bit input is a valid matrix.
package bitmatrix
