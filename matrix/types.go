// SPDX-License-Identifier: MIT

// Package matrix: domain-facing types.
// This file contains ONLY the read-only Matrix surface shared by Dense and
// MatrixView. Storage lives in impl_dense.go, errors and options live in
// dedicated files (errors.go, options.go).
package matrix

// Matrix is the read-only surface of a two-dimensional float32 array.
// Comparison helpers (AllClose, MaxAbsDiff, Equal) accept it so that both
// owning matrices and no-copy windows can be checked against each other.
//
// Complexity notes: all methods are expected O(1).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float32, error)
}

// Compile-time assertions for interface conformance.
var (
	_ Matrix = (*Dense)(nil)
	_ Matrix = (*MatrixView)(nil)
)
