// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Checked kernels MUST return these sentinels (optionally wrapped with
// an operation tag) and tests MUST match them via errors.Is.
// No kernel panics on user-triggered error conditions; option constructors
// panic on nonsensical values (programmer error).

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency.
// Facades wrap with matrixErrorf(op, err) => "<Op>: matrix: ...";
// accessors wrap with denseErrorf => "Dense.<Method>(i,j): matrix: ...".
//
// ERROR PRIORITY (enforced in tests):
// nil -> released -> shape -> aliasing -> allocation.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Checked indexers (At/Set) return this; unchecked ones (Get/Put) degrade silently.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add of different shapes, Mul where a.Cols != b.Rows, or a result
	// buffer whose shape does not match the product.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil *Dense (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrReleased indicates use of a handle after Release.
	ErrReleased = errors.New("matrix: matrix already released")

	// ErrAliasedOperand is returned by multiply kernels when the result buffer
	// shares storage with an operand.
	ErrAliasedOperand = errors.New("matrix: result aliases an operand")

	// ErrAllocation is returned when an Allocator cannot satisfy a request
	// (e.g., a Store cell budget is exhausted).
	ErrAllocation = errors.New("matrix: allocation failed")
)
