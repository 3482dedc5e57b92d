// SPDX-License-Identifier: MIT

// Package matrix: operation tags, error wrapping and comparison helpers.
//
// Purpose:
//   - Declare the canonical operation tags used to wrap sentinel errors.
//   - Provide tolerance comparisons used by tests, the conformance suite and
//     the timing harness to hold the optimized paths to the reference.
package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping.
const (
	opAdd      = "Add"
	opSub      = "Sub"
	opScale    = "Scale"
	opMul      = "Mul"
	opStrassen = "Strassen"
	opCompare  = "Compare"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// validateComparable checks that two read-only matrices have the same shape.
func validateComparable(a, b Matrix) error {
	if a == nil || b == nil {
		return matrixErrorf(opCompare, ErrNilMatrix)
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return matrixErrorf(opCompare, fmt.Errorf("%dx%d vs %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch))
	}

	return nil
}

// MaxAbsDiff returns max |a[i][j] − b[i][j]| over all cells.
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, and any At error (e.g. ErrReleased).
//
// Complexity: O(r*c).
func MaxAbsDiff(a, b Matrix) (float32, error) {
	if err := validateComparable(a, b); err != nil {
		return 0, err
	}
	var worst float64
	var i, j int
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			av, err := a.At(i, j)
			if err != nil {
				return 0, matrixErrorf(opCompare, err)
			}
			bv, err := b.At(i, j)
			if err != nil {
				return 0, matrixErrorf(opCompare, err)
			}
			if d := math.Abs(float64(av) - float64(bv)); d > worst || math.IsNaN(d) {
				worst = d
			}
		}
	}

	return float32(worst), nil
}

// AllClose reports whether |a−b| ≤ atol + rtol·|b| holds for every cell
// (numpy semantics, b is the reference). NaN never compares close.
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, and any At error.
//
// Complexity: O(r*c); stops at the first violating cell.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := validateComparable(a, b); err != nil {
		return false, err
	}
	var i, j int
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			av, err := a.At(i, j)
			if err != nil {
				return false, matrixErrorf(opCompare, err)
			}
			bv, err := b.At(i, j)
			if err != nil {
				return false, matrixErrorf(opCompare, err)
			}
			x, y := float64(av), float64(bv)
			if !(math.Abs(x-y) <= atol+rtol*math.Abs(y)) {
				return false, nil
			}
		}
	}

	return true, nil
}

// Equal reports exact cell-wise equality of two same-shaped matrices.
// Shape mismatch or any access error reports false.
func Equal(a, b Matrix) bool {
	ok, err := AllClose(a, b, 0, 0)

	return err == nil && ok
}
