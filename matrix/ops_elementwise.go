// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Element-wise kernels: Add, Sub, Scale into a caller-supplied result.
//   - Block-level variants (addBlock/subBlock) shared with the Strassen combine.
//
// Design:
//   - Results are never allocated here: the caller owns dst and its lifetime.
//   - dst may alias an operand; each cell is read before it is written.
//   - Every cell of dst is overwritten; stale contents never leak into the output.
//
// Determinism & Performance:
//   - Fixed loop orders (flat 0..n-1 for whole matrices, i→j for blocks).
//   - No allocations; O(r*c) time.

package matrix

// addSub computes dst = a + sign*b for sign ∈ {+1, -1}.
// Implementation:
//   - Stage 1: ValidateNotNil(a, b, dst); ValidateSameShape(a,b) and (a,dst).
//   - Stage 2: single flat loop over the row-major buffers.
//
// Errors:
//   - ErrNilMatrix, ErrReleased, ErrDimensionMismatch (wrapped with opTag).
//
// Complexity:
//   - Time O(r*c), Space O(1).
//
// Notes:
//   - Keeping `sign` as a float avoids an extra branch inside the hot loop;
//     negation is exact so a + (-1)*b == a - b bitwise.
func addSub(a, b, dst *Dense, sign float32, opTag string) error {
	if err := ValidateNotNil(a, b, dst); err != nil {
		return matrixErrorf(opTag, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return matrixErrorf(opTag, err)
	}
	if err := ValidateSameShape(a, dst); err != nil {
		return matrixErrorf(opTag, err)
	}

	ad, bd, out := a.data, b.data, dst.data
	for idx := range out { // deterministic 0..n-1
		out[idx] = ad[idx] + sign*bd[idx]
	}

	return nil
}

// Add computes the element-wise sum dst = a + b.
// Inputs:
//   - a, b: operands of identical shape.
//   - dst: caller-owned result of the same shape (may alias a or b).
//
// Errors:
//   - ErrNilMatrix, ErrReleased, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func Add(a, b, dst *Dense) error { return addSub(a, b, dst, +1, opAdd) }

// Sub computes the element-wise difference dst = a - b.
// Same contract as Add.
func Sub(a, b, dst *Dense) error { return addSub(a, b, dst, -1, opSub) }

// Scale computes dst = a * s element-wise.
// Implementation:
//   - Stage 1: ValidateNotNil(a, dst); ValidateSameShape(a, dst).
//   - Stage 2: flat loop.
//
// Errors:
//   - ErrNilMatrix, ErrReleased, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func Scale(a *Dense, s float32, dst *Dense) error {
	if err := ValidateNotNil(a, dst); err != nil {
		return matrixErrorf(opScale, err)
	}
	if err := ValidateSameShape(a, dst); err != nil {
		return matrixErrorf(opScale, err)
	}

	ad, out := a.data, dst.data
	for idx := range out {
		out[idx] = ad[idx] * s
	}

	return nil
}

// addBlock computes dst = a + b over equally-shaped blocks (row-wise, i→j).
func addBlock(dst, a, b block) {
	var i, j int
	for i = 0; i < dst.n; i++ {
		dr, ar, br := dst.row(i), a.row(i), b.row(i)
		for j = range dr {
			dr[j] = ar[j] + br[j]
		}
	}
}

// subBlock computes dst = a - b over equally-shaped blocks (row-wise, i→j).
func subBlock(dst, a, b block) {
	var i, j int
	for i = 0; i < dst.n; i++ {
		dr, ar, br := dst.row(i), a.row(i), b.row(i)
		for j = range dr {
			dr[j] = ar[j] - br[j]
		}
	}
}

// accBlock computes dst += a over equally-shaped blocks.
func accBlock(dst, a block) {
	var i, j int
	for i = 0; i < dst.n; i++ {
		dr, ar := dst.row(i), a.row(i)
		for j = range dr {
			dr[j] += ar[j]
		}
	}
}

// decBlock computes dst -= a over equally-shaped blocks.
func decBlock(dst, a block) {
	var i, j int
	for i = 0; i < dst.n; i++ {
		dr, ar := dst.row(i), a.row(i)
		for j = range dr {
			dr[j] -= ar[j]
		}
	}
}
