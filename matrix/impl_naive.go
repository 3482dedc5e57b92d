// SPDX-License-Identifier: MIT

// Package matrix: reference O(n³) product.
//
// Mul is the numerical reference for every optimized path in this package.
// Its accumulation order is fixed: for each output cell the partial sum starts
// at zero and adds a[i][k]*b[k][j] for k = 0, 1, ..., n-1. Strassen's base case
// calls the same block kernel, so both paths round identically below the cutover.

package matrix

// Mul performs standard matrix multiplication dst = a × b.
// Implementation:
//   - Stage 1: ValidateNotNil(a, b, dst), ValidateMulShape, ValidateNoAlias.
//   - Stage 2: mulBlock over whole-matrix blocks (i→k→j, ascending k per cell).
//
// Behavior highlights:
//   - dst is fully overwritten; its previous contents are never read.
//   - No allocations.
//
// Inputs:
//   - a: r×n, b: n×c, dst: r×c (caller-owned, distinct from a and b).
//
// Errors:
//   - ErrNilMatrix, ErrReleased, ErrDimensionMismatch, ErrAliasedOperand.
//
// Complexity:
//   - Time O(r*n*c), Space O(1).
func Mul(a, b, dst *Dense) error {
	if err := ValidateNotNil(a, b, dst); err != nil {
		return matrixErrorf(opMul, err)
	}
	if err := ValidateMulShape(a, b, dst); err != nil {
		return matrixErrorf(opMul, err)
	}
	if err := ValidateNoAlias(dst, a, b); err != nil {
		return matrixErrorf(opMul, err)
	}

	mulBlock(denseBlock(dst), denseBlock(a), denseBlock(b))

	return nil
}

// mulBlock computes dst = a × b over blocks: a is n×k, b is k×m, dst is n×m.
// Row i of dst is cleared first and then receives a[i][p]*b[p][:] for
// p = 0..k-1 in order, so each cell accumulates with ascending p.
// dst must not overlap a or b.
func mulBlock(dst, a, b block) {
	var i, p, j int
	var av float32
	for i = 0; i < dst.n; i++ {
		dr := dst.row(i)
		for j = range dr {
			dr[j] = 0
		}
		ar := a.row(i)
		for p = 0; p < a.m; p++ {
			av = ar[p]
			br := b.row(p)
			for j = range dr {
				// explicit conversion rounds the product before the add (no FMA)
				dr[j] += float32(av * br[j])
			}
		}
	}
}
