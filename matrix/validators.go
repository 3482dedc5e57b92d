// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for operand checks.
//  - Keep kernels/facades minimal by delegating nil/released/shape/alias checks here.
//  - Return sentinel errors tagged with the validator name so call sites can
//    wrap uniformly with matrixErrorf.
//
// Determinism & Performance:
//  - All checks are pure, O(1) and allocate nothing on success.
//
// Note:
//  - Composite validation follows a fixed sequence: NotNil → Shape → NoAlias.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures every operand is non-nil and not released.
//
// Returns ErrNilMatrix or ErrReleased (tagged).
// Complexity: O(k) for k operands.
func ValidateNotNil(ms ...*Dense) error {
	for _, m := range ms {
		if m == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
		if m.released {
			return validatorErrorf("ValidateNotNil", ErrReleased)
		}
	}

	return nil
}

// ValidateSameShape ensures a and b have equal dimensions.
//
// Implementation: assumes a and b are not nil (caller must ensure).
// Complexity: O(1).
func ValidateSameShape(a, b *Dense) error {
	if a.r != b.r {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.c != b.c {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulShape ensures a (r×n) and b (n×c) are conformable and dst is r×c.
//
// Implementation: assumes non-nil operands.
// Complexity: O(1).
func ValidateMulShape(a, b, dst *Dense) error {
	if a.c != b.r {
		return validatorErrorf("ValidateMulShape: Inner", ErrDimensionMismatch)
	}
	if dst.r != a.r || dst.c != b.c {
		return validatorErrorf("ValidateMulShape: Result", ErrDimensionMismatch)
	}

	return nil
}

// ValidateNoAlias ensures dst does not share storage with any operand.
// Every Dense owns its buffer exclusively, so identity is sufficient.
// Complexity: O(k).
func ValidateNoAlias(dst *Dense, operands ...*Dense) error {
	for _, op := range operands {
		if op == dst {
			return validatorErrorf("ValidateNoAlias", ErrAliasedOperand)
		}
	}

	return nil
}
