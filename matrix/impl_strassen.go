// SPDX-License-Identifier: MIT

// Package matrix: Strassen multiply.
//
// Purpose:
//   - Compute dst = a × b with seven half-size products per level instead of eight.
//   - Agree with Mul within floating-point tolerance; below the cutover both
//     paths run the very same block kernel.
//
// Algorithm (per level, working size n = 2h):
//
//	M1 = (A11+A22)(B11+B22)    C11 = M1 + M4 − M5 + M7
//	M2 = (A21+A22) B11         C12 = M3 + M5
//	M3 = A11 (B12−B22)         C21 = M2 + M4
//	M4 = A22 (B21−B11)         C22 = M1 − M2 + M3 + M6
//	M5 = (A11+A12) B22
//	M6 = (A21−A11)(B11+B12)
//	M7 = (A12−A22)(B21+B22)
//
// Memory:
//   - Quadrants are strided views (block.sub), never copies.
//   - Operands that are not square power-of-two blocks are zero-padded once at
//     the top level; the padded product is cropped back into dst.
//   - Every temporary comes from Options.Allocator and is released before the
//     frame that allocated it returns, on success and on error.
//
// Complexity:
//   - Time O(n^log2(7)) above the cutover; Space O(n²) of temporaries
//     (≈ 3n² summed over the recursion).

package matrix

// strassenScratch is the number of h×h temporaries per recursion frame:
// two operand combinations (S, T) and the seven products M1..M7.
const strassenScratch = 9

// Strassen computes dst = a × b with the recursive Strassen algorithm.
// Implementation:
//   - Stage 1: ValidateNotNil, ValidateMulShape, ValidateNoAlias; resolve options.
//   - Stage 2: working size ≤ cutover ⇒ naive block kernel on the operands as-is.
//   - Stage 3: square power-of-two operands ⇒ recurse directly on caller buffers.
//   - Stage 4: otherwise pad a and b to p×p (p = smallest power of two ≥ largest
//     dimension), recurse into a p×p product, crop into dst.
//
// Behavior highlights:
//   - dst is fully overwritten; stale contents never leak.
//   - Padded cells are zero, so they contribute nothing to in-bounds sums.
//
// Inputs:
//   - a: r×n, b: n×c, dst: r×c (caller-owned, distinct from a and b).
//   - opts: WithCutover, WithAllocator.
//
// Errors:
//   - ErrNilMatrix, ErrReleased, ErrDimensionMismatch, ErrAliasedOperand.
//   - ErrAllocation when the allocator cannot provide a temporary.
//
// Complexity:
//   - Time O(p^2.807), Space O(p²) temporaries.
func Strassen(a, b, dst *Dense, opts ...Option) error {
	if err := ValidateNotNil(a, b, dst); err != nil {
		return matrixErrorf(opStrassen, err)
	}
	if err := ValidateMulShape(a, b, dst); err != nil {
		return matrixErrorf(opStrassen, err)
	}
	if err := ValidateNoAlias(dst, a, b); err != nil {
		return matrixErrorf(opStrassen, err)
	}
	o := gatherOptions(opts...)

	size := max(a.r, a.c, b.c) // b.r == a.c after validation
	if size <= o.cutover {
		mulBlock(denseBlock(dst), denseBlock(a), denseBlock(b))
		return nil
	}

	p := nextPow2(size)
	if a.r == p && a.c == p && b.c == p {
		if err := strassenRec(denseBlock(dst), denseBlock(a), denseBlock(b), p, o); err != nil {
			return matrixErrorf(opStrassen, err)
		}
		return nil
	}

	if err := strassenPadded(a, b, dst, p, o); err != nil {
		return matrixErrorf(opStrassen, err)
	}

	return nil
}

// strassenPadded copies a and b into zeroed p×p buffers, multiplies them and
// crops the top-left dst.r×dst.c corner of the product into dst.
func strassenPadded(a, b, dst *Dense, p int, o Options) error {
	pads, err := allocScratch(o.alloc, p, 3)
	if err != nil {
		return err
	}
	defer releaseScratch(o.alloc, pads)

	pa, pb, pc := denseBlock(pads[0]), denseBlock(pads[1]), denseBlock(pads[2])
	copyBlock(pa, denseBlock(a))
	copyBlock(pb, denseBlock(b))

	if err = strassenRec(pc, pa, pb, p, o); err != nil {
		return err
	}
	crop, err := pads[2].View(0, 0, dst.r, dst.c)
	if err != nil {
		return err
	}
	copyBlock(denseBlock(dst), crop.block())

	return nil
}

// strassenRec computes c = a × b for n×n blocks, n a power of two.
// c must not overlap a or b.
func strassenRec(c, a, b block, n int, o Options) error {
	if n <= o.cutover {
		mulBlock(c, a, b)
		return nil
	}

	h := n / 2
	scratch, err := allocScratch(o.alloc, h, strassenScratch)
	if err != nil {
		return err
	}
	defer releaseScratch(o.alloc, scratch)

	var blocks [strassenScratch]block
	for i, d := range scratch {
		blocks[i] = denseBlock(d)
	}
	s, t := blocks[0], blocks[1]
	m1, m2, m3, m4, m5, m6, m7 := blocks[2], blocks[3], blocks[4], blocks[5], blocks[6], blocks[7], blocks[8]

	a11, a12, a21, a22 := a.quadrants(h)
	b11, b12, b21, b22 := b.quadrants(h)
	c11, c12, c21, c22 := c.quadrants(h)

	// M1 = (A11+A22)(B11+B22)
	addBlock(s, a11, a22)
	addBlock(t, b11, b22)
	if err = strassenRec(m1, s, t, h, o); err != nil {
		return err
	}
	// M2 = (A21+A22) B11
	addBlock(s, a21, a22)
	if err = strassenRec(m2, s, b11, h, o); err != nil {
		return err
	}
	// M3 = A11 (B12−B22)
	subBlock(t, b12, b22)
	if err = strassenRec(m3, a11, t, h, o); err != nil {
		return err
	}
	// M4 = A22 (B21−B11)
	subBlock(t, b21, b11)
	if err = strassenRec(m4, a22, t, h, o); err != nil {
		return err
	}
	// M5 = (A11+A12) B22
	addBlock(s, a11, a12)
	if err = strassenRec(m5, s, b22, h, o); err != nil {
		return err
	}
	// M6 = (A21−A11)(B11+B12)
	subBlock(s, a21, a11)
	addBlock(t, b11, b12)
	if err = strassenRec(m6, s, t, h, o); err != nil {
		return err
	}
	// M7 = (A12−A22)(B21+B22)
	subBlock(s, a12, a22)
	addBlock(t, b21, b22)
	if err = strassenRec(m7, s, t, h, o); err != nil {
		return err
	}

	// C11 = M1 + M4 − M5 + M7
	addBlock(c11, m1, m4)
	decBlock(c11, m5)
	accBlock(c11, m7)
	// C12 = M3 + M5
	addBlock(c12, m3, m5)
	// C21 = M2 + M4
	addBlock(c21, m2, m4)
	// C22 = M1 − M2 + M3 + M6
	subBlock(c22, m1, m2)
	accBlock(c22, m3)
	accBlock(c22, m6)

	return nil
}

// allocScratch allocates count n×n temporaries. On failure every buffer
// obtained so far is released before the error is returned.
func allocScratch(alloc Allocator, n, count int) ([]*Dense, error) {
	out := make([]*Dense, 0, count)
	for i := 0; i < count; i++ {
		d, err := alloc.Alloc(n, n)
		if err != nil {
			releaseScratch(alloc, out)
			return nil, err
		}
		out = append(out, d)
	}

	return out, nil
}

// releaseScratch returns every temporary to alloc.
func releaseScratch(alloc Allocator, ds []*Dense) {
	for _, d := range ds {
		alloc.Release(d)
	}
}

// nextPow2 returns the smallest power of two ≥ n (n ≥ 1).
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
