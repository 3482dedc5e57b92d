// SPDX-License-Identifier: MIT

// Package matrix: strided sub-views used by the multiply kernels.
//
// A block addresses an n×m window of a shared row-major buffer through an
// offset and a row stride. Quadrant partitioning in Strassen is therefore a
// constant-time re-slicing instead of a copy; copies happen only at padding
// boundaries where operand and working sizes diverge.

package matrix

// block is a strided, non-owning window into a flat row-major buffer.
type block struct {
	data   []float32 // shared backing storage
	off    int       // offset of cell (0,0)
	stride int       // distance between consecutive rows
	n      int       // rows
	m      int       // cols
}

// denseBlock returns the whole of d as a block.
func denseBlock(d *Dense) block {
	return block{data: d.data, stride: d.c, n: d.r, m: d.c}
}

// block exposes v as a strided window over its base buffer.
func (v *MatrixView) block() block {
	return block{
		data:   v.base.data,
		off:    v.r0*v.base.c + v.c0,
		stride: v.base.c,
		n:      v.r,
		m:      v.c,
	}
}

// sub returns the rows×cols window starting at (r0, c0).
// Bounds are the caller's invariant (kernels only partition exact halves).
func (b block) sub(r0, c0, rows, cols int) block {
	return block{
		data:   b.data,
		off:    b.off + r0*b.stride + c0,
		stride: b.stride,
		n:      rows,
		m:      cols,
	}
}

// row returns row i of the block as a slice of length m.
func (b block) row(i int) []float32 {
	start := b.off + i*b.stride

	return b.data[start : start+b.m]
}

// quadrants splits a 2h×2h block into its four h×h quadrants.
func (b block) quadrants(h int) (q11, q12, q21, q22 block) {
	return b.sub(0, 0, h, h), b.sub(0, h, h, h), b.sub(h, 0, h, h), b.sub(h, h, h, h)
}

// copyBlock copies src into the top-left src.n×src.m corner of dst.
func copyBlock(dst, src block) {
	for i := 0; i < src.n; i++ {
		copy(dst.row(i)[:src.m], src.row(i))
	}
}
