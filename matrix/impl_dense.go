// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major float32) & accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Expose two access layers: checked (At/Set return errors) and unchecked
//     (Get/Put degrade to 0.0 / no-op on out-of-range indices).
//   - Make Release an explicit, safe invalidation: the buffer is dropped and the
//     shape collapses to 0×0, so stale handles can never touch memory.
//   - Support no-copy windows (MatrixView).
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set/Get/Put: O(1); Clone: O(r*c); View: O(1).

package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt    = "At"    // method tag used in error wrappers
	ctxSet   = "Set"   // method tag used in error wrappers
	ctxView  = "View"  // ctor tag for Dense.View
	ctxApply = "Apply" // method tag used in error wrappers
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major float32 matrix.
//   - r,c hold dimensions (rows, cols); both are fixed for the lifetime of the handle.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - released marks a handle invalidated by Release.
type Dense struct {
	r, c     int       // row and column counts (>0 until released)
	data     []float32 // contiguous row-major storage (len == r*c)
	released bool      // set once by Release; never cleared
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate a zero-filled buffer.
//
// Behavior highlights:
//   - No panics on user errors; returns sentinel errors.
//   - The buffer is never implicitly reset after creation.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// make() zero-fills deterministically.
	return &Dense{r: rows, c: cols, data: make([]float32, rows*cols)}, nil
}

// Rows returns the row count (0 after Release).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count (0 after Release).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// Released reports whether Release has been called on m.
func (m *Dense) Released() bool { return m.released }

// Raw exposes the row-major backing slice. Writes are visible through m.
// The slice is nil after Release.
func (m *Dense) Raw() []float32 { return m.data }

// inBounds reports whether (row, col) addresses a cell of m.
// A released matrix has shape 0×0, so nothing is in bounds.
func (m *Dense) inBounds(row, col int) bool {
	return row >= 0 && row < m.r && col >= 0 && col < m.c
}

// indexOf computes the row-major offset or returns a wrapped sentinel.
// Implementation:
//   - Stage 1: reject released handles with ErrReleased.
//   - Stage 2: validate 0 ≤ row < r and 0 ≤ col < c.
//   - Stage 3: compute row*c + col.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if m.released {
		return 0, denseErrorf(method, row, col, ErrReleased)
	}
	if !m.inBounds(row, col) {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Errors:
//   - ErrReleased, ErrOutOfRange (wrapped with coordinates).
//
// Complexity: O(1).
func (m *Dense) At(row, col int) (float32, error) {
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Errors:
//   - ErrReleased, ErrOutOfRange (wrapped with coordinates).
//
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float32) error {
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Get is the unchecked read: it returns the stored value when (row, col) is
// in range and 0.0 otherwise. It never faults and never reads outside the
// buffer.
func (m *Dense) Get(row, col int) float32 {
	if !m.inBounds(row, col) {
		return 0
	}

	return m.data[row*m.c+col]
}

// Put is the unchecked write: out-of-range (or post-Release) writes are
// silently ignored.
func (m *Dense) Put(row, col int, v float32) {
	if !m.inBounds(row, col) {
		return
	}
	m.data[row*m.c+col] = v
}

// Fill sets every cell to v. No-op on a released handle.
// Complexity: O(r*c).
func (m *Dense) Fill(v float32) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Release drops the buffer and invalidates the handle.
// After Release the shape is 0×0, checked access returns ErrReleased and
// unchecked access degrades to 0.0 / no-op. Calling Release twice is a no-op.
func (m *Dense) Release() {
	if m == nil || m.released {
		return
	}
	m.data = nil
	m.r, m.c = 0, 0
	m.released = true
}

// Clone returns a deep copy of the Dense matrix.
// Cloning a released handle yields another released handle.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() *Dense {
	if m.released {
		return &Dense{released: true}
	}
	buf := make([]float32, len(m.data))
	copy(buf, m.data)

	return &Dense{r: m.r, c: m.c, data: buf}
}

// String implements fmt.Stringer: one bracketed row per line.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var b strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			fmt.Fprintf(&b, "%g", m.data[i*m.c+j])
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// View creates a no-copy window [r0:r0+rows, c0:c0+cols) over the same storage.
// Implementation:
//   - Stage 1: reject released handles; validate window bounds (rows, cols > 0).
//   - Stage 2: return MatrixView with offsets.
//
// Behavior highlights:
//   - Writes via the view reflect in the base.
//
// Errors:
//   - ErrReleased, ErrOutOfRange when the window exceeds the base.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) View(r0, c0, rows, cols int) (*MatrixView, error) {
	if m.released {
		return nil, fmt.Errorf("Dense.%s(%d,%d,%d,%d): %w", ctxView, r0, c0, rows, cols, ErrReleased)
	}
	if r0 < 0 || c0 < 0 || rows <= 0 || cols <= 0 || r0+rows > m.r || c0+cols > m.c {
		return nil, fmt.Errorf("Dense.%s(%d,%d,%d,%d): %w", ctxView, r0, c0, rows, cols, ErrOutOfRange)
	}

	return &MatrixView{base: m, r0: r0, c0: c0, r: rows, c: cols}, nil
}

// MatrixView is a non-owning window into a Dense (shared storage).
type MatrixView struct {
	base *Dense // underlying storage owner
	r0   int    // top-left row offset in base
	c0   int    // top-left col offset in base
	r    int    // view height
	c    int    // view width
}

// Rows returns the number of rows in the view.
func (v *MatrixView) Rows() int { return v.r }

// Cols returns the number of columns in the view.
func (v *MatrixView) Cols() int { return v.c }

// At reads element (i,j) in the view or returns ErrOutOfRange.
// A view over a released base reports ErrReleased.
func (v *MatrixView) At(i, j int) (float32, error) {
	if v.base.released {
		return 0, fmt.Errorf("MatrixView.At(%d,%d): %w", i, j, ErrReleased)
	}
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return 0, fmt.Errorf("MatrixView.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return v.base.data[(v.r0+i)*v.base.c+(v.c0+j)], nil
}

// Set writes element (i,j) in the view through to the base buffer.
func (v *MatrixView) Set(i, j int, val float32) error {
	if v.base.released {
		return fmt.Errorf("MatrixView.Set(%d,%d): %w", i, j, ErrReleased)
	}
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return fmt.Errorf("MatrixView.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	v.base.data[(v.r0+i)*v.base.c+(v.c0+j)] = val

	return nil
}

// Do visits each element (i,j) in row-major order and calls f(i,j,v).
// Stops early when f returns false.
// Complexity: O(r*c), Space O(1).
func (m *Dense) Do(f func(i, j int, v float32) bool) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// Apply replaces each element with f(i,j,v) in-place, row-major order.
// Errors:
//   - ErrReleased when m has been released.
//
// Complexity: O(r*c), Space O(1).
func (m *Dense) Apply(f func(i, j int, v float32) float32) error {
	if m.released {
		return denseErrorf(ctxApply, 0, 0, ErrReleased)
	}
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			m.data[base+j] = f(i, j, m.data[base+j])
		}
	}

	return nil
}
