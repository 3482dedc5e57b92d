// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures and comparison utilities for kernels.
//   • Keep the independent BLAS oracle in one place.

package matrix_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/katalvlaran/densemat/matrix"
)

const (
	tolSimple  = 1e-6 // add / scale / small products
	tolProduct = 1e-3 // accumulated products
)

// mustDense allocates an r×c *Dense or fails the test.
func mustDense(tb testing.TB, r, c int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		tb.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// mustFromRows builds a *Dense from literal rows or fails the test.
func mustFromRows(tb testing.TB, rows [][]float32) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewFromRows(rows)
	if err != nil {
		tb.Fatalf("NewFromRows: %v", err)
	}

	return m
}

// mustRandom builds a seeded random r×c matrix or fails the test.
func mustRandom(tb testing.TB, r, c int, seed int64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewRandom(r, c, seed)
	if err != nil {
		tb.Fatalf("NewRandom(%d,%d,%d): %v", r, c, seed, err)
	}

	return m
}

// rowsOf copies m into a [][]float32 for cmp-based diffs.
func rowsOf(m *matrix.Dense) [][]float32 {
	out := make([][]float32, m.Rows())
	for i := range out {
		out[i] = make([]float32, m.Cols())
		for j := range out[i] {
			out[i][j] = m.Get(i, j)
		}
	}

	return out
}

// requireCells fails t when m differs from want by more than tol in any cell.
func requireCells(t *testing.T, want [][]float32, m *matrix.Dense, tol float32) {
	t.Helper()
	if diff := cmp.Diff(want, rowsOf(m), cmpopts.EquateApprox(0, float64(tol))); diff != "" {
		t.Fatalf("cells mismatch (-want +got):\n%s", diff)
	}
}

// blasProduct computes a×b with gonum's float32 GEMM; an oracle that shares
// no code with the package under test.
func blasProduct(tb testing.TB, a, b *matrix.Dense) *matrix.Dense {
	tb.Helper()
	c := mustDense(tb, a.Rows(), b.Cols())
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas32.General{Rows: a.Rows(), Cols: a.Cols(), Data: a.Raw(), Stride: a.Cols()},
		blas32.General{Rows: b.Rows(), Cols: b.Cols(), Data: b.Raw(), Stride: b.Cols()},
		0,
		blas32.General{Rows: c.Rows(), Cols: c.Cols(), Data: c.Raw(), Stride: c.Cols()},
	)

	return c
}

// poison fills m with a sentinel so tests can prove every cell is overwritten.
func poison(m *matrix.Dense) { m.Fill(-12345) }
