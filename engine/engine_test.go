// SPDX-License-Identifier: MIT
// Package engine_test exercises the flat handle contract: the classic
// create/free/set/get/add/scale/multiply checks plus the Strassen path.

package engine_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/densemat/engine"
	"github.com/katalvlaran/densemat/matrix"
)

const tol = 1e-6

// fill writes rows into h through the flat contract.
func fill(h *matrix.Dense, rows [][]float32) {
	for i, row := range rows {
		for j, v := range row {
			engine.SetElement(h, i, j, v)
		}
	}
}

// requireRows reads h back through the flat contract.
func requireRows(t *testing.T, want [][]float32, h *matrix.Dense, delta float64) {
	t.Helper()
	for i, row := range want {
		for j, v := range row {
			require.InDelta(t, v, engine.GetElement(h, i, j), delta, "cell (%d,%d)", i, j)
		}
	}
}

func TestMatrixCreation(t *testing.T) {
	m := engine.CreateMatrix(3, 4)
	require.NotNil(t, m)
	defer engine.FreeMatrix(m)

	requireRows(t, [][]float32{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}, m, 0)

	assert.Nil(t, engine.CreateMatrix(0, 4))
	assert.Nil(t, engine.CreateMatrix(3, -1))
}

func TestMatrixFree(t *testing.T) {
	m := engine.CreateMatrix(2, 2)
	fill(m, [][]float32{{1, 2}, {3, 4}})

	engine.FreeMatrix(m)
	require.True(t, m.Released())
	assert.Zero(t, engine.GetElement(m, 0, 0))
	engine.SetElement(m, 0, 0, 9) // no-op on a released handle

	engine.FreeMatrix(m)   // double free is ignored
	engine.FreeMatrix(nil) // so is nil
}

func TestMatrixSetGet(t *testing.T) {
	m := engine.CreateMatrix(2, 2)
	defer engine.FreeMatrix(m)

	fill(m, [][]float32{{1, 2}, {3, 4}})
	requireRows(t, [][]float32{{1, 2}, {3, 4}}, m, tol)
}

func TestMatrixEdgeCases(t *testing.T) {
	m := engine.CreateMatrix(3, 3)
	defer engine.FreeMatrix(m)
	fill(m, [][]float32{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}})

	assert.Zero(t, engine.GetElement(m, 5, 5))
	assert.Zero(t, engine.GetElement(m, -1, 0))
	assert.Zero(t, engine.GetElement(m, 0, 3))
	assert.Zero(t, engine.GetElement(nil, 0, 0))

	engine.SetElement(m, 3, 0, 7)
	engine.SetElement(nil, 0, 0, 7)
	requireRows(t, [][]float32{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}, m, 0)
}

func TestMatrixAddition(t *testing.T) {
	a := engine.CreateMatrix(2, 2)
	b := engine.CreateMatrix(2, 2)
	res := engine.CreateMatrix(2, 2)
	defer func() {
		engine.FreeMatrix(a)
		engine.FreeMatrix(b)
		engine.FreeMatrix(res)
	}()

	fill(a, [][]float32{{1, 2}, {3, 4}})
	fill(b, [][]float32{{5, 6}, {7, 8}})
	engine.Add(a, b, res)
	requireRows(t, [][]float32{{6, 8}, {10, 12}}, res, tol)
}

func TestMatrixScalarMultiplication(t *testing.T) {
	m := engine.CreateMatrix(2, 3)
	res := engine.CreateMatrix(2, 3)
	defer func() {
		engine.FreeMatrix(m)
		engine.FreeMatrix(res)
	}()

	fill(m, [][]float32{{1, 2, 3}, {4, 5, 6}})
	engine.ScalarMultiply(m, 2, res)
	requireRows(t, [][]float32{{2, 4, 6}, {8, 10, 12}}, res, tol)
}

func TestMatrixMultiplication(t *testing.T) {
	a := engine.CreateMatrix(2, 3)
	b := engine.CreateMatrix(3, 2)
	res := engine.CreateMatrix(2, 2)
	defer func() {
		engine.FreeMatrix(a)
		engine.FreeMatrix(b)
		engine.FreeMatrix(res)
	}()

	fill(a, [][]float32{{1, 2, 3}, {4, 5, 6}})
	fill(b, [][]float32{{7, 8}, {9, 10}, {11, 12}})
	engine.MultiplyNaive(a, b, res)
	requireRows(t, [][]float32{{58, 64}, {139, 154}}, res, tol)

	// Strassen on the same operands lands below the cutover and must agree
	fill(res, [][]float32{{-1, -1}, {-1, -1}})
	engine.MultiplyStrassen(a, b, res)
	requireRows(t, [][]float32{{58, 64}, {139, 154}}, res, tol)
}

func TestStrassenBaseCase(t *testing.T) {
	a := engine.CreateMatrix(1, 1)
	b := engine.CreateMatrix(1, 1)
	res := engine.CreateMatrix(1, 1)
	engine.SetElement(a, 0, 0, 2)
	engine.SetElement(b, 0, 0, 3)

	engine.MultiplyStrassen(a, b, res)
	require.InDelta(t, 6, engine.GetElement(res, 0, 0), tol)
}

// TestStrassenAgainstNaive runs the 16×16 sequence law through an engine
// whose cutover forces every recursion level, counting temporaries in a Store.
func TestStrassenAgainstNaive(t *testing.T) {
	const n = 16
	store := matrix.NewStore()
	e := engine.New(engine.WithAllocator(store), engine.WithCutover(2))

	a := e.CreateMatrix(n, n)
	b := e.CreateMatrix(n, n)
	naive := e.CreateMatrix(n, n)
	fast := e.CreateMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := float32(i*n + j + 1)
			e.SetElement(a, i, j, v)
			e.SetElement(b, i, j, v)
		}
	}
	require.Equal(t, 4, store.Live())

	e.MultiplyNaive(a, b, naive)
	e.MultiplyStrassen(a, b, fast)
	require.Equal(t, 4, store.Live(), "strassen leaked temporaries")

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			require.InDelta(t, e.GetElement(naive, i, j), e.GetElement(fast, i, j), 1e-3, "cell (%d,%d)", i, j)
		}
	}

	for _, h := range []*matrix.Dense{a, b, naive, fast} {
		e.FreeMatrix(h)
	}
	require.Zero(t, store.Live())
}

// TestFreeAfterDirectRelease: a handle the caller already released with
// Dense.Release still balances the Store once it is freed.
func TestFreeAfterDirectRelease(t *testing.T) {
	store := matrix.NewStore(matrix.WithMaxCells(16))
	e := engine.New(engine.WithAllocator(store))

	h := e.CreateMatrix(4, 4)
	require.NotNil(t, h)
	h.Release()
	e.FreeMatrix(h)
	require.Zero(t, store.Live())
	require.Zero(t, store.LiveCells())

	again := e.CreateMatrix(4, 4)
	require.NotNil(t, again, "freed cells must be reusable")
	e.FreeMatrix(again)
	e.FreeMatrix(again)
	require.Zero(t, store.Live())
}

func TestEngineOptions(t *testing.T) {
	assert.Equal(t, matrix.DefaultCutover, engine.New().Cutover())
	assert.Equal(t, 8, engine.New(engine.WithCutover(2), engine.WithCutover(8)).Cutover())

	// The configured allocator also serves Strassen temporaries.
	store := matrix.NewStore()
	e := engine.New(engine.WithCutover(1), engine.WithAllocator(store))
	a, b, res := e.CreateMatrix(4, 4), e.CreateMatrix(4, 4), e.CreateMatrix(4, 4)
	allocs := store.Allocs()
	e.MultiplyStrassen(a, b, res)
	assert.Greater(t, store.Allocs(), allocs)
	assert.Equal(t, 3, store.Live())
}

func TestStaleResultOverwrite(t *testing.T) {
	a := engine.CreateMatrix(2, 2)
	b := engine.CreateMatrix(2, 2)
	res := engine.CreateMatrix(2, 2)
	fill(a, [][]float32{{1, 2}, {3, 4}})
	fill(b, [][]float32{{5, 6}, {7, 8}})

	stale := [][]float32{{99, 99}, {99, 99}}
	fill(res, stale)
	engine.Add(a, b, res)
	requireRows(t, [][]float32{{6, 8}, {10, 12}}, res, tol)

	fill(res, stale)
	engine.ScalarMultiply(a, 0, res)
	requireRows(t, [][]float32{{0, 0}, {0, 0}}, res, 0)

	fill(res, stale)
	engine.MultiplyNaive(a, b, res)
	requireRows(t, [][]float32{{19, 22}, {43, 50}}, res, tol)

	fill(res, stale)
	engine.MultiplyStrassen(a, b, res)
	requireRows(t, [][]float32{{19, 22}, {43, 50}}, res, tol)
}

// TestContractViolationsAreLogged: mismatched calls change nothing and show
// up at debug level.
func TestContractViolationsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := engine.New(engine.WithLogger(logger))

	a := e.CreateMatrix(2, 2)
	b := e.CreateMatrix(3, 3)
	res := e.CreateMatrix(2, 2)
	fill(res, [][]float32{{5, 5}, {5, 5}})

	e.Add(a, b, res)
	e.MultiplyNaive(a, b, res)
	e.MultiplyStrassen(a, a, a)
	e.ScalarMultiply(nil, 2, res)
	requireRows(t, [][]float32{{5, 5}, {5, 5}}, res, 0)

	out := buf.String()
	for _, op := range []string{"op=Add", "op=MultiplyNaive", "op=MultiplyStrassen", "op=ScalarMultiply"} {
		assert.Contains(t, out, op)
	}
	assert.Contains(t, out, matrix.ErrDimensionMismatch.Error())
	assert.Contains(t, out, matrix.ErrAliasedOperand.Error())
	assert.Contains(t, out, "level=DEBUG")

	assert.Nil(t, e.CreateMatrix(0, 0))
	assert.Contains(t, buf.String(), "op=CreateMatrix")
}

func TestEngineAllocationBudget(t *testing.T) {
	store := matrix.NewStore(matrix.WithMaxCells(3 * 32 * 32))
	e := engine.New(engine.WithAllocator(store), engine.WithCutover(1))

	a := e.CreateMatrix(32, 32)
	b := e.CreateMatrix(32, 32)
	res := e.CreateMatrix(32, 32)
	require.NotNil(t, res)
	require.Nil(t, e.CreateMatrix(1, 1), "budget exhausted")

	e.SetElement(res, 0, 0, 7)
	e.MultiplyStrassen(a, b, res) // no room for temporaries
	require.Equal(t, float32(7), e.GetElement(res, 0, 0))
	require.Equal(t, 3, store.Live())
}

func TestEngineOptionPanics(t *testing.T) {
	require.PanicsWithValue(t, "engine: WithLogger: logger must be non-nil", func() {
		engine.WithLogger(nil)
	})
	require.PanicsWithValue(t, "matrix: WithCutover: cutover must be >= 1", func() {
		engine.WithCutover(0)
	})
	require.PanicsWithValue(t, "matrix: WithAllocator: allocator must be non-nil", func() {
		engine.WithAllocator(nil)
	})
	require.NotNil(t, engine.Default())
}
