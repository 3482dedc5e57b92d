// SPDX-License-Identifier: MIT

package suite

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/densemat/engine"
	"github.com/katalvlaran/densemat/matrix"
)

const (
	tolElement  = 1e-6
	tolStrassen = 1e-3
)

// errCreate is reported when CreateMatrix hands back nil.
var errCreate = errors.New("matrix creation returned nil")

// Case is one named conformance check. Run drives only the engine contract
// and returns the first failure it sees, or nil.
type Case struct {
	Name string
	Run  func(e *engine.Engine) error
}

// Cases returns the conformance checks in their canonical order.
func Cases() []Case {
	return []Case{
		{"Matrix Creation", checkCreate},
		{"Matrix Free", checkFree},
		{"Matrix Set & Get", checkSetGet},
		{"Matrix Edge Cases", checkEdgeCases},
		{"Matrix Addition", checkAdd},
		{"Matrix Scalar Multiplication", checkScale},
		{"Matrix Multiplication", checkMultiply},
		{"Strassen Base Case", checkStrassenBase},
		{"Strassen vs Naive", checkStrassenVsNaive},
		{"Stale Result Overwrite", checkStaleOverwrite},
	}
}

// handles tracks every handle a check creates so one deferred call frees them.
type handles struct {
	e   *engine.Engine
	all []*matrix.Dense
}

func (h *handles) create(rows, cols int) (*matrix.Dense, error) {
	m := h.e.CreateMatrix(rows, cols)
	if m == nil {
		return nil, fmt.Errorf("%dx%d: %w", rows, cols, errCreate)
	}
	h.all = append(h.all, m)

	return m, nil
}

func (h *handles) free() {
	for _, m := range h.all {
		h.e.FreeMatrix(m)
	}
}

func floatEqual(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) < float64(tol)
}

func set(e *engine.Engine, m *matrix.Dense, rows [][]float32) {
	for i, row := range rows {
		for j, v := range row {
			e.SetElement(m, i, j, v)
		}
	}
}

// expect compares m cell by cell against want through GetElement.
func expect(e *engine.Engine, m *matrix.Dense, want [][]float32, tol float32, msg string) error {
	for i, row := range want {
		for j, v := range row {
			if got := e.GetElement(m, i, j); !floatEqual(got, v, tol) {
				return fmt.Errorf("%s: cell (%d,%d) = %g, want %g", msg, i, j, got, v)
			}
		}
	}

	return nil
}

func checkCreate(e *engine.Engine) error {
	h := &handles{e: e}
	defer h.free()

	m, err := h.create(3, 4)
	if err != nil {
		return err
	}

	return expect(e, m, make2D(3, 4, 0), tolElement, "matrix not initialized to 0")
}

// checkFree passes when populate-then-free completes without faulting and
// leaves the handle reading as empty.
func checkFree(e *engine.Engine) error {
	m := e.CreateMatrix(2, 2)
	if m == nil {
		return errCreate
	}
	set(e, m, [][]float32{{1, 2}, {3, 4}})
	e.FreeMatrix(m)
	if v := e.GetElement(m, 0, 0); v != 0 {
		return fmt.Errorf("freed handle still reads %g", v)
	}

	return nil
}

func checkSetGet(e *engine.Engine) error {
	h := &handles{e: e}
	defer h.free()

	m, err := h.create(2, 2)
	if err != nil {
		return err
	}
	want := [][]float32{{1, 2}, {3, 4}}
	set(e, m, want)

	return expect(e, m, want, tolElement, "incorrect values retrieved")
}

func checkEdgeCases(e *engine.Engine) error {
	h := &handles{e: e}
	defer h.free()

	m, err := h.create(3, 3)
	if err != nil {
		return err
	}
	if v := e.GetElement(m, 5, 5); !floatEqual(v, 0, tolElement) {
		return fmt.Errorf("out-of-bound access did not return default value: got %g", v)
	}

	return nil
}

func checkAdd(e *engine.Engine) error {
	h := &handles{e: e}
	defer h.free()

	a, err := h.create(2, 2)
	if err != nil {
		return err
	}
	b, err := h.create(2, 2)
	if err != nil {
		return err
	}
	res, err := h.create(2, 2)
	if err != nil {
		return err
	}
	set(e, a, [][]float32{{1, 2}, {3, 4}})
	set(e, b, [][]float32{{5, 6}, {7, 8}})
	e.Add(a, b, res)

	return expect(e, res, [][]float32{{6, 8}, {10, 12}}, tolElement, "incorrect matrix addition result")
}

func checkScale(e *engine.Engine) error {
	h := &handles{e: e}
	defer h.free()

	m, err := h.create(2, 3)
	if err != nil {
		return err
	}
	res, err := h.create(2, 3)
	if err != nil {
		return err
	}
	set(e, m, [][]float32{{1, 2, 3}, {4, 5, 6}})
	e.ScalarMultiply(m, 2, res)

	return expect(e, res, [][]float32{{2, 4, 6}, {8, 10, 12}}, tolElement,
		"incorrect scalar multiplication result")
}

func checkMultiply(e *engine.Engine) error {
	h := &handles{e: e}
	defer h.free()

	a, err := h.create(2, 3)
	if err != nil {
		return err
	}
	b, err := h.create(3, 2)
	if err != nil {
		return err
	}
	res, err := h.create(2, 2)
	if err != nil {
		return err
	}
	set(e, a, [][]float32{{1, 2, 3}, {4, 5, 6}})
	set(e, b, [][]float32{{7, 8}, {9, 10}, {11, 12}})
	e.MultiplyNaive(a, b, res)

	return expect(e, res, [][]float32{{58, 64}, {139, 154}}, tolElement,
		"incorrect matrix multiplication result")
}

func checkStrassenBase(e *engine.Engine) error {
	h := &handles{e: e}
	defer h.free()

	a, err := h.create(1, 1)
	if err != nil {
		return err
	}
	b, err := h.create(1, 1)
	if err != nil {
		return err
	}
	res, err := h.create(1, 1)
	if err != nil {
		return err
	}
	e.SetElement(a, 0, 0, 2)
	e.SetElement(b, 0, 0, 3)
	e.MultiplyStrassen(a, b, res)

	return expect(e, res, [][]float32{{6}}, tolElement, "incorrect strassen base case")
}

// checkStrassenVsNaive multiplies the 16×16 fixture A = B = [i·16+j+1]
// both ways and compares every cell.
func checkStrassenVsNaive(e *engine.Engine) error {
	const n = 16
	h := &handles{e: e}
	defer h.free()

	a, err := h.create(n, n)
	if err != nil {
		return err
	}
	b, err := h.create(n, n)
	if err != nil {
		return err
	}
	naive, err := h.create(n, n)
	if err != nil {
		return err
	}
	fast, err := h.create(n, n)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := float32(i*n + j + 1)
			e.SetElement(a, i, j, v)
			e.SetElement(b, i, j, v)
		}
	}
	e.MultiplyNaive(a, b, naive)
	e.MultiplyStrassen(a, b, fast)

	want := make2D(n, n, 0)
	for i := range want {
		for j := range want[i] {
			want[i][j] = e.GetElement(naive, i, j)
		}
	}

	return expect(e, fast, want, tolStrassen, "strassen diverges from naive")
}

// checkStaleOverwrite pre-fills the result with garbage before each op.
func checkStaleOverwrite(e *engine.Engine) error {
	h := &handles{e: e}
	defer h.free()

	a, err := h.create(2, 2)
	if err != nil {
		return err
	}
	b, err := h.create(2, 2)
	if err != nil {
		return err
	}
	res, err := h.create(2, 2)
	if err != nil {
		return err
	}
	set(e, a, [][]float32{{1, 2}, {3, 4}})
	set(e, b, [][]float32{{5, 6}, {7, 8}})
	stale := make2D(2, 2, 99)

	steps := []struct {
		name string
		run  func()
		want [][]float32
	}{
		{"add", func() { e.Add(a, b, res) }, [][]float32{{6, 8}, {10, 12}}},
		{"scale", func() { e.ScalarMultiply(a, 0, res) }, make2D(2, 2, 0)},
		{"naive", func() { e.MultiplyNaive(a, b, res) }, [][]float32{{19, 22}, {43, 50}}},
		{"strassen", func() { e.MultiplyStrassen(a, b, res) }, [][]float32{{19, 22}, {43, 50}}},
	}
	for _, s := range steps {
		set(e, res, stale)
		s.run()
		if err = expect(e, res, s.want, tolElement, s.name+" kept stale cells"); err != nil {
			return err
		}
	}

	return nil
}

func make2D(rows, cols int, v float32) [][]float32 {
	out := make([][]float32, rows)
	for i := range out {
		out[i] = make([]float32, cols)
		for j := range out[i] {
			out[i][j] = v
		}
	}

	return out
}
