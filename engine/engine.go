// SPDX-License-Identifier: MIT

package engine

import (
	"log/slog"

	"github.com/katalvlaran/densemat/matrix"
)

const (
	opCreate   = "CreateMatrix"
	opGet      = "GetElement"
	opSet      = "SetElement"
	opAdd      = "Add"
	opScale    = "ScalarMultiply"
	opNaive    = "MultiplyNaive"
	opStrassen = "MultiplyStrassen"

	panicLoggerInvalid = "engine: WithLogger: logger must be non-nil"
)

// Engine binds an allocator, a Strassen cutover and a debug logger.
// An Engine is immutable after New and safe to share; the handles it hands
// out are not.
type Engine struct {
	strassen []matrix.Option // replayed on every MultiplyStrassen
	kernel   matrix.Options  // strassen resolved once by New
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithAllocator routes CreateMatrix, FreeMatrix and Strassen temporaries
// through alloc. Panics on nil.
func WithAllocator(alloc matrix.Allocator) Option {
	set := matrix.WithAllocator(alloc)

	return func(e *Engine) { e.strassen = append(e.strassen, set) }
}

// WithCutover sets the Strassen base-case size. Panics when n < 1.
func WithCutover(n int) Option {
	set := matrix.WithCutover(n)

	return func(e *Engine) { e.strassen = append(e.strassen, set) }
}

// WithLogger reports contract violations at debug level through l.
// Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerInvalid)
	}

	return func(e *Engine) { e.logger = l }
}

// New builds an Engine over the heap allocator, matrix.DefaultCutover and a
// discarding logger, then applies opts in order.
func New(opts ...Option) *Engine {
	e := &Engine{logger: slog.New(slog.DiscardHandler)}
	for _, set := range opts {
		set(e)
	}
	e.kernel = matrix.NewOptions(e.strassen...)

	return e
}

// Cutover reports the Strassen base-case size in effect.
func (e *Engine) Cutover() int { return e.kernel.Cutover() }

// violation logs a rejected call. err is the checked-layer reason.
func (e *Engine) violation(op string, err error) {
	e.logger.Debug("contract violation ignored", slog.String("op", op), slog.Any("error", err))
}

// CreateMatrix returns a zero-filled rows×cols handle, or nil.
func (e *Engine) CreateMatrix(rows, cols int) *matrix.Dense {
	m, err := e.kernel.Allocator().Alloc(rows, cols)
	if err != nil {
		e.violation(opCreate, err)
		return nil
	}

	return m
}

// FreeMatrix releases h. Nil handles are ignored; freeing twice is harmless.
// A handle already invalidated with Dense.Release is still handed back to
// the allocator so its accounting balances.
func (e *Engine) FreeMatrix(h *matrix.Dense) {
	if h == nil {
		return
	}
	e.kernel.Allocator().Release(h)
}

// GetElement reads h[row][col]; 0 for a nil handle or out-of-range index.
func (e *Engine) GetElement(h *matrix.Dense, row, col int) float32 {
	if h == nil {
		e.violation(opGet, matrix.ErrNilMatrix)
		return 0
	}
	v, err := h.At(row, col)
	if err != nil {
		e.violation(opGet, err)
		return 0
	}

	return v
}

// SetElement writes h[row][col]; out-of-range writes are dropped.
func (e *Engine) SetElement(h *matrix.Dense, row, col int, value float32) {
	if h == nil {
		e.violation(opSet, matrix.ErrNilMatrix)
		return
	}
	if err := h.Set(row, col, value); err != nil {
		e.violation(opSet, err)
	}
}

// Add writes a+b into result.
func (e *Engine) Add(a, b, result *matrix.Dense) {
	if err := matrix.Add(a, b, result); err != nil {
		e.violation(opAdd, err)
	}
}

// ScalarMultiply writes scalar·a into result.
func (e *Engine) ScalarMultiply(a *matrix.Dense, scalar float32, result *matrix.Dense) {
	if err := matrix.Scale(a, scalar, result); err != nil {
		e.violation(opScale, err)
	}
}

// MultiplyNaive writes a×b into result with the reference kernel.
func (e *Engine) MultiplyNaive(a, b, result *matrix.Dense) {
	if err := matrix.Mul(a, b, result); err != nil {
		e.violation(opNaive, err)
	}
}

// MultiplyStrassen writes a×b into result with the Strassen kernel. When the
// allocator runs out midway, result is left untouched.
func (e *Engine) MultiplyStrassen(a, b, result *matrix.Dense) {
	if err := matrix.Strassen(a, b, result, e.strassen...); err != nil {
		e.violation(opStrassen, err)
	}
}

// std backs the package-level functions.
var std = New()

// Default returns the engine behind the package-level functions.
func Default() *Engine { return std }

// CreateMatrix calls Default().CreateMatrix.
func CreateMatrix(rows, cols int) *matrix.Dense { return std.CreateMatrix(rows, cols) }

// FreeMatrix calls Default().FreeMatrix.
func FreeMatrix(h *matrix.Dense) { std.FreeMatrix(h) }

// GetElement calls Default().GetElement.
func GetElement(h *matrix.Dense, row, col int) float32 { return std.GetElement(h, row, col) }

// SetElement calls Default().SetElement.
func SetElement(h *matrix.Dense, row, col int, value float32) { std.SetElement(h, row, col, value) }

// Add calls Default().Add.
func Add(a, b, result *matrix.Dense) { std.Add(a, b, result) }

// ScalarMultiply calls Default().ScalarMultiply.
func ScalarMultiply(a *matrix.Dense, scalar float32, result *matrix.Dense) {
	std.ScalarMultiply(a, scalar, result)
}

// MultiplyNaive calls Default().MultiplyNaive.
func MultiplyNaive(a, b, result *matrix.Dense) { std.MultiplyNaive(a, b, result) }

// MultiplyStrassen calls Default().MultiplyStrassen.
func MultiplyStrassen(a, b, result *matrix.Dense) { std.MultiplyStrassen(a, b, result) }
