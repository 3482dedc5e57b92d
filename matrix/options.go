// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the Strassen multiplier.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each option changes behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultCutover is the working size at or below which Strassen hands the
	// block to the naive kernel. Below this size the seven-product recursion
	// costs more in temporaries and extra additions than it saves in
	// multiplications.
	DefaultCutover = 64

	// MinCutover is the smallest legal cutover: recursion bottoms out at 1×1,
	// the scalar product.
	MinCutover = 1
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicCutoverInvalid   = "matrix: WithCutover: cutover must be >= 1"
	panicAllocatorInvalid = "matrix: WithAllocator: allocator must be non-nil"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (last-writer-wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	cutover int       // >= MinCutover; DefaultCutover
	alloc   Allocator // temporaries source; HeapAllocator
}

// Cutover reports the resolved base-case size.
func (o Options) Cutover() int { return o.cutover }

// Allocator reports the resolved temporaries allocator.
func (o Options) Allocator() Allocator { return o.alloc }

// WithCutover sets the Strassen base-case size.
// Implementation:
//   - Stage 1: validate n >= MinCutover.
//   - Stage 2: return a setter that writes n into Options.
//
// Errors:
//   - Panics with a stable message when n < 1.
//
// Notes:
//   - WithCutover(1) forces the full recursion down to scalars; useful in tests
//     that must exercise every combine step on small inputs.
func WithCutover(n int) Option {
	if n < MinCutover {
		panic(panicCutoverInvalid)
	}

	return func(o *Options) { o.cutover = n }
}

// WithAllocator routes every temporary (padded operands, quadrant sums,
// the seven products) through alloc. Pass a *Store to account for them.
// Panics on nil.
func WithAllocator(alloc Allocator) Option {
	if alloc == nil {
		panic(panicAllocatorInvalid)
	}

	return func(o *Options) { o.alloc = alloc }
}

// NewOptions resolves option setters against documented defaults.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies user-provided setters on top of defaults.
// Complexity: O(k) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		cutover: DefaultCutover,
		alloc:   HeapAllocator,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
