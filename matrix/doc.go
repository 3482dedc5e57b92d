// Package matrix is a dense float32 matrix engine.
//
// The matrix package provides:
//
//   - Dense: an exclusively-owned, zero-initialized, row-major buffer with a
//     fixed shape, explicit Release, checked accessors (At/Set returning
//     ErrOutOfRange) and unchecked ones (Get/Put degrading to 0.0 / no-op).
//   - Allocator / Store: where buffers come from, with live-handle and cell
//     accounting and an optional budget (ErrAllocation).
//   - Add, Sub, Scale: element-wise kernels into a caller-supplied result.
//   - Mul: the reference O(n³) product with ascending-k accumulation.
//   - Strassen: the recursive seven-product multiply with zero padding and
//     cropping, falling back to the Mul kernel at or below the cutover.
//   - Fixtures (NewFromRows, NewSequence, NewIdentity, NewRandom) and
//     tolerance comparisons (AllClose, MaxAbsDiff, Equal).
//
// Kernels never allocate their result: the caller creates it with the right
// shape and owns its lifetime. Every kernel overwrites every cell of the
// result. Nothing here is synchronized; a Dense has one owner at a time.
//
// See the examples in this package and the engine package for the flat,
// handle-based contract.
package matrix
