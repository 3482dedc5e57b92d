// Package densemat is a dense float32 matrix engine with a Strassen multiply.
//
// 🚀 What is densemat?
//
//	A small, pure-Go engine that brings together:
//		• Storage: exclusively-owned row-major buffers with explicit Release
//		• Access: checked At/Set and unchecked Get/Put that never fault
//		• Element-wise ops: Add, Sub, Scale into caller-owned results
//		• Reference multiply: the triple loop with a fixed accumulation order
//		• Strassen: seven-product recursion with padding, cropping and a cutover
//
// ✨ Why choose densemat?
//
//   - Deterministic: same inputs give bit-identical results on every run
//   - Accountable: every Strassen temporary goes through an Allocator; a Store
//     counts them and can cap them
//   - Verified: Strassen is held to the reference kernel and to gonum BLAS
//
// Under the hood, everything is organized under a few packages:
//
//	matrix/            Dense, Store, kernels, options, fixtures, comparisons
//	engine/            flat handle API (CreateMatrix … MultiplyStrassen), no errors
//	internal/suite/    console conformance checks driven through engine
//	internal/timing/   wall-clock measurement and the bench report
//	cmd/matrixcheck/   runs the conformance checks, exit code = failures
//	cmd/matrixbench/   cross-checks and times naive, strassen and blas32
//
// Quick example:
//
//	a := engine.CreateMatrix(2, 3)
//	b := engine.CreateMatrix(3, 2)
//	c := engine.CreateMatrix(2, 2)
//	engine.MultiplyStrassen(a, b, c)
//
//	go get github.com/katalvlaran/densemat
package densemat
