// Package engine exposes the dense matrix engine through a flat,
// handle-based contract with no error returns.
//
// A handle is a *matrix.Dense. CreateMatrix returns nil when the shape is
// invalid or the allocator refuses; every other function treats a nil,
// released or wrongly shaped handle as a contract violation and does
// nothing (GetElement reads 0). Callers that need to know why an operation
// did nothing attach a logger with WithLogger: violations are reported at
// debug level.
//
// The package-level functions use a default Engine backed by the heap
// allocator and matrix.DefaultCutover. Build an Engine with New to route
// buffers through a matrix.Store or to change the Strassen cutover.
//
//	a := engine.CreateMatrix(2, 2)
//	defer engine.FreeMatrix(a)
//	engine.SetElement(a, 0, 0, 1.5)
//	v := engine.GetElement(a, 0, 0) // 1.5
package engine
