// SPDX-License-Identifier: MIT

// Package matrix: buffer allocation & ownership.
//
// Purpose:
//   - Abstract where matrix buffers come from (Allocator) so kernels that need
//     temporaries (Strassen) can be driven by an accounting store in tests and
//     by the plain heap in production.
//   - Store tracks every live handle it created and enforces an optional cell
//     budget; exceeding it is reported as ErrAllocation, the explicit failure
//     sentinel of the create/free contract.
//
// Concurrency:
//   - Dense values are single-owner and unsynchronized.
//   - Store bookkeeping is guarded by a mutex so independent goroutines may share
//     one accounting store while each owns its own matrices.

package matrix

import (
	"fmt"
	"sync"
)

const (
	ctxAlloc = "Store.Alloc"

	panicMaxCellsInvalid = "matrix: WithMaxCells: budget must be >= 0"
)

// Allocator creates and releases Dense buffers.
// Every successful Alloc must be balanced by exactly one Release.
type Allocator interface {
	// Alloc returns a zero-initialized rows×cols matrix.
	Alloc(rows, cols int) (*Dense, error)

	// Release invalidates m and returns its cells to the allocator.
	Release(m *Dense)
}

// heapAllocator delegates straight to NewDense / Dense.Release.
type heapAllocator struct{}

func (heapAllocator) Alloc(rows, cols int) (*Dense, error) { return NewDense(rows, cols) }
func (heapAllocator) Release(m *Dense)                     { m.Release() }

// HeapAllocator is the default Allocator: plain garbage-collected buffers,
// no bookkeeping.
var HeapAllocator Allocator = heapAllocator{}

// Store is an accounting Allocator.
// Zero value is not usable; construct with NewStore.
type Store struct {
	mu        sync.Mutex
	maxCells  int            // 0 ⇒ unbounded
	owned     map[*Dense]int // live handles created by this store → cells at Alloc
	liveCells int            // Σ owned
	peakCells int            // high-water mark of liveCells
	allocs    int            // successful Alloc calls
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithMaxCells bounds the number of float32 cells the store may hold live at
// once. 0 disables the budget. Panics on a negative budget.
func WithMaxCells(n int) StoreOption {
	if n < 0 {
		panic(panicMaxCellsInvalid)
	}

	return func(s *Store) { s.maxCells = n }
}

// NewStore returns an empty accounting store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{owned: make(map[*Dense]int)}
	for _, set := range opts {
		set(s)
	}

	return s
}

// Alloc creates a rows×cols zero matrix owned by the store.
// Implementation:
//   - Stage 1: validate shape (ErrInvalidDimensions).
//   - Stage 2: under lock, check the cell budget (ErrAllocation).
//   - Stage 3: allocate and record the handle.
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
func (s *Store) Alloc(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s(%d,%d): %w", ctxAlloc, rows, cols, ErrInvalidDimensions)
	}
	cells := rows * cols

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxCells > 0 && s.liveCells+cells > s.maxCells {
		return nil, fmt.Errorf("%s(%d,%d): %d of %d cells in use: %w",
			ctxAlloc, rows, cols, s.liveCells, s.maxCells, ErrAllocation)
	}
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%s(%d,%d): %w", ctxAlloc, rows, cols, err)
	}
	s.owned[m] = cells
	s.liveCells += cells
	if s.liveCells > s.peakCells {
		s.peakCells = s.liveCells
	}
	s.allocs++

	return m, nil
}

// Release invalidates m. Handles owned by the store are un-tracked exactly
// once, by the cell count recorded at Alloc, so a handle already released
// directly through Dense.Release is still returned in full. A second Release
// of the same handle is a no-op. Foreign handles are released without
// affecting the counters.
func (s *Store) Release(m *Dense) {
	if m == nil {
		return
	}
	s.mu.Lock()
	if cells, ok := s.owned[m]; ok {
		delete(s.owned, m)
		s.liveCells -= cells
	}
	s.mu.Unlock()

	m.Release()
}

// Live returns the number of handles created by the store and not yet released.
func (s *Store) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.owned)
}

// LiveCells returns the number of cells currently held by live handles.
func (s *Store) LiveCells() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.liveCells
}

// PeakCells returns the high-water mark of LiveCells.
func (s *Store) PeakCells() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.peakCells
}

// Allocs returns the number of successful Alloc calls.
func (s *Store) Allocs() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.allocs
}
