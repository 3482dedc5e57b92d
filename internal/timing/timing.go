// SPDX-License-Identifier: MIT

// Package timing measures repeated kernel calls and renders the results as
// a fixed-width report.
//
// Measure is deliberately simple: wall-clock per call, no warm-up beyond
// what the caller does, no hidden state between calls. Use the testing
// package's benchmarks for statistically careful numbers; this exists for
// a quick side-by-side of the multiply kernels from the command line.
package timing

import (
	"errors"
	"time"
)

// ErrNoIterations is returned by Measure for a non-positive iteration count.
var ErrNoIterations = errors.New("timing: iterations must be > 0")

// Result summarizes Iterations calls of one function.
type Result struct {
	Iterations int
	Total      time.Duration
	Min        time.Duration
	Max        time.Duration
}

// Mean is Total divided by Iterations.
func (r Result) Mean() time.Duration {
	if r.Iterations == 0 {
		return 0
	}

	return r.Total / time.Duration(r.Iterations)
}

// NsPerOp is the mean in nanoseconds, as a float for sub-ns resolution.
func (r Result) NsPerOp() float64 {
	if r.Iterations == 0 {
		return 0
	}

	return float64(r.Total.Nanoseconds()) / float64(r.Iterations)
}

// clock is swapped in tests.
var clock = time.Now

// Measure calls fn iterations times and records per-call wall time.
// fn returning an error stops the loop; the partial Result and the error
// are returned.
func Measure(iterations int, fn func() error) (Result, error) {
	if iterations <= 0 {
		return Result{}, ErrNoIterations
	}

	var res Result
	for i := 0; i < iterations; i++ {
		start := clock()
		err := fn()
		d := clock().Sub(start)
		if err != nil {
			return res, err
		}

		if res.Iterations == 0 || d < res.Min {
			res.Min = d
		}
		if d > res.Max {
			res.Max = d
		}
		res.Total += d
		res.Iterations++
	}

	return res, nil
}
