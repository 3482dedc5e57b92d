// SPDX-License-Identifier: MIT

// Package suite runs the console conformance checks against an engine and
// reports them line by line.
//
// Output format:
//
//	Starting matrix tests...
//	[PASS] Matrix Creation
//	[FAIL] Matrix Addition: incorrect matrix addition result: cell (0,0) = 0, want 6
//
//	Total errors encountered: 1
//
// Colors are plain ANSI escapes and can be switched off.
package suite

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/densemat/engine"
)

const (
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

const (
	msgStart   = "Starting matrix tests..."
	msgAllPass = "All matrix tests completed successfully."
	msgTotal   = "Total errors encountered: %d"
)

// Runner executes cases against one engine and writes the report to out.
type Runner struct {
	out    io.Writer
	engine *engine.Engine
	color  bool
	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithColor toggles ANSI colors (on by default).
func WithColor(on bool) RunnerOption {
	return func(r *Runner) { r.color = on }
}

// WithLogger logs each case outcome at debug level.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner builds a Runner writing to out.
func NewRunner(out io.Writer, e *engine.Engine, opts ...RunnerOption) *Runner {
	r := &Runner{
		out:    out,
		engine: e,
		color:  true,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, set := range opts {
		set(r)
	}

	return r
}

// Run executes cases in order and returns the number of failed cases.
// A panicking case counts as a failure; the remaining cases still run.
func (r *Runner) Run(cases []Case) int {
	r.printf(colorYellow, "%s\n", msgStart)

	failed := 0
	for _, c := range cases {
		err := r.runOne(c)
		if err != nil {
			failed++
			r.printf(colorRed, "[FAIL] %s: %v\n", c.Name, err)
			r.logger.Debug("case failed", slog.String("case", c.Name), slog.Any("error", err))
			continue
		}
		r.printf(colorGreen, "[PASS] %s\n", c.Name)
		r.logger.Debug("case passed", slog.String("case", c.Name))
	}

	if failed == 0 {
		r.printf(colorGreen, "\n%s\n", msgAllPass)
	} else {
		r.printf(colorRed, "\n"+msgTotal+"\n", failed)
	}

	return failed
}

func (r *Runner) runOne(c Case) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	return c.Run(r.engine)
}

// printf writes one colored line. Write errors are ignored: the error
// count is the authoritative result.
func (r *Runner) printf(color, format string, args ...any) {
	if r.color {
		_, _ = fmt.Fprintf(r.out, color+format+colorReset, args...)
		return
	}
	_, _ = fmt.Fprintf(r.out, format, args...)
}
