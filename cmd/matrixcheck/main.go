// Command matrixcheck runs the console conformance checks against the
// matrix engine and exits with the number of failed checks (capped at 125).
//
// Configuration comes from the environment:
//
//	MATRIXCHECK_NO_COLOR   disable ANSI colors (default false)
//	MATRIXCHECK_LOG_LEVEL  slog level for per-case and contract-violation logs (default info)
//	MATRIXCHECK_CUTOVER    Strassen cutover (default 64)
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/katalvlaran/densemat/engine"
	"github.com/katalvlaran/densemat/internal/suite"
	"github.com/katalvlaran/densemat/matrix"
)

// maxExitCode keeps the status clear of the shell's 126+ range.
const maxExitCode = 125

type config struct {
	NoColor  bool   `env:"MATRIXCHECK_NO_COLOR"  envDefault:"false"`
	LogLevel string `env:"MATRIXCHECK_LOG_LEVEL" envDefault:"info"`
	Cutover  int    `env:"MATRIXCHECK_CUTOVER"   envDefault:"64"`
}

func main() {
	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load configuration : %s", err.Error())
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		log.Fatalf("failed to parse log level: %s", err.Error())
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.Cutover < matrix.MinCutover {
		logger.Error("invalid cutover", slog.Int("cutover", cfg.Cutover))
		os.Exit(maxExitCode)
	}

	store := matrix.NewStore()
	e := engine.New(
		engine.WithAllocator(store),
		engine.WithCutover(cfg.Cutover),
		engine.WithLogger(logger),
	)

	failed := suite.NewRunner(os.Stdout, e,
		suite.WithColor(!cfg.NoColor),
		suite.WithLogger(logger),
	).Run(suite.Cases())

	if live := store.Live(); live != 0 {
		logger.Warn("handles still live after run", slog.Int("live", live))
	}
	logger.Debug("run finished",
		slog.Int("failed", failed),
		slog.Int("allocs", store.Allocs()),
		slog.Int("peak_cells", store.PeakCells()),
	)

	os.Exit(min(failed, maxExitCode))
}
