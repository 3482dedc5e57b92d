// Command matrixbench cross-checks and times the multiply kernels.
//
// For every size it first verifies, in parallel, that Strassen and gonum's
// blas32 GEMM agree with the naive product on seeded random operands. If
// every size agrees it times naive, strassen and blas32 sequentially and
// prints one report.
//
// Configuration comes from the environment, with -sizes overriding
// MATRIXBENCH_SIZES:
//
//	MATRIXBENCH_SIZES       comma-separated square sizes (default 64,128,256)
//	MATRIXBENCH_ITERATIONS  timed calls per kernel and size (default 5)
//	MATRIXBENCH_CUTOVER     Strassen cutover (default 64)
//	MATRIXBENCH_SEED        operand seed (default 1)
//	MATRIXBENCH_WORKERS     parallel verifications (default 4)
//	MATRIXBENCH_LOG_LEVEL   slog level (default info)
//
// Usage:
//
//	matrixbench -sizes 100,200,400
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/katalvlaran/densemat/internal/timing"
	"github.com/katalvlaran/densemat/matrix"
)

const (
	kernelNaive    = "naive"
	kernelStrassen = "strassen"
	kernelBLAS     = "blas32"

	verifyRTol = 1e-3
	verifyATol = 1e-3
)

type config struct {
	Sizes      []int  `env:"MATRIXBENCH_SIZES"      envDefault:"64,128,256"`
	Iterations int    `env:"MATRIXBENCH_ITERATIONS" envDefault:"5"`
	Cutover    int    `env:"MATRIXBENCH_CUTOVER"    envDefault:"64"`
	Seed       int64  `env:"MATRIXBENCH_SEED"       envDefault:"1"`
	Workers    int    `env:"MATRIXBENCH_WORKERS"    envDefault:"4"`
	LogLevel   string `env:"MATRIXBENCH_LOG_LEVEL"  envDefault:"info"`
}

// operands is one size's fixture plus the diffs found during verification.
type operands struct {
	n            int
	a, b         *matrix.Dense
	diffStrassen float32
	diffBLAS     float32
}

func main() {
	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load configuration : %s", err.Error())
	}

	sizes := flag.String("sizes", "", "comma-separated square sizes, overrides MATRIXBENCH_SIZES")
	flag.Parse()
	if *sizes != "" {
		parsed, err := parseSizes(*sizes)
		if err != nil {
			log.Fatalf("failed to parse -sizes: %s", err.Error())
		}
		cfg.Sizes = parsed
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		log.Fatalf("failed to parse log level: %s", err.Error())
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := validate(cfg); err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(2)
	}

	store := matrix.NewStore()
	opts := []matrix.Option{matrix.WithCutover(cfg.Cutover), matrix.WithAllocator(store)}

	ops := make([]*operands, len(cfg.Sizes))
	for i, n := range cfg.Sizes {
		a, err := matrix.NewRandom(n, n, cfg.Seed+int64(i))
		if err != nil {
			logger.Error("failed to build operands", slog.Int("size", n), slog.Any("error", err))
			os.Exit(2)
		}
		b, err := matrix.NewRandom(n, n, cfg.Seed+int64(i)+1000)
		if err != nil {
			logger.Error("failed to build operands", slog.Int("size", n), slog.Any("error", err))
			os.Exit(2)
		}
		ops[i] = &operands{n: n, a: a, b: b}
	}

	if err := verify(context.Background(), logger, ops, cfg.Workers, opts); err != nil {
		logger.Error("verification failed", slog.Any("error", err))
		os.Exit(1)
	}

	report := &timing.Report{
		RunID:      uuid.NewString(),
		Host:       timing.DetectHost(),
		Cutover:    cfg.Cutover,
		Iterations: cfg.Iterations,
	}
	for _, op := range ops {
		if err := timeSize(report, op, cfg.Iterations, opts); err != nil {
			logger.Error("timing failed", slog.Int("size", op.n), slog.Any("error", err))
			os.Exit(1)
		}
	}

	if err := report.Render(os.Stdout, language.English); err != nil {
		logger.Error("failed to write report", slog.Any("error", err))
		os.Exit(1)
	}
	if live := store.Live(); live != 0 {
		logger.Warn("strassen temporaries still live", slog.Int("live", live))
	}
	logger.Debug("run finished", slog.String("run_id", report.RunID), slog.Int("peak_cells", store.PeakCells()))
}

func validate(cfg config) error {
	if len(cfg.Sizes) == 0 {
		return errors.New("no sizes")
	}
	for _, n := range cfg.Sizes {
		if n <= 0 {
			return fmt.Errorf("size %d: %w", n, matrix.ErrInvalidDimensions)
		}
	}
	if cfg.Iterations <= 0 {
		return timing.ErrNoIterations
	}
	if cfg.Cutover < matrix.MinCutover {
		return fmt.Errorf("cutover %d must be >= %d", cfg.Cutover, matrix.MinCutover)
	}
	if cfg.Workers <= 0 {
		return fmt.Errorf("workers %d must be > 0", cfg.Workers)
	}

	return nil
}

func parseSizes(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	return out, nil
}

// verify runs naive, strassen and blas32 on every size concurrently and
// records how far the latter two land from naive. Each goroutine owns its
// operands' result buffers; only the Store is shared.
func verify(ctx context.Context, logger *slog.Logger, ops []*operands, workers int, opts []matrix.Option) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, op := range ops {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ref, err := matrix.NewDense(op.n, op.n)
			if err != nil {
				return err
			}
			if err = matrix.Mul(op.a, op.b, ref); err != nil {
				return err
			}

			fast, err := matrix.NewDense(op.n, op.n)
			if err != nil {
				return err
			}
			if err = matrix.Strassen(op.a, op.b, fast, opts...); err != nil {
				return err
			}
			if op.diffStrassen, err = checkClose(op.n, kernelStrassen, fast, ref); err != nil {
				return err
			}

			lib, err := matrix.NewDense(op.n, op.n)
			if err != nil {
				return err
			}
			gemm(op.a, op.b, lib)
			if op.diffBLAS, err = checkClose(op.n, kernelBLAS, lib, ref); err != nil {
				return err
			}

			logger.Info("verified",
				slog.Int("size", op.n),
				slog.Float64("strassen_max_diff", float64(op.diffStrassen)),
				slog.Float64("blas_max_diff", float64(op.diffBLAS)),
			)

			return nil
		})
	}

	return g.Wait()
}

func checkClose(n int, kernel string, got, ref *matrix.Dense) (float32, error) {
	diff, err := matrix.MaxAbsDiff(got, ref)
	if err != nil {
		return 0, err
	}
	ok, err := matrix.AllClose(got, ref, verifyRTol, verifyATol)
	if err != nil {
		return diff, err
	}
	if !ok {
		return diff, fmt.Errorf("size %d: %s diverges from naive by %g", n, kernel, diff)
	}

	return diff, nil
}

// timeSize times the three kernels on one size, reusing a single result buffer.
func timeSize(report *timing.Report, op *operands, iterations int, opts []matrix.Option) error {
	dst, err := matrix.NewDense(op.n, op.n)
	if err != nil {
		return err
	}

	kernels := []struct {
		name string
		diff float32
		run  func() error
	}{
		{kernelNaive, 0, func() error { return matrix.Mul(op.a, op.b, dst) }},
		{kernelStrassen, op.diffStrassen, func() error { return matrix.Strassen(op.a, op.b, dst, opts...) }},
		{kernelBLAS, op.diffBLAS, func() error { gemm(op.a, op.b, dst); return nil }},
	}
	for _, k := range kernels {
		res, err := timing.Measure(iterations, k.run)
		if err != nil {
			return fmt.Errorf("%s: %w", k.name, err)
		}
		report.Add(op.n, k.name, res, k.diff)
	}

	return nil
}

// gemm computes c = a×b with gonum's float32 BLAS.
func gemm(a, b, c *matrix.Dense) {
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas32.General{Rows: a.Rows(), Cols: a.Cols(), Data: a.Raw(), Stride: a.Cols()},
		blas32.General{Rows: b.Rows(), Cols: b.Cols(), Data: b.Raw(), Stride: b.Cols()},
		0,
		blas32.General{Rows: c.Rows(), Cols: c.Cols(), Data: c.Raw(), Stride: c.Cols()},
	)
}
