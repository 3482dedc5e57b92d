package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/densemat/internal/timing"
	"github.com/katalvlaran/densemat/matrix"
)

func TestParseSizes(t *testing.T) {
	got, err := parseSizes("64, 128,256")
	require.NoError(t, err)
	assert.Equal(t, []int{64, 128, 256}, got)

	_, err = parseSizes("64,x")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	good := config{Sizes: []int{8}, Iterations: 1, Cutover: 1, Workers: 1}
	require.NoError(t, validate(good))

	bad := good
	bad.Sizes = nil
	require.Error(t, validate(bad))

	bad = good
	bad.Sizes = []int{8, 0}
	require.ErrorIs(t, validate(bad), matrix.ErrInvalidDimensions)

	bad = good
	bad.Iterations = 0
	require.ErrorIs(t, validate(bad), timing.ErrNoIterations)

	bad = good
	bad.Cutover = 0
	require.Error(t, validate(bad))

	bad = good
	bad.Workers = 0
	require.Error(t, validate(bad))
}

func newOperands(t *testing.T, n int, seed int64) *operands {
	t.Helper()
	a, err := matrix.NewRandom(n, n, seed)
	require.NoError(t, err)
	b, err := matrix.NewRandom(n, n, seed+1)
	require.NoError(t, err)

	return &operands{n: n, a: a, b: b}
}

func TestVerifyAndTime(t *testing.T) {
	store := matrix.NewStore()
	opts := []matrix.Option{matrix.WithCutover(4), matrix.WithAllocator(store)}
	ops := []*operands{newOperands(t, 5, 1), newOperands(t, 16, 2), newOperands(t, 33, 3)}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	require.NoError(t, verify(context.Background(), logger, ops, 2, opts))
	require.Zero(t, store.Live())
	for _, op := range ops {
		assert.LessOrEqual(t, op.diffStrassen, float32(verifyATol), "size %d", op.n)
		assert.LessOrEqual(t, op.diffBLAS, float32(verifyATol), "size %d", op.n)
	}
	assert.Contains(t, logs.String(), "size=33")

	report := &timing.Report{}
	for _, op := range ops {
		require.NoError(t, timeSize(report, op, 2, opts))
	}
	require.Len(t, report.Rows, 9)
	assert.Equal(t, kernelNaive, report.Rows[0].Kernel)
	assert.Equal(t, kernelStrassen, report.Rows[1].Kernel)
	assert.Equal(t, kernelBLAS, report.Rows[2].Kernel)
	assert.Equal(t, 2, report.Rows[8].Result.Iterations)
}

func TestCheckCloseRejectsDivergence(t *testing.T) {
	ref, err := matrix.NewSequence(3, 3, 1)
	require.NoError(t, err)
	got := ref.Clone()
	got.Put(2, 2, 100)

	diff, err := checkClose(3, kernelStrassen, got, ref)
	require.ErrorContains(t, err, "strassen diverges from naive")
	assert.Equal(t, float32(91), diff)

	diff, err = checkClose(3, kernelBLAS, ref.Clone(), ref)
	require.NoError(t, err)
	assert.Zero(t, diff)
}
