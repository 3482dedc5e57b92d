package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/densemat/matrix"
)

func TestMulLiteral(t *testing.T) {
	a := mustFromRows(t, [][]float32{{1, 2, 3}, {4, 5, 6}})
	b := mustFromRows(t, [][]float32{{7, 8}, {9, 10}, {11, 12}})
	dst := mustDense(t, 2, 2)
	poison(dst)

	require.NoError(t, matrix.Mul(a, b, dst))
	requireCells(t, [][]float32{{58, 64}, {139, 154}}, dst, tolSimple)
}

func TestMulIdentity(t *testing.T) {
	a := mustRandom(t, 5, 5, 7)
	id, err := matrix.NewIdentity(5)
	require.NoError(t, err)
	dst := mustDense(t, 5, 5)

	require.NoError(t, matrix.Mul(a, id, dst))
	require.True(t, matrix.Equal(a, dst))

	require.NoError(t, matrix.Mul(id, a, dst))
	require.True(t, matrix.Equal(a, dst))
}

// TestMulOverwritesStale runs the same product into a dirty and a clean
// buffer and expects identical results.
func TestMulOverwritesStale(t *testing.T) {
	a := mustRandom(t, 4, 6, 11)
	b := mustRandom(t, 6, 3, 12)
	clean := mustDense(t, 4, 3)
	dirty := mustDense(t, 4, 3)
	poison(dirty)

	require.NoError(t, matrix.Mul(a, b, clean))
	require.NoError(t, matrix.Mul(a, b, dirty))
	require.True(t, matrix.Equal(clean, dirty))
}

func TestMulMatchesBLAS(t *testing.T) {
	shapes := [][3]int{{1, 1, 1}, {3, 7, 2}, {16, 16, 16}, {33, 17, 9}}
	for _, s := range shapes {
		a := mustRandom(t, s[0], s[1], int64(s[0]*100+s[1]))
		b := mustRandom(t, s[1], s[2], int64(s[1]*100+s[2]))
		dst := mustDense(t, s[0], s[2])

		require.NoError(t, matrix.Mul(a, b, dst))
		diff, err := matrix.MaxAbsDiff(dst, blasProduct(t, a, b))
		require.NoError(t, err)
		require.LessOrEqual(t, diff, float32(tolProduct), "shape %v", s)
	}
}

func TestMulErrors(t *testing.T) {
	a := mustDense(t, 2, 3)
	b := mustDense(t, 3, 2)
	sq := mustDense(t, 2, 2)

	require.ErrorIs(t, matrix.Mul(a, a, sq), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.Mul(a, b, mustDense(t, 2, 3)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.Mul(a, nil, sq), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.Mul(sq, sq, sq), matrix.ErrAliasedOperand)

	b.Release()
	require.ErrorIs(t, matrix.Mul(a, b, sq), matrix.ErrReleased)
	require.ErrorContains(t, matrix.Mul(a, a, sq), "Mul: ")
}
