package kernels_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minitorch/internal/kernels"
	"github.com/born-ml/minitorch/internal/shape"
)

func add(a, b float64) float64 { return a + b }

func TestBroadcast(t *testing.T) {
	a := []float64{1, 2}
	b := []float64{10, 20, 30}
	out := shape.Shape{2, 3}

	got := kernels.Broadcast(a, shape.Shape{2, 1}, b, shape.Shape{1, 3}, out, add)
	assert.Equal(t, []float64{11, 21, 31, 12, 22, 32}, got)

	same := kernels.Broadcast([]float64{1, 2}, shape.Shape{2}, []float64{3, 4}, shape.Shape{2}, shape.Shape{2}, add)
	assert.Equal(t, []float64{4, 6}, same)
}

func TestSumTo(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5, 6}

	rows, err := kernels.SumTo(src, shape.Shape{2, 3}, shape.Shape{3})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, rows)

	cols, err := kernels.SumTo(src, shape.Shape{2, 3}, shape.Shape{2, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 15}, cols)

	all, err := kernels.SumTo(src, shape.Shape{2, 3}, shape.Shape{1})
	require.NoError(t, err)
	assert.Equal(t, []float64{21}, all)

	same, err := kernels.SumTo(src, shape.Shape{2, 3}, shape.Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, src, same)
	same[0] = 100
	assert.Equal(t, 1.0, src[0])

	replicated, err := kernels.SumTo([]float64{7}, shape.Shape{1}, shape.Shape{3})
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 7, 7}, replicated)

	_, err = kernels.SumTo(src, shape.Shape{2, 3}, shape.Shape{4})
	require.ErrorIs(t, err, shape.ErrShapeMismatch)
}

func TestTranspose(t *testing.T) {
	got := kernels.Transpose([]float64{1, 2, 3, 4, 5, 6}, shape.Shape{2, 3}, 0, 1)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, got)

	data, s := kernels.TransposeLast([]float64{1, 2, 3, 4, 5, 6}, shape.Shape{1, 2, 3})
	assert.Equal(t, shape.Shape{1, 3, 2}, s)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, data)
}

func TestAddTo(t *testing.T) {
	dst := []float64{1, 2}
	kernels.AddTo(dst, []float64{10, 20})
	assert.Equal(t, []float64{11, 22}, dst)

	assert.Panics(t, func() { kernels.AddTo(dst, []float64{1}) })
}

func TestFillMapSum(t *testing.T) {
	assert.Equal(t, []float64{2, 2, 2}, kernels.Fill(3, 2))
	assert.Equal(t, []float64{0, 0}, kernels.Fill(2, 0))
	assert.Equal(t, []float64{2, 4}, kernels.Map([]float64{1, 2}, func(a float64) float64 { return 2 * a }))
	assert.InDelta(t, 6.0, kernels.Sum([]float64{1, 2, 3}), 0)
}

func TestBatchedMatMul(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6}
	b := []float64{7, 8, 9, 1, 2, 3}

	got, s, err := kernels.BatchedMatMul(a, shape.Shape{2, 3}, b, shape.Shape{3, 2})
	require.NoError(t, err)
	assert.Equal(t, shape.Shape{2, 2}, s)
	assert.InDeltaSlice(t, []float64{31, 19, 85, 55}, got, 1e-12)

	// The same right matrix is reused for every batch of the left operand.
	batched, s, err := kernels.BatchedMatMul(append(append([]float64{}, a...), a...), shape.Shape{2, 2, 3}, b, shape.Shape{3, 2})
	require.NoError(t, err)
	assert.Equal(t, shape.Shape{2, 2, 2}, s)
	assert.InDeltaSlice(t, []float64{31, 19, 85, 55, 31, 19, 85, 55}, batched, 1e-12)

	_, _, err = kernels.BatchedMatMul(a, shape.Shape{2, 3}, b, shape.Shape{2, 3})
	require.ErrorIs(t, err, shape.ErrShapeMismatch)
}

func TestMatMul2D_EmptyInner(t *testing.T) {
	dst := []float64{9, 9, 9, 9}
	kernels.MatMul2D(nil, nil, dst, 2, 0, 2)
	assert.Equal(t, []float64{0, 0, 0, 0}, dst)
}
