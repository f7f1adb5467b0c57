package kernels

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/minitorch/internal/shape"
)

// BatchedMatMul multiplies the trailing two axes of a [..., M, K] and b [..., K, N],
// broadcasting the leading batch axes. Both shapes must have rank >= 2.
//
// Each batch is a gonum Dense product; operand batches are located through
// OriginalIndex so that size-1 batch axes are reused rather than copied.
func BatchedMatMul(a []float64, aShape shape.Shape, b []float64, bShape shape.Shape) ([]float64, shape.Shape, error) {
	ra, rb := len(aShape), len(bShape)
	m, k := aShape[ra-2], aShape[ra-1]
	k2, n := bShape[rb-2], bShape[rb-1]
	if k != k2 {
		return nil, nil, errors.Wrapf(shape.ErrShapeMismatch, "matmul inner dimensions differ: %v and %v", aShape, bShape)
	}

	batch, err := shape.BroadcastShape(aShape[:ra-2], bShape[:rb-2])
	if err != nil {
		return nil, nil, errors.Wrapf(err, "matmul batch dimensions of %v and %v", aShape, bShape)
	}
	aBatch := shape.PadShape(aShape[:ra-2], batch)
	bBatch := shape.PadShape(bShape[:rb-2], batch)

	outShape := append(batch.Clone(), m, n)
	numBatches := batch.NumElements()
	out := make([]float64, numBatches*m*n)

	for p := 0; p < numBatches; p++ {
		ao := shape.OriginalIndex(aBatch, batch, p) * m * k
		bo := shape.OriginalIndex(bBatch, batch, p) * k * n
		MatMul2D(a[ao:ao+m*k], b[bo:bo+k*n], out[p*m*n:(p+1)*m*n], m, k, n)
	}
	return out, outShape, nil
}

// MatMul2D writes the [m,n] product of a [m,k] and b [k,n] into dst.
func MatMul2D(a, b, dst []float64, m, k, n int) {
	if m == 0 || n == 0 {
		return
	}
	if k == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	am := mat.NewDense(m, k, a)
	bm := mat.NewDense(k, n, b)
	cm := mat.NewDense(m, n, dst)
	cm.Mul(am, bm)
}

// TransposeLast swaps the trailing two axes of a tensor of rank >= 2.
func TransposeLast(a []float64, s shape.Shape) ([]float64, shape.Shape) {
	r := len(s)
	out := s.Clone()
	out[r-2], out[r-1] = out[r-1], out[r-2]
	return Transpose(a, s, r-2, r-1), out
}
