package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minitorch/internal/autograd"
	"github.com/born-ml/minitorch/internal/kernels"
	"github.com/born-ml/minitorch/internal/shape"
)

// MatMulOp is matrix multiplication with batch broadcasting.
//
// Shapes:
//   - [K] · [K] → dot product, computed as mul followed by sum
//   - [..., M, K] · [..., K, N] → [..., M, N], leading axes broadcast
//   - a 1-D left operand is treated as [1, K] and a 1-D right operand as
//     [K, 1]; the added axis is removed from the result
//
// Backward (on the promoted shapes):
//   - dA = dz · Bᵀ, summed over broadcast batch axes
//   - dB = Aᵀ · dz, summed over broadcast batch axes
type MatMulOp struct{}

// Forward implements autograd.Operation.
func (MatMulOp) Forward(n *autograd.Node, inputs []*autograd.Tensor, _ []int) (*autograd.Tensor, error) {
	if err := expectOperands(n.Kind(), inputs, 2); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]
	as, bs := a.Shape(), b.Shape()

	if len(as) == 1 && len(bs) == 1 {
		if as[0] != bs[0] {
			return nil, errors.Wrapf(shape.ErrShapeMismatch, "dot product of %v and %v", as, bs)
		}
		prod, err := a.Mul(b)
		if err != nil {
			return nil, err
		}
		return prod.Sum()
	}

	pa, pb := promoteMatMul(as, bs)
	data, full, err := kernels.BatchedMatMul(a.Data(), pa, b.Data(), pb)
	if err != nil {
		return nil, err
	}
	return n.Output(data, squeezeMatMul(full, as, bs), a, b)
}

// Backward implements autograd.Operation.
func (MatMulOp) Backward(n *autograd.Node, dz *autograd.Tensor) error {
	saved := n.SavedTensors()
	if len(saved) != 2 {
		return nil
	}
	a, b := saved[0], saved[1]
	pa, pb := promoteMatMul(a.Shape(), b.Shape())
	batch, err := shape.BroadcastShape(pa[:len(pa)-2], pb[:len(pb)-2])
	if err != nil {
		return err
	}
	full := append(batch.Clone(), pa[len(pa)-2], pb[len(pb)-1])
	next := n.NextFunctions()
	grads := make([]*autograd.Tensor, 2)

	if !next[0].IsNull() {
		bt, bts := kernels.TransposeLast(b.Data(), pb)
		g, gs, err := kernels.BatchedMatMul(dz.Data(), full, bt, bts)
		if err != nil {
			return err
		}
		if grads[0], err = reduceMatMulGrad(n, g, gs, pa, a.Shape()); err != nil {
			return err
		}
	}
	if !next[1].IsNull() {
		at, ats := kernels.TransposeLast(a.Data(), pa)
		g, gs, err := kernels.BatchedMatMul(at, ats, dz.Data(), full)
		if err != nil {
			return err
		}
		if grads[1], err = reduceMatMulGrad(n, g, gs, pb, b.Shape()); err != nil {
			return err
		}
	}
	return n.Propagate(grads...)
}

// reduceMatMulGrad sums g over the batch axes its operand was broadcast
// along and labels it with the operand's original shape.
func reduceMatMulGrad(n *autograd.Node, g []float64, from, promoted, original shape.Shape) (*autograd.Tensor, error) {
	red, err := kernels.SumTo(g, from, promoted)
	if err != nil {
		return nil, err
	}
	return n.Context().Wrap(red, original)
}

func promoteMatMul(as, bs shape.Shape) (shape.Shape, shape.Shape) {
	pa, pb := as, bs
	if len(as) == 1 {
		pa = shape.Shape{1, as[0]}
	}
	if len(bs) == 1 {
		pb = shape.Shape{bs[0], 1}
	}
	return pa, pb
}

func squeezeMatMul(full, as, bs shape.Shape) shape.Shape {
	out := full.Clone()
	if len(bs) == 1 {
		out = out[:len(out)-1]
	}
	if len(as) == 1 {
		i := len(full) - 2
		out = append(out[:i], out[i+1:]...)
	}
	return out
}
