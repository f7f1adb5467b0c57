package ops

import (
	"github.com/born-ml/minitorch/internal/autograd"
	"github.com/born-ml/minitorch/internal/kernels"
	"github.com/born-ml/minitorch/internal/shape"
)

// SumOp adds every element into a rank-0 result.
//
// Backward: every input position receives dz unchanged.
type SumOp struct{}

// Forward implements autograd.Operation.
func (SumOp) Forward(n *autograd.Node, inputs []*autograd.Tensor, _ []int) (*autograd.Tensor, error) {
	if err := expectOperands(n.Kind(), inputs, 1); err != nil {
		return nil, err
	}
	a := inputs[0]
	return n.Output([]float64{kernels.Sum(a.Data())}, shape.Shape{}, a)
}

// Backward implements autograd.Operation.
func (SumOp) Backward(n *autograd.Node, dz *autograd.Tensor) error {
	return reduceBackward(n, dz, 1)
}

// MeanOp averages every element into a rank-0 result.
//
// Backward: every input position receives dz/N.
type MeanOp struct{}

// Forward implements autograd.Operation.
func (MeanOp) Forward(n *autograd.Node, inputs []*autograd.Tensor, _ []int) (*autograd.Tensor, error) {
	if err := expectOperands(n.Kind(), inputs, 1); err != nil {
		return nil, err
	}
	a := inputs[0]
	return n.Output([]float64{kernels.Sum(a.Data()) / float64(a.Len())}, shape.Shape{}, a)
}

// Backward implements autograd.Operation.
func (MeanOp) Backward(n *autograd.Node, dz *autograd.Tensor) error {
	saved := n.SavedTensors()
	if len(saved) != 1 {
		return nil
	}
	return reduceBackward(n, dz, 1/float64(saved[0].Len()))
}

func reduceBackward(n *autograd.Node, dz *autograd.Tensor, scale float64) error {
	saved := n.SavedTensors()
	if len(saved) != 1 {
		return nil
	}
	return passThrough(n, kernels.Fill(saved[0].Len(), dz.Data()[0]*scale))
}
