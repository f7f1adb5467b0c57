package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minitorch/internal/autograd"
	"github.com/born-ml/minitorch/internal/kernels"
	"github.com/born-ml/minitorch/internal/shape"
)

// ReshapeOp relabels the operand with the shape given as attributes.
// The data is copied; the element count must not change.
type ReshapeOp struct{}

// Forward implements autograd.Operation.
func (ReshapeOp) Forward(n *autograd.Node, inputs []*autograd.Tensor, attrs []int) (*autograd.Tensor, error) {
	if err := expectOperands(n.Kind(), inputs, 1); err != nil {
		return nil, err
	}
	a := inputs[0]
	target := shape.Shape(attrs).Clone()
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if target.NumElements() != a.Len() {
		return nil, errors.Wrapf(shape.ErrShapeMismatch, "cannot reshape %v (%d elements) to %v (%d elements)",
			a.Shape(), a.Len(), target, target.NumElements())
	}
	return n.Output(a.ToArray(), target, a)
}

// Backward implements autograd.Operation.
func (ReshapeOp) Backward(n *autograd.Node, dz *autograd.Tensor) error {
	return passThrough(n, dz.ToArray())
}

// UnsqueezeOp inserts a size-1 axis at the position given as the single
// attribute. Negative positions count from rank+1.
type UnsqueezeOp struct{}

// Forward implements autograd.Operation.
func (UnsqueezeOp) Forward(n *autograd.Node, inputs []*autograd.Tensor, attrs []int) (*autograd.Tensor, error) {
	if err := expectOperands(n.Kind(), inputs, 1); err != nil {
		return nil, err
	}
	if err := expectAttrs(n.Kind(), attrs, 1); err != nil {
		return nil, err
	}
	a := inputs[0]
	in := a.Shape()
	dim, err := shape.NormalizeAxis(attrs[0], len(in)+1)
	if err != nil {
		return nil, err
	}

	out := make(shape.Shape, 0, len(in)+1)
	out = append(out, in[:dim]...)
	out = append(out, 1)
	out = append(out, in[dim:]...)
	return n.Output(a.ToArray(), out, a)
}

// Backward implements autograd.Operation.
func (UnsqueezeOp) Backward(n *autograd.Node, dz *autograd.Tensor) error {
	return passThrough(n, dz.ToArray())
}

// TransposeOp swaps the two axes given as attributes.
type TransposeOp struct{}

// Forward implements autograd.Operation.
func (TransposeOp) Forward(n *autograd.Node, inputs []*autograd.Tensor, attrs []int) (*autograd.Tensor, error) {
	if err := expectOperands(n.Kind(), inputs, 1); err != nil {
		return nil, err
	}
	if err := expectAttrs(n.Kind(), attrs, 2); err != nil {
		return nil, err
	}
	a := inputs[0]
	in := a.Shape()
	dim0, dim1, err := transposeAxes(in, attrs)
	if err != nil {
		return nil, err
	}

	out := in.Clone()
	out[dim0], out[dim1] = out[dim1], out[dim0]
	return n.Output(kernels.Transpose(a.Data(), in, dim0, dim1), out, a)
}

// Backward implements autograd.Operation. Transposition is its own inverse.
func (TransposeOp) Backward(n *autograd.Node, dz *autograd.Tensor) error {
	saved := n.SavedTensors()
	if len(saved) != 1 {
		return nil
	}
	dim0, dim1, err := transposeAxes(saved[0].Shape(), n.Attrs())
	if err != nil {
		return err
	}
	return passThrough(n, kernels.Transpose(dz.Data(), dz.Shape(), dim0, dim1))
}

func transposeAxes(s shape.Shape, attrs []int) (int, int, error) {
	dim0, err := shape.NormalizeAxis(attrs[0], len(s))
	if err != nil {
		return 0, 0, err
	}
	dim1, err := shape.NormalizeAxis(attrs[1], len(s))
	if err != nil {
		return 0, 0, err
	}
	return dim0, dim1, nil
}
