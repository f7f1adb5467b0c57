package nn

import (
	"github.com/born-ml/minitorch/internal/autograd"
)

// Parameter represents a trainable parameter in a neural network.
//
// A Parameter is a leaf tensor that requires gradients, plus a name used by
// state dicts. The embedded tensor exposes Grad, ZeroGrad and SetData to
// optimizers.
//
// Example:
//
//	w, err := nn.NewParameter("weight", initial)
//	...
//	loss.Backward()
//	g := w.Grad()
type Parameter struct {
	*autograd.Tensor
	name string
}

// NewParameter creates a named parameter from t.
//
// When t already is a grad-requiring leaf it is used as is. Otherwise its
// data is copied into a new leaf that requires gradients, so the parameter
// never shares graph state with the tensor it was built from.
func NewParameter(name string, t *autograd.Tensor) (*Parameter, error) {
	if t.RequiresGrad() && t.IsLeaf() {
		return &Parameter{Tensor: t, name: name}, nil
	}
	leaf, err := t.Context().FromSlice(t.Data(), t.Shape(), autograd.RequiresGrad(true))
	if err != nil {
		return nil, err
	}
	return &Parameter{Tensor: leaf, name: name}, nil
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the underlying tensor.
func (p *Parameter) Value() *autograd.Tensor {
	return p.Tensor
}
