package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minitorch/internal/autograd"
	"github.com/born-ml/minitorch/internal/shape"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [..., in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [..., out_features]
//
// Weights and biases are initialized with LinearUniform.
//
// Example:
//
//	layer, err := nn.NewLinear(ctx, 784, 128)
//	output, err := layer.Forward(input) // [32, 784] -> [32, 128]
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [out_features, in_features]
	bias        *Parameter // [out_features]
}

// NewLinear creates a new Linear layer whose parameters live in ctx.
func NewLinear(ctx *autograd.Context, inFeatures, outFeatures int) (*Linear, error) {
	if inFeatures <= 0 || outFeatures <= 0 {
		return nil, errors.Wrapf(autograd.ErrInvalidArgument,
			"linear features must be positive, got in=%d out=%d", inFeatures, outFeatures)
	}

	w, err := LinearUniform(ctx, inFeatures, shape.Shape{outFeatures, inFeatures})
	if err != nil {
		return nil, err
	}
	weight, err := NewParameter("weight", w)
	if err != nil {
		return nil, err
	}

	b, err := LinearUniform(ctx, inFeatures, shape.Shape{outFeatures})
	if err != nil {
		return nil, err
	}
	bias, err := NewParameter("bias", b)
	if err != nil {
		return nil, err
	}

	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
	}, nil
}

// Forward computes x @ W.T + b. The last input dimension must equal
// in_features.
func (l *Linear) Forward(input *autograd.Tensor) (*autograd.Tensor, error) {
	s := input.Shape()
	if len(s) == 0 || s[len(s)-1] != l.inFeatures {
		return nil, errors.Wrapf(autograd.ErrShapeMismatch,
			"linear expects input with %d features, got shape %v", l.inFeatures, s)
	}

	wT, err := l.weight.Transpose(0, 1) // [in_features, out_features]
	if err != nil {
		return nil, err
	}
	output, err := input.MatMul(wT)
	if err != nil {
		return nil, err
	}
	return output.Add(l.bias.Tensor)
}

// Parameters returns [weight, bias].
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}

// StateDict returns detached copies of the parameters keyed by name.
func (l *Linear) StateDict() map[string]*autograd.Tensor {
	return map[string]*autograd.Tensor{
		"weight": l.weight.Detach(),
		"bias":   l.bias.Detach(),
	}
}

// LoadStateDict copies parameter data from state. Both entries must be
// present with matching shapes.
func (l *Linear) LoadStateDict(state map[string]*autograd.Tensor) error {
	for _, p := range l.Parameters() {
		src, ok := state[p.Name()]
		if !ok {
			return errors.Errorf("missing %s in state dict", p.Name())
		}
		if !src.Shape().Equal(p.Shape()) {
			return errors.Wrapf(autograd.ErrShapeMismatch,
				"%s shape mismatch: expected %v, got %v", p.Name(), p.Shape(), src.Shape())
		}
		if err := p.SetData(src.Data()); err != nil {
			return err
		}
	}
	return nil
}
