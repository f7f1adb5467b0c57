package ops

import (
	"math"

	"github.com/born-ml/minitorch/internal/autograd"
	"github.com/born-ml/minitorch/internal/kernels"
)

// UnaryOp is an element-wise operation over a single operand.
// A nil Grad makes the operation non-differentiable.
type UnaryOp struct {
	Fn   kernels.UnaryFunc
	Grad func(a, dz float64) float64
}

// Forward implements autograd.Operation.
func (op UnaryOp) Forward(n *autograd.Node, inputs []*autograd.Tensor, _ []int) (*autograd.Tensor, error) {
	return unaryForward(n, inputs, op.Fn)
}

// Backward implements autograd.Operation.
func (op UnaryOp) Backward(n *autograd.Node, dz *autograd.Tensor) error {
	if op.Grad == nil {
		return nil
	}
	return unaryBackward(n, dz, func(a, _, g float64) float64 { return op.Grad(a, g) })
}

// Log: natural logarithm. d/da = 1/a.
var Log = UnaryOp{
	Fn:   math.Log,
	Grad: func(a, dz float64) float64 { return dz / a },
}

// Sqrt: d/da = 1/(2√a).
var Sqrt = UnaryOp{
	Fn:   math.Sqrt,
	Grad: func(a, dz float64) float64 { return dz / (2 * math.Sqrt(a)) },
}

// Exp: d/da = e^a.
var Exp = UnaryOp{
	Fn:   math.Exp,
	Grad: func(a, dz float64) float64 { return dz * math.Exp(a) },
}

// Square: d/da = 2a.
var Square = UnaryOp{
	Fn:   func(a float64) float64 { return a * a },
	Grad: func(a, dz float64) float64 { return dz * 2 * a },
}

// Abs: d/da = sign(a).
var Abs = UnaryOp{
	Fn:   math.Abs,
	Grad: func(a, dz float64) float64 { return dz * sign(a) },
}

// Sign is non-differentiable.
var Sign = UnaryOp{
	Fn: sign,
}

// Neg: d/da = -1.
var Neg = UnaryOp{
	Fn:   func(a float64) float64 { return -a },
	Grad: func(_, dz float64) float64 { return -dz },
}

// Reciprocal: d/da = -a^-2.
var Reciprocal = UnaryOp{
	Fn:   func(a float64) float64 { return 1 / a },
	Grad: func(a, dz float64) float64 { return -dz / (a * a) },
}

// Sin: d/da = cos(a).
var Sin = UnaryOp{
	Fn:   math.Sin,
	Grad: func(a, dz float64) float64 { return dz * math.Cos(a) },
}

// Cos: d/da = -sin(a).
var Cos = UnaryOp{
	Fn:   math.Cos,
	Grad: func(a, dz float64) float64 { return -dz * math.Sin(a) },
}

// Tan: d/da = cos(a)^-2.
var Tan = UnaryOp{
	Fn: math.Tan,
	Grad: func(a, dz float64) float64 {
		c := math.Cos(a)
		return dz / (c * c)
	},
}

// ReLU: d/da = 1 for a > 0, else 0.
var ReLU = UnaryOp{
	Fn:   func(a float64) float64 { return math.Max(a, 0) },
	Grad: func(a, dz float64) float64 { return dz * indicator(a > 0) },
}

// Sigmoid: d/da = σ(a)·(1-σ(a)).
var Sigmoid = UnaryOp{
	Fn: sigmoid,
	Grad: func(a, dz float64) float64 {
		s := sigmoid(a)
		return dz * s * (1 - s)
	},
}

// Tanh: d/da = 1 - tanh²(a).
var Tanh = UnaryOp{
	Fn: math.Tanh,
	Grad: func(a, dz float64) float64 {
		t := math.Tanh(a)
		return dz * (1 - t*t)
	},
}

func sigmoid(a float64) float64 {
	if a >= 0 {
		return 1 / (1 + math.Exp(-a))
	}
	e := math.Exp(a)
	return e / (1 + e)
}

func sign(a float64) float64 {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}
