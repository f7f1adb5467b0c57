package ops

import (
	"math"

	"github.com/born-ml/minitorch/internal/autograd"
	"github.com/born-ml/minitorch/internal/kernels"
)

// BinaryOp is an element-wise operation over two broadcast operands.
//
// GradA and GradB are the partial derivatives with respect to each operand,
// already multiplied by the upstream gradient. A nil partial marks that
// operand as receiving no gradient.
type BinaryOp struct {
	Fn    kernels.BinaryFunc
	GradA func(a, b, dz float64) float64
	GradB func(a, b, dz float64) float64
}

// Forward implements autograd.Operation.
func (op BinaryOp) Forward(n *autograd.Node, inputs []*autograd.Tensor, _ []int) (*autograd.Tensor, error) {
	return binaryForward(n, inputs, op.Fn)
}

// Backward implements autograd.Operation.
func (op BinaryOp) Backward(n *autograd.Node, dz *autograd.Tensor) error {
	if op.GradA == nil && op.GradB == nil {
		return nil
	}
	return binaryBackward(n, dz, op.GradA, op.GradB)
}

// Add: a + b.
//
//	d/da = 1, d/db = 1
var Add = BinaryOp{
	Fn:    func(a, b float64) float64 { return a + b },
	GradA: func(_, _, dz float64) float64 { return dz },
	GradB: func(_, _, dz float64) float64 { return dz },
}

// Sub: a - b.
//
//	d/da = 1, d/db = -1
var Sub = BinaryOp{
	Fn:    func(a, b float64) float64 { return a - b },
	GradA: func(_, _, dz float64) float64 { return dz },
	GradB: func(_, _, dz float64) float64 { return -dz },
}

// Mul: a * b.
//
//	d/da = b, d/db = a
var Mul = BinaryOp{
	Fn:    func(a, b float64) float64 { return a * b },
	GradA: func(_, b, dz float64) float64 { return dz * b },
	GradB: func(a, _, dz float64) float64 { return dz * a },
}

// Div: a / b.
//
//	d/da = 1/b, d/db = -a/b²
var Div = BinaryOp{
	Fn:    func(a, b float64) float64 { return a / b },
	GradA: func(_, b, dz float64) float64 { return dz / b },
	GradB: func(a, b, dz float64) float64 { return -dz * a / (b * b) },
}

// Pow: a ^ b.
//
//	d/da = b·a^(b-1), d/db = a^b·ln(a)
var Pow = BinaryOp{
	Fn:    math.Pow,
	GradA: func(a, b, dz float64) float64 { return dz * b * math.Pow(a, b-1) },
	GradB: func(a, b, dz float64) float64 { return dz * math.Pow(a, b) * math.Log(a) },
}

// Fmod: truncated remainder of a / b, with the sign of a.
// Only the dividend receives a gradient.
var Fmod = BinaryOp{
	Fn:    math.Mod,
	GradA: func(_, _, dz float64) float64 { return dz },
}

// Maximum routes dz to the operand holding the maximum; ties go to a.
var Maximum = BinaryOp{
	Fn:    math.Max,
	GradA: func(a, b, dz float64) float64 { return dz * indicator(a >= b) },
	GradB: func(a, b, dz float64) float64 { return dz * indicator(b > a) },
}

// Minimum routes dz to the operand holding the minimum; ties go to a.
var Minimum = BinaryOp{
	Fn:    math.Min,
	GradA: func(a, b, dz float64) float64 { return dz * indicator(a <= b) },
	GradB: func(a, b, dz float64) float64 { return dz * indicator(b < a) },
}

func indicator(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// PowIntOp raises its operand to the integer exponent given as the single
// attribute. Zero and negative exponents are valid.
//
//	d/da = n·a^(n-1)
type PowIntOp struct{}

// Forward implements autograd.Operation.
func (PowIntOp) Forward(n *autograd.Node, inputs []*autograd.Tensor, attrs []int) (*autograd.Tensor, error) {
	if err := expectAttrs(n.Kind(), attrs, 1); err != nil {
		return nil, err
	}
	exp := float64(attrs[0])
	return unaryForward(n, inputs, func(a float64) float64 { return math.Pow(a, exp) })
}

// Backward implements autograd.Operation.
func (PowIntOp) Backward(n *autograd.Node, dz *autograd.Tensor) error {
	exp := float64(n.Attrs()[0])
	return unaryBackward(n, dz, func(a, _, g float64) float64 {
		if exp == 0 {
			return 0
		}
		return g * exp * math.Pow(a, exp-1)
	})
}
