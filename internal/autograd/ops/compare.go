package ops

import (
	"github.com/born-ml/minitorch/internal/autograd"
	"github.com/born-ml/minitorch/internal/kernels"
	"github.com/born-ml/minitorch/internal/shape"
)

// Comparisons produce 1 where the relation holds and 0 elsewhere.
// They are non-differentiable: backward is a no-op.
var (
	Lt = BinaryOp{Fn: func(a, b float64) float64 { return indicator(a < b) }}
	Gt = BinaryOp{Fn: func(a, b float64) float64 { return indicator(a > b) }}
	Le = BinaryOp{Fn: func(a, b float64) float64 { return indicator(a <= b) }}
	Ge = BinaryOp{Fn: func(a, b float64) float64 { return indicator(a >= b) }}
	Eq = BinaryOp{Fn: func(a, b float64) float64 { return indicator(a == b) }}
	Ne = BinaryOp{Fn: func(a, b float64) float64 { return indicator(a != b) }}
)

// IndexOp outputs, for every position of the broadcast of its two operands,
// the linear index read from the left (Left=true) or right operand.
// It exists to inspect broadcasting and is non-differentiable.
type IndexOp struct {
	Left bool
}

// Forward implements autograd.Operation.
func (op IndexOp) Forward(n *autograd.Node, inputs []*autograd.Tensor, _ []int) (*autograd.Tensor, error) {
	if err := expectOperands(n.Kind(), inputs, 2); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]
	out, err := shape.BroadcastShape(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}
	data := kernels.BroadcastIndex(shape.PadShape(a.Shape(), out), shape.PadShape(b.Shape(), out), out, op.Left)
	return n.Output(data, out, a, b)
}

// Backward implements autograd.Operation.
func (IndexOp) Backward(*autograd.Node, *autograd.Tensor) error { return nil }
