package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minitorch/internal/autograd"
	"github.com/born-ml/minitorch/internal/kernels"
	"github.com/born-ml/minitorch/internal/shape"
)

// partial computes one element of a local gradient from the operand values
// at that output position and the upstream gradient.
type partial func(a, b, dz float64) float64

func expectOperands(kind autograd.Kind, inputs []*autograd.Tensor, want int) error {
	if len(inputs) != want {
		return errors.Errorf("%s expects %d operand(s), got %d", kind, want, len(inputs))
	}
	return nil
}

func expectAttrs(kind autograd.Kind, attrs []int, want int) error {
	if len(attrs) != want {
		return errors.Errorf("%s expects %d attribute(s), got %d", kind, want, len(attrs))
	}
	return nil
}

// binaryForward evaluates f over the broadcast of the two operands.
func binaryForward(n *autograd.Node, inputs []*autograd.Tensor, f kernels.BinaryFunc) (*autograd.Tensor, error) {
	if err := expectOperands(n.Kind(), inputs, 2); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]
	out, err := shape.BroadcastShape(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}
	data := kernels.Broadcast(a.Data(), shape.PadShape(a.Shape(), out), b.Data(), shape.PadShape(b.Shape(), out), out, f)
	return n.Output(data, out, a, b)
}

// binaryBackward builds output-shaped local gradients for both operands and
// propagates them. A nil partial, or an operand whose next function is the
// NullOp, gets no gradient.
func binaryBackward(n *autograd.Node, dz *autograd.Tensor, da, db partial) error {
	saved := n.SavedTensors()
	if len(saved) != 2 {
		return nil
	}
	a, b := saved[0], saved[1]
	out := dz.Shape()
	pa := shape.PadShape(a.Shape(), out)
	pb := shape.PadShape(b.Shape(), out)
	next := n.NextFunctions()

	grads := make([]*autograd.Tensor, 2)
	for i, d := range []partial{da, db} {
		if d == nil || next[i].IsNull() {
			continue
		}
		g := make([]float64, out.NumElements())
		for j := range g {
			av := a.Data()[shape.OriginalIndex(pa, out, j)]
			bv := b.Data()[shape.OriginalIndex(pb, out, j)]
			g[j] = d(av, bv, dz.Data()[j])
		}
		t, err := n.Context().Wrap(g, out)
		if err != nil {
			return err
		}
		grads[i] = t
	}
	return n.Propagate(grads...)
}

// unaryForward applies f to every element of the single operand.
func unaryForward(n *autograd.Node, inputs []*autograd.Tensor, f kernels.UnaryFunc) (*autograd.Tensor, error) {
	if err := expectOperands(n.Kind(), inputs, 1); err != nil {
		return nil, err
	}
	a := inputs[0]
	return n.Output(kernels.Map(a.Data(), f), a.Shape(), a)
}

// unaryBackward propagates d(a, dz) computed element-wise. The b argument of
// the partial is unused.
func unaryBackward(n *autograd.Node, dz *autograd.Tensor, d partial) error {
	saved := n.SavedTensors()
	if len(saved) != 1 || n.NextFunctions()[0].IsNull() {
		return nil
	}
	a := saved[0].Data()
	g := make([]float64, len(a))
	for i := range g {
		g[i] = d(a[i], 0, dz.Data()[i])
	}
	t, err := n.Context().Wrap(g, saved[0].Shape())
	if err != nil {
		return err
	}
	return n.Propagate(t)
}

// passThrough hands data to the only operand, labeled with its shape.
// Shape operations use it since their gradient is a pure relabeling.
func passThrough(n *autograd.Node, data []float64) error {
	saved := n.SavedTensors()
	if len(saved) != 1 || n.NextFunctions()[0].IsNull() {
		return nil
	}
	t, err := n.Context().Wrap(data, saved[0].Shape())
	if err != nil {
		return err
	}
	return n.Propagate(t)
}
