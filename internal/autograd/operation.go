package autograd

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minitorch/internal/shape"
)

// Operation is the contract every operation kind implements.
//
// Implementations are stateless: everything a single invocation needs for
// its backward rule (saved operands, integer attributes, graph edges) lives
// on the Node passed in. The same Operation value may therefore back both
// fresh graph nodes and the shared no-grad instance.
//
// Forward computes the output from the operands and returns it through
// Node.Output, which records saved tensors and next functions when gradient
// tracking is active.
//
// Backward receives the upstream gradient (already shaped like the forward
// output), computes one local gradient per operand and hands them to
// Node.Propagate. Non-differentiable operations simply return nil.
type Operation interface {
	Forward(n *Node, inputs []*Tensor, attrs []int) (*Tensor, error)
	Backward(n *Node, dz *Tensor) error
}

// Constructor creates an Operation for a registered kind.
type Constructor func() Operation

// Node is one executed operation in the dynamic graph.
//
// A tracked node is tied to exactly one forward invocation. A shared node is
// the per-kind instance reused for calls where no operand requires gradients;
// it never stores saved tensors or edges.
type Node struct {
	id     int64
	kind   Kind
	op     Operation
	ctx    *Context
	shared bool

	next        []*Node       // one per operand: its grad_fn or the NullOp sentinel
	saved       []*Tensor     // operands kept for the backward rule
	inputShapes []shape.Shape // operand shapes local gradients are reduced to
	retained    []*Tensor     // non-leaf tensors that asked for their gradient
	attrs       []int
}

// ID returns the node's id, unique within its Context.
func (n *Node) ID() int64 { return n.id }

// Kind returns the operation kind.
func (n *Node) Kind() Kind { return n.kind }

// Op returns the Operation implementation.
func (n *Node) Op() Operation { return n.op }

// Context returns the owning graph context.
func (n *Node) Context() *Context { return n.ctx }

// Shared reports whether this is the cached no-grad instance.
func (n *Node) Shared() bool { return n.shared }

// IsNull reports whether n is the NullOp sentinel.
func (n *Node) IsNull() bool { return n.kind == KindNull }

// NextFunctions returns the graph edges, one per operand.
func (n *Node) NextFunctions() []*Node { return n.next }

// SavedTensors returns the operands saved for the backward rule.
func (n *Node) SavedTensors() []*Tensor { return n.saved }

// RetainedTensors returns the tensors registered through RetainGrad.
func (n *Node) RetainedTensors() []*Tensor { return n.retained }

// Attrs returns the integer attributes of the forward call
// (reshape target, unsqueeze axis, transpose axes, integer exponent).
func (n *Node) Attrs() []int { return n.attrs }

// Forward runs the operation on inputs and fires the forward hooks.
func (n *Node) Forward(inputs []*Tensor, attrs ...int) (*Tensor, error) {
	for i, in := range inputs {
		if in == nil {
			return nil, errors.Wrapf(ErrNilTensor, "%s operand %d", n.kind, i)
		}
	}
	if n.shared && n.ctx.tracks(inputs) {
		n = n.ctx.spawn(n.kind, n.op)
	}
	if !n.shared {
		n.attrs = append([]int(nil), attrs...)
	}

	n.ctx.emit(Event{Kind: EventOperationBeforeForward, Node: n, Inputs: inputs})
	result, err := n.op.Forward(n, inputs, attrs)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s forward", n.kind)
	}
	n.ctx.emit(Event{Kind: EventOperationAfterForward, Node: n, Inputs: inputs, Result: result})
	return result, nil
}

// Backward accumulates dz into every retained tensor and then runs the
// operation's backward rule.
func (n *Node) Backward(dz *Tensor) error {
	n.ctx.emit(Event{Kind: EventOperationBeforeBackward, Node: n, Grad: dz})
	for _, t := range n.retained {
		if err := t.accumulate(dz); err != nil {
			return errors.WithMessagef(err, "%s retained gradient", n.kind)
		}
	}
	if err := n.op.Backward(n, dz); err != nil {
		return err
	}
	n.ctx.emit(Event{Kind: EventOperationAfterBackward, Node: n, Grad: dz})
	return nil
}

// Output builds the result tensor of a forward call. When tracking is active
// the operands are saved, their graph nodes are linked as next functions and
// the result is bound to n. Otherwise the result is a plain untracked tensor.
func (n *Node) Output(data []float64, s shape.Shape, inputs ...*Tensor) (*Tensor, error) {
	if err := checkLength(data, s); err != nil {
		return nil, err
	}
	if n.shared || !n.ctx.tracks(inputs) {
		return n.ctx.wrap(data, s), nil
	}

	n.saved = inputs
	n.next = make([]*Node, len(inputs))
	n.inputShapes = make([]shape.Shape, len(inputs))
	for i, in := range inputs {
		n.next[i] = n.ctx.gradFnOf(in)
		n.inputShapes[i] = in.Shape()
	}

	t := n.ctx.wrap(data, s)
	t.requiresGrad = true
	t.gradFn = n
	return t, nil
}

// Propagate hands each local gradient to the matching next function after
// reducing it to the shape of the corresponding operand. A nil gradient
// leaves that edge untouched.
func (n *Node) Propagate(grads ...*Tensor) error {
	for i, g := range grads {
		if g == nil || i >= len(n.next) {
			continue
		}
		next := n.next[i]
		if next.IsNull() {
			continue
		}
		reduced, err := g.sumTo(n.inputShapes[i])
		if err != nil {
			return errors.WithMessagef(err, "%s gradient for operand %d", n.kind, i)
		}
		if err := next.Backward(reduced); err != nil {
			return err
		}
	}
	return nil
}

func checkLength(data []float64, s shape.Shape) error {
	if len(data) != s.NumElements() {
		return errors.Wrapf(ErrShapeMismatch, "shape %v requires %d elements, but got %d",
			s, s.NumElements(), len(data))
	}
	return nil
}

// nullOp absorbs gradient flow for operands that do not require gradients.
type nullOp struct{}

func (nullOp) Forward(*Node, []*Tensor, []int) (*Tensor, error) {
	return nil, ErrInvalidLeafOperation
}

func (nullOp) Backward(*Node, *Tensor) error { return nil }

// accumulateGrad terminates the graph at a leaf that requires gradients.
type accumulateGrad struct {
	variable *Tensor
}

func (op *accumulateGrad) Forward(_ *Node, inputs []*Tensor, _ []int) (*Tensor, error) {
	if len(inputs) != 1 {
		return nil, errors.Errorf("accumulate_grad expects 1 operand, got %d", len(inputs))
	}
	op.variable = inputs[0]
	return op.variable, nil
}

func (op *accumulateGrad) Backward(n *Node, dz *Tensor) error {
	if op.variable == nil {
		return nil
	}
	n.ctx.emit(Event{Kind: EventOperationAccumulateGrad, Node: n, Tensor: op.variable, Grad: dz})
	return op.variable.accumulate(dz)
}

// Variable returns the leaf bound to an AccumulateGrad node, or nil for any
// other node.
func (n *Node) Variable() *Tensor {
	if acc, ok := n.op.(*accumulateGrad); ok {
		return acc.variable
	}
	return nil
}
