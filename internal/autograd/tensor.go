package autograd

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"

	"github.com/born-ml/minitorch/internal/kernels"
	"github.com/born-ml/minitorch/internal/shape"
)

// Tensor is a dense row-major float64 array with optional gradient tracking.
//
// A tensor that requires gradients always has a grad_fn: the Node that
// produced it, or an AccumulateGrad node when it is a leaf. Tensors are
// value data; only backward propagation, ZeroGrad, Zero and SetData mutate
// them.
type Tensor struct {
	id    int64
	ctx   *Context
	data  []float64
	shape shape.Shape

	requiresGrad bool
	grad         *Tensor
	gradFn       *Node
	retainsGrad  bool
}

// TensorOption configures tensor construction.
type TensorOption func(*tensorOptions)

type tensorOptions struct {
	requiresGrad bool
	gradFn       *Node
}

// RequiresGrad marks the tensor for gradient tracking.
func RequiresGrad(v bool) TensorOption {
	return func(o *tensorOptions) {
		o.requiresGrad = v
	}
}

// WithGradFn binds the tensor to an explicit producing node.
func WithGradFn(n *Node) TensorOption {
	return func(o *tensorOptions) {
		o.gradFn = n
	}
}

// FromSlice creates a tensor from a flat buffer and shape.
// The buffer is copied.
func (c *Context) FromSlice(data []float64, s shape.Shape, opts ...TensorOption) (*Tensor, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := checkLength(data, s); err != nil {
		return nil, err
	}

	buf := make([]float64, len(data))
	copy(buf, data)
	return c.newTensor(buf, s.Clone(), opts...), nil
}

// Scalar creates a one-element tensor of shape [].
func (c *Context) Scalar(v float64, opts ...TensorOption) *Tensor {
	return c.newTensor([]float64{v}, shape.Shape{}, opts...)
}

// FromNested creates a tensor from a Go number or a (possibly nested) slice
// of numbers. The shape is inferred from the first element at each depth;
// ragged input fails with ErrShapeMismatch.
func (c *Context) FromNested(v any, opts ...TensorOption) (*Tensor, error) {
	s := inferShape(reflect.ValueOf(v))
	data := make([]float64, 0, s.NumElements())
	data, err := flatten(reflect.ValueOf(v), s, data)
	if err != nil {
		return nil, err
	}
	return c.newTensor(data, s, opts...), nil
}

// Zeros creates a zero-filled tensor.
func (c *Context) Zeros(s shape.Shape, opts ...TensorOption) *Tensor {
	return c.newTensor(make([]float64, s.NumElements()), s.Clone(), opts...)
}

func (c *Context) newTensor(data []float64, s shape.Shape, opts ...TensorOption) *Tensor {
	var o tensorOptions
	for _, opt := range opts {
		opt(&o)
	}

	t := c.wrap(data, s)
	t.requiresGrad = o.requiresGrad
	t.gradFn = o.gradFn
	if t.gradFn != nil {
		t.requiresGrad = true
	}
	if t.requiresGrad && t.gradFn == nil {
		t.gradFn = c.newAccumulateGrad(t)
	}
	return t
}

// wrap creates an untracked tensor that takes ownership of data.
func (c *Context) wrap(data []float64, s shape.Shape) *Tensor {
	return &Tensor{
		id:    c.nextID(),
		ctx:   c,
		data:  data,
		shape: s,
	}
}

// Wrap creates an untracked tensor that takes ownership of data without
// copying. Operations use it for outputs and local gradients.
func (c *Context) Wrap(data []float64, s shape.Shape) (*Tensor, error) {
	if err := checkLength(data, s); err != nil {
		return nil, err
	}
	return c.wrap(data, s), nil
}

func inferShape(v reflect.Value) shape.Shape {
	s := shape.Shape{}
	for v.Kind() == reflect.Slice || v.Kind() == reflect.Array || v.Kind() == reflect.Interface {
		if v.Kind() == reflect.Interface {
			v = v.Elem()
			continue
		}
		s = append(s, v.Len())
		if v.Len() == 0 {
			break
		}
		v = v.Index(0)
	}
	return s
}

func flatten(v reflect.Value, s shape.Shape, data []float64) ([]float64, error) {
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if len(s) == 0 {
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		return append(data, f), nil
	}

	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, errors.Wrapf(ErrShapeMismatch, "expected a sequence of length %d, got %s", s[0], v.Kind())
	}
	if v.Len() != s[0] {
		return nil, errors.Wrapf(ErrShapeMismatch, "ragged nested data: expected length %d, got %d", s[0], v.Len())
	}
	var err error
	for i := 0; i < v.Len(); i++ {
		data, err = flatten(v.Index(i), s[1:], data)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

func toFloat(v reflect.Value) (float64, error) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, errors.Errorf("unsupported element type %s", v.Kind())
	}
}

// ID returns the tensor's id, unique within its Context.
func (t *Tensor) ID() int64 { return t.id }

// Context returns the Context that created the tensor.
func (t *Tensor) Context() *Context { return t.ctx }

// Shape returns the tensor's shape. The rank 0 shape is reported as [1].
func (t *Tensor) Shape() shape.Shape { return t.shape.Normalize() }

// RawShape returns the shape as constructed, which may be [].
func (t *Tensor) RawShape() shape.Shape { return t.shape }

// Len returns the total number of elements.
func (t *Tensor) Len() int { return len(t.data) }

// Data returns the underlying buffer. Callers must not modify it.
func (t *Tensor) Data() []float64 { return t.data }

// ToArray returns a copy of the data.
func (t *Tensor) ToArray() []float64 {
	out := make([]float64, len(t.data))
	copy(out, t.data)
	return out
}

// RequiresGrad reports whether gradients flow into this tensor.
func (t *Tensor) RequiresGrad() bool { return t.requiresGrad }

// Grad returns the accumulated gradient, or nil if none has been written.
func (t *Tensor) Grad() *Tensor { return t.grad }

// GradFn returns the node that produced the tensor, its AccumulateGrad node
// for a tracked leaf, or nil when the tensor is untracked.
func (t *Tensor) GradFn() *Node { return t.gradFn }

// IsLeaf reports whether the tensor has no producing operation.
func (t *Tensor) IsLeaf() bool {
	return t.gradFn == nil || t.gradFn.kind == KindAccumulateGrad
}

// RetainsGrad reports whether RetainGrad was requested on a non-leaf tensor.
func (t *Tensor) RetainsGrad() bool { return t.retainsGrad }

// Item returns the only element of a single-element tensor.
func (t *Tensor) Item() (float64, error) {
	if len(t.data) != 1 {
		return 0, errors.Wrapf(ErrNonScalar, "tensor has %d elements", len(t.data))
	}
	return t.data[0], nil
}

// Detach returns a new untracked tensor holding a copy of the data.
func (t *Tensor) Detach() *Tensor {
	return t.ctx.wrap(t.ToArray(), t.shape.Clone())
}

// DetachInPlace stops gradient tracking on t and drops its gradient.
func (t *Tensor) DetachInPlace() {
	t.requiresGrad = false
	t.grad = nil
	t.gradFn = nil
}

// Zero overwrites the data with zeros. It is not tracked by autograd.
func (t *Tensor) Zero() {
	t.data = make([]float64, len(t.data))
}

// SetData replaces the data with a copy of data. It is not tracked by
// autograd and is meant for parameter updates.
func (t *Tensor) SetData(data []float64) error {
	if len(data) != len(t.data) {
		return errors.Wrapf(ErrShapeMismatch, "tensor of shape %v cannot hold %d elements", t.Shape(), len(data))
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	t.data = buf
	return nil
}

// ZeroGrad drops the accumulated gradient.
func (t *Tensor) ZeroGrad() {
	t.grad = nil
}

// RetainGrad asks a non-leaf tensor to accumulate its own gradient during
// backward. It is a no-op on leaves and untracked tensors, and idempotent.
func (t *Tensor) RetainGrad() {
	if t.gradFn == nil || t.gradFn.kind == KindAccumulateGrad || t.retainsGrad {
		return
	}
	t.retainsGrad = true
	t.gradFn.retained = append(t.gradFn.retained, t)
}

// String implements fmt.Stringer.
func (t *Tensor) String() string {
	if t.requiresGrad {
		return fmt.Sprintf("Tensor(%v, shape=%v, requires_grad=true)", t.data, t.Shape())
	}
	return fmt.Sprintf("Tensor(%v, shape=%v)", t.data, t.Shape())
}

// sumTo returns t reduced (or replicated) to shape s as an untracked tensor.
func (t *Tensor) sumTo(s shape.Shape) (*Tensor, error) {
	if t.Shape().Equal(s) && !t.requiresGrad {
		return t, nil
	}
	data, err := kernels.SumTo(t.data, t.Shape(), s)
	if err != nil {
		return nil, err
	}
	return t.ctx.wrap(data, s.Clone()), nil
}

// accumulate adds dz into t.grad, allocating a zero gradient of t's shape first.
func (t *Tensor) accumulate(dz *Tensor) error {
	g, err := dz.sumTo(t.Shape())
	if err != nil {
		return err
	}
	if t.grad == nil {
		t.grad = t.ctx.wrap(make([]float64, len(t.data)), t.shape.Clone())
	}
	kernels.AddTo(t.grad.data, g.data)
	return nil
}
