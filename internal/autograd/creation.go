package autograd

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/minitorch/internal/shape"
)

// Full creates a tensor of shape s with every element set to v.
func (c *Context) Full(s shape.Shape, v float64, opts ...TensorOption) (*Tensor, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	data := make([]float64, s.NumElements())
	for i := range data {
		data[i] = v
	}
	return c.newTensor(data, s.Clone(), opts...), nil
}

// Ones creates a tensor of shape s filled with ones.
func (c *Context) Ones(s shape.Shape, opts ...TensorOption) (*Tensor, error) {
	return c.Full(s, 1, opts...)
}

// OnesLike creates a ones tensor with the shape of t.
func (c *Context) OnesLike(t *Tensor, opts ...TensorOption) (*Tensor, error) {
	return c.Full(t.shape, 1, opts...)
}

// ZerosLike creates a zero tensor with the shape of t.
func (c *Context) ZerosLike(t *Tensor, opts ...TensorOption) *Tensor {
	return c.Zeros(t.shape, opts...)
}

// Eye creates an n×n identity matrix.
func (c *Context) Eye(n int, opts ...TensorOption) (*Tensor, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "eye size %d", n)
	}
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		data[i*n+i] = 1
	}
	return c.newTensor(data, shape.Shape{n, n}, opts...), nil
}

// Arange creates a 1-D tensor with values from start (inclusive) to end
// (exclusive) spaced by step.
func (c *Context) Arange(start, end, step float64, opts ...TensorOption) (*Tensor, error) {
	if step == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "arange step must be non-zero")
	}
	n := int(math.Ceil((end - start) / step))
	if n < 0 {
		n = 0
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = start + float64(i)*step
	}
	return c.newTensor(data, shape.Shape{n}, opts...), nil
}

// Linspace creates a 1-D tensor of steps evenly spaced values from start to
// end, both inclusive.
func (c *Context) Linspace(start, end float64, steps int, opts ...TensorOption) (*Tensor, error) {
	if steps < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "linspace needs at least one step, got %d", steps)
	}
	data := make([]float64, steps)
	data[0] = start
	if steps > 1 {
		delta := (end - start) / float64(steps-1)
		for i := 1; i < steps-1; i++ {
			data[i] = start + float64(i)*delta
		}
		data[steps-1] = end
	}
	return c.newTensor(data, shape.Shape{steps}, opts...), nil
}

// Rand creates a tensor of uniform samples in [0, 1).
func (c *Context) Rand(s shape.Shape, opts ...TensorOption) (*Tensor, error) {
	return c.sample(s, func(r func() float64) float64 { return r() }, opts...)
}

// Uniform creates a tensor of uniform samples in [low, high).
func (c *Context) Uniform(s shape.Shape, low, high float64, opts ...TensorOption) (*Tensor, error) {
	return c.sample(s, func(r func() float64) float64 { return low + (high-low)*r() }, opts...)
}

// Randn creates a tensor of standard normal samples.
func (c *Context) Randn(s shape.Shape, opts ...TensorOption) (*Tensor, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	data := make([]float64, s.NumElements())
	c.mu.Lock()
	for i := range data {
		data[i] = c.rng.NormFloat64()
	}
	c.mu.Unlock()
	return c.newTensor(data, s.Clone(), opts...), nil
}

func (c *Context) sample(s shape.Shape, f func(func() float64) float64, opts ...TensorOption) (*Tensor, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	data := make([]float64, s.NumElements())
	c.mu.Lock()
	for i := range data {
		data[i] = f(c.rng.Float64)
	}
	c.mu.Unlock()
	return c.newTensor(data, s.Clone(), opts...), nil
}
