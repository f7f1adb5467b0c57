package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/minitorch/internal/autograd"
	"github.com/born-ml/minitorch/internal/shape"
)

const (
	epsilonGrad = 1e-6
	tolerance   = 1e-4
)

type operand struct {
	data  []float64
	shape shape.Shape
}

// fn builds the expression under test from its operands. The loss is the sum
// of every output element, matching an all-ones upstream gradient.
type fn func(xs ...*autograd.Tensor) (*autograd.Tensor, error)

// numericalGradient computes d(sum f)/d(operand i) with central differences.
func numericalGradient(t *testing.T, f fn, inputs []operand, i int) []float64 {
	t.Helper()
	ctx := newContext()
	eval := func(perturbed []float64) float64 {
		xs := make([]*autograd.Tensor, len(inputs))
		for j, in := range inputs {
			data := in.data
			if j == i {
				data = perturbed
			}
			x, err := ctx.FromSlice(data, in.shape)
			require.NoError(t, err)
			xs[j] = x
		}
		out, err := f(xs...)
		require.NoError(t, err)
		return floats.Sum(out.Data())
	}

	grad := make([]float64, len(inputs[i].data))
	buf := make([]float64, len(inputs[i].data))
	for k := range grad {
		copy(buf, inputs[i].data)
		buf[k] += epsilonGrad
		plus := eval(buf)
		buf[k] -= 2 * epsilonGrad
		minus := eval(buf)
		grad[k] = (plus - minus) / (2 * epsilonGrad)
	}
	return grad
}

// checkGradients compares autograd gradients of sum(f) against numerical ones
// for every operand.
func checkGradients(t *testing.T, f fn, inputs ...operand) {
	t.Helper()
	ctx := newContext()
	xs := make([]*autograd.Tensor, len(inputs))
	for i, in := range inputs {
		x, err := ctx.FromSlice(in.data, in.shape, autograd.RequiresGrad(true))
		require.NoError(t, err)
		xs[i] = x
	}

	out, err := f(xs...)
	require.NoError(t, err)
	loss, err := out.Sum()
	require.NoError(t, err)
	require.NoError(t, loss.Backward())

	for i, x := range xs {
		require.NotNil(t, x.Grad(), "operand %d has no gradient", i)
		assert.Equal(t, x.Shape(), x.Grad().Shape(), "operand %d gradient shape", i)
		want := numericalGradient(t, f, inputs, i)
		assert.InDeltaSlice(t, want, x.Grad().ToArray(), tolerance, "operand %d", i)
	}
}

func binary(method func(a, b *autograd.Tensor) (*autograd.Tensor, error)) fn {
	return func(xs ...*autograd.Tensor) (*autograd.Tensor, error) { return method(xs[0], xs[1]) }
}

func unary(method func(a *autograd.Tensor) (*autograd.Tensor, error)) fn {
	return func(xs ...*autograd.Tensor) (*autograd.Tensor, error) { return method(xs[0]) }
}

var (
	matA = operand{[]float64{0.5, 1.5, 2.0, 1.2, 0.7, 1.9}, shape.Shape{2, 3}}
	matB = operand{[]float64{1.1, 0.3, 2.2, 0.8, 1.4, 0.6}, shape.Shape{2, 3}}
	row  = operand{[]float64{0.9, 1.3, 0.4}, shape.Shape{3}}
	col  = operand{[]float64{1.7, 0.6}, shape.Shape{2, 1}}
)

func TestGradient_Binary(t *testing.T) {
	tests := []struct {
		name string
		f    fn
	}{
		{"add", binary((*autograd.Tensor).Add)},
		{"sub", binary((*autograd.Tensor).Sub)},
		{"mul", binary((*autograd.Tensor).Mul)},
		{"div", binary((*autograd.Tensor).Div)},
		{"pow", binary((*autograd.Tensor).Pow)},
		{"maximum", binary((*autograd.Tensor).Maximum)},
		{"minimum", binary((*autograd.Tensor).Minimum)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkGradients(t, tt.f, matA, matB)
		})
		t.Run(tt.name+" broadcast row", func(t *testing.T) {
			checkGradients(t, tt.f, matA, row)
		})
		t.Run(tt.name+" broadcast column", func(t *testing.T) {
			checkGradients(t, tt.f, col, row)
		})
	}
}

func TestGradient_Fmod(t *testing.T) {
	ctx := newContext()
	a, err := ctx.FromSlice([]float64{5.5, -3.2, 7.1}, shape.Shape{3}, autograd.RequiresGrad(true))
	require.NoError(t, err)
	b, err := ctx.FromSlice([]float64{2}, shape.Shape{1}, autograd.RequiresGrad(true))
	require.NoError(t, err)

	y, err := a.Fmod(b)
	require.NoError(t, err)
	loss, err := y.Sum()
	require.NoError(t, err)
	require.NoError(t, loss.Backward())

	assert.Equal(t, []float64{1, 1, 1}, a.Grad().ToArray())
	assert.Nil(t, b.Grad())
}

func TestGradient_Unary(t *testing.T) {
	positive := operand{[]float64{0.5, 1.5, 2.0, 1.2, 0.7, 1.9}, shape.Shape{2, 3}}
	mixed := operand{[]float64{-0.5, 1.5, -2.0, 1.2, -0.7, 0.3}, shape.Shape{3, 2}}

	tests := []struct {
		name string
		f    fn
		in   operand
	}{
		{"log", unary((*autograd.Tensor).Log), positive},
		{"sqrt", unary((*autograd.Tensor).Sqrt), positive},
		{"exp", unary((*autograd.Tensor).Exp), mixed},
		{"square", unary((*autograd.Tensor).Square), mixed},
		{"abs", unary((*autograd.Tensor).Abs), mixed},
		{"neg", unary((*autograd.Tensor).Neg), mixed},
		{"reciprocal", unary((*autograd.Tensor).Reciprocal), mixed},
		{"sin", unary((*autograd.Tensor).Sin), mixed},
		{"cos", unary((*autograd.Tensor).Cos), mixed},
		{"tan", unary((*autograd.Tensor).Tan), mixed},
		{"relu", unary((*autograd.Tensor).ReLU), mixed},
		{"sigmoid", unary((*autograd.Tensor).Sigmoid), mixed},
		{"tanh", unary((*autograd.Tensor).Tanh), mixed},
		{"sum", unary((*autograd.Tensor).Sum), mixed},
		{"mean", unary((*autograd.Tensor).Mean), mixed},
		{"powint 3", func(xs ...*autograd.Tensor) (*autograd.Tensor, error) { return xs[0].PowInt(3) }, mixed},
		{"powint -2", func(xs ...*autograd.Tensor) (*autograd.Tensor, error) { return xs[0].PowInt(-2) }, mixed},
		{"pow scalar", func(xs ...*autograd.Tensor) (*autograd.Tensor, error) { return xs[0].PowScalar(1.5) }, positive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkGradients(t, tt.f, tt.in)
		})
	}
}

func TestGradient_Shape(t *testing.T) {
	weights := operand{[]float64{1, 2, 3, 4, 5, 6}, shape.Shape{3, 2}}

	tests := []struct {
		name string
		f    fn
	}{
		{"reshape", func(xs ...*autograd.Tensor) (*autograd.Tensor, error) {
			r, err := xs[0].Reshape(3, 2)
			if err != nil {
				return nil, err
			}
			return r.Mul(xs[1])
		}},
		{"unsqueeze", func(xs ...*autograd.Tensor) (*autograd.Tensor, error) {
			u, err := xs[0].Unsqueeze(0)
			if err != nil {
				return nil, err
			}
			r, err := u.Reshape(3, 2)
			if err != nil {
				return nil, err
			}
			return r.Mul(xs[1])
		}},
		{"transpose", func(xs ...*autograd.Tensor) (*autograd.Tensor, error) {
			tr, err := xs[0].Transpose(0, 1)
			if err != nil {
				return nil, err
			}
			return tr.Mul(xs[1])
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkGradients(t, tt.f, matA, weights)
		})
	}
}

func TestGradient_MatMul(t *testing.T) {
	tests := []struct {
		name string
		a, b operand
	}{
		{
			name: "2d",
			a:    matA,
			b:    operand{[]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, shape.Shape{3, 2}},
		},
		{
			name: "dot",
			a:    row,
			b:    operand{[]float64{0.2, 0.7, 1.1}, shape.Shape{3}},
		},
		{
			name: "matrix vector",
			a:    matA,
			b:    row,
		},
		{
			name: "vector matrix",
			a:    operand{[]float64{0.4, 1.8}, shape.Shape{2}},
			b:    matB,
		},
		{
			name: "batch broadcast",
			a: operand{
				[]float64{0.5, 1.5, 2.0, 1.2, 0.7, 1.9, 0.3, 0.8, 1.1, 0.2, 1.6, 0.9},
				shape.Shape{2, 2, 3},
			},
			b: operand{[]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, shape.Shape{3, 2}},
		},
		{
			name: "batch on both sides",
			a:    operand{[]float64{0.5, 1.5, 2.0, 1.2, 0.7, 1.9}, shape.Shape{1, 2, 3}},
			b: operand{
				[]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4},
				shape.Shape{2, 3, 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkGradients(t, binary((*autograd.Tensor).MatMul), tt.a, tt.b)
		})
	}
}

func TestGradient_NonDifferentiable(t *testing.T) {
	tests := []struct {
		name string
		f    func(a, b *autograd.Tensor) (*autograd.Tensor, error)
	}{
		{"lt", (*autograd.Tensor).Lt},
		{"gt", (*autograd.Tensor).Gt},
		{"le", (*autograd.Tensor).Le},
		{"ge", (*autograd.Tensor).Ge},
		{"eq", (*autograd.Tensor).Eq},
		{"ne", (*autograd.Tensor).Ne},
		{"sign", func(a, _ *autograd.Tensor) (*autograd.Tensor, error) { return a.Sign() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext()
			a, err := ctx.FromSlice(matA.data, matA.shape, autograd.RequiresGrad(true))
			require.NoError(t, err)
			b, err := ctx.FromSlice(row.data, row.shape, autograd.RequiresGrad(true))
			require.NoError(t, err)

			y, err := tt.f(a, b)
			require.NoError(t, err)
			loss, err := y.Sum()
			require.NoError(t, err)
			require.NoError(t, loss.Backward())

			assert.Nil(t, a.Grad())
			assert.Nil(t, b.Grad())
		})
	}
}
