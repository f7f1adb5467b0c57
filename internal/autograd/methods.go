package autograd

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/minitorch/internal/shape"
)

func (t *Tensor) unary(kind Kind, attrs ...int) (*Tensor, error) {
	if t == nil {
		return nil, errors.Wrapf(ErrNilTensor, "%s receiver", kind)
	}
	return t.ctx.Apply(kind, []*Tensor{t}, attrs...)
}

func (t *Tensor) binary(kind Kind, other *Tensor) (*Tensor, error) {
	if t == nil {
		return nil, errors.Wrapf(ErrNilTensor, "%s receiver", kind)
	}
	return t.ctx.Apply(kind, []*Tensor{t, other})
}

// scalar applies a binary kind against an untracked number in t's Context.
func (t *Tensor) scalar(kind Kind, v float64) (*Tensor, error) {
	if t == nil {
		return nil, errors.Wrapf(ErrNilTensor, "%s receiver", kind)
	}
	return t.binary(kind, t.ctx.Scalar(v))
}

// Add performs element-wise addition with broadcasting.
func (t *Tensor) Add(other *Tensor) (*Tensor, error) { return t.binary(KindAdd, other) }

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor) Sub(other *Tensor) (*Tensor, error) { return t.binary(KindSub, other) }

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor) Mul(other *Tensor) (*Tensor, error) { return t.binary(KindMul, other) }

// Div performs element-wise division with broadcasting.
func (t *Tensor) Div(other *Tensor) (*Tensor, error) { return t.binary(KindDiv, other) }

// Pow raises t to other element-wise with broadcasting.
func (t *Tensor) Pow(other *Tensor) (*Tensor, error) { return t.binary(KindPow, other) }

// Fmod computes the truncated remainder of t / other element-wise.
func (t *Tensor) Fmod(other *Tensor) (*Tensor, error) { return t.binary(KindFmod, other) }

// Maximum takes the element-wise maximum with broadcasting.
func (t *Tensor) Maximum(other *Tensor) (*Tensor, error) { return t.binary(KindMaximum, other) }

// Minimum takes the element-wise minimum with broadcasting.
func (t *Tensor) Minimum(other *Tensor) (*Tensor, error) { return t.binary(KindMinimum, other) }

// AddScalar adds a number.
func (t *Tensor) AddScalar(v float64) (*Tensor, error) { return t.scalar(KindAdd, v) }

// SubScalar subtracts a number.
func (t *Tensor) SubScalar(v float64) (*Tensor, error) { return t.scalar(KindSub, v) }

// MulScalar multiplies by a number.
func (t *Tensor) MulScalar(v float64) (*Tensor, error) { return t.scalar(KindMul, v) }

// DivScalar divides by a number.
func (t *Tensor) DivScalar(v float64) (*Tensor, error) { return t.scalar(KindDiv, v) }

// PowScalar raises t to a number. Integral exponents use powint, which
// supports zero and negative exponents without a logarithm in its gradient.
func (t *Tensor) PowScalar(v float64) (*Tensor, error) {
	if v == math.Trunc(v) && math.Abs(v) <= math.MaxInt32 {
		return t.PowInt(int(v))
	}
	return t.scalar(KindPow, v)
}

// PowInt raises t to an integer power.
func (t *Tensor) PowInt(n int) (*Tensor, error) { return t.unary(KindPowInt, n) }

// Log computes the natural logarithm element-wise.
func (t *Tensor) Log() (*Tensor, error) { return t.unary(KindLog) }

// Sqrt computes the square root element-wise.
func (t *Tensor) Sqrt() (*Tensor, error) { return t.unary(KindSqrt) }

// Exp computes e^x element-wise.
func (t *Tensor) Exp() (*Tensor, error) { return t.unary(KindExp) }

// Square computes x² element-wise.
func (t *Tensor) Square() (*Tensor, error) { return t.unary(KindSquare) }

// Abs computes |x| element-wise.
func (t *Tensor) Abs() (*Tensor, error) { return t.unary(KindAbs) }

// Sign computes the sign (-1, 0 or 1) element-wise.
func (t *Tensor) Sign() (*Tensor, error) { return t.unary(KindSign) }

// Neg negates element-wise.
func (t *Tensor) Neg() (*Tensor, error) { return t.unary(KindNeg) }

// Reciprocal computes 1/x element-wise.
func (t *Tensor) Reciprocal() (*Tensor, error) { return t.unary(KindReciprocal) }

// Sin computes the sine element-wise.
func (t *Tensor) Sin() (*Tensor, error) { return t.unary(KindSin) }

// Cos computes the cosine element-wise.
func (t *Tensor) Cos() (*Tensor, error) { return t.unary(KindCos) }

// Tan computes the tangent element-wise.
func (t *Tensor) Tan() (*Tensor, error) { return t.unary(KindTan) }

// ReLU computes max(x, 0) element-wise.
func (t *Tensor) ReLU() (*Tensor, error) { return t.unary(KindReLU) }

// Sigmoid computes 1/(1+e^-x) element-wise.
func (t *Tensor) Sigmoid() (*Tensor, error) { return t.unary(KindSigmoid) }

// Tanh computes the hyperbolic tangent element-wise.
func (t *Tensor) Tanh() (*Tensor, error) { return t.unary(KindTanh) }

// Reshape returns a tensor with the same data and a new shape.
// The element count must not change.
func (t *Tensor) Reshape(s ...int) (*Tensor, error) { return t.unary(KindReshape, s...) }

// ReshapeTo is Reshape taking a Shape.
func (t *Tensor) ReshapeTo(s shape.Shape) (*Tensor, error) { return t.Reshape(s...) }

// Unsqueeze inserts an axis of size 1 at dim. Negative dims count from rank+1.
func (t *Tensor) Unsqueeze(dim int) (*Tensor, error) { return t.unary(KindUnsqueeze, dim) }

// Transpose swaps axes dim0 and dim1.
func (t *Tensor) Transpose(dim0, dim1 int) (*Tensor, error) {
	return t.unary(KindTranspose, dim0, dim1)
}

// Sum reduces all elements to a single-element tensor.
func (t *Tensor) Sum() (*Tensor, error) { return t.unary(KindSum) }

// Mean averages all elements into a single-element tensor.
func (t *Tensor) Mean() (*Tensor, error) { return t.unary(KindMean) }

// MatMul performs matrix multiplication.
//
// Requirements:
//   - 1-D · 1-D: dot product
//   - 2-D and above: trailing two axes are matrices, leading axes broadcast
//   - a 1-D left operand is treated as [1, K], a 1-D right operand as [K, 1],
//     and the added axis is removed from the result
func (t *Tensor) MatMul(other *Tensor) (*Tensor, error) { return t.binary(KindMatMul, other) }

// Lt compares t < other element-wise, producing 0/1 values.
func (t *Tensor) Lt(other *Tensor) (*Tensor, error) { return t.binary(KindLt, other) }

// Gt compares t > other element-wise, producing 0/1 values.
func (t *Tensor) Gt(other *Tensor) (*Tensor, error) { return t.binary(KindGt, other) }

// Le compares t <= other element-wise, producing 0/1 values.
func (t *Tensor) Le(other *Tensor) (*Tensor, error) { return t.binary(KindLe, other) }

// Ge compares t >= other element-wise, producing 0/1 values.
func (t *Tensor) Ge(other *Tensor) (*Tensor, error) { return t.binary(KindGe, other) }

// Eq compares t == other element-wise, producing 0/1 values.
func (t *Tensor) Eq(other *Tensor) (*Tensor, error) { return t.binary(KindEq, other) }

// Ne compares t != other element-wise, producing 0/1 values.
func (t *Tensor) Ne(other *Tensor) (*Tensor, error) { return t.binary(KindNe, other) }
