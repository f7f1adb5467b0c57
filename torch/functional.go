// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package torch

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minitorch/internal/autograd"
)

// Functional API.
//
// Binary functions accept *Tensor, Go numbers and nested slices of numbers.
// Non-tensor operands are promoted to untracked tensors in the Context of
// the first *Tensor operand; at least one operand must be a *Tensor.
//
// Example:
//
//	y, err := torch.Mul(x, 2)        // same as x.MulScalar(2)
//	z, err := torch.Add([]float64{1, 2, 3}, y)

// Operation kinds of the built-in catalog, for use with RegisterOperation
// and GetOperation.
const (
	KindAdd        = autograd.KindAdd
	KindSub        = autograd.KindSub
	KindMul        = autograd.KindMul
	KindDiv        = autograd.KindDiv
	KindPow        = autograd.KindPow
	KindFmod       = autograd.KindFmod
	KindMaximum    = autograd.KindMaximum
	KindMinimum    = autograd.KindMinimum
	KindPowInt     = autograd.KindPowInt
	KindLog        = autograd.KindLog
	KindSqrt       = autograd.KindSqrt
	KindExp        = autograd.KindExp
	KindSquare     = autograd.KindSquare
	KindAbs        = autograd.KindAbs
	KindSign       = autograd.KindSign
	KindNeg        = autograd.KindNeg
	KindReciprocal = autograd.KindReciprocal
	KindSin        = autograd.KindSin
	KindCos        = autograd.KindCos
	KindTan        = autograd.KindTan
	KindReLU       = autograd.KindReLU
	KindSigmoid    = autograd.KindSigmoid
	KindTanh       = autograd.KindTanh
	KindReshape    = autograd.KindReshape
	KindUnsqueeze  = autograd.KindUnsqueeze
	KindTranspose  = autograd.KindTranspose
	KindSum        = autograd.KindSum
	KindMean       = autograd.KindMean
	KindMatMul     = autograd.KindMatMul
	KindLt         = autograd.KindLt
	KindGt         = autograd.KindGt
	KindLe         = autograd.KindLe
	KindGe         = autograd.KindGe
	KindEq         = autograd.KindEq
	KindNe         = autograd.KindNe
)

// ErrNoTensorOperand is returned when no operand of a functional call is a *Tensor.
var ErrNoTensorOperand = errors.New("at least one operand must be a tensor")

func promote(vals ...any) (*Context, []*Tensor, error) {
	var ctx *Context
	for _, v := range vals {
		if t, ok := v.(*Tensor); ok && t != nil {
			ctx = t.Context()
			break
		}
	}
	if ctx == nil {
		return nil, nil, ErrNoTensorOperand
	}

	out := make([]*Tensor, len(vals))
	for i, v := range vals {
		if t, ok := v.(*Tensor); ok {
			out[i] = t
			continue
		}
		t, err := ctx.FromNested(v)
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "operand %d", i)
		}
		out[i] = t
	}
	return ctx, out, nil
}

func apply(kind Kind, vals ...any) (*Tensor, error) {
	ctx, ts, err := promote(vals...)
	if err != nil {
		return nil, err
	}
	return ctx.Apply(kind, ts)
}

// Add returns a + b.
func Add(a, b any) (*Tensor, error) { return apply(KindAdd, a, b) }

// Sub returns a - b.
func Sub(a, b any) (*Tensor, error) { return apply(KindSub, a, b) }

// Mul returns a * b.
func Mul(a, b any) (*Tensor, error) { return apply(KindMul, a, b) }

// Div returns a / b.
func Div(a, b any) (*Tensor, error) { return apply(KindDiv, a, b) }

// Pow returns a ^ b. An integral number exponent uses the integer power path.
func Pow(a, b any) (*Tensor, error) {
	if t, ok := a.(*Tensor); ok && t != nil {
		switch e := b.(type) {
		case int:
			return t.PowInt(e)
		case float64:
			return t.PowScalar(e)
		}
	}
	return apply(KindPow, a, b)
}

// Fmod returns the truncated remainder of a / b.
func Fmod(a, b any) (*Tensor, error) { return apply(KindFmod, a, b) }

// Maximum returns the element-wise maximum.
func Maximum(a, b any) (*Tensor, error) { return apply(KindMaximum, a, b) }

// Minimum returns the element-wise minimum.
func Minimum(a, b any) (*Tensor, error) { return apply(KindMinimum, a, b) }

// MatMul returns the matrix product of a and b.
func MatMul(a, b any) (*Tensor, error) { return apply(KindMatMul, a, b) }

// Lt returns a < b as 0/1 values.
func Lt(a, b any) (*Tensor, error) { return apply(KindLt, a, b) }

// Gt returns a > b as 0/1 values.
func Gt(a, b any) (*Tensor, error) { return apply(KindGt, a, b) }

// Le returns a <= b as 0/1 values.
func Le(a, b any) (*Tensor, error) { return apply(KindLe, a, b) }

// Ge returns a >= b as 0/1 values.
func Ge(a, b any) (*Tensor, error) { return apply(KindGe, a, b) }

// Eq returns a == b as 0/1 values.
func Eq(a, b any) (*Tensor, error) { return apply(KindEq, a, b) }

// Ne returns a != b as 0/1 values.
func Ne(a, b any) (*Tensor, error) { return apply(KindNe, a, b) }

// Log returns the natural logarithm of a.
func Log(a *Tensor) (*Tensor, error) { return a.Log() }

// Sqrt returns the square root of a.
func Sqrt(a *Tensor) (*Tensor, error) { return a.Sqrt() }

// Exp returns e^a.
func Exp(a *Tensor) (*Tensor, error) { return a.Exp() }

// Square returns a².
func Square(a *Tensor) (*Tensor, error) { return a.Square() }

// Abs returns |a|.
func Abs(a *Tensor) (*Tensor, error) { return a.Abs() }

// Sign returns the sign of a.
func Sign(a *Tensor) (*Tensor, error) { return a.Sign() }

// Neg returns -a.
func Neg(a *Tensor) (*Tensor, error) { return a.Neg() }

// Reciprocal returns 1/a.
func Reciprocal(a *Tensor) (*Tensor, error) { return a.Reciprocal() }

// Sin returns sin(a).
func Sin(a *Tensor) (*Tensor, error) { return a.Sin() }

// Cos returns cos(a).
func Cos(a *Tensor) (*Tensor, error) { return a.Cos() }

// Tan returns tan(a).
func Tan(a *Tensor) (*Tensor, error) { return a.Tan() }

// ReLU returns max(a, 0).
func ReLU(a *Tensor) (*Tensor, error) { return a.ReLU() }

// Sigmoid returns 1/(1+e^-a).
func Sigmoid(a *Tensor) (*Tensor, error) { return a.Sigmoid() }

// Tanh returns tanh(a).
func Tanh(a *Tensor) (*Tensor, error) { return a.Tanh() }

// Sum returns the sum of all elements of a.
func Sum(a *Tensor) (*Tensor, error) { return a.Sum() }

// Mean returns the mean of all elements of a.
func Mean(a *Tensor) (*Tensor, error) { return a.Mean() }

// Reshape returns a with a new shape.
func Reshape(a *Tensor, s Shape) (*Tensor, error) { return a.ReshapeTo(s) }

// Unsqueeze inserts a size-1 axis into a at dim.
func Unsqueeze(a *Tensor, dim int) (*Tensor, error) { return a.Unsqueeze(dim) }

// Transpose swaps axes dim0 and dim1 of a.
func Transpose(a *Tensor, dim0, dim1 int) (*Tensor, error) { return a.Transpose(dim0, dim1) }
