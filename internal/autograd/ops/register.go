package ops

import "github.com/born-ml/minitorch/internal/autograd"

// Catalog returns a fresh map from every built-in kind to its implementation.
func Catalog() map[autograd.Kind]autograd.Operation {
	return map[autograd.Kind]autograd.Operation{
		autograd.KindAdd:     Add,
		autograd.KindSub:     Sub,
		autograd.KindMul:     Mul,
		autograd.KindDiv:     Div,
		autograd.KindPow:     Pow,
		autograd.KindFmod:    Fmod,
		autograd.KindMaximum: Maximum,
		autograd.KindMinimum: Minimum,
		autograd.KindPowInt:  PowIntOp{},

		autograd.KindLog:        Log,
		autograd.KindSqrt:       Sqrt,
		autograd.KindExp:        Exp,
		autograd.KindSquare:     Square,
		autograd.KindAbs:        Abs,
		autograd.KindSign:       Sign,
		autograd.KindNeg:        Neg,
		autograd.KindReciprocal: Reciprocal,
		autograd.KindSin:        Sin,
		autograd.KindCos:        Cos,
		autograd.KindTan:        Tan,
		autograd.KindReLU:       ReLU,
		autograd.KindSigmoid:    Sigmoid,
		autograd.KindTanh:       Tanh,

		autograd.KindReshape:   ReshapeOp{},
		autograd.KindUnsqueeze: UnsqueezeOp{},
		autograd.KindTranspose: TransposeOp{},

		autograd.KindSum:  SumOp{},
		autograd.KindMean: MeanOp{},

		autograd.KindMatMul: MatMulOp{},

		autograd.KindLt: Lt,
		autograd.KindGt: Gt,
		autograd.KindLe: Le,
		autograd.KindGe: Ge,
		autograd.KindEq: Eq,
		autograd.KindNe: Ne,

		autograd.KindLeftIndex:  IndexOp{Left: true},
		autograd.KindRightIndex: IndexOp{Left: false},
	}
}

// Register installs the whole catalog into r.
func Register(r *autograd.Registry) {
	for kind, op := range Catalog() {
		r.Register(kind, constructor(op))
	}
}

// constructor returns a Constructor for a stateless operation value.
func constructor(op autograd.Operation) autograd.Constructor {
	return func() autograd.Operation { return op }
}
