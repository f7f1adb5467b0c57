package autograd

// Kind names an operation in the registry.
type Kind string

// Built-in operation kinds. The catalog in package ops registers an
// implementation for each of them.
const (
	KindAdd     Kind = "add"
	KindSub     Kind = "sub"
	KindMul     Kind = "mul"
	KindDiv     Kind = "div"
	KindPow     Kind = "pow"
	KindFmod    Kind = "fmod"
	KindMaximum Kind = "maximum"
	KindMinimum Kind = "minimum"
	KindPowInt  Kind = "powint"

	KindLog        Kind = "log"
	KindSqrt       Kind = "sqrt"
	KindExp        Kind = "exp"
	KindSquare     Kind = "square"
	KindAbs        Kind = "abs"
	KindSign       Kind = "sign"
	KindNeg        Kind = "neg"
	KindReciprocal Kind = "reciprocal"
	KindSin        Kind = "sin"
	KindCos        Kind = "cos"
	KindTan        Kind = "tan"

	// Activations used by the nn package.
	KindReLU    Kind = "relu"
	KindSigmoid Kind = "sigmoid"
	KindTanh    Kind = "tanh"

	KindReshape   Kind = "reshape"
	KindUnsqueeze Kind = "unsqueeze"
	KindTranspose Kind = "transpose"

	KindSum  Kind = "sum"
	KindMean Kind = "mean"

	KindMatMul Kind = "matmul"

	KindLt Kind = "lt"
	KindGt Kind = "gt"
	KindLe Kind = "le"
	KindGe Kind = "ge"
	KindEq Kind = "eq"
	KindNe Kind = "ne"

	// Diagnostic ops exposing the broadcast index mapping.
	KindLeftIndex  Kind = "__left_index__"
	KindRightIndex Kind = "__right_index__"

	// Graph terminals. These are never registered.
	KindNull           Kind = "null"
	KindAccumulateGrad Kind = "accumulate_grad"
)
