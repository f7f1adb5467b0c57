package autograd

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minitorch/internal/shape"
)

// Error taxonomy. All errors returned by this package wrap one of these
// sentinels and can be matched with errors.Is.
var (
	// ErrShapeMismatch reports incompatible broadcast, reshape or matmul dimensions.
	ErrShapeMismatch = shape.ErrShapeMismatch

	// ErrInvalidDimension reports an axis index outside the valid range.
	ErrInvalidDimension = shape.ErrInvalidDimension

	// ErrUnregisteredOperation reports dispatch to an unknown operation kind.
	ErrUnregisteredOperation = errors.New("operation is not registered")

	// ErrScalarGradientRequired reports Backward without a seed on a non-scalar tensor.
	ErrScalarGradientRequired = errors.New("gradient is required for non-scalar tensors")

	// ErrInvalidLeafOperation reports a forward call on the NullOp sentinel.
	ErrInvalidLeafOperation = errors.New("null operation cannot be called")

	// ErrInvalidArgument reports a creation argument outside its domain,
	// such as a zero arange step.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNilTensor reports a nil receiver or operand.
	ErrNilTensor = errors.New("tensor is nil")

	// ErrNonScalar reports Item on a tensor with more than one element.
	ErrNonScalar = errors.New("item is only valid for single-element tensors")
)
