// Package shape implements tensor shapes and the broadcasting index algebra
// shared by every elementwise operation.
package shape

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrShapeMismatch reports incompatible broadcast, reshape or matmul dimensions.
var ErrShapeMismatch = errors.New("shape mismatch")

// ErrInvalidDimension reports an axis index outside the valid range.
var ErrInvalidDimension = errors.New("invalid dimension")

// Shape represents the dimensions of a tensor.
type Shape []int

// Normalize returns the shape used for every shape-dependent computation.
// The rank 0 shape is treated as [1].
func (s Shape) Normalize() Shape {
	if len(s) == 0 {
		return Shape{1}
	}
	return s
}

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that no dimension is negative.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return errors.Wrapf(ErrInvalidDimension, "dimension at index %d is %d", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

func (s Shape) String() string {
	return fmt.Sprint([]int(s))
}
