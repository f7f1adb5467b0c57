package shape

import "github.com/pkg/errors"

// BroadcastShape implements NumPy-style broadcasting rules.
//
// Rules:
// 1. Compare shapes element-wise from right to left
// 2. Dimensions are compatible if:
//   - They are equal, OR
//   - One of them is 1
//
// 3. Missing dimensions are treated as 1
//
// A size-1 axis takes the other size, so 0 against 1 yields 0.
//
// Examples:
//
//	(3, 1) + (3, 5) → (3, 5)
//	(1, 5) + (3, 5) → (3, 5)
//	(0,) + (1,) → (0,)
//	(3, 4) + (3, 5) → ErrShapeMismatch
func BroadcastShape(a, b Shape) (Shape, error) {
	n := max(len(a), len(b))
	pa := pad(a, n)
	pb := pad(b, n)

	result := make(Shape, n)
	for i := 0; i < n; i++ {
		if pa[i] != pb[i] && pa[i] != 1 && pb[i] != 1 {
			return nil, errors.Wrapf(ErrShapeMismatch, "cannot broadcast %v and %v (dimension %d: %d vs %d)",
				a, b, i, pa[i], pb[i])
		}
		if pa[i] == 1 {
			result[i] = pb[i]
		} else {
			result[i] = pa[i]
		}
	}
	return result, nil
}

// PadShape left-pads s with 1s until its rank equals the rank of target.
// Shapes already at or above that rank are returned unchanged.
func PadShape(s, target Shape) Shape {
	return pad(s, len(target))
}

func pad(s Shape, rank int) Shape {
	if len(s) >= rank {
		return s
	}
	padded := make(Shape, rank)
	lead := rank - len(s)
	for i := 0; i < lead; i++ {
		padded[i] = 1
	}
	copy(padded[lead:], s)
	return padded
}

// OriginalIndex maps a linear index into a tensor of shape broadcast back to
// the linear index of the element it was replicated from in a buffer of shape
// original. original must already be padded to the rank of broadcast.
//
// Dimensions are walked from innermost to outermost. An axis of size 1 in
// original contributes nothing; any other axis contributes its coordinate
// times the running stride, and the stride grows by the original dimension.
func OriginalIndex(original, broadcast Shape, index int) int {
	offset := 0
	stride := 1
	rem := index
	for i := len(original) - 1; i >= 0; i-- {
		if original[i] > 1 {
			offset += (rem % broadcast[i]) * stride
		}
		stride *= original[i]
		rem /= broadcast[i]
	}
	return offset
}

// TransposedIndex maps a linear index of the tensor obtained by swapping
// axes dim0 and dim1 of original back to the linear index in original.
func TransposedIndex(original Shape, dim0, dim1, index int) int {
	out := original.Clone()
	out[dim0], out[dim1] = out[dim1], out[dim0]

	inStrides := original.ComputeStrides()
	offset := 0
	rem := index
	for d := len(out) - 1; d >= 0; d-- {
		coord := rem % out[d]
		rem /= out[d]

		src := d
		switch d {
		case dim0:
			src = dim1
		case dim1:
			src = dim0
		}
		offset += coord * inStrides[src]
	}
	return offset
}

// NormalizeAxis resolves a possibly negative axis against rank.
func NormalizeAxis(axis, rank int) (int, error) {
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		return 0, errors.Wrapf(ErrInvalidDimension, "axis %d out of range for rank %d", axis, rank)
	}
	return axis, nil
}
