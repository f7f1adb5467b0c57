// Package kernels provides the dense float64 loops behind every operation.
//
// Kernels work on flat row-major buffers and never allocate graph state.
// Shapes passed in are already normalized (rank >= 1).
package kernels

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/minitorch/internal/shape"
)

// BinaryFunc combines one element of each operand.
type BinaryFunc func(a, b float64) float64

// UnaryFunc transforms one element.
type UnaryFunc func(a float64) float64

// Broadcast applies f over the broadcast of a and b.
// out has length out.NumElements(); operand shapes must be padded to the rank of out.
func Broadcast(a []float64, aShape shape.Shape, b []float64, bShape shape.Shape, out shape.Shape, f BinaryFunc) []float64 {
	n := out.NumElements()
	res := make([]float64, n)

	// Fast path: identical shapes need no index mapping.
	if aShape.Equal(out) && bShape.Equal(out) {
		for i := 0; i < n; i++ {
			res[i] = f(a[i], b[i])
		}
		return res
	}

	for i := 0; i < n; i++ {
		ai := shape.OriginalIndex(aShape, out, i)
		bi := shape.OriginalIndex(bShape, out, i)
		res[i] = f(a[ai], b[bi])
	}
	return res
}

// BroadcastIndex returns, for each output position, the mapped index into the
// left (left=true) or right operand.
func BroadcastIndex(aShape, bShape, out shape.Shape, left bool) []float64 {
	n := out.NumElements()
	res := make([]float64, n)
	for i := 0; i < n; i++ {
		if left {
			res[i] = float64(shape.OriginalIndex(aShape, out, i))
		} else {
			res[i] = float64(shape.OriginalIndex(bShape, out, i))
		}
	}
	return res
}

// Map applies f to every element of a.
func Map(a []float64, f UnaryFunc) []float64 {
	res := make([]float64, len(a))
	for i, v := range a {
		res[i] = f(v)
	}
	return res
}

// Sum returns the sum of all elements.
func Sum(a []float64) float64 {
	return floats.Sum(a)
}

// Fill returns a buffer of length n holding v.
func Fill(n int, v float64) []float64 {
	res := make([]float64, n)
	if v != 0 {
		for i := range res {
			res[i] = v
		}
	}
	return res
}

// AddTo accumulates src into dst elementwise. Lengths must match.
func AddTo(dst, src []float64) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("AddTo: length mismatch %d vs %d", len(dst), len(src)))
	}
	floats.Add(dst, src)
}

// SumTo reduces a buffer of shape from onto target by summing every element
// that broadcasting would have replicated. The broadcast of from and target
// must exist; when target is larger, values of from are replicated instead.
func SumTo(src []float64, from, target shape.Shape) ([]float64, error) {
	if from.Equal(target) {
		res := make([]float64, len(src))
		copy(res, src)
		return res, nil
	}

	out, err := shape.BroadcastShape(from, target)
	if err != nil {
		return nil, err
	}
	pFrom := shape.PadShape(from, out)
	pTarget := shape.PadShape(target, out)

	res := make([]float64, target.NumElements())
	n := out.NumElements()
	for i := 0; i < n; i++ {
		res[shape.OriginalIndex(pTarget, out, i)] += src[shape.OriginalIndex(pFrom, out, i)]
	}
	return res, nil
}

// Transpose gathers a into the layout obtained by swapping dim0 and dim1.
func Transpose(a []float64, s shape.Shape, dim0, dim1 int) []float64 {
	res := make([]float64, len(a))
	for i := range res {
		res[i] = a[shape.TransposedIndex(s, dim0, dim1, i)]
	}
	return res
}
