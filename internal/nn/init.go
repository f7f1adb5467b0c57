package nn

import (
	"math"

	"github.com/born-ml/minitorch/internal/autograd"
	"github.com/born-ml/minitorch/internal/shape"
)

// Xavier (Glorot) initialization for weights.
//
// Values are drawn from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
// using the context's seeded random source.
func Xavier(ctx *autograd.Context, fanIn, fanOut int, s shape.Shape) (*autograd.Tensor, error) {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return ctx.Uniform(s, -bound, bound)
}

// LinearUniform draws values from U(-sqrt(1/fan_in), sqrt(1/fan_in)), the
// default for Linear weights and biases.
func LinearUniform(ctx *autograd.Context, fanIn int, s shape.Shape) (*autograd.Tensor, error) {
	bound := math.Sqrt(1.0 / float64(fanIn))
	return ctx.Uniform(s, -bound, bound)
}
