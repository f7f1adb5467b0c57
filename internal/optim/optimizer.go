// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum, dampening, weight
//     decay, Nesterov and maximize
//   - Adam: Adaptive Moment Estimation
//
// Optimizers read Parameter.Grad after Backward and write new values with
// SetData, which is not tracked by autograd.
//
// Example usage:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{
//	    LR: 0.001,
//	})
//
//	for range epochs {
//	    output, _ := model.Forward(input)
//	    loss, _ := criterion.Forward(output, targets)
//
//	    optimizer.ZeroGrad()
//	    _ = loss.Backward()
//	    _ = optimizer.Step()
//	}
package optim

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minitorch/internal/nn"
)

// ErrInvalidConfig reports an optimizer configuration that cannot be used.
var ErrInvalidConfig = errors.New("invalid optimizer configuration")

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update to every parameter that has a gradient.
	// Parameters without a gradient did not take part in the last backward
	// pass and are skipped.
	Step() error

	// ZeroGrad clears all parameter gradients.
	//
	// Gradients accumulate across backward calls, so this should run before
	// each backward pass.
	ZeroGrad()

	// Parameters returns the optimized parameters.
	Parameters() []*nn.Parameter

	// GetLR returns the current learning rate.
	GetLR() float64
}

// base holds what every optimizer shares.
type base struct {
	params []*nn.Parameter
	lr     float64
}

// ZeroGrad clears gradients for all parameters.
func (b *base) ZeroGrad() {
	for _, p := range b.params {
		p.ZeroGrad()
	}
}

// Parameters returns the optimized parameters.
func (b *base) Parameters() []*nn.Parameter {
	return b.params
}

// GetLR returns the current learning rate.
func (b *base) GetLR() float64 {
	return b.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (b *base) SetLR(lr float64) {
	b.lr = lr
}

// gradient returns a copy of the parameter gradient, or nil when the
// parameter has none.
func gradient(p *nn.Parameter) []float64 {
	if g := p.Grad(); g != nil {
		return g.ToArray()
	}
	return nil
}
