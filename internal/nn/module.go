// Package nn implements neural network modules on top of the autograd engine.
//
// This package provides building blocks for constructing neural networks:
//   - Module interface: Base interface for all NN components
//   - Parameter: Named leaf tensors that require gradients
//   - Linear: Fully connected layer
//   - Activations: ReLU, Sigmoid, Tanh
//   - Loss functions: MSE, L1, BCE
//   - Sequential: Container for stacking layers
//
// Modules only call public tensor operations; gradients come from the
// autograd graph those operations build.
package nn

import (
	"github.com/born-ml/minitorch/internal/autograd"
)

// Module is the base interface for all neural network components.
//
// Modules can be composed to build larger networks:
//
//	model := nn.NewSequential(
//	    l1,
//	    nn.NewReLU(),
//	    l2,
//	)
type Module interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *autograd.Tensor) (*autograd.Tensor, error)

	// Parameters returns all trainable parameters of this module, including
	// those of nested modules. Modules without parameters return nil.
	Parameters() []*Parameter
}

// Stateful is implemented by modules whose parameters can be exported and
// restored by name.
type Stateful interface {
	StateDict() map[string]*autograd.Tensor
	LoadStateDict(state map[string]*autograd.Tensor) error
}
