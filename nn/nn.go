// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/minitorch/internal/autograd"
	"github.com/born-ml/minitorch/internal/nn"
	"github.com/born-ml/minitorch/internal/shape"
)

// Module interface defines the common interface for all neural network modules.
type Module = nn.Module

// Stateful is implemented by modules that export and restore parameters by name.
type Stateful = nn.Stateful

// Parameter represents a trainable parameter in a neural network.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter(name string, t *autograd.Tensor) (*Parameter, error) {
	return nn.NewParameter(name, t)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// NewLinear creates a new linear layer with uniform ±sqrt(1/in) initialization.
//
// Example:
//
//	layer, err := nn.NewLinear(ctx, 784, 128)
func NewLinear(ctx *autograd.Context, inFeatures, outFeatures int) (*Linear, error) {
	return nn.NewLinear(ctx, inFeatures, outFeatures)
}

// Sequential chains modules together.
type Sequential = nn.Sequential

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation layer.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Sigmoid represents the sigmoid activation function.
type Sigmoid = nn.Sigmoid

// NewSigmoid creates a new Sigmoid activation layer.
func NewSigmoid() *Sigmoid {
	return nn.NewSigmoid()
}

// Tanh represents the hyperbolic tangent activation function.
type Tanh = nn.Tanh

// NewTanh creates a new Tanh activation layer.
func NewTanh() *Tanh {
	return nn.NewTanh()
}

// Loss functions

// Loss computes a scalar loss from predictions and targets.
type Loss = nn.Loss

// MSELoss computes mean squared error.
type MSELoss = nn.MSELoss

// NewMSELoss creates a new MSE loss.
func NewMSELoss() *MSELoss {
	return nn.NewMSELoss()
}

// L1Loss computes mean absolute error.
type L1Loss = nn.L1Loss

// NewL1Loss creates a new L1 loss.
func NewL1Loss() *L1Loss {
	return nn.NewL1Loss()
}

// BCELoss computes binary cross entropy on probabilities.
type BCELoss = nn.BCELoss

// NewBCELoss creates a new BCE loss. weight may be nil.
func NewBCELoss(weight *autograd.Tensor) *BCELoss {
	return nn.NewBCELoss(weight)
}

// Initialization

// Xavier draws a tensor from the Glorot uniform distribution.
func Xavier(ctx *autograd.Context, fanIn, fanOut int, s shape.Shape) (*autograd.Tensor, error) {
	return nn.Xavier(ctx, fanIn, fanOut, s)
}

// LinearUniform draws a tensor from U(-sqrt(1/fanIn), sqrt(1/fanIn)).
func LinearUniform(ctx *autograd.Context, fanIn int, s shape.Shape) (*autograd.Tensor, error) {
	return nn.LinearUniform(ctx, fanIn, s)
}
