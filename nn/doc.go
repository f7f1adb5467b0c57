// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear
//   - Activations: ReLU, Sigmoid, Tanh
//   - Loss functions: MSELoss, L1Loss, BCELoss
//   - Utilities: Sequential, Module interface, Parameter
//   - Initialization: Xavier, LinearUniform
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/minitorch/nn"
//	    "github.com/born-ml/minitorch/torch"
//	)
//
//	func main() {
//	    ctx := torch.NewContext(torch.WithSeed(1))
//
//	    l1, _ := nn.NewLinear(ctx, 784, 128)
//	    l2, _ := nn.NewLinear(ctx, 128, 10)
//	    model := nn.NewSequential(l1, nn.NewReLU(), l2)
//
//	    output, err := model.Forward(input)
//	}
//
// # Gradients
//
// Parameters are leaf tensors that require gradients. Calling Backward on a
// loss fills Parameter.Grad, which the optim package consumes.
package nn
