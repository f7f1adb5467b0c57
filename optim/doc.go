// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum, dampening, weight
//     decay, Nesterov momentum and maximize
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Training Loop Pattern
//
//	optimizer, _ := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.001})
//
//	for epoch := range numEpochs {
//	    // 1. Forward pass
//	    output, _ := model.Forward(x)
//	    loss, _ := criterion.Forward(output, y)
//
//	    // 2. Zero gradients, then backward
//	    optimizer.ZeroGrad()
//	    if err := loss.Backward(); err != nil {
//	        return err
//	    }
//
//	    // 3. Update parameters
//	    if err := optimizer.Step(); err != nil {
//	        return err
//	    }
//	}
package optim
