// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package torch is a small tensor library with reverse-mode automatic
// differentiation.
//
// Tensors are dense float64 arrays. Every operation on a tensor that requires
// gradients records a node in a dynamic graph; Backward walks that graph from
// the output and accumulates gradients into the leaves.
//
// All state (id counter, operation registry, hooks, grad mode) lives in an
// explicit Context:
//
//	ctx := torch.NewContext()
//	x, _ := ctx.FromNested([]float64{2}, torch.RequiresGrad(true))
//	y, _ := x.PowScalar(2)
//	z, _ := torch.Add(y, x)   // x² + x
//	_ = z.Backward()
//	fmt.Println(x.Grad())     // Tensor([5], shape=[1])
//
// Broadcasting follows NumPy rules, and the gradient of a broadcast operand
// is summed back to the operand's own shape.
//
// Observability is provided through hooks fired around every forward and
// backward step; LogHook writes them to klog:
//
//	ctx := torch.NewContext(torch.WithLogVerbosity(2), torch.WithLogging())
package torch
