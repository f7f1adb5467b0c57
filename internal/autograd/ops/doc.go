// Package ops provides the operation catalog for the autograd engine.
//
// Each operation implements autograd.Operation: a forward rule that computes
// the output from its operands and records graph state through Node.Output,
// and a backward rule that turns the upstream gradient into one local
// gradient per operand and routes them with Node.Propagate.
//
// Categories:
//   - Element-wise binary: add, sub, mul, div, pow, fmod, maximum, minimum
//   - Element-wise unary: log, sqrt, exp, square, abs, sign, neg, reciprocal,
//     sin, cos, tan, powint
//   - Activations: relu, sigmoid, tanh
//   - Shape: reshape, unsqueeze, transpose
//   - Reduction: sum, mean
//   - Linear algebra: matmul
//   - Comparison: lt, gt, le, ge, eq, ne (non-differentiable)
//   - Debug: __left_index__, __right_index__ (broadcast index maps)
//
// Local gradients are produced in the shape of the forward output;
// Node.Propagate reduces them onto each operand's shape, which takes care of
// broadcasting.
//
// Register installs the whole catalog into a registry:
//
//	ctx := autograd.NewContext(autograd.WithOperations(ops.Register))
package ops
