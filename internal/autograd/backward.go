package autograd

import "github.com/pkg/errors"

// Backward computes gradients of a single-element tensor with respect to
// every leaf that requires gradients, seeding the traversal with 1.
//
// Traversal is recursive per edge: every consumer of a tensor triggers its
// own walk through the shared upstream subgraph, and gradients are summed
// only where they land (AccumulateGrad leaves and retained tensors).
// Local gradients are computed with tracking disabled, so backward does not
// extend the graph.
func (t *Tensor) Backward() error {
	return t.BackwardWithGrad(nil)
}

// BackwardWithGrad is Backward with an explicit seed gradient. A nil grad
// is only valid on single-element tensors. The seed is reduced (or
// replicated) to t's shape.
func (t *Tensor) BackwardWithGrad(grad *Tensor) error {
	if !t.requiresGrad {
		return nil
	}

	if grad == nil {
		if len(t.data) != 1 {
			return errors.Wrapf(ErrScalarGradientRequired, "tensor of shape %v", t.Shape())
		}
		grad = t.ctx.Scalar(1)
	}
	seed, err := grad.sumTo(t.Shape())
	if err != nil {
		return errors.WithMessage(err, "backward seed")
	}

	if t.gradFn == nil {
		return nil
	}

	t.ctx.emit(Event{Kind: EventTensorBeforeBackward, Tensor: t, Grad: seed})
	err = t.ctx.NoGrad(func() error {
		return t.gradFn.Backward(seed)
	})
	if err != nil {
		return err
	}
	t.ctx.emit(Event{Kind: EventTensorAfterBackward, Tensor: t, Grad: seed})
	return nil
}
