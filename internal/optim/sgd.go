package optim

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/minitorch/internal/autograd"
	"github.com/born-ml/minitorch/internal/nn"
)

// SGD implements Stochastic Gradient Descent.
//
// For every parameter p with gradient g:
//
//	g = -g                       if maximize
//	g = g + weight_decay * p     if weight_decay != 0
//	buf = g                      first step with momentum
//	buf = momentum*buf + (1-dampening)*g
//	g = g + momentum*buf         if nesterov
//	g = buf                      otherwise, with momentum
//	p = p - lr * g
//
// Example:
//
//	optimizer, err := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	base
	cfg     SGDConfig
	buffers map[*nn.Parameter][]float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR          float64 // Learning rate (default: 0.001)
	Momentum    float64 // Momentum factor (default: 0)
	Dampening   float64 // Dampening for momentum (default: 0)
	WeightDecay float64 // L2 penalty (default: 0)
	Nesterov    bool    // Nesterov momentum; needs Momentum > 0 and zero Dampening
	Maximize    bool    // Maximize the objective instead of minimizing
}

// NewSGD creates a new SGD optimizer.
func NewSGD(params []*nn.Parameter, config SGDConfig) (*SGD, error) {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.LR < 0 || config.Momentum < 0 || config.WeightDecay < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig,
			"sgd: lr=%g momentum=%g weight_decay=%g must be non-negative", config.LR, config.Momentum, config.WeightDecay)
	}
	if config.Nesterov && (config.Momentum <= 0 || config.Dampening != 0) {
		return nil, errors.Wrap(ErrInvalidConfig, "sgd: nesterov requires momentum and zero dampening")
	}

	return &SGD{
		base:    base{params: params, lr: config.LR},
		cfg:     config,
		buffers: make(map[*nn.Parameter][]float64),
	}, nil
}

// Step performs a single optimization step.
func (s *SGD) Step() error {
	for _, p := range s.params {
		g := gradient(p)
		if g == nil {
			continue
		}
		if s.cfg.Maximize {
			floats.Scale(-1, g)
		}
		if s.cfg.WeightDecay != 0 {
			floats.AddScaled(g, s.cfg.WeightDecay, p.Data())
		}

		if s.cfg.Momentum != 0 {
			buf, ok := s.buffers[p]
			if !ok {
				buf = append([]float64(nil), g...)
				s.buffers[p] = buf
			} else {
				floats.Scale(s.cfg.Momentum, buf)
				floats.AddScaled(buf, 1-s.cfg.Dampening, g)
			}
			if s.cfg.Nesterov {
				floats.AddScaled(g, s.cfg.Momentum, buf)
			} else {
				copy(g, buf)
			}
		}

		next := p.ToArray()
		floats.AddScaled(next, -s.lr, g)
		if err := p.SetData(next); err != nil {
			return errors.WithMessagef(err, "sgd: update %s", p.Name())
		}
	}
	return nil
}

// StateDict returns the momentum buffers keyed by "momentum_buffer.{index}".
// Parameters that have not been stepped yet have no entry.
func (s *SGD) StateDict() map[string][]float64 {
	state := make(map[string][]float64)
	for i, p := range s.params {
		if buf, ok := s.buffers[p]; ok {
			state[fmt.Sprintf("momentum_buffer.%d", i)] = append([]float64(nil), buf...)
		}
	}
	return state
}

// LoadStateDict restores momentum buffers saved by StateDict.
func (s *SGD) LoadStateDict(state map[string][]float64) error {
	buffers := make(map[*nn.Parameter][]float64)
	for i, p := range s.params {
		buf, ok := state[fmt.Sprintf("momentum_buffer.%d", i)]
		if !ok {
			continue
		}
		if len(buf) != p.Len() {
			return errors.Wrapf(autograd.ErrShapeMismatch,
				"momentum buffer %d has %d elements, parameter has %d", i, len(buf), p.Len())
		}
		buffers[p] = append([]float64(nil), buf...)
	}
	s.buffers = buffers
	return nil
}
