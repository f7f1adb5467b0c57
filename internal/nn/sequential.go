package nn

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/minitorch/internal/autograd"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input.
//
// Example:
//
//	model := nn.NewSequential(l1, nn.NewReLU(), l2)
//	output, err := model.Forward(input)
//
// This is equivalent to:
//
//	h1, _ := l1.Forward(input)
//	h2, _ := relu.Forward(h1)
//	output, _ := l2.Forward(h2)
type Sequential struct {
	modules []Module
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{
		modules: modules,
	}
}

// Forward applies all modules in sequence and stops at the first error.
func (s *Sequential) Forward(input *autograd.Tensor) (*autograd.Tensor, error) {
	output := input
	for i, module := range s.modules {
		var err error
		output, err = module.Forward(output)
		if err != nil {
			return nil, errors.WithMessagef(err, "sequential module %d", i)
		}
	}
	return output, nil
}

// Parameters returns all trainable parameters from all modules, in order.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// Add appends a module to the sequence.
func (s *Sequential) Add(module Module) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Module(index int) Module {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}

// StateDict returns the state of every Stateful module, keyed by
// "<index>.<name>" (e.g. "0.weight", "2.bias").
func (s *Sequential) StateDict() map[string]*autograd.Tensor {
	state := make(map[string]*autograd.Tensor)
	for i, module := range s.modules {
		sm, ok := module.(Stateful)
		if !ok {
			continue
		}
		for name, t := range sm.StateDict() {
			state[fmt.Sprintf("%d.%s", i, name)] = t
		}
	}
	return state
}

// LoadStateDict loads parameters from keys prefixed with the module index.
// Modules with no matching keys are left untouched.
func (s *Sequential) LoadStateDict(state map[string]*autograd.Tensor) error {
	for i, module := range s.modules {
		sm, ok := module.(Stateful)
		if !ok {
			continue
		}
		prefix := fmt.Sprintf("%d.", i)
		sub := make(map[string]*autograd.Tensor)
		for key, t := range state {
			if name, found := strings.CutPrefix(key, prefix); found {
				sub[name] = t
			}
		}
		if len(sub) == 0 {
			continue
		}
		if err := sm.LoadStateDict(sub); err != nil {
			return errors.WithMessagef(err, "failed to load module %d", i)
		}
	}
	return nil
}
