// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package torch

import (
	"k8s.io/klog/v2"

	"github.com/born-ml/minitorch/internal/autograd"
	"github.com/born-ml/minitorch/internal/autograd/ops"
	"github.com/born-ml/minitorch/internal/shape"
)

// Shape represents tensor dimensions.
type Shape = shape.Shape

// Tensor is a dense float64 array with optional gradient tracking.
type Tensor = autograd.Tensor

// Context owns the operation registry, hooks, id counter and grad mode.
type Context = autograd.Context

// Node is one executed operation in the dynamic graph.
type Node = autograd.Node

// Operation is the contract implemented by every operation kind.
// Implement it to add new operations and install them with RegisterOperation.
type Operation = autograd.Operation

// Constructor creates an Operation.
type Constructor = autograd.Constructor

// Kind names an operation in the registry.
type Kind = autograd.Kind

// Registry maps kinds to constructors.
type Registry = autograd.Registry

// Config controls a Context.
type Config = autograd.Config

// ContextOption configures a Context.
type ContextOption = autograd.ContextOption

// TensorOption configures tensor construction.
type TensorOption = autograd.TensorOption

// Hook observes forward and backward events.
type Hook = autograd.Hook

// HookFunc adapts a function to Hook.
type HookFunc = autograd.HookFunc

// Event is one hook notification.
type Event = autograd.Event

// EventKind identifies a notification point.
type EventKind = autograd.EventKind

// LogHook writes events to klog at a given verbosity.
type LogHook = autograd.LogHook

// Event kinds.
const (
	EventTensorBeforeBackward    = autograd.EventTensorBeforeBackward
	EventTensorAfterBackward     = autograd.EventTensorAfterBackward
	EventOperationBeforeForward  = autograd.EventOperationBeforeForward
	EventOperationAfterForward   = autograd.EventOperationAfterForward
	EventOperationBeforeBackward = autograd.EventOperationBeforeBackward
	EventOperationAfterBackward  = autograd.EventOperationAfterBackward
	EventOperationAccumulateGrad = autograd.EventOperationAccumulateGrad
)

// Errors. Compare with errors.Is.
var (
	ErrShapeMismatch          = autograd.ErrShapeMismatch
	ErrInvalidDimension       = autograd.ErrInvalidDimension
	ErrUnregisteredOperation  = autograd.ErrUnregisteredOperation
	ErrScalarGradientRequired = autograd.ErrScalarGradientRequired
	ErrInvalidLeafOperation   = autograd.ErrInvalidLeafOperation
	ErrNonScalar              = autograd.ErrNonScalar
	ErrInvalidArgument        = autograd.ErrInvalidArgument
	ErrNilTensor              = autograd.ErrNilTensor
)

// NewContext creates a Context with the built-in operation catalog
// registered. Options are applied after the catalog, so WithOperations can
// override built-in kinds.
func NewContext(opts ...ContextOption) *Context {
	return autograd.NewContext(append([]ContextOption{autograd.WithOperations(ops.Register)}, opts...)...)
}

// DefaultConfig returns the default Context configuration.
func DefaultConfig() Config {
	return autograd.DefaultConfig()
}

// WithHook appends an observer.
func WithHook(h Hook) ContextOption { return autograd.WithHook(h) }

// WithHooks appends several observers.
func WithHooks(hooks ...Hook) ContextOption { return autograd.WithHooks(hooks...) }

// WithLogVerbosity sets the klog verbosity used by WithLogging.
func WithLogVerbosity(v int) ContextOption {
	return autograd.WithLogVerbosity(klog.Level(v))
}

// WithLogging installs a LogHook.
func WithLogging() ContextOption { return autograd.WithLogging() }

// WithOperations installs an additional operation set.
func WithOperations(register func(*Registry)) ContextOption {
	return autograd.WithOperations(register)
}

// WithSeed seeds the random source behind Rand, Randn and parameter
// initialization.
func WithSeed(seed uint64) ContextOption { return autograd.WithSeed(seed) }

// RequiresGrad marks a new tensor for gradient tracking.
func RequiresGrad(v bool) TensorOption { return autograd.RequiresGrad(v) }

// RegisterOperation binds kind to ctor in ctx. An existing kind is replaced.
func RegisterOperation(ctx *Context, kind Kind, ctor Constructor) {
	ctx.Registry().Register(kind, ctor)
}

// GetOperation returns the constructor registered for kind.
func GetOperation(ctx *Context, kind Kind) (Constructor, error) {
	return ctx.Registry().Get(kind)
}
