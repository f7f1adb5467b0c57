package autograd

import "k8s.io/klog/v2"

// EventKind identifies a notification point.
type EventKind string

// Notification points fired by the engine.
const (
	EventTensorBeforeBackward    EventKind = "tensor.beforeBackward"
	EventTensorAfterBackward     EventKind = "tensor.afterBackward"
	EventOperationBeforeForward  EventKind = "operation.beforeForward"
	EventOperationAfterForward   EventKind = "operation.afterForward"
	EventOperationBeforeBackward EventKind = "operation.beforeBackward"
	EventOperationAfterBackward  EventKind = "operation.afterBackward"
	EventOperationAccumulateGrad EventKind = "operation.accumulateGrad"
)

// Event carries the details of one notification. Fields that do not apply
// to a kind are nil.
type Event struct {
	Kind   EventKind
	Node   *Node     // operation being run; nil for tensor events
	Tensor *Tensor   // tensor being differentiated, or the leaf receiving a gradient
	Inputs []*Tensor // forward operands
	Result *Tensor   // forward result (operation.afterForward only)
	Grad   *Tensor   // upstream gradient (backward events)
}

// Hook observes engine events. Hooks run synchronously on the calling
// goroutine and must not start new forward or backward passes on the same
// graph.
type Hook interface {
	OnEvent(ev Event)
}

// HookFunc adapts a function to Hook.
type HookFunc func(ev Event)

// OnEvent calls f(ev).
func (f HookFunc) OnEvent(ev Event) { f(ev) }

// LogHook writes one structured klog line per event at Verbosity.
type LogHook struct {
	Verbosity klog.Level
}

// OnEvent implements Hook.
func (h LogHook) OnEvent(ev Event) {
	logger := klog.V(h.Verbosity)
	if !logger.Enabled() {
		return
	}

	kv := []any{"event", string(ev.Kind)}
	if ev.Node != nil {
		kv = append(kv, "op", string(ev.Node.Kind()), "node", ev.Node.ID())
	}
	if ev.Tensor != nil {
		kv = append(kv, "tensor", ev.Tensor.ID(), "shape", ev.Tensor.Shape())
	}
	if ev.Result != nil {
		kv = append(kv, "result", ev.Result.ID(), "requiresGrad", ev.Result.RequiresGrad())
	}
	if ev.Grad != nil {
		kv = append(kv, "gradShape", ev.Grad.Shape())
	}
	logger.InfoS("autograd event", kv...)
}
