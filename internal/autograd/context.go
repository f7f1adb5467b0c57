package autograd

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"k8s.io/klog/v2"
)

// Config controls a graph Context.
type Config struct {
	Hooks        []Hook          // Observers notified around forward and backward.
	LogVerbosity klog.Level      // Verbosity used by LogHook when logging is enabled.
	Register     func(*Registry) // Installs operation kinds into the registry.
	Seed         uint64          // Seed for Rand, Randn and parameter initialization.
}

// DefaultConfig returns a configuration with no hooks and no operations.
func DefaultConfig() Config {
	return Config{
		LogVerbosity: 4,
	}
}

// ContextOption configures a Context.
type ContextOption func(*Config)

// WithHook appends an observer.
func WithHook(h Hook) ContextOption {
	return func(c *Config) {
		c.Hooks = append(c.Hooks, h)
	}
}

// WithHooks appends several observers.
func WithHooks(hooks ...Hook) ContextOption {
	return func(c *Config) {
		c.Hooks = append(c.Hooks, hooks...)
	}
}

// WithLogVerbosity sets the klog verbosity used by WithLogging.
func WithLogVerbosity(v klog.Level) ContextOption {
	return func(c *Config) {
		c.LogVerbosity = v
	}
}

// WithLogging installs a LogHook at the configured verbosity.
// Options are applied in order, so WithLogVerbosity must come first to take effect.
func WithLogging() ContextOption {
	return func(c *Config) {
		c.Hooks = append(c.Hooks, LogHook{Verbosity: c.LogVerbosity})
	}
}

// WithSeed sets the seed of the context's random source.
func WithSeed(seed uint64) ContextOption {
	return func(c *Config) {
		c.Seed = seed
	}
}

// WithOperations installs an operation set into the registry.
// Multiple calls chain; later registrations of the same kind win.
func WithOperations(register func(*Registry)) ContextOption {
	return func(c *Config) {
		prev := c.Register
		c.Register = func(r *Registry) {
			if prev != nil {
				prev(r)
			}
			register(r)
		}
	}
}

// Context is the explicit graph context. It owns the id counter, the
// operation registry with its no-grad instance cache, the hooks, the
// gradient-mode flag and the seeded random source used by creation helpers.
// Tensors remember the Context that created them.
//
// A Context is meant for single-threaded use. Registry access and id
// allocation are synchronized, but graph construction and gradient
// accumulation are not.
type Context struct {
	ids      atomic.Int64
	registry *Registry
	null     *Node

	mu          sync.RWMutex
	hooks       []Hook
	gradEnabled bool
	rng         *rand.Rand
}

// NewContext creates a Context.
func NewContext(opts ...ContextOption) *Context {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Context{
		hooks:       append([]Hook(nil), cfg.Hooks...),
		gradEnabled: true,
		rng:         rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	c.registry = newRegistry(c)
	c.null = &Node{id: c.nextID(), kind: KindNull, op: nullOp{}, ctx: c}
	if cfg.Register != nil {
		cfg.Register(c.registry)
	}
	return c
}

// Registry returns the operation registry.
func (c *Context) Registry() *Registry {
	return c.registry
}

// NullOp returns the shared sentinel used as the next function of operands
// that do not require gradients.
func (c *Context) NullOp() *Node {
	return c.null
}

// AddHook registers an observer at runtime.
func (c *Context) AddHook(h Hook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, h)
}

// GradEnabled reports whether new operations record graph state.
func (c *Context) GradEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gradEnabled
}

// NoGrad runs fn with gradient tracking disabled. Results computed inside
// fn are untracked regardless of their operands.
func (c *Context) NoGrad(fn func() error) error {
	prev := c.setGradEnabled(false)
	defer c.setGradEnabled(prev)
	return fn()
}

func (c *Context) setGradEnabled(v bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.gradEnabled
	c.gradEnabled = v
	return prev
}

func (c *Context) nextID() int64 {
	return c.ids.Add(1) - 1
}

// tracks reports whether a call on inputs must record graph state.
func (c *Context) tracks(inputs []*Tensor) bool {
	if !c.GradEnabled() {
		return false
	}
	for _, t := range inputs {
		if t != nil && t.requiresGrad {
			return true
		}
	}
	return false
}

// gradFnOf returns the node a gradient for t must be routed to.
func (c *Context) gradFnOf(t *Tensor) *Node {
	switch {
	case t.gradFn != nil:
		return t.gradFn
	case t.requiresGrad:
		t.gradFn = c.newAccumulateGrad(t)
		return t.gradFn
	default:
		return c.null
	}
}

func (c *Context) spawn(kind Kind, op Operation) *Node {
	return &Node{id: c.nextID(), kind: kind, op: op, ctx: c}
}

func (c *Context) newAccumulateGrad(t *Tensor) *Node {
	return c.spawn(KindAccumulateGrad, &accumulateGrad{variable: t})
}

func (c *Context) emit(ev Event) {
	c.mu.RLock()
	hooks := c.hooks
	c.mu.RUnlock()
	for _, h := range hooks {
		h.OnEvent(ev)
	}
}

// Apply runs an operation on inputs, choosing a fresh tracked node when any
// operand requires gradients and the shared cached instance otherwise.
func (c *Context) Apply(kind Kind, inputs []*Tensor, attrs ...int) (*Tensor, error) {
	var (
		n   *Node
		err error
	)
	if c.tracks(inputs) {
		n, err = c.registry.NewNode(kind)
	} else {
		n, err = c.registry.Cached(kind)
	}
	if err != nil {
		return nil, err
	}
	return n.Forward(inputs, attrs...)
}

// ApplyOp runs an Operation that is not registered under any kind.
// This is the extension point for externally defined operations.
func (c *Context) ApplyOp(kind Kind, op Operation, inputs []*Tensor, attrs ...int) (*Tensor, error) {
	return c.spawn(kind, op).Forward(inputs, attrs...)
}
