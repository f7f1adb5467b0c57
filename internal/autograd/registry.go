package autograd

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Registry maps operation kinds to constructors and caches one shared
// instance per kind for calls that need no graph bookkeeping.
type Registry struct {
	ctx *Context

	mu    sync.RWMutex
	ctors map[Kind]Constructor
	cache map[Kind]*Node
}

func newRegistry(ctx *Context) *Registry {
	return &Registry{
		ctx:   ctx,
		ctors: make(map[Kind]Constructor),
		cache: make(map[Kind]*Node),
	}
}

// Register binds kind to ctor. Registering an existing kind overwrites it
// and drops its cached instance.
func (r *Registry) Register(kind Kind, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ctors[kind]; ok {
		klog.V(2).InfoS("overwriting registered operation", "kind", kind)
	}
	r.ctors[kind] = ctor
	delete(r.cache, kind)
}

// Get returns the constructor registered for kind.
func (r *Registry) Get(kind Kind) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnregisteredOperation, "operation %q", kind)
	}
	return ctor, nil
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[kind]
	return ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, 0, len(r.ctors))
	for k := range r.ctors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// NewNode constructs a fresh, graph-tracked node for kind.
func (r *Registry) NewNode(kind Kind) (*Node, error) {
	ctor, err := r.Get(kind)
	if err != nil {
		return nil, err
	}
	return r.ctx.spawn(kind, ctor()), nil
}

// Cached returns the shared instance for kind, creating it on first use.
func (r *Registry) Cached(kind Kind) (*Node, error) {
	r.mu.RLock()
	n, ok := r.cache[kind]
	r.mu.RUnlock()
	if ok {
		return n, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.cache[kind]; ok {
		return n, nil
	}
	ctor, ok := r.ctors[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnregisteredOperation, "operation %q", kind)
	}
	n = r.ctx.spawn(kind, ctor())
	n.shared = true
	r.cache[kind] = n
	klog.V(5).InfoS("cached operation instance", "kind", kind, "node", n.id)
	return n, nil
}
