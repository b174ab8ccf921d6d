package ifacereg

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/randalmurphal/ifacereg/pkg/ifacereg/observability"
)

// Collection is a cached view of the registry objects implementing one
// capability, bound to its registry and capability at construction via
// Registry.Collection.
//
// Each traversal compares the collection's remembered generation stamp to
// the registry's current one and rebuilds the cache, by rescanning the
// whole registry, only when they differ. The staleness check is coarse on
// purpose: any membership change anywhere in the registry forces a full
// rescan, even one irrelevant to this capability. That costs extra work,
// never correctness — the view cannot miss or duplicate a member. When the
// registry is quiet between traversals, traversals are pure cache hits.
//
// All Collection methods are safe for concurrent use. A traversal holds
// the collection's guard for the full call, and a rebuild additionally
// performs one registry traversal (see the stalling note on Registry).
type Collection struct {
	mu         sync.Mutex
	registry   *Registry
	capability Capability

	cached     []Provider
	generation uint64

	// primed is false until the first rebuild, forcing the first
	// traversal to rescan no matter what the registry generation is.
	primed bool

	// traverser mirrors Registry.traverser for reentrancy detection.
	traverser atomic.Int64
}

// Capability returns the capability descriptor this collection is bound to.
func (c *Collection) Capability() Capability {
	return c.capability
}

// Traverse visits every cached object implementing the bound capability,
// rebuilding the cache first if the registry changed since the last
// rebuild. The visitor returns false to stop the iteration early.
//
// A rebuild reconciles the registry's pending queues as a side effect,
// since it runs one full registry traversal.
//
// Panics if visit is nil, or when called reentrantly from a visitor on the
// same collection.
func (c *Collection) Traverse(visit func(Provider) bool) {
	if visit == nil {
		panic("ifacereg: visitor cannot be nil")
	}
	gid := goid()
	if gid > 0 && c.traverser.Load() == gid {
		panic("ifacereg: reentrant traversal: visitor called Traverse on the same collection")
	}
	c.mu.Lock()
	c.traverser.Store(gid)
	defer func() {
		c.traverser.Store(0)
		c.mu.Unlock()
	}()

	if !c.primed || c.generation != c.registry.Generation() {
		c.rebuild()
	}
	for _, obj := range c.cached {
		if !visit(obj) {
			break
		}
	}
}

// Len returns the cached member count, rebuilding first if stale.
// Must not be called from inside a visitor on the same collection.
func (c *Collection) Len() int {
	n := 0
	c.Traverse(func(Provider) bool {
		n++
		return true
	})
	return n
}

// rebuild rescans the registry and refills the cache. Caller must hold
// c.mu. The generation stamp is the one the registry reported while its
// active-set guard was held, so the stamp and the snapshot always agree
// even when other goroutines mutate the registry right after the rescan.
func (c *Collection) rebuild() {
	start := time.Now()
	c.cached = c.cached[:0]
	gen := c.registry.traverse(func(obj Provider) bool {
		if Has(obj, c.capability) {
			c.cached = append(c.cached, obj)
		}
		return true
	})
	c.generation = gen
	c.primed = true

	observability.LogRebuild(c.registry.logger, c.capability.Name(), len(c.cached), gen)
	c.registry.metrics.RecordRebuild(context.Background(), c.capability.Name(), len(c.cached), time.Since(start))
}

// TraverseEach visits the collection through typed capability references
// instead of raw Providers: each cached member's reference is resolved via
// QueryCapability — non-nil by construction of the cache — and asserted to
// T before the visitor runs. The visitor returns false to stop early.
//
//	ifacereg.TraverseEach(renderables, func(r Renderable) bool {
//	    r.Render()
//	    return true
//	})
//
// Panics if the references are not of type T (a programmer error: the
// capability was granted with a different implementation type).
func TraverseEach[T any](c *Collection, visit func(T) bool) {
	if visit == nil {
		panic("ifacereg: visitor cannot be nil")
	}
	c.Traverse(func(obj Provider) bool {
		return visit(obj.QueryCapability(c.capability).(T))
	})
}
