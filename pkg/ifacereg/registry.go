package ifacereg

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/randalmurphal/ifacereg/pkg/ifacereg/journal"
	"github.com/randalmurphal/ifacereg/pkg/ifacereg/observability"
)

// Registry owns a deduplicated set of live objects and hands out cached
// per-capability views of it. Additions and removals are deferred: they
// land in pending queues and become visible only after the next Traverse
// call reconciles them into the active set.
//
// All Registry methods are safe for concurrent use. The active set is
// guarded for the full duration of a Traverse call, including while the
// caller's visitor runs: a long-running or blocking visitor stalls every
// other RequestAdd, RequestRemove and Traverse caller on this registry.
// That is a documented property of the design, not something the registry
// works around.
//
// Objects are shared between the registry and its callers. The registry
// never uniquely owns an object; removing one only drops the registry's
// reference.
type Registry struct {
	mu      sync.Mutex
	objects []Provider

	addMu      sync.Mutex
	pendingAdd []Provider

	removeMu      sync.Mutex
	pendingRemove []Provider

	// generation counts net membership changes. It wraps on overflow and
	// is only ever compared for equality, never ordered.
	generation atomic.Uint64

	// traverser holds the goroutine id of the active Traverse call while
	// the active-set guard is held, 0 when idle. Reentrant traversal from
	// a visitor is detected against it and panics instead of deadlocking.
	traverser atomic.Int64

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	journal journal.Store
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RequestAdd schedules obj for addition to the active set. The object
// becomes visible to traversal only after the next Traverse call on any
// goroutine reconciles the pending queues. Adding an object that is already
// active (or already pending) is harmless: reconciliation deduplicates by
// identity.
//
// RequestAdd only takes the pending-additions guard and never blocks on an
// in-progress traversal. Panics if obj is nil.
func (r *Registry) RequestAdd(obj Provider) {
	if obj == nil {
		panic("ifacereg: object cannot be nil")
	}
	r.addMu.Lock()
	r.pendingAdd = append(r.pendingAdd, obj)
	r.addMu.Unlock()
}

// RequestRemove schedules obj for removal from the active set. If confirm
// is non-nil it is invoked exactly once, synchronously, outside every
// registry guard; returning false cancels the removal and the object stays
// scheduled for no change. The removal takes effect at the next Traverse.
//
// RequestRemove only takes the pending-removals guard and never blocks on
// an in-progress traversal. Panics if obj is nil.
func (r *Registry) RequestRemove(obj Provider, confirm func(Provider) bool) {
	if obj == nil {
		panic("ifacereg: object cannot be nil")
	}
	if confirm != nil && !confirm(obj) {
		return
	}
	r.removeMu.Lock()
	r.pendingRemove = append(r.pendingRemove, obj)
	r.removeMu.Unlock()
}

// Traverse reconciles any pending additions and removals into the active
// set, then visits every active object in the set's current order. The
// visitor returns false to stop the iteration early.
//
// Pending additions are applied before pending removals, so an object both
// added and removed since the last traversal ends up absent. Removal uses
// swap-with-last, so iteration order is not preserved across removals. The
// generation advances by exactly 1 when reconciliation changed membership,
// by 0 otherwise, never more than once per call.
//
// Panics if visit is nil, or when called reentrantly from a visitor on the
// same registry (which would otherwise deadlock).
func (r *Registry) Traverse(visit func(Provider) bool) {
	if visit == nil {
		panic("ifacereg: visitor cannot be nil")
	}
	start := time.Now()
	visited, cancelled := 0, false
	r.traverse(func(obj Provider) bool {
		visited++
		if !visit(obj) {
			cancelled = true
			return false
		}
		return true
	})
	r.metrics.RecordTraversal(context.Background(), visited, cancelled, time.Since(start))
	observability.LogTraversal(r.logger, visited, cancelled)
}

// Generation returns the current generation stamp of the active set. It is
// a plain atomic read: safe from any goroutine, including mid-traversal,
// and never mutates the registry. Compare stamps for equality only.
func (r *Registry) Generation() uint64 {
	return r.generation.Load()
}

// Len returns the current size of the active set without reconciling
// pending queues. Must not be called from inside a visitor on the same
// registry.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.objects)
}

// Collection creates a cached view of the active objects implementing c.
// The view rebuilds itself lazily whenever the registry generation moved
// since its last rebuild. Panics if c is the zero descriptor.
func (r *Registry) Collection(c Capability) *Collection {
	if c.IsZero() {
		panic("ifacereg: capability cannot be the zero descriptor")
	}
	return &Collection{registry: r, capability: c}
}

// traverse is the uninstrumented reconcile-then-iterate pass shared by
// Traverse and collection rebuilds. It returns the generation observed
// while the active-set guard was held, so callers can stamp snapshots
// consistently with the iteration they just saw.
func (r *Registry) traverse(visit func(Provider) bool) uint64 {
	gid := goid()
	if gid > 0 && r.traverser.Load() == gid {
		panic("ifacereg: reentrant traversal: visitor called Traverse on the same registry")
	}
	r.mu.Lock()
	r.traverser.Store(gid)
	defer func() {
		r.traverser.Store(0)
		r.mu.Unlock()
	}()

	r.reconcile()
	gen := r.generation.Load()

	for _, obj := range r.objects {
		if !visit(obj) {
			break
		}
	}
	return gen
}

// reconcile drains both pending queues into the active set. Caller must
// hold r.mu. Each queue guard is taken only long enough to steal the
// queue's backing slice.
func (r *Registry) reconcile() {
	r.addMu.Lock()
	adds := r.pendingAdd
	r.pendingAdd = nil
	r.addMu.Unlock()

	r.removeMu.Lock()
	removes := r.pendingRemove
	r.pendingRemove = nil
	r.removeMu.Unlock()

	if len(adds) == 0 && len(removes) == 0 {
		return
	}

	added, removed := 0, 0
	for _, obj := range adds {
		if r.indexOf(obj) < 0 {
			r.objects = append(r.objects, obj)
			added++
		}
	}
	for _, obj := range removes {
		if i := r.indexOf(obj); i >= 0 {
			// Swap-remove: order is not kept.
			last := len(r.objects) - 1
			r.objects[i] = r.objects[last]
			r.objects[last] = nil
			r.objects = r.objects[:last]
			removed++
		}
	}
	if added == 0 && removed == 0 {
		return
	}

	gen := r.generation.Add(1)
	observability.LogReconciliation(r.logger, added, removed, len(r.objects), gen)
	r.metrics.RecordReconciliation(context.Background(), added, removed, gen)

	if r.journal != nil {
		err := r.journal.Append(journal.Entry{
			Generation: gen,
			Added:      added,
			Removed:    removed,
			Active:     len(r.objects),
			Timestamp:  time.Now().UTC(),
		})
		if err != nil {
			observability.LogJournalError(r.logger, gen, err)
		}
	}
}

// indexOf finds obj in the active set by identity. Caller must hold r.mu.
func (r *Registry) indexOf(obj Provider) int {
	for i, o := range r.objects {
		if o == obj {
			return i
		}
	}
	return -1
}
