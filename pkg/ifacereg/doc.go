/*
Package ifacereg provides runtime capability queries over heterogeneous
objects, plus a thread-safe registry with cached per-capability views.

# Overview

ifacereg answers two questions efficiently and concurrently:

  - Does this object implement capability X, and if so, give me the
    implementation (Provider, Has, As).
  - Which of the live objects currently implement capability X
    (Registry, Collection).

The registry defers mutations: RequestAdd and RequestRemove enqueue into
pending queues without touching the active set, and the next Traverse call
reconciles the queues exactly once before iterating. Every net membership
change bumps a generation stamp; collections compare their remembered
stamp against it and rescan only when stale.

# Basic Usage

Mint capabilities, build objects, register, traverse:

	type Renderable interface{ Render() }

	var capRender = ifacereg.Lookup("render")

	obj := ifacereg.NewCapabilitySet().
	    Grant(capRender, renderer)

	reg := ifacereg.NewRegistry()
	reg.RequestAdd(obj)

	renderables := reg.Collection(capRender)
	renderables.Traverse(func(p ifacereg.Provider) bool {
	    p.QueryCapability(capRender).(Renderable).Render()
	    return true
	})

Or with the typed form:

	ifacereg.TraverseEach(renderables, func(r Renderable) bool {
	    r.Render()
	    return true
	})

# Deferred Visibility

An added object is NOT visible until some Traverse call (on the registry or
through a stale collection) reconciles the queues:

	reg.RequestAdd(obj)        // queued, invisible
	reg.Traverse(noop)         // reconciled, now visible
	reg.RequestRemove(obj, nil)
	reg.Traverse(noop)         // gone

RequestRemove takes an optional confirmation func; returning false cancels
the removal before it is even queued.

# Generations and Caching

The registry generation advances by exactly 1 per traversal that changed
membership, by 0 otherwise, and is compared only for equality. A
Collection rescans the whole registry whenever the generation moved, even
for changes irrelevant to its capability — extra work, never a missed or
duplicated member. When the registry is quiet, collection traversals are
pure cache hits.

# Error Handling

Capability absence is not an error: QueryCapability returns nil, Has
returns false, and nothing is logged. Nil objects, nil visitors, and
reentrant traversal from inside a visitor are programmer errors and panic
with an "ifacereg:" message; no core operation returns an error, because
none performs I/O.

# Thread Safety

  - CapabilitySet is NOT safe for concurrent use until fully granted;
    afterwards it is read-only and safe.
  - Registry and Collection are safe for concurrent use.
  - The active set stays locked for the entire Traverse call, visitor
    included: a slow visitor stalls every other caller on that registry.
  - Calling Traverse from inside a visitor on the same registry or
    collection panics instead of deadlocking.

# Subpackages

  - config: typed settings loaded from YAML/JSON
  - journal: membership-change journal (memory, SQLite)
  - observability: logging and metrics helpers
*/
package ifacereg
