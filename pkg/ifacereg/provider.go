package ifacereg

// Provider is the capability query protocol every registrable object
// satisfies. QueryCapability returns the object's implementation of the
// requested capability, or nil when the capability is not supported.
//
// Implementations must be deterministic and side-effect-free, must never
// fail (absence is signaled by nil, never by panic or error), and must be
// safe for unsynchronized concurrent reads. The capability set of an object
// is fixed for its lifetime: whatever QueryCapability answers once, it
// answers forever.
//
// Registered objects are identified by pointer: register pointer values,
// and keep using the same pointer for RequestAdd and RequestRemove.
type Provider interface {
	QueryCapability(c Capability) any
}

// Has reports whether p implements capability c.
// Equivalent to p.QueryCapability(c) != nil.
func Has(p Provider, c Capability) bool {
	return p.QueryCapability(c) != nil
}

// As queries p for capability c and type-asserts the reference to T.
// It returns the zero T and false when the capability is absent or the
// reference is not a T.
func As[T any](p Provider, c Capability) (T, bool) {
	ref := p.QueryCapability(c)
	if ref == nil {
		var zero T
		return zero, false
	}
	v, ok := ref.(T)
	return v, ok
}

// Component is implemented by capability implementations that keep a
// back-reference to their owning Provider. It enables re-querying from any
// already-obtained capability reference back to the owner's full capability
// set, so sibling capabilities are reachable without inheritance.
type Component interface {
	Owner() Provider
}

// Requery resolves capability c on the owner of an already-obtained
// capability reference. It returns the zero T and false when ref does not
// expose its owner, or the owner does not implement c as a T.
func Requery[T any](ref any, c Capability) (T, bool) {
	comp, ok := ref.(Component)
	if !ok {
		var zero T
		return zero, false
	}
	return As[T](comp.Owner(), c)
}

// CapabilitySet is a ready-made Provider backed by a per-object table
// mapping capability descriptor to implementation, populated once at
// construction.
//
// CapabilitySet is NOT safe for concurrent use while Grant calls are still
// being made. Finish all grants before the set is shared, registered, or
// queried concurrently; from that point on the set is read-only and safe
// for unsynchronized reads.
type CapabilitySet struct {
	caps map[Capability]any
}

// NewCapabilitySet creates an empty capability set.
func NewCapabilitySet() *CapabilitySet {
	return &CapabilitySet{caps: make(map[Capability]any)}
}

// Grant maps capability c to implementation impl.
// It returns the set for chaining:
//
//	obj := ifacereg.NewCapabilitySet().
//	    Grant(capRender, renderer).
//	    Grant(capUpdate, updater)
func (s *CapabilitySet) Grant(c Capability, impl any) *CapabilitySet {
	if c.IsZero() {
		panic("ifacereg: capability cannot be the zero descriptor")
	}
	if impl == nil {
		panic("ifacereg: capability implementation cannot be nil")
	}
	if _, ok := s.caps[c]; ok {
		panic("ifacereg: duplicate grant for capability " + c.Name())
	}
	s.caps[c] = impl
	return s
}

// QueryCapability implements Provider.
func (s *CapabilitySet) QueryCapability(c Capability) any {
	return s.caps[c]
}

// Len returns the number of granted capabilities.
func (s *CapabilitySet) Len() int { return len(s.caps) }
