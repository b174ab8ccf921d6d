package ifacereg

// Test capabilities, minted once per test binary.
var (
	capFoo = New("foo")
	capBar = New("bar")
	capBaz = New("baz")
)

// Capability contracts used across tests.

type fooer interface{ Foo() string }

type barer interface{ Bar() string }

type fooImpl struct {
	owner Provider
	name  string
}

func (f *fooImpl) Foo() string     { return "foo:" + f.name }
func (f *fooImpl) Owner() Provider { return f.owner }

type barImpl struct {
	owner Provider
	name  string
}

func (b *barImpl) Bar() string     { return "bar:" + b.name }
func (b *barImpl) Owner() Provider { return b.owner }

// newWidget builds a CapabilitySet-backed object granting each of the
// given capabilities. Foo and Bar get real typed implementations with
// owner back-references; anything else gets an opaque marker.
func newWidget(name string, caps ...Capability) *CapabilitySet {
	s := NewCapabilitySet()
	for _, c := range caps {
		switch c {
		case capFoo:
			s.Grant(c, &fooImpl{owner: s, name: name})
		case capBar:
			s.Grant(c, &barImpl{owner: s, name: name})
		default:
			s.Grant(c, &struct{ name string }{name})
		}
	}
	return s
}

// collect traverses the registry and returns every visited object.
func collect(r *Registry) []Provider {
	var out []Provider
	r.Traverse(func(obj Provider) bool {
		out = append(out, obj)
		return true
	})
	return out
}

// collectCol traverses the collection and returns every visited object.
func collectCol(c *Collection) []Provider {
	var out []Provider
	c.Traverse(func(obj Provider) bool {
		out = append(out, obj)
		return true
	})
	return out
}

// visitAll is a visitor that never cancels.
func visitAll(Provider) bool { return true }

// countingProvider counts QueryCapability calls; used to observe whether a
// collection rescanned.
type countingProvider struct {
	caps    map[Capability]any
	queries int
}

func newCountingProvider(caps ...Capability) *countingProvider {
	m := make(map[Capability]any, len(caps))
	for _, c := range caps {
		m[c] = &struct{}{}
	}
	return &countingProvider{caps: m}
}

func (p *countingProvider) QueryCapability(c Capability) any {
	p.queries++
	return p.caps[c]
}
