package ifacereg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCapabilitySet_QueryCapability verifies query/has agreement and
// reference identity with the granted implementation.
func TestCapabilitySet_QueryCapability(t *testing.T) {
	w := newWidget("w", capFoo, capBar)

	ref := w.QueryCapability(capFoo)
	require.NotNil(t, ref)
	assert.True(t, Has(w, capFoo))

	f, ok := As[fooer](w, capFoo)
	require.True(t, ok)
	assert.Same(t, ref, f, "typed query returns the same reference")
	assert.Equal(t, "foo:w", f.Foo())
}

// TestCapabilitySet_AbsentCapability verifies absence is nil/false, never
// a failure.
func TestCapabilitySet_AbsentCapability(t *testing.T) {
	w := newWidget("w", capFoo)

	assert.Nil(t, w.QueryCapability(capBaz))
	assert.False(t, Has(w, capBaz))

	b, ok := As[barer](w, capBaz)
	assert.False(t, ok)
	assert.Nil(t, b)
}

// TestHas_MatchesQuery checks Has(o, c) == (QueryCapability(c) != nil)
// across every combination in a mixed set of objects.
func TestHas_MatchesQuery(t *testing.T) {
	caps := []Capability{capFoo, capBar, capBaz}
	objects := []*CapabilitySet{
		newWidget("none"),
		newWidget("f", capFoo),
		newWidget("fb", capFoo, capBar),
		newWidget("all", capFoo, capBar, capBaz),
	}

	for _, obj := range objects {
		for _, c := range caps {
			assert.Equal(t, obj.QueryCapability(c) != nil, Has(obj, c))
		}
	}
}

// TestAs_WrongType verifies a type mismatch yields false, not a panic.
func TestAs_WrongType(t *testing.T) {
	w := newWidget("w", capFoo)

	b, ok := As[barer](w, capFoo) // foo impl is not a barer
	assert.False(t, ok)
	assert.Nil(t, b)
}

// TestRequery resolves a sibling capability from an already-obtained
// capability reference via the owner back-reference.
func TestRequery(t *testing.T) {
	w := newWidget("w", capFoo, capBar)

	f, ok := As[fooer](w, capFoo)
	require.True(t, ok)

	b, ok := Requery[barer](f, capBar)
	require.True(t, ok)
	assert.Equal(t, "bar:w", b.Bar())

	// Back to the same capability, same reference.
	f2, ok := Requery[fooer](f, capFoo)
	require.True(t, ok)
	assert.Same(t, f, f2)
}

// TestRequery_NoOwner verifies a reference without a back-reference yields
// false.
func TestRequery_NoOwner(t *testing.T) {
	_, ok := Requery[fooer]("not a component", capFoo)
	assert.False(t, ok)
}

// TestCapabilitySet_Grant_Chaining verifies the fluent construction form.
func TestCapabilitySet_Grant_Chaining(t *testing.T) {
	s := NewCapabilitySet()
	result := s.Grant(capFoo, &fooImpl{owner: s, name: "x"})
	assert.Same(t, s, result)
	assert.Equal(t, 1, s.Len())
}

// TestCapabilitySet_Grant_Violations covers construction contract
// violations.
func TestCapabilitySet_Grant_Violations(t *testing.T) {
	t.Run("nil implementation", func(t *testing.T) {
		assert.PanicsWithValue(t, "ifacereg: capability implementation cannot be nil", func() {
			NewCapabilitySet().Grant(capFoo, nil)
		})
	})

	t.Run("zero descriptor", func(t *testing.T) {
		assert.PanicsWithValue(t, "ifacereg: capability cannot be the zero descriptor", func() {
			NewCapabilitySet().Grant(Capability{}, &struct{}{})
		})
	})

	t.Run("duplicate grant", func(t *testing.T) {
		assert.PanicsWithValue(t, "ifacereg: duplicate grant for capability foo", func() {
			s := NewCapabilitySet()
			s.Grant(capFoo, &fooImpl{owner: s, name: "a"})
			s.Grant(capFoo, &fooImpl{owner: s, name: "b"})
		})
	})
}
