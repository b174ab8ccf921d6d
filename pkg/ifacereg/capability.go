package ifacereg

import (
	"sync"

	"github.com/google/uuid"
)

// Capability is an opaque descriptor identifying one behavioral contract an
// object may implement. Capabilities are compared with ==; two descriptors
// are the same capability only if one was copied from the other (or both
// came from the same Directory entry).
//
// Each descriptor carries a process-unique token, so independently minted
// capabilities never collide even when they share a name. Descriptors are
// process-local: stability across processes or serialization boundaries is
// the caller's responsibility.
type Capability struct {
	name  string
	token string
}

// New mints a fresh capability descriptor with the given name.
// Every call returns a distinct descriptor, even for the same name.
func New(name string) Capability {
	if name == "" {
		panic("ifacereg: capability name cannot be empty")
	}
	return Capability{name: name, token: uuid.New().String()}
}

// Name returns the human-readable name the capability was minted with.
func (c Capability) Name() string { return c.name }

// IsZero reports whether c is the zero descriptor (never minted).
func (c Capability) IsZero() bool { return c.token == "" }

// String returns a short identifier for logging.
func (c Capability) String() string {
	if c.IsZero() {
		return "capability()"
	}
	return "capability(" + c.name + "/" + c.token[:8] + ")"
}

// Directory issues capability descriptors by name, minting each name's
// descriptor at most once. Packages that look up capabilities through the
// same Directory observe identical descriptors without coordinating at
// init time.
//
// All Directory methods are safe for concurrent use.
type Directory struct {
	mu      sync.RWMutex
	entries map[string]Capability
}

// NewDirectory creates an empty capability directory.
func NewDirectory() *Directory {
	return &Directory{entries: make(map[string]Capability)}
}

// Get returns the descriptor for name, minting it on first use.
// The mint happens at most once per name, even under concurrent access.
func (d *Directory) Get(name string) Capability {
	// Fast path: already minted.
	d.mu.RLock()
	c, ok := d.entries[name]
	d.mu.RUnlock()
	if ok {
		return c
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// Double-check after acquiring write lock.
	if c, ok := d.entries[name]; ok {
		return c
	}

	c = New(name)
	d.entries[name] = c
	return c
}

// Has reports whether a descriptor has been minted for name.
func (d *Directory) Has(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.entries[name]
	return ok
}

// Names returns all minted capability names.
// The order is not guaranteed.
func (d *Directory) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.entries))
	for n := range d.entries {
		names = append(names, n)
	}
	return names
}

// Len returns the number of minted descriptors.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// DefaultDirectory is the process-wide capability directory.
var DefaultDirectory = NewDirectory()

// Lookup returns the descriptor for name from the default directory,
// minting it on first use.
func Lookup(name string) Capability {
	return DefaultDirectory.Get(name)
}
