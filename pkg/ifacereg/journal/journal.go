// Package journal provides an audit trail of registry membership changes.
//
// A registry configured with a journal appends one Entry per generation
// bump, recording how many objects the reconciliation added and removed
// and how large the active set was afterwards. The journal is a debugging
// aid for registry churn; it is never read back by the registry itself.
package journal

import (
	"errors"
	"time"
)

// Entry records one reconciliation that changed registry membership.
type Entry struct {
	// Generation is the registry generation after the change.
	Generation uint64
	// Added is the number of objects added by the reconciliation.
	Added int
	// Removed is the number of objects removed by the reconciliation.
	Removed int
	// Active is the active-set size after the reconciliation.
	Active int
	// Timestamp is when the reconciliation happened (UTC).
	Timestamp time.Time
}

// Store persists membership-change entries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append stores one entry. Entries arrive in generation order from a
	// single registry, but a store shared between registries may observe
	// interleaved generations.
	Append(e Entry) error

	// List returns all entries in append order.
	// Returns an empty slice (not an error) when the journal is empty.
	List() ([]Entry, error)

	// ListSince returns entries with Generation > generation, in append
	// order. Returns an empty slice when there are none.
	ListSince(generation uint64) ([]Entry, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for journal operations.
var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("journal store closed")
)
