// Package kvstore provides the key-value persistence contract used by all
// repositories: named collections of JSON-encoded records, read and written
// atomically.
package kvstore

type (
	// Tx is a single store transaction. Loads and saves within one transaction
	// observe a consistent snapshot; saves are only visible once the
	// transaction commits.
	Tx interface {
		// Load decodes the collection's records into out (a pointer to a
		// slice). A missing collection decodes as an empty slice.
		Load(collection string, out interface{}) error
		// Save encodes records (a slice) and replaces the collection's
		// contents with it.
		Save(collection string, records interface{}) error
	}

	// Store is any engine that can run transactions over named collections.
	Store interface {
		// View runs fn in a read-only transaction.
		View(fn func(tx Tx) error) error
		// Update runs fn in a read-write transaction. All saves made by fn are
		// committed atomically; if fn returns an error nothing is persisted.
		Update(fn func(tx Tx) error) error
		Close() error
	}
)
