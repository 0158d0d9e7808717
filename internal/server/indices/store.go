// Package indices talks to the physical index storage backend. The
// management core only needs to enumerate the indices belonging to an index
// set and to remove them; everything else about the index format is owned
// by the storage subsystem.
package indices

import "context"

// Store enumerates and removes physical indices.
type Store interface {
	// List returns the names of all indices whose name starts with
	// prefix followed by the index number separator.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes a single index and all data belonging to it.
	Delete(ctx context.Context, index string) error
}
