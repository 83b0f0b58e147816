// internal/core/ports/store.go
package ports

import "context"

// Store keys for the two ledger blobs.
const (
	KeyInventory    = "inventory"
	KeySalesHistory = "salesHistory"
)

// BlobStore defines the flat get/set-by-key persistence port. Values are
// structured text; the store offers no transactions and no schema.
// This interface is implemented by the storage adapters.
type BlobStore interface {
	// Get returns the blob at key. The second return is false when the key
	// has never been written; that is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes the blob at key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error
	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}
