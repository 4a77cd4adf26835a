// Package kvstore persists the app's durable state (custom rates, display
// order, default rate, payment methods) as string-keyed JSON blobs.
package kvstore

import "context"

// Store is a simple string-keyed blob store. There are no schema migration
// guarantees; readers validate shape defensively on load.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
