// Package kvstore provides the device-local key-value persistence used by
// the sync engine for the serialized recipe collection and the serialized
// identity.
package kvstore

import "context"

// Store is the local persistence contract.
type Store interface {
	// Get retrieves the value for key. The second return is false when the
	// key has never been set.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
