// Package blob defines the key-value contract the persistence gateway
// writes through. The medium is opaque: values are whole serialized
// payloads replaced atomically, never patched.
package blob

import "context"

// Store is a durable key-value blob store.
type Store interface {
	// Get returns the value stored under key. ok is false when the key
	// is absent; err reports medium failures only.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous content.
	Set(ctx context.Context, key, value string) error
}
