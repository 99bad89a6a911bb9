// Package slots stores the named session slots (tokens, user profile,
// cached cart) of the storefront client.
package slots

import "context"

// Batch is a set of slot writes applied atomically. A nil value deletes
// the slot.
type Batch map[string][]byte

// Repository is a durable key-value area for session slots.
//
// Get returns (nil, nil) for a missing key. Delete of a missing key is not
// an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Apply(ctx context.Context, b Batch) error
}
