package repository

import "context"

// KeyValueRepository stores opaque string values under string keys.
type KeyValueRepository interface {
	// Get returns the value for key. found is false when the key was never set.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Update reads key, passes the current value to fn and stores what fn
	// returns, all inside one transaction.
	Update(ctx context.Context, key string, fn func(value string, found bool) (string, error)) error
}
