package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/persistent_store_mock.go -package=mock

// PersistentStore is a durable string-to-string key/value store scoped to the
// application's private namespace. Every method that returns nil has made its
// change durable.
type PersistentStore interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written or was cleared; that is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// SetMany stores all entries or none of them.
	SetMany(ctx context.Context, entries map[string]string) error

	// Clear removes every key. Readers never observe a partially cleared
	// store.
	Clear(ctx context.Context) error

	// Close releases the underlying resources. The store is unusable after.
	Close() error
}
