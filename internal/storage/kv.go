// Package storage provides the local key-value persistence backing session
// state and UI preferences: a SQLite-backed store for real use and an
// in-memory store for tests.
package storage

// KeyValue is a flat string key-value store. Values holding structured data
// are serialized as JSON by the caller.
type KeyValue interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)
	// Set stores or replaces the value for key.
	Set(key, value string) error
	// Delete removes the key; deleting an absent key is not an error.
	Delete(key string) error
}
