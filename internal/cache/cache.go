// Package cache provides the keyed caches the stores memoize with.
package cache

// Cache is a generic keyed cache.
type Cache[T any] interface {
	// Get retrieves a value from the cache.
	Get(key string) (T, bool)

	// Put stores a value in the cache.
	Put(key string, value T)

	// Clear empties the cache.
	Clear()

	// Len returns the current number of items in the cache.
	Len() int
}
