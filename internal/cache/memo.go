package cache

import "sync"

// Memo is a Cache whose entries never expire and are never evicted; they
// live until an explicit Clear.
type Memo[T any] struct {
	mu    sync.Mutex
	items map[string]T
}

var _ Cache[int] = (*Memo[int])(nil)

// NewMemo creates an empty memoization cache.
func NewMemo[T any]() *Memo[T] {
	return &Memo[T]{items: make(map[string]T)}
}

// Get retrieves a value from the cache.
func (m *Memo[T]) Get(key string) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

// Put stores a value in the cache.
func (m *Memo[T]) Put(key string, value T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
}

// Clear empties the cache.
func (m *Memo[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]T)
}

// Len returns the current number of items in the cache.
func (m *Memo[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
