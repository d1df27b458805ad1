package utils

import (
	"sync"
)

// Registry is a generic, thread-safe map that remembers insertion order.
// Replacing the value of an existing key keeps the key's position.
type Registry[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	order []K
}

// NewRegistry creates a new generic registry
func NewRegistry[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		items: make(map[K]V),
	}
}

// Register stores value under key, replacing any existing value
func (r *Registry[K, V]) Register(key K, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(key, value)
}

// RegisterIfAbsent stores value only when key is unused and reports whether it did
func (r *Registry[K, V]) RegisterIfAbsent(key K, value V) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return false
	}
	r.put(key, value)
	return true
}

func (r *Registry[K, V]) put(key K, value V) {
	if _, exists := r.items[key]; !exists {
		r.order = append(r.order, key)
	}
	r.items[key] = value
}

// Get retrieves an item from the registry
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	return value, exists
}

// Window returns at most limit values starting at offset, in insertion
// order. Out-of-range windows yield an empty, non-nil slice; callers
// reject negative arguments.
func (r *Registry[K, V]) Window(offset, limit int) []V {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset < 0 || limit <= 0 || offset >= len(r.order) {
		return []V{}
	}

	end := len(r.order)
	if limit < end-offset {
		end = offset + limit
	}

	values := make([]V, 0, end-offset)
	for _, key := range r.order[offset:end] {
		values = append(values, r.items[key])
	}
	return values
}

// Size returns the number of items in the registry
func (r *Registry[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
