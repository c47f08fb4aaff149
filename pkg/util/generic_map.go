package util

import "sync"

// GenericMap is a concurrent safe map with generic key and value types. Replace swaps the
// whole content at once, so readers never observe a half-rebuilt map.
type GenericMap[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// NewGenericMap creates a new instance of GenericMap.
func NewGenericMap[K comparable, V any]() *GenericMap[K, V] {
	return &GenericMap[K, V]{m: make(map[K]V)}
}

// Load returns the value stored in the map for a key.
// The ok result indicates whether value was found in the map.
func (m *GenericMap[K, V]) Load(key K) (value V, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok = m.m[key]
	return value, ok
}

// Store sets the value for a key.
func (m *GenericMap[K, V]) Store(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[key] = value
}

// Delete deletes the value for a key.
func (m *GenericMap[K, V]) Delete(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.m, key)
}

// Replace drops every entry and stores entries in their place.
func (m *GenericMap[K, V]) Replace(entries map[K]V) {
	next := make(map[K]V, len(entries))
	for k, v := range entries {
		next[k] = v
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m = next
}

func (m *GenericMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.m)
}

// Range calls f for each entry over a snapshot of the map, stopping when f returns false.
// f may modify the map.
func (m *GenericMap[K, V]) Range(f func(key K, value V) bool) {
	m.mu.RLock()
	snapshot := make(map[K]V, len(m.m))
	for k, v := range m.m {
		snapshot[k] = v
	}
	m.mu.RUnlock()
	for k, v := range snapshot {
		if !f(k, v) {
			return
		}
	}
}
