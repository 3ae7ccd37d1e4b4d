// Package omap implements an ordered map that preserves insertion order,
// with last-write-wins semantics for repeated keys. It backs HOCON object
// bodies, where member order is observable (later keys print after
// earlier ones) but lookup must stay O(1).
package omap

import "iter"

// OrderedMap is a map ordered by first insertion. Re-adding an existing
// key updates its value in place without moving its position.
type OrderedMap[K comparable, V any] struct {
	m map[K]V
	s []K
}

// New returns a new ordered map with space for size elements.
func New[K comparable, V any](size int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		m: make(map[K]V, size),
		s: make([]K, 0, size),
	}
}

// Get returns the value stored under k, if any.
func (om *OrderedMap[K, V]) Get(k K) (V, bool) {
	v, ok := om.m[k]
	return v, ok
}

// Add puts v under k, overwriting any existing value. A new key is
// appended at the end of the insertion order; an existing key keeps its
// original position.
func (om *OrderedMap[K, V]) Add(k K, v V) {
	if _, ok := om.m[k]; !ok {
		om.s = append(om.s, k)
	}
	om.m[k] = v
}

// Delete removes k, if present.
func (om *OrderedMap[K, V]) Delete(k K) {
	if _, ok := om.m[k]; !ok {
		return
	}
	delete(om.m, k)
	for i, kk := range om.s {
		if kk == k {
			om.s = append(om.s[:i], om.s[i+1:]...)
			break
		}
	}
}

// Exists reports whether k is present.
func (om *OrderedMap[K, V]) Exists(k K) bool {
	_, ok := om.m[k]
	return ok
}

// Len returns the number of entries.
func (om *OrderedMap[K, V]) Len() int {
	return len(om.s)
}

// Keys returns the keys in insertion order.
func (om *OrderedMap[K, V]) Keys() []K {
	out := make([]K, len(om.s))
	copy(out, om.s)
	return out
}

// All returns an iterator over (key, value) pairs in insertion order.
func (om *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(key K, value V) bool) {
		for _, k := range om.s {
			if !yield(k, om.m[k]) {
				return
			}
		}
	}
}

// Build adds key k and value v and returns the map itself, for chained
// construction.
func (om *OrderedMap[K, V]) Build(k K, v V) *OrderedMap[K, V] {
	om.Add(k, v)
	return om
}

// Clone returns a shallow copy with an independent key order and
// backing map, so mutating the clone never affects om.
func (om *OrderedMap[K, V]) Clone() *OrderedMap[K, V] {
	out := New[K, V](om.Len())
	for k, v := range om.All() {
		out.Add(k, v)
	}
	return out
}
