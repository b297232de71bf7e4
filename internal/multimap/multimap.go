// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

// Package multimap implements an ordered-insertion one-key-many-values
// container with flat and grouped iteration, the workhorse collection
// of the build plan's dataflows. It has no set or join operations of
// its own.
package multimap

// Multimap maps a key to an insertion-ordered list of values.
type Multimap[K comparable, V any] struct {
	inner map[K][]V
	size  int
}

// New returns an empty Multimap.
func New[K comparable, V any]() *Multimap[K, V] {
	return &Multimap[K, V]{inner: make(map[K][]V)}
}

// WithCapacity returns an empty Multimap pre-sized for capacity keys.
func WithCapacity[K comparable, V any](capacity int) *Multimap[K, V] {
	return &Multimap[K, V]{inner: make(map[K][]V, capacity)}
}

// FromPairs builds a Multimap from a slice of (key, value) pairs,
// preserving insertion order per key.
func FromPairs[K comparable, V any](pairs []Pair[K, V]) *Multimap[K, V] {
	m := WithCapacity[K, V](len(pairs))
	for _, p := range pairs {
		m.Insert(p.Key, p.Value)
	}
	return m
}

// Pair is a (key, value) tuple, used by FromPairs and IterFlat.
type Pair[K any, V any] struct {
	Key   K
	Value V
}

// Insert appends value to the list for key.
func (m *Multimap[K, V]) Insert(key K, value V) {
	m.inner[key] = append(m.inner[key], value)
	m.size++
}

// Get returns the slice view of values for key (nil iff absent).
func (m *Multimap[K, V]) Get(key K) []V {
	return m.inner[key]
}

// Has reports whether key has at least one value.
func (m *Multimap[K, V]) Has(key K) bool {
	_, ok := m.inner[key]
	return ok
}

// Len returns the sum of per-key list sizes.
func (m *Multimap[K, V]) Len() int {
	return m.size
}

// Keys returns every key that has at least one value, in unspecified
// order.
func (m *Multimap[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.inner))
	for k := range m.inner {
		keys = append(keys, k)
	}
	return keys
}

// IterFlat materializes every (key, value) pair. Order across keys is
// unspecified; order within a key follows insertion order.
func (m *Multimap[K, V]) IterFlat() []Pair[K, V] {
	out := make([]Pair[K, V], 0, m.size)
	for k, values := range m.inner {
		for _, v := range values {
			out = append(out, Pair[K, V]{k, v})
		}
	}
	return out
}

// Group is a key with its full, insertion-ordered value list.
type Group[K any, V any] struct {
	Key    K
	Values []V
}

// IterGrouped materializes every key exactly once with its full value
// list. Order across keys is unspecified.
func (m *Multimap[K, V]) IterGrouped() []Group[K, V] {
	out := make([]Group[K, V], 0, len(m.inner))
	for k, values := range m.inner {
		out = append(out, Group[K, V]{k, values})
	}
	return out
}
