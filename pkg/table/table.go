// Package table provides the generic key->value container spec.md §4.3
// describes: insert-overwrite semantics, a present/absent find, and
// iteration. spec.md §9 is explicit that the original's fixed
// 10000-bucket open-chaining map is an implementation detail, not part
// of the external contract, so this wraps a builtin Go map instead.
package table

// Table is a key->value container with insert-overwrite semantics and a
// present/absent-distinguishing Find.
type Table[K comparable, V any] struct {
	m map[K]V
}

// New returns an empty Table.
func New[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{m: make(map[K]V)}
}

// Insert stores value under key, overwriting any prior value for key.
func (t *Table[K, V]) Insert(key K, value V) {
	t.m[key] = value
}

// Find returns the value stored under key and whether it was present.
func (t *Table[K, V]) Find(key K) (V, bool) {
	v, ok := t.m[key]
	return v, ok
}

// Contains reports whether key has a stored value.
func (t *Table[K, V]) Contains(key K) bool {
	_, ok := t.m[key]
	return ok
}

// GetOrInsert returns the existing value for key, or inserts and returns
// the zero value of V if key is absent.
func (t *Table[K, V]) GetOrInsert(key K) V {
	v, ok := t.m[key]
	if !ok {
		var zero V
		t.m[key] = zero
		return zero
	}
	return v
}

// Size returns the number of stored entries.
func (t *Table[K, V]) Size() int {
	return len(t.m)
}

// Each calls fn once per stored entry. Iteration order is unspecified.
func (t *Table[K, V]) Each(fn func(key K, value V)) {
	for k, v := range t.m {
		fn(k, v)
	}
}

// Keys returns all stored keys in unspecified order.
func (t *Table[K, V]) Keys() []K {
	keys := make([]K, 0, len(t.m))
	for k := range t.m {
		keys = append(keys, k)
	}
	return keys
}

// FromMap builds a Table pre-populated from an existing builtin map,
// for wiring Table into components that otherwise produce and consume
// plain maps (persistence, the indexer's accumulators).
func FromMap[K comparable, V any](m map[K]V) *Table[K, V] {
	t := New[K, V]()
	for k, v := range m {
		t.Insert(k, v)
	}
	return t
}

// ToMap copies t's entries into a fresh builtin map.
func (t *Table[K, V]) ToMap() map[K]V {
	m := make(map[K]V, len(t.m))
	for k, v := range t.m {
		m[k] = v
	}
	return m
}
