package internal

// Entry is a single key value pair of an OrderedMap.
type Entry[V any] struct {
	Key   string
	Value V
}

// OrderedMap is a string keyed map that remembers insertion order.
// Kubernetes represents many list fields as arrays of named objects;
// expanding them from maps requires deterministic iteration, which the
// builtin map does not provide.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func (m *OrderedMap[V]) Set(key string, value V) *OrderedMap[V] {
	if m.values == nil {
		m.values = map[string]V{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil || m.values == nil {
		var zero V
		return zero, false
	}
	value, ok := m.values[key]
	return value, ok
}

func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

func (m *OrderedMap[V]) Values() []V {
	if m == nil {
		return nil
	}
	values := make([]V, 0, len(m.keys))
	for _, key := range m.keys {
		values = append(values, m.values[key])
	}
	return values
}

func (m *OrderedMap[V]) Items() []Entry[V] {
	if m == nil {
		return nil
	}
	items := make([]Entry[V], 0, len(m.keys))
	for _, key := range m.keys {
		items = append(items, Entry[V]{Key: key, Value: m.values[key]})
	}
	return items
}

// E builds a single entry; convenient for MapOf literals.
func E[V any](key string, value V) Entry[V] {
	return Entry[V]{Key: key, Value: value}
}

// MapOf builds an OrderedMap from entries in the order given.
func MapOf[V any](entries ...Entry[V]) *OrderedMap[V] {
	var m OrderedMap[V]
	for _, entry := range entries {
		m.Set(entry.Key, entry.Value)
	}
	return &m
}
