package graph

import "iter"

// orderedMap is a string-keyed map that remembers insertion order.
// Deleting entries while iterating with all is safe: removed entries are
// never yielded.
type orderedMap[V any] struct {
	index      map[string]*link[V]
	head, tail *link[V]
}

type link[V any] struct {
	key        string
	value      V
	prev, next *link[V]
	removed    bool
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{index: make(map[string]*link[V])}
}

func (m *orderedMap[V]) len() int {
	if m == nil {
		return 0
	}
	return len(m.index)
}

func (m *orderedMap[V]) get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	l, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return l.value, true
}

func (m *orderedMap[V]) has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[key]
	return ok
}

// set inserts or overwrites key. Overwriting keeps the original position.
func (m *orderedMap[V]) set(key string, value V) {
	if l, ok := m.index[key]; ok {
		l.value = value
		return
	}
	l := &link[V]{key: key, value: value, prev: m.tail}
	if m.tail != nil {
		m.tail.next = l
	} else {
		m.head = l
	}
	m.tail = l
	m.index[key] = l
}

func (m *orderedMap[V]) delete(key string) bool {
	if m == nil {
		return false
	}
	l, ok := m.index[key]
	if !ok {
		return false
	}
	if l.prev != nil {
		l.prev.next = l.next
	} else {
		m.head = l.next
	}
	if l.next != nil {
		l.next.prev = l.prev
	} else {
		m.tail = l.prev
	}
	delete(m.index, key)
	// l.next is kept so an iterator parked on l can still advance.
	l.prev = nil
	l.removed = true
	return true
}

func (m *orderedMap[V]) clear() {
	for _, l := range m.index {
		l.removed = true
	}
	m.index = make(map[string]*link[V])
	m.head, m.tail = nil, nil
}

func (m *orderedMap[V]) all() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for l := m.head; l != nil; l = l.next {
			if l.removed {
				continue
			}
			if !yield(l.key, l.value) {
				return
			}
		}
	}
}

func (m *orderedMap[V]) keys() []string {
	out := make([]string, 0, m.len())
	for k := range m.all() {
		out = append(out, k)
	}
	return out
}
