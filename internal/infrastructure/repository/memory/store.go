package memory

import (
	"sync"
)

// orderedStore keeps records by id and remembers insertion order for listing.
type orderedStore[T any] struct {
	mu     sync.RWMutex
	items  map[string]T
	orders []string
	clone  func(T) T
}

func newOrderedStore[T any](clone func(T) T) *orderedStore[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &orderedStore[T]{
		items: make(map[string]T),
		clone: clone,
	}
}

func (s *orderedStore[T]) list() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.orders))
	for _, id := range s.orders {
		out = append(out, s.clone(s.items[id]))
	}
	return out
}

func (s *orderedStore[T]) get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.clone(item), true
}

func (s *orderedStore[T]) find(match func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.orders {
		if item := s.items[id]; match(item) {
			return s.clone(item), true
		}
	}
	var zero T
	return zero, false
}

// put inserts or overwrites; it reports whether the id already existed.
func (s *orderedStore[T]) put(id string, item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.items[id]
	if !existed {
		s.orders = append(s.orders, id)
	}
	s.items[id] = s.clone(item)
	return existed
}

func (s *orderedStore[T]) replace(id string, item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	s.items[id] = s.clone(item)
	return true
}

func (s *orderedStore[T]) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, existing := range s.orders {
		if existing == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			break
		}
	}
	return true
}
