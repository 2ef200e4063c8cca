package php

import "github.com/google/uuid"

// identity is embedded by nodes that are collected by identity. The token is
// assigned on first use so zero-value nodes can be collected too.
type identity struct {
	id uuid.UUID
}

func (i *identity) key() string {
	if i.id == uuid.Nil {
		i.id = uuid.New()
	}
	return i.id.String()
}

type keyed interface {
	comparable
	key() string
}

// putNode adds an identity-keyed node. Nil nodes are ignored.
func putNode[T keyed](s *orderedSet[T], v T) {
	var zero T
	if v == zero {
		return
	}
	s.put(v.key(), v)
}

func removeNode[T keyed](s *orderedSet[T], v T) {
	var zero T
	if v == zero {
		return
	}
	s.remove(v.key())
}

// orderedSet keeps values in insertion order, de-duplicated by key. Putting a
// value under an existing key replaces it in place.
type orderedSet[T any] struct {
	keys  []string
	items map[string]T
}

func (s *orderedSet[T]) put(key string, v T) {
	if s.items == nil {
		s.items = make(map[string]T)
	}
	if _, ok := s.items[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.items[key] = v
}

func (s *orderedSet[T]) remove(key string) {
	if _, ok := s.items[key]; !ok {
		return
	}
	delete(s.items, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i:i], s.keys[i+1:]...)
			break
		}
	}
}

func (s *orderedSet[T]) reset() {
	s.keys = nil
	s.items = nil
}

func (s *orderedSet[T]) len() int {
	return len(s.keys)
}

func (s *orderedSet[T]) values() []T {
	out := make([]T, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.items[k])
	}
	return out
}

// stringSet is an orderedSet keyed by content.
type stringSet struct {
	orderedSet[string]
}

func (s *stringSet) add(v string)    { s.put(v, v) }
func (s *stringSet) delete(v string) { s.remove(v) }

func (s *stringSet) set(vs []string) {
	s.reset()
	for _, v := range vs {
		s.add(v)
	}
}
