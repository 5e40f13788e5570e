package orderedset

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"iter"
	"slices"
)

// Hooks are called whenever an item enters or leaves a set.
// Either of them may be nil.
type Hooks[T comparable] struct {
	Added   func(item T) // item became a member
	Removed func(item T) // item is no longer a member
}

// Set is an insertion-ordered set of comparable items.
// The zero value is an empty set without hooks, ready to use.
type Set[T comparable] struct {
	items   []T
	members map[T]struct{}
	hooks   Hooks[T]
}

// New creates an empty set.
func New[T comparable]() *Set[T] {
	return &Set[T]{}
}

// Trapped creates an empty set which calls hooks on every change of membership.
func Trapped[T comparable](hooks Hooks[T]) *Set[T] {
	return &Set[T]{hooks: hooks}
}

// From creates a set from a slice, dropping duplicates.
func From[T comparable](items []T) *Set[T] {
	s := New[T]()
	for _, item := range items {
		s.Append(item)
	}
	return s
}

func (s *Set[T]) String() string {
	return fmt.Sprintf("%v", s.items)
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// IsEmpty is true for a set without members.
func (s *Set[T]) IsEmpty() bool {
	return s.Len() == 0
}

// Contains checks for membership in O(1).
func (s *Set[T]) Contains(item T) bool {
	if s == nil || s.members == nil {
		return false
	}
	_, ok := s.members[item]
	return ok
}

// At returns the member at position i. It panics if i is out of range,
// as does slice indexing.
func (s *Set[T]) At(i int) T {
	return s.items[i]
}

// First returns the first member, if any.
func (s *Set[T]) First() (T, bool) {
	if s.Len() == 0 {
		var zero T
		return zero, false
	}
	return s.items[0], true
}

// Last returns the last member, if any.
func (s *Set[T]) Last() (T, bool) {
	if s.Len() == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// IndexOf returns the position of item, or -1 if item is not a member.
func (s *Set[T]) IndexOf(item T) int {
	if !s.Contains(item) {
		return -1
	}
	return slices.Index(s.items, item)
}

// Items returns a copy of the members in order.
func (s *Set[T]) Items() []T {
	if s == nil {
		return nil
	}
	return slices.Clone(s.items)
}

// All iterates over a snapshot of the members. Changing the set during
// iteration does not affect the sequence.
func (s *Set[T]) All() iter.Seq2[int, T] {
	snapshot := s.Items()
	return func(yield func(int, T) bool) {
		for i, item := range snapshot {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Append adds item at the end. It is a no-op if item is already a member,
// in which case Append returns false.
func (s *Set[T]) Append(item T) bool {
	if s.Contains(item) {
		return false
	}
	s.items = append(s.items, item)
	s.enter(item)
	return true
}

// Prepend adds item at the front. It is a no-op if item is already a member.
func (s *Set[T]) Prepend(item T) bool {
	return s.Insert(0, item)
}

// Insert adds item at position i, shifting later members. It is a no-op if
// item is already a member. Positions beyond the end append.
func (s *Set[T]) Insert(i int, item T) bool {
	if s.Contains(item) {
		return false
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s.items) {
		s.items = append(s.items, item)
	} else {
		s.items = slices.Insert(s.items, i, item)
	}
	s.enter(item)
	return true
}

// Remove removes all members matching predicate and returns them in order.
func (s *Set[T]) Remove(predicate func(T) bool) []T {
	if s.Len() == 0 {
		return nil
	}
	var removed []T
	kept := s.items[:0]
	for _, item := range s.items {
		if predicate(item) {
			removed = append(removed, item)
		} else {
			kept = append(kept, item)
		}
	}
	clear(s.items[len(kept):])
	s.items = kept
	for _, item := range removed {
		s.leave(item)
	}
	return removed
}

// RemoveItem removes a single member. It returns false if item has not been
// a member.
func (s *Set[T]) RemoveItem(item T) bool {
	i := s.IndexOf(item)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.leave(item)
	return true
}

// Replace substitutes old by item, keeping the position of old.
// If item already is a member at a different position, it is moved to the
// position of old. Replace returns false if old is not a member.
func (s *Set[T]) Replace(old, item T) bool {
	i := s.IndexOf(old)
	if i < 0 {
		return false
	}
	if old == item {
		return true
	}
	if j := s.IndexOf(item); j >= 0 {
		s.items = slices.Delete(s.items, j, j+1)
		s.leave(item)
		if j < i {
			i--
		}
	}
	s.items[i] = item
	s.leave(old)
	s.enter(item)
	return true
}

// Clear removes all members.
func (s *Set[T]) Clear() []T {
	return s.Remove(func(T) bool { return true })
}

// Clone returns an untrapped copy of s.
func (s *Set[T]) Clone() *Set[T] {
	return From(s.Items())
}

func (s *Set[T]) enter(item T) {
	if s.members == nil {
		s.members = make(map[T]struct{})
	}
	s.members[item] = struct{}{}
	if s.hooks.Added != nil {
		tracer().Debugf("orderedset: trapped %v entered", item)
		s.hooks.Added(item)
	}
}

func (s *Set[T]) leave(item T) {
	delete(s.members, item)
	if s.hooks.Removed != nil {
		tracer().Debugf("orderedset: trapped %v left", item)
		s.hooks.Removed(item)
	}
}
