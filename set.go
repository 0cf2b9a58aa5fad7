package trackable

import (
	"iter"
	"maps"
)

// Set is a change-tracking set. Set events carry no position: their path
// segment renders as a wildcard, "[*]".
type Set[P, W comparable] struct {
	items  map[W]struct{}
	wrap   func(P) W
	unwrap func(W) P
	hooks  hookTable
	events emitter
	dirty  bool
}

var _ Trackable = (*Set[int, int])(nil)

// NewSet tracks a set of plain values. A nil map yields a nil set.
func NewSet[T comparable](items map[T]struct{}) *Set[T, T] {
	return WrapSet(items, identity[T], identity[T])
}

// WrapSet tracks a set whose elements are converted with wrap on the way in
// and with unwrap by Normalize. The set is rebuilt from the wrapped elements,
// since wrapping changes element identity. items is never modified.
func WrapSet[P, W comparable](items map[P]struct{}, wrap func(P) W, unwrap func(W) P) *Set[P, W] {
	if items == nil {
		return nil
	}
	s := &Set[P, W]{
		items:  make(map[W]struct{}, len(items)),
		wrap:   wrap,
		unwrap: unwrap,
	}
	s.hooks.handler = s.childChanged
	for v := range items {
		s.items[wrap(v)] = struct{}{}
	}
	for w := range s.items {
		s.hooks.hook(w)
	}
	return s
}

// SetOf is a convenience for building the plain form of a set.
func SetOf[T comparable](values ...T) map[T]struct{} {
	m := make(map[T]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func (s *Set[P, W]) AsTrackable() *Set[P, W] {
	return s
}

func (s *Set[P, W]) AsNormal() map[P]struct{} {
	return s.Normalize()
}

func (s *Set[P, W]) Normalize() map[P]struct{} {
	if s == nil {
		return nil
	}
	result := make(map[P]struct{}, len(s.items))
	for w := range s.items {
		result[s.unwrap(w)] = struct{}{}
	}
	return result
}

func (s *Set[P, W]) OnChange(h Handler) Subscription {
	return s.events.add(h)
}

func (s *Set[P, W]) Unsubscribe(sub Subscription) {
	s.events.remove(sub)
}

func (s *Set[P, W]) IsDirty() bool {
	return s.dirty
}

func (s *Set[P, W]) AcceptChanges() {
	for w := range s.items {
		if t := trackableOf(w); t != nil {
			t.AcceptChanges()
		}
	}
	s.dirty = false
}

func (s *Set[P, W]) raise(e ChangeEvent) {
	s.dirty = true
	s.events.emit(s, e)
}

func (s *Set[P, W]) childChanged(sender Trackable, e ChangeEvent) {
	s.dirty = true
	s.events.emit(s, e.ChildOfSet())
}

func (s *Set[P, W]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

func (s *Set[P, W]) Contains(v W) bool {
	_, found := s.items[v]
	return found
}

// Add wraps and inserts v, returning false without raising an event if an
// equal element is already present.
func (s *Set[P, W]) Add(v P) bool {
	return s.AddWrapped(s.wrap(v))
}

// AddWrapped inserts an element that is already wrapped.
func (s *Set[P, W]) AddWrapped(w W) bool {
	if _, found := s.items[w]; found {
		return false
	}
	s.items[w] = struct{}{}
	s.hooks.hook(w)
	s.raise(SetAddEvent(NewPayload(w)))
	return true
}

func (s *Set[P, W]) Remove(v W) bool {
	if _, found := s.items[v]; !found {
		return false
	}
	delete(s.items, v)
	s.hooks.unhook(v)
	s.raise(SetRemoveEvent(NewPayload(v)))
	return true
}

// Clear removes all elements. It raises a CollectionClear event even when
// the set is already empty.
func (s *Set[P, W]) Clear() {
	s.hooks.unhookAll()
	clear(s.items)
	s.raise(SetClearEvent())
}

func (s *Set[P, W]) All() iter.Seq[W] {
	return func(yield func(W) bool) {
		for w := range s.items {
			if !yield(w) {
				return
			}
		}
	}
}

// UnionWith adds every element of other, raising one event per added element.
func (s *Set[P, W]) UnionWith(other iter.Seq[W]) error {
	if other == nil {
		return argErrf("UnionWith", "other", "nil sequence")
	}
	for w := range other {
		s.AddWrapped(w)
	}
	return nil
}

func (s *Set[P, W]) ExceptWith(other iter.Seq[W]) error {
	if other == nil {
		return argErrf("ExceptWith", "other", "nil sequence")
	}
	for w := range other {
		s.Remove(w)
	}
	return nil
}

// IntersectWith removes every element that does not occur in other.
func (s *Set[P, W]) IntersectWith(other iter.Seq[W]) error {
	if other == nil {
		return argErrf("IntersectWith", "other", "nil sequence")
	}
	keep := make(map[W]struct{}, len(s.items))
	for w := range other {
		if s.Contains(w) {
			keep[w] = struct{}{}
		}
	}
	for _, w := range s.snapshot() {
		if _, found := keep[w]; !found {
			s.Remove(w)
		}
	}
	return nil
}

// SymmetricExceptWith removes the elements of other that are present and
// adds the ones that are not. Duplicates in other are considered once.
func (s *Set[P, W]) SymmetricExceptWith(other iter.Seq[W]) error {
	if other == nil {
		return argErrf("SymmetricExceptWith", "other", "nil sequence")
	}
	var seen []W
	distinct := make(map[W]struct{})
	for w := range other {
		if _, found := distinct[w]; !found {
			distinct[w] = struct{}{}
			seen = append(seen, w)
		}
	}
	for _, w := range seen {
		if !s.Remove(w) {
			s.AddWrapped(w)
		}
	}
	return nil
}

func (s *Set[P, W]) snapshot() []W {
	result := make([]W, 0, len(s.items))
	for w := range s.items {
		result = append(result, w)
	}
	return result
}

// mustSeq rejects a nil sequence given to a predicate, which has no error
// result to report it with.
func mustSeq[W any](op string, other iter.Seq[W]) {
	if other == nil {
		panic(argErrf(op, "other", "nil sequence"))
	}
}

func collect[W comparable](other iter.Seq[W]) map[W]struct{} {
	m := make(map[W]struct{})
	for w := range other {
		m[w] = struct{}{}
	}
	return m
}

func (s *Set[P, W]) IsSubsetOf(other iter.Seq[W]) bool {
	mustSeq("IsSubsetOf", other)
	o := collect(other)
	for w := range s.items {
		if _, found := o[w]; !found {
			return false
		}
	}
	return true
}

func (s *Set[P, W]) IsSupersetOf(other iter.Seq[W]) bool {
	mustSeq("IsSupersetOf", other)
	for w := range other {
		if !s.Contains(w) {
			return false
		}
	}
	return true
}

func (s *Set[P, W]) IsProperSubsetOf(other iter.Seq[W]) bool {
	mustSeq("IsProperSubsetOf", other)
	o := collect(other)
	return len(o) > len(s.items) && s.IsSubsetOf(maps.Keys(o))
}

func (s *Set[P, W]) IsProperSupersetOf(other iter.Seq[W]) bool {
	mustSeq("IsProperSupersetOf", other)
	o := collect(other)
	return len(s.items) > len(o) && s.IsSupersetOf(maps.Keys(o))
}

func (s *Set[P, W]) Overlaps(other iter.Seq[W]) bool {
	mustSeq("Overlaps", other)
	for w := range other {
		if s.Contains(w) {
			return true
		}
	}
	return false
}

func (s *Set[P, W]) SetEquals(other iter.Seq[W]) bool {
	mustSeq("SetEquals", other)
	o := collect(other)
	return len(o) == len(s.items) && s.IsSupersetOf(maps.Keys(o))
}
