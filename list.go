package trackable

import (
	"iter"
	"slices"
)

// List is a change-tracking list. P is the plain element type and W is the
// element type stored by the list, which differs from P when elements are
// themselves wrapped into trackables.
type List[P any, W comparable] struct {
	items  []W
	wrap   func(P) W
	unwrap func(W) P
	hooks  hookTable
	events emitter
	dirty  bool
}

var _ Trackable = (*List[int, int])(nil)

// NewList tracks a list of plain values. A nil slice yields a nil list.
func NewList[T comparable](items []T) *List[T, T] {
	return WrapList(items, identity[T], identity[T])
}

// WrapList tracks a list whose elements are converted with wrap on the way in
// and with unwrap by Normalize. A nil slice yields a nil list. items is
// copied and never modified.
func WrapList[P any, W comparable](items []P, wrap func(P) W, unwrap func(W) P) *List[P, W] {
	if items == nil {
		return nil
	}
	l := &List[P, W]{
		items:  make([]W, len(items)),
		wrap:   wrap,
		unwrap: unwrap,
	}
	l.hooks.handler = l.childChanged
	for i, v := range items {
		l.items[i] = wrap(v)
	}
	for _, w := range l.items {
		l.hooks.hook(w)
	}
	return l
}

func (l *List[P, W]) AsTrackable() *List[P, W] {
	return l
}

func (l *List[P, W]) AsNormal() []P {
	return l.Normalize()
}

// Normalize returns a detached plain copy of the list.
func (l *List[P, W]) Normalize() []P {
	if l == nil {
		return nil
	}
	result := make([]P, len(l.items))
	for i, w := range l.items {
		result[i] = l.unwrap(w)
	}
	return result
}

func (l *List[P, W]) OnChange(h Handler) Subscription {
	return l.events.add(h)
}

func (l *List[P, W]) Unsubscribe(sub Subscription) {
	l.events.remove(sub)
}

func (l *List[P, W]) IsDirty() bool {
	return l.dirty
}

func (l *List[P, W]) AcceptChanges() {
	for _, w := range l.items {
		if t := trackableOf(w); t != nil {
			t.AcceptChanges()
		}
	}
	l.dirty = false
}

func (l *List[P, W]) raise(e ChangeEvent) {
	l.dirty = true
	l.events.emit(l, e)
}

func (l *List[P, W]) childChanged(sender Trackable, e ChangeEvent) {
	l.dirty = true
	l.events.emit(l, e.ChildOfList(l.indexOfTrackable(sender)))
}

func (l *List[P, W]) indexOfTrackable(t Trackable) int {
	for i, w := range l.items {
		if any(w) == any(t) {
			return i
		}
	}
	return NoIndex
}

func (l *List[P, W]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

func (l *List[P, W]) checkIndex(i int) {
	if i < 0 || i >= len(l.items) {
		panic(&IndexError{Index: i, Len: len(l.items)})
	}
}

func (l *List[P, W]) At(i int) W {
	l.checkIndex(i)
	return l.items[i]
}

// Set replaces the element at index i. Replacing with an equal element is a
// no-op and returns false.
func (l *List[P, W]) Set(i int, v P) bool {
	l.checkIndex(i)
	return l.SetWrapped(i, l.wrap(v))
}

// SetWrapped is Set for an element that is already wrapped, such as a
// trackable taken from elsewhere in the tree. w is stored as is.
func (l *List[P, W]) SetWrapped(i int, w W) bool {
	l.checkIndex(i)
	old := l.items[i]
	if old == w {
		return false
	}
	l.hooks.unhook(old)
	l.items[i] = w
	l.hooks.hook(w)
	l.raise(ListReplaceEvent(NewPayload(old), NewPayload(w), i))
	return true
}

func (l *List[P, W]) Add(v P) {
	l.AddWrapped(l.wrap(v))
}

func (l *List[P, W]) AddWrapped(w W) {
	i := len(l.items)
	l.items = append(l.items, w)
	l.hooks.hook(w)
	l.raise(ListAddEvent(NewPayload(w), i))
}

func (l *List[P, W]) Insert(i int, v P) {
	l.checkInsert(i)
	l.InsertWrapped(i, l.wrap(v))
}

func (l *List[P, W]) InsertWrapped(i int, w W) {
	l.checkInsert(i)
	l.items = slices.Insert(l.items, i, w)
	l.hooks.hook(w)
	l.raise(ListAddEvent(NewPayload(w), i))
}

func (l *List[P, W]) checkInsert(i int) {
	if i < 0 || i > len(l.items) {
		panic(&IndexError{Index: i, Len: len(l.items)})
	}
}

func (l *List[P, W]) RemoveAt(i int) {
	l.checkIndex(i)
	old := l.items[i]
	l.hooks.unhook(old)
	l.items = slices.Delete(l.items, i, i+1)
	l.raise(ListRemoveEvent(NewPayload(old), i))
}

// Remove removes the first element equal to v.
func (l *List[P, W]) Remove(v W) bool {
	i := l.IndexOf(v)
	if i < 0 {
		return false
	}
	l.RemoveAt(i)
	return true
}

// Clear removes all elements. It raises a CollectionClear event even when
// the list is already empty.
func (l *List[P, W]) Clear() {
	l.hooks.unhookAll()
	clear(l.items)
	l.items = l.items[:0]
	l.raise(ListClearEvent())
}

func (l *List[P, W]) IndexOf(v W) int {
	return slices.Index(l.items, v)
}

func (l *List[P, W]) Contains(v W) bool {
	return l.IndexOf(v) >= 0
}

func (l *List[P, W]) All() iter.Seq2[int, W] {
	return func(yield func(int, W) bool) {
		for i, w := range l.items {
			if !yield(i, w) {
				return
			}
		}
	}
}

func (l *List[P, W]) Values() iter.Seq[W] {
	return func(yield func(W) bool) {
		for _, w := range l.items {
			if !yield(w) {
				return
			}
		}
	}
}

// Slice returns a copy of the stored (wrapped) elements.
func (l *List[P, W]) Slice() []W {
	return slices.Clone(l.items)
}
