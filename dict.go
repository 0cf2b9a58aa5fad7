package trackable

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// Dict is a change-tracking map. A trackable value is subscribed once no
// matter how many keys refer to it; its changes are reported once per key.
type Dict[K comparable, P any, W comparable] struct {
	items       map[K]W
	wrap        func(P) W
	unwrap      func(W) P
	valueToKeys map[Trackable]*dictHook[K]
	events      emitter
	dirty       bool
}

// dictHook lists the keys referring to one trackable value in the order they
// were stored.
type dictHook[K comparable] struct {
	sub   Subscription
	order []K
}

var _ Trackable = (*Dict[string, int, int])(nil)

// NewDict tracks a map of plain values. A nil map yields a nil dict.
func NewDict[K, V comparable](items map[K]V) *Dict[K, V, V] {
	return WrapDict(items, identity[V], identity[V])
}

// WrapDict tracks a map whose values are converted with wrap on the way in
// and with unwrap by Normalize. items is copied and never modified.
func WrapDict[K comparable, P any, W comparable](items map[K]P, wrap func(P) W, unwrap func(W) P) *Dict[K, P, W] {
	if items == nil {
		return nil
	}
	d := &Dict[K, P, W]{
		items:  make(map[K]W, len(items)),
		wrap:   wrap,
		unwrap: unwrap,
	}
	for k, v := range items {
		d.items[k] = wrap(v)
	}
	for _, k := range keysByString(d.items) {
		d.hook(k, d.items[k])
	}
	return d
}

func (d *Dict[K, P, W]) AsTrackable() *Dict[K, P, W] {
	return d
}

func (d *Dict[K, P, W]) AsNormal() map[K]P {
	return d.Normalize()
}

func (d *Dict[K, P, W]) Normalize() map[K]P {
	if d == nil {
		return nil
	}
	result := make(map[K]P, len(d.items))
	for k, w := range d.items {
		result[k] = d.unwrap(w)
	}
	return result
}

func (d *Dict[K, P, W]) OnChange(h Handler) Subscription {
	return d.events.add(h)
}

func (d *Dict[K, P, W]) Unsubscribe(sub Subscription) {
	d.events.remove(sub)
}

func (d *Dict[K, P, W]) IsDirty() bool {
	return d.dirty
}

func (d *Dict[K, P, W]) AcceptChanges() {
	for _, w := range d.items {
		if t := trackableOf(w); t != nil {
			t.AcceptChanges()
		}
	}
	d.dirty = false
}

func (d *Dict[K, P, W]) hook(key K, w W) {
	t := trackableOf(w)
	if t == nil {
		return
	}
	h := d.valueToKeys[t]
	if h == nil {
		if d.valueToKeys == nil {
			d.valueToKeys = make(map[Trackable]*dictHook[K])
		}
		h = &dictHook[K]{}
		h.sub = t.OnChange(d.childChanged)
		d.valueToKeys[t] = h
	}
	if !slices.Contains(h.order, key) {
		h.order = append(h.order, key)
	}
}

func (d *Dict[K, P, W]) unhook(key K, w W) {
	t := trackableOf(w)
	if t == nil {
		return
	}
	h := d.valueToKeys[t]
	if h == nil {
		return
	}
	if i := slices.Index(h.order, key); i >= 0 {
		h.order = slices.Delete(h.order, i, i+1)
	}
	if len(h.order) == 0 {
		delete(d.valueToKeys, t)
		t.Unsubscribe(h.sub)
	}
}

func (d *Dict[K, P, W]) raise(e ChangeEvent) {
	d.dirty = true
	d.events.emit(d, e)
}

func (d *Dict[K, P, W]) childChanged(sender Trackable, e ChangeEvent) {
	d.dirty = true
	h := d.valueToKeys[sender]
	if h == nil {
		return
	}
	for _, key := range slices.Clone(h.order) {
		d.events.emit(d, e.ChildOfDict(NewPayload(key)))
	}
}

func (d *Dict[K, P, W]) Len() int {
	if d == nil {
		return 0
	}
	return len(d.items)
}

func (d *Dict[K, P, W]) Get(key K) (W, bool) {
	w, found := d.items[key]
	return w, found
}

// At returns the value stored under key, or the zero W.
func (d *Dict[K, P, W]) At(key K) W {
	return d.items[key]
}

func (d *Dict[K, P, W]) ContainsKey(key K) bool {
	_, found := d.items[key]
	return found
}

// Set stores v under key, raising CollectionAdd for a new key and
// CollectionReplace for an existing one. Storing a value equal to the current
// one is a no-op and returns false.
func (d *Dict[K, P, W]) Set(key K, v P) bool {
	return d.SetWrapped(key, d.wrap(v))
}

// SetWrapped is Set for a value that is already wrapped. w is stored as is,
// so storing the current trackable again changes nothing.
func (d *Dict[K, P, W]) SetWrapped(key K, w W) bool {
	old, had := d.items[key]
	if had && old == w {
		return false
	}
	if had {
		d.unhook(key, old)
	}
	d.items[key] = w
	d.hook(key, w)
	if had {
		d.raise(DictReplaceEvent(NewPayload(old), NewPayload(w), NewPayload(key)))
	} else {
		d.raise(DictAddEvent(NewPayload(w), NewPayload(key)))
	}
	return true
}

// TryAdd stores v under key only if key is absent.
func (d *Dict[K, P, W]) TryAdd(key K, v P) bool {
	if _, had := d.items[key]; had {
		return false
	}
	return d.SetWrapped(key, d.wrap(v))
}

func (d *Dict[K, P, W]) TryAddWrapped(key K, w W) bool {
	if _, had := d.items[key]; had {
		return false
	}
	return d.SetWrapped(key, w)
}

func (d *Dict[K, P, W]) Remove(key K) bool {
	old, had := d.items[key]
	if !had {
		return false
	}
	d.unhook(key, old)
	delete(d.items, key)
	d.raise(DictRemoveEvent(NewPayload(old), NewPayload(key)))
	return true
}

// Clear removes all entries. It raises a CollectionClear event even when the
// dict is already empty.
func (d *Dict[K, P, W]) Clear() {
	for t, h := range d.valueToKeys {
		t.Unsubscribe(h.sub)
	}
	clear(d.valueToKeys)
	clear(d.items)
	d.raise(DictClearEvent())
}

func (d *Dict[K, P, W]) Keys() iter.Seq[K] {
	return maps.Keys(d.items)
}

func (d *Dict[K, P, W]) All() iter.Seq2[K, W] {
	return maps.All(d.items)
}

// keysByString orders the keys of m by their rendering so that hooks built
// from a Go map do not depend on map iteration order.
func keysByString[K comparable, W any](m map[K]W) []K {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, func(a, b K) int {
		return cmp.Compare(NewPayload(a).String(), NewPayload(b).String())
	})
	return keys
}

// SortedKeys is a helper for deterministic iteration in tests and dumps.
func SortedKeys[K cmp.Ordered, P any, W comparable](d *Dict[K, P, W]) []K {
	return slices.Sorted(maps.Keys(d.items))
}
