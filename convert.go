package trackable

// Convertible is implemented by generated plain types and their wrappers,
// as well as by the tracked collections. On a plain value AsTrackable wraps
// and AsNormal returns the value itself; on a wrapper AsTrackable returns the
// wrapper itself and AsNormal returns a detached plain copy.
type Convertible[P, W any] interface {
	AsTrackable() W
	AsNormal() P
}

func AsTrackable[W any](v interface{ AsTrackable() W }) W {
	return v.AsTrackable()
}

func AsNormal[P any](v interface{ AsNormal() P }) P {
	return v.AsNormal()
}

// AsTrackableList and friends build tracked collections over elements that
// are themselves generated wrapper types.
func AsTrackableList[P Convertible[P, W], W comparable](items []P) *List[P, W] {
	return WrapList(items, wrapElem[P, W], unwrapElem[P, W])
}

func AsTrackableSet[P interface {
	comparable
	Convertible[P, W]
}, W comparable](items map[P]struct{}) *Set[P, W] {
	return WrapSet(items, wrapElem[P, W], unwrapElem[P, W])
}

func AsTrackableDict[K comparable, P Convertible[P, W], W comparable](items map[K]P) *Dict[K, P, W] {
	return WrapDict(items, wrapElem[P, W], unwrapElem[P, W])
}

func wrapElem[P Convertible[P, W], W any](v P) W {
	return v.AsTrackable()
}

func unwrapElem[P Convertible[P, W], W any](w W) P {
	if n, ok := any(w).(interface{ AsNormal() P }); ok {
		return n.AsNormal()
	}
	var zero P
	return zero
}
