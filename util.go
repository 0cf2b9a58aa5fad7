package trackable

import "reflect"

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// trackableOf returns v as a Trackable, or nil if v is not one (including
// typed nil pointers to wrapper types).
func trackableOf(v any) Trackable {
	t, ok := v.(Trackable)
	if !ok || isNil(t) {
		return nil
	}
	return t
}

func identity[T any](v T) T {
	return v
}
