package trackable

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"unsafe"
)

// InlineSize is the largest pointer-free value a Payload stores without boxing.
const InlineSize = 24

type PayloadKind uint8

const (
	PayloadNone PayloadKind = iota
	PayloadInline
	PayloadReference
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadNone:
		return "none"
	case PayloadInline:
		return "inline"
	case PayloadReference:
		return "reference"
	default:
		return fmt.Sprintf("invalid payload kind %d", int(k))
	}
}

type inlineWords [InlineSize / 8]uint64

// Payload carries an old value, new value or key of a ChangeEvent.
//
// Pointer-free values up to InlineSize bytes (numbers, bools, enums, UUIDs,
// durations, small structs) are copied into the payload itself. Everything
// else is kept as a reference. The zero Payload means “absent”.
type Payload struct {
	typ    reflect.Type
	ref    any
	inline inlineWords
	size   uint16
	kind   PayloadKind
}

type payloadTypeInfo struct {
	inline bool
	size   uintptr
}

var payloadTypeCache sync.Map

func payloadType(typ reflect.Type) payloadTypeInfo {
	if v, ok := payloadTypeCache.Load(typ); ok {
		return v.(payloadTypeInfo)
	}
	info := payloadTypeInfo{
		inline: typ.Size() <= InlineSize && typ.Align() <= 8 && isPointerFree(typ),
		size:   typ.Size(),
	}
	actual, _ := payloadTypeCache.LoadOrStore(typ, info)
	return actual.(payloadTypeInfo)
}

func isPointerFree(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return typ.Len() == 0 || isPointerFree(typ.Elem())
	case reflect.Struct:
		for i, n := 0, typ.NumField(); i < n; i++ {
			if !isPointerFree(typ.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func NewPayload[T any](v T) Payload {
	typ := reflect.TypeFor[T]()
	info := payloadType(typ)
	if info.inline {
		var w inlineWords
		*(*T)(unsafe.Pointer(&w)) = v
		return Payload{typ: typ, kind: PayloadInline, size: uint16(info.size), inline: w}
	}
	return Payload{typ: typ, kind: PayloadReference, size: uint16(min(info.size, 0xFFFF)), ref: v}
}

func TryGet[T any](p Payload) (T, bool) {
	var zero T
	if p.kind == PayloadNone || p.typ != reflect.TypeFor[T]() {
		return zero, false
	}
	switch p.kind {
	case PayloadInline:
		w := p.inline
		return *(*T)(unsafe.Pointer(&w)), true
	case PayloadReference:
		if p.ref == nil {
			return zero, true
		}
		return p.ref.(T), true
	default:
		panic("unreachable")
	}
}

// Get returns the value held by p, panicking with *PayloadTypeError if p holds
// a value of another type.
func Get[T any](p Payload) T {
	v, ok := TryGet[T](p)
	if !ok {
		panic(&PayloadTypeError{Have: p.typ, Want: reflect.TypeFor[T]()})
	}
	return v
}

func (p Payload) Kind() PayloadKind  { return p.kind }
func (p Payload) Type() reflect.Type { return p.typ }
func (p Payload) Size() int          { return int(p.size) }
func (p Payload) IsZero() bool       { return p.kind == PayloadNone }

// IsNil reports whether p is absent or holds a nil pointer, map, slice or
// interface.
func (p Payload) IsNil() bool {
	return p.kind == PayloadNone || (p.kind == PayloadReference && isNil(p.ref))
}

// Value boxes the held value; nil for an absent payload.
func (p Payload) Value() any {
	switch p.kind {
	case PayloadNone:
		return nil
	case PayloadInline:
		w := p.inline
		return reflect.NewAt(p.typ, unsafe.Pointer(&w)).Elem().Interface()
	case PayloadReference:
		return p.ref
	default:
		panic("unreachable")
	}
}

func (p Payload) Equal(o Payload) bool {
	if p.kind != o.kind {
		return false
	}
	switch p.kind {
	case PayloadNone:
		return true
	case PayloadInline:
		return p.typ == o.typ && p.size == o.size && p.inline == o.inline
	case PayloadReference:
		return p.typ == o.typ && sameRef(p.ref, o.ref)
	default:
		panic("unreachable")
	}
}

// sameRef compares comparable values with == (pointer identity for objects).
// Slices, maps and funcs compare by the address of their data, and any other
// value that cannot be compared, such as a struct holding a slice, compares by
// the identity of its boxed copy.
func sameRef(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Slice:
		return va.Len() == vb.Len() && va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Map, reflect.Func:
		return va.UnsafePointer() == vb.UnsafePointer()
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return boxOf(a) == boxOf(b)
}

// boxOf returns the data word of an interface value.
func boxOf(v any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1]
}

var stringerType = reflect.TypeFor[fmt.Stringer]()

func (p Payload) String() string {
	switch p.kind {
	case PayloadNone:
		return ""
	case PayloadReference:
		if isNil(p.ref) {
			return ""
		}
		switch v := p.ref.(type) {
		case string:
			return v
		case fmt.Stringer:
			return v.String()
		default:
			return fmt.Sprint(v)
		}
	case PayloadInline:
		if p.typ.Implements(stringerType) {
			return p.Value().(fmt.Stringer).String()
		}
		w := p.inline
		ptr := unsafe.Pointer(&w)
		switch p.typ.Kind() {
		case reflect.Bool:
			return strconv.FormatBool(*(*bool)(ptr))
		case reflect.Int:
			return strconv.FormatInt(int64(*(*int)(ptr)), 10)
		case reflect.Int8:
			return strconv.FormatInt(int64(*(*int8)(ptr)), 10)
		case reflect.Int16:
			return strconv.FormatInt(int64(*(*int16)(ptr)), 10)
		case reflect.Int32:
			return strconv.FormatInt(int64(*(*int32)(ptr)), 10)
		case reflect.Int64:
			return strconv.FormatInt(*(*int64)(ptr), 10)
		case reflect.Uint:
			return strconv.FormatUint(uint64(*(*uint)(ptr)), 10)
		case reflect.Uint8:
			return strconv.FormatUint(uint64(*(*uint8)(ptr)), 10)
		case reflect.Uint16:
			return strconv.FormatUint(uint64(*(*uint16)(ptr)), 10)
		case reflect.Uint32:
			return strconv.FormatUint(uint64(*(*uint32)(ptr)), 10)
		case reflect.Uint64:
			return strconv.FormatUint(*(*uint64)(ptr), 10)
		case reflect.Float32:
			return strconv.FormatFloat(float64(*(*float32)(ptr)), 'g', -1, 32)
		case reflect.Float64:
			return strconv.FormatFloat(*(*float64)(ptr), 'g', -1, 64)
		default:
			return fmt.Sprint(p.Value())
		}
	default:
		panic("unreachable")
	}
}

func (p Payload) GoString() string {
	if p.kind == PayloadNone {
		return "Payload{}"
	}
	return fmt.Sprintf("Payload{%v %s %q}", p.typ, p.kind, p.String())
}
