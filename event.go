package trackable

import (
	"strconv"
	"strings"
)

// NoIndex is the Index of events that do not address a list position.
const NoIndex = -1

// ChangeEvent describes a single mutation, addressed by a path from the root
// trackable that reported it down to the node that was mutated.
//
// Events are immutable. Bubbling through a parent produces a new event with a
// longer path.
type ChangeEvent struct {
	path     Path
	oldValue Payload
	newValue Payload
	key      Payload
	index    int
}

func NewChangeEvent(path Path, oldValue, newValue Payload, index int, key Payload) ChangeEvent {
	return ChangeEvent{path, oldValue, newValue, key, index}
}

func (e ChangeEvent) Path() Path {
	return e.path
}
func (e ChangeEvent) OldValue() Payload {
	return e.oldValue
}
func (e ChangeEvent) NewValue() Payload {
	return e.newValue
}
func (e ChangeEvent) Index() int {
	return e.index
}
func (e ChangeEvent) HasIndex() bool {
	return e.index != NoIndex
}
func (e ChangeEvent) Key() Payload {
	return e.key
}
func (e ChangeEvent) HasKey() bool {
	return !e.key.IsZero()
}

// Kind returns the change kind recorded at the mutated node.
func (e ChangeEvent) Kind() ChangeKind {
	if e.path.IsEmpty() {
		return ChangeNone
	}
	return e.path.Leaf().Change
}

// RootKind returns the change kind as seen by the root, which is ChildChange
// for anything that bubbled up.
func (e ChangeEvent) RootKind() ChangeKind {
	if e.path.IsEmpty() {
		return ChangeNone
	}
	return e.path.Root().Change
}

func PropertySetEvent(m Member, oldValue, newValue Payload) ChangeEvent {
	return ChangeEvent{NewPath(PropertySegment(PropertySet, m)), oldValue, newValue, Payload{}, NoIndex}
}

func ListAddEvent(newValue Payload, index int) ChangeEvent {
	return ChangeEvent{NewPath(CollectionSegment(SegmentList, CollectionAdd)), Payload{}, newValue, Payload{}, index}
}

func ListRemoveEvent(oldValue Payload, index int) ChangeEvent {
	return ChangeEvent{NewPath(CollectionSegment(SegmentList, CollectionRemove)), oldValue, Payload{}, Payload{}, index}
}

func ListReplaceEvent(oldValue, newValue Payload, index int) ChangeEvent {
	return ChangeEvent{NewPath(CollectionSegment(SegmentList, CollectionReplace)), oldValue, newValue, Payload{}, index}
}

func ListClearEvent() ChangeEvent {
	return ChangeEvent{NewPath(CollectionSegment(SegmentList, CollectionClear)), Payload{}, Payload{}, Payload{}, NoIndex}
}

func SetAddEvent(newValue Payload) ChangeEvent {
	return ChangeEvent{NewPath(CollectionSegment(SegmentSet, CollectionAdd)), Payload{}, newValue, Payload{}, NoIndex}
}

func SetRemoveEvent(oldValue Payload) ChangeEvent {
	return ChangeEvent{NewPath(CollectionSegment(SegmentSet, CollectionRemove)), oldValue, Payload{}, Payload{}, NoIndex}
}

func SetClearEvent() ChangeEvent {
	return ChangeEvent{NewPath(CollectionSegment(SegmentSet, CollectionClear)), Payload{}, Payload{}, Payload{}, NoIndex}
}

func DictAddEvent(newValue, key Payload) ChangeEvent {
	return ChangeEvent{NewPath(CollectionSegment(SegmentDict, CollectionAdd)), Payload{}, newValue, key, NoIndex}
}

func DictRemoveEvent(oldValue, key Payload) ChangeEvent {
	return ChangeEvent{NewPath(CollectionSegment(SegmentDict, CollectionRemove)), oldValue, Payload{}, key, NoIndex}
}

func DictReplaceEvent(oldValue, newValue, key Payload) ChangeEvent {
	return ChangeEvent{NewPath(CollectionSegment(SegmentDict, CollectionReplace)), oldValue, newValue, key, NoIndex}
}

func DictClearEvent() ChangeEvent {
	return ChangeEvent{NewPath(CollectionSegment(SegmentDict, CollectionClear)), Payload{}, Payload{}, Payload{}, NoIndex}
}

func (e ChangeEvent) ChildOfProperty(m Member) ChangeEvent {
	e.path = e.path.Prepend(PropertySegment(ChildChange, m))
	return e
}

// ChildOfList attributes the event to the given list position; a negative
// index keeps the child's own index.
func (e ChangeEvent) ChildOfList(index int) ChangeEvent {
	e.path = e.path.Prepend(CollectionSegment(SegmentList, ChildChange))
	if index >= 0 {
		e.index = index
	}
	return e
}

func (e ChangeEvent) ChildOfSet() ChangeEvent {
	e.path = e.path.Prepend(CollectionSegment(SegmentSet, ChildChange))
	return e
}

// ChildOfDict attributes the event to the given key; an absent key keeps the
// child's own key.
func (e ChangeEvent) ChildOfDict(key Payload) ChangeEvent {
	e.path = e.path.Prepend(CollectionSegment(SegmentDict, ChildChange))
	if !key.IsZero() {
		e.key = key
	}
	return e
}

// Merge combines a run of events on the same path into one: the old value
// comes from first, everything else from last.
func Merge(first, last ChangeEvent) ChangeEvent {
	return ChangeEvent{last.path, first.oldValue, last.newValue, last.key, last.index}
}

// PathString renders the path for humans, e.g. "InnerList[2].Description",
// "Set[*]" or "Dict[en]". Collection segments of a Clear render empty.
func (e ChangeEvent) PathString() string {
	var buf strings.Builder
	for i := 0; i < e.path.Len(); i++ {
		seg := e.path.segs[i]
		switch seg.Kind {
		case SegmentProperty:
			if i > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(seg.Member.Name)
		case SegmentList:
			if seg.Change != CollectionClear {
				buf.WriteByte('[')
				buf.WriteString(strconv.Itoa(e.index))
				buf.WriteByte(']')
			}
		case SegmentSet:
			if seg.Change != CollectionClear {
				buf.WriteString("[*]")
			}
		case SegmentDict:
			if seg.Change != CollectionClear {
				buf.WriteByte('[')
				buf.WriteString(e.key.String())
				buf.WriteByte(']')
			}
		default:
			panic("unreachable")
		}
	}
	return buf.String()
}

func (e ChangeEvent) String() string {
	var buf strings.Builder
	buf.WriteString(e.PathString())
	buf.WriteString(" (")
	buf.WriteString(e.Kind().String())
	buf.WriteString("): ")
	buf.WriteString(loggablePayload(e.oldValue))
	buf.WriteString(" -> ")
	buf.WriteString(loggablePayload(e.newValue))
	return buf.String()
}

func loggablePayload(p Payload) string {
	if p.IsZero() {
		return "<none>"
	}
	return strconv.Quote(p.String())
}
