package trackable

import "fmt"

type (
	SegmentKind uint8

	ChangeKind uint8
)

const (
	SegmentProperty SegmentKind = iota + 1
	SegmentList
	SegmentSet
	SegmentDict
)

const (
	ChangeNone ChangeKind = iota
	PropertySet
	CollectionAdd
	CollectionRemove
	CollectionReplace
	CollectionClear
	ChildChange
)

func (v SegmentKind) IsCollection() bool {
	return v == SegmentList || v == SegmentSet || v == SegmentDict
}

func (v SegmentKind) String() string {
	switch v {
	case SegmentProperty:
		return "property"
	case SegmentList:
		return "list"
	case SegmentSet:
		return "set"
	case SegmentDict:
		return "dict"
	default:
		return fmt.Sprintf("invalid segment kind %d", int(v))
	}
}

func (v ChangeKind) String() string {
	switch v {
	case ChangeNone:
		return "none"
	case PropertySet:
		return "set"
	case CollectionAdd:
		return "add"
	case CollectionRemove:
		return "remove"
	case CollectionReplace:
		return "replace"
	case CollectionClear:
		return "clear"
	case ChildChange:
		return "child"
	default:
		return fmt.Sprintf("invalid change kind %d", int(v))
	}
}
