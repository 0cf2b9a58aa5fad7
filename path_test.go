package trackable

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	memberA = Member{ID: 1, Name: "A"}
	memberB = Member{ID: 2, Name: "B"}
)

func TestPath_Prepend(t *testing.T) {
	p := NewPath(PropertySegment(PropertySet, memberB))
	p2 := p.Prepend(CollectionSegment(SegmentList, ChildChange))
	p3 := p2.Prepend(PropertySegment(ChildChange, memberA))

	assert.Equal(t, 1, p.Len(), "Prepend must not modify the receiver")
	assert.Equal(t, 3, p3.Len())
	assert.Equal(t, "A:child/list:child/B:set", p3.String())
	assert.Equal(t, memberA, p3.Root().Member)
	assert.Equal(t, PropertySet, p3.Leaf().Change)
	assert.Equal(t, SegmentList, p3.At(1).Kind)

	var kinds []SegmentKind
	for _, seg := range p3.All() {
		kinds = append(kinds, seg.Kind)
	}
	assert.Equal(t, []SegmentKind{SegmentProperty, SegmentList, SegmentProperty}, kinds)
	assert.Equal(t, p3.Segments()[2], p3.Leaf())
}

func TestPath_TooDeep(t *testing.T) {
	var p Path
	for i := 0; i < MaxPathDepth; i++ {
		p = p.Prepend(CollectionSegment(SegmentSet, ChildChange))
	}
	require.Equal(t, MaxPathDepth, p.Len())

	defer func() {
		e := recover()
		require.NotNil(t, e)
		assert.True(t, errors.Is(e.(error), ErrPathTooDeep))
	}()
	p.Prepend(CollectionSegment(SegmentSet, ChildChange))
}

func TestPath_AtOutOfRange(t *testing.T) {
	defer func() {
		e, ok := recover().(*IndexError)
		require.True(t, ok)
		assert.Equal(t, 0, e.Index)
		assert.Equal(t, 0, e.Len)
	}()
	var p Path
	p.Root()
}

func TestSegment_Validation(t *testing.T) {
	assert.Panics(t, func() { PropertySegment(PropertySet, NoMember) })
	assert.Panics(t, func() { CollectionSegment(SegmentProperty, CollectionAdd) })
	assert.NotPanics(t, func() { CollectionSegment(SegmentDict, CollectionClear) })
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "dict", SegmentDict.String())
	assert.Equal(t, "replace", CollectionReplace.String())
	assert.Equal(t, "invalid change kind 99", ChangeKind(99).String())
	assert.True(t, SegmentSet.IsCollection())
	assert.False(t, SegmentProperty.IsCollection())
}
