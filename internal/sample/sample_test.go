package sample

import (
	"testing"

	"github.com/andreyvit/trackable"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventLog struct {
	events []trackable.ChangeEvent
}

func watch(t testing.TB, tr trackable.Trackable) *eventLog {
	l := &eventLog{}
	sub := tr.OnChange(func(sender trackable.Trackable, e trackable.ChangeEvent) {
		l.events = append(l.events, e)
	})
	t.Cleanup(func() { tr.Unsubscribe(sub) })
	return l
}

func (l *eventLog) single(t testing.TB) trackable.ChangeEvent {
	t.Helper()
	require.Len(t, l.events, 1)
	e := l.events[0]
	l.events = nil
	return e
}

func changeKinds(e trackable.ChangeEvent) []trackable.ChangeKind {
	var kinds []trackable.ChangeKind
	for _, seg := range e.Path().All() {
		kinds = append(kinds, seg.Change)
	}
	return kinds
}

func newRoot() *TrackableSampleRoot {
	return (&SampleRoot{}).AsTrackable()
}

func TestRoot_Dirty(t *testing.T) {
	root := newRoot()
	var _ trackable.Trackable = root
	assert.False(t, root.IsDirty(), "fresh wrapper is clean")

	root.SetName("x")
	assert.True(t, root.IsDirty())
	root.AcceptChanges()
	assert.False(t, root.IsDirty())
	root.SetAge(1)
	assert.True(t, root.IsDirty())
}

func TestRoot_PropertySet(t *testing.T) {
	root := newRoot()
	log := watch(t, root)

	root.SetName("John Doe")
	e := log.single(t)
	assert.Equal(t, []trackable.ChangeKind{trackable.PropertySet}, changeKinds(e))
	assert.Equal(t, "Name", e.PathString())
	assert.Equal(t, "", trackable.Get[string](e.OldValue()))
	assert.Equal(t, "John Doe", trackable.Get[string](e.NewValue()))
	assert.Equal(t, trackable.NoIndex, e.Index())

	root.SetAge(30)
	e = log.single(t)
	assert.Equal(t, "Age", e.PathString())
	assert.Equal(t, 30, trackable.Get[int](e.NewValue()))

	id := uuid.New()
	root.SetID(id)
	e = log.single(t)
	assert.Equal(t, trackable.PayloadInline, e.NewValue().Kind())
	assert.Equal(t, id, trackable.Get[uuid.UUID](e.NewValue()))
}

func TestRoot_SameValue_NoEvent(t *testing.T) {
	root := (&SampleRoot{Name: "a", Age: 3}).AsTrackable()
	log := watch(t, root)

	assert.False(t, root.SetName("a"))
	assert.False(t, root.SetAge(3))
	assert.Empty(t, log.events)
	assert.False(t, root.IsDirty())
}

func TestRoot_Inner(t *testing.T) {
	root := newRoot()
	log := watch(t, root)

	root.SetInner(&SampleInner{Description: "A"})
	e := log.single(t)
	assert.Equal(t, "Inner", e.PathString())
	assert.Equal(t, trackable.PropertySet, e.Kind())
	require.NotNil(t, trackable.Get[*TrackableSampleInner](e.NewValue()))

	old := root.Inner()
	old.SetDescription("B")
	e = log.single(t)
	assert.Equal(t, []trackable.ChangeKind{trackable.ChildChange, trackable.PropertySet}, changeKinds(e))
	assert.Equal(t, "Inner.Description", e.PathString())
	assert.Equal(t, "A", e.OldValue().String())
	assert.Equal(t, "B", e.NewValue().String())
	assert.Equal(t, trackable.NoIndex, e.Index())

	root.SetInner(&SampleInner{Description: "C"})
	log.single(t)
	old.SetDescription("ignored")
	assert.Empty(t, log.events, "old inner is detached")

	root.Inner().SetDescription("D")
	assert.Equal(t, "Inner.Description", log.single(t).PathString())
}

func TestRoot_InnerList(t *testing.T) {
	root := newRoot()
	log := watch(t, root)

	root.SetInnerList([]*SampleInner{{Description: "1"}, {Description: "2"}})
	assert.Equal(t, "InnerList", log.single(t).PathString())

	root.InnerList().Add(&SampleInner{Description: "3"})
	e := log.single(t)
	assert.Equal(t, []trackable.ChangeKind{trackable.ChildChange, trackable.CollectionAdd}, changeKinds(e))
	assert.Equal(t, "InnerList[2]", e.PathString())
	assert.Equal(t, 2, e.Index())

	root.InnerList().At(0).SetDescription("1'")
	e = log.single(t)
	assert.Equal(t, []trackable.ChangeKind{trackable.ChildChange, trackable.ChildChange, trackable.PropertySet}, changeKinds(e))
	assert.Equal(t, "InnerList[0].Description", e.PathString())
	assert.Equal(t, "1", e.OldValue().String())
	assert.Equal(t, "1'", e.NewValue().String())
	assert.Equal(t, 0, e.Index())

	root.InnerList().Set(1, &SampleInner{Description: "2'"})
	e = log.single(t)
	assert.Equal(t, trackable.CollectionReplace, e.Kind())
	assert.Equal(t, "InnerList[1]", e.PathString())
	assert.Equal(t, 1, e.Index())

	root.InnerList().RemoveAt(0)
	e = log.single(t)
	assert.Equal(t, trackable.CollectionRemove, e.Kind())
	assert.Equal(t, "InnerList[0]", e.PathString())

	root.InnerList().Clear()
	e = log.single(t)
	assert.Equal(t, trackable.CollectionClear, e.Kind())
	assert.Equal(t, "InnerList", e.PathString())
	assert.Equal(t, trackable.NoIndex, e.Index())
}

func TestRoot_List(t *testing.T) {
	root := newRoot()
	log := watch(t, root)

	root.SetList([]string{"Reading", "Traveling", "Cooking"})
	assert.Equal(t, trackable.PropertySet, log.single(t).Kind())

	root.List().Set(0, "Hiking")
	e := log.single(t)
	assert.Equal(t, "List[0]", e.PathString())
	assert.Equal(t, "Reading", trackable.Get[string](e.OldValue()))
	assert.Equal(t, "Hiking", trackable.Get[string](e.NewValue()))

	root.List().Add("Swimming")
	e = log.single(t)
	assert.Equal(t, "List[3]", e.PathString())
	assert.Equal(t, 3, e.Index())

	require.True(t, root.List().Remove("Traveling"))
	e = log.single(t)
	assert.Equal(t, "List[1]", e.PathString())
	assert.Equal(t, "Traveling", e.OldValue().String())

	root.List().Clear()
	e = log.single(t)
	assert.Equal(t, []trackable.ChangeKind{trackable.ChildChange, trackable.CollectionClear}, changeKinds(e))
	assert.Equal(t, "List", e.PathString())
}

func TestRoot_Sets(t *testing.T) {
	root := newRoot()
	log := watch(t, root)

	root.SetSet(trackable.SetOf[string]())
	assert.Equal(t, "Set", log.single(t).PathString())

	require.True(t, root.Set().Add("alpha"))
	e := log.single(t)
	assert.Equal(t, "Set[*]", e.PathString())
	assert.Equal(t, "alpha", e.NewValue().String())
	assert.Equal(t, trackable.NoIndex, e.Index())

	require.False(t, root.Set().Add("alpha"))
	assert.Empty(t, log.events)

	require.True(t, root.Set().Remove("alpha"))
	e = log.single(t)
	assert.Equal(t, trackable.CollectionRemove, e.Kind())
	assert.Equal(t, "alpha", e.OldValue().String())

	root.SetInnerSet(map[*SampleInner]struct{}{})
	assert.Equal(t, "InnerSet", log.single(t).PathString())

	require.True(t, root.InnerSet().Add(&SampleInner{Description: "X"}))
	assert.Equal(t, "InnerSet[*]", log.single(t).PathString())

	var inner *TrackableSampleInner
	for w := range root.InnerSet().All() {
		inner = w
	}
	inner.SetDescription("Y")
	e = log.single(t)
	assert.Equal(t, []trackable.ChangeKind{trackable.ChildChange, trackable.ChildChange, trackable.PropertySet}, changeKinds(e))
	assert.Equal(t, "InnerSet[*].Description", e.PathString())
	assert.Equal(t, "X", e.OldValue().String())
	assert.Equal(t, "Y", e.NewValue().String())

	root.InnerSet().Clear()
	assert.Equal(t, "InnerSet", log.single(t).PathString())
	inner.SetDescription("Z")
	assert.Empty(t, log.events)
}

func TestRoot_Dicts(t *testing.T) {
	root := newRoot()
	log := watch(t, root)

	root.SetDict(map[string]string{})
	assert.Equal(t, "Dict", log.single(t).PathString())

	root.Dict().Set("en", "Hello")
	e := log.single(t)
	assert.Equal(t, trackable.CollectionAdd, e.Kind())
	assert.Equal(t, "Dict[en]", e.PathString())
	assert.Equal(t, "en", trackable.Get[string](e.Key()))

	root.Dict().Set("en", "Hello2")
	e = log.single(t)
	assert.Equal(t, trackable.CollectionReplace, e.Kind())
	assert.Equal(t, "Hello", e.OldValue().String())
	assert.Equal(t, "Hello2", e.NewValue().String())

	require.True(t, root.Dict().Remove("en"))
	e = log.single(t)
	assert.Equal(t, trackable.CollectionRemove, e.Kind())
	assert.Equal(t, "Hello2", e.OldValue().String())

	root.Dict().Clear()
	assert.Equal(t, "Dict", log.single(t).PathString())

	root.SetInnerDict(map[string]*SampleInner{})
	log.single(t)
	root.InnerDict().Set("key", &SampleInner{Description: "v"})
	assert.Equal(t, "InnerDict[key]", log.single(t).PathString())

	root.InnerDict().At("key").SetDescription("v2")
	e = log.single(t)
	assert.Equal(t, "InnerDict[key].Description", e.PathString())
	assert.Equal(t, "key", trackable.Get[string](e.Key()))
}

func TestRoot_ReplacingCollectionDetaches(t *testing.T) {
	root := (&SampleRoot{List: []string{"a"}}).AsTrackable()
	log := watch(t, root)

	old := root.List()
	root.SetList([]string{"b"})
	log.single(t)

	old.Add("ignored")
	assert.Empty(t, log.events)
	root.List().Add("c")
	assert.Equal(t, "List[1]", log.single(t).PathString())
}

func TestRoot_AcceptChanges_Recursive(t *testing.T) {
	root := (&SampleRoot{
		Inner:     &SampleInner{Description: "a"},
		InnerList: []*SampleInner{{Description: "b"}},
	}).AsTrackable()

	root.InnerList().At(0).SetDescription("b2")
	root.Inner().SetDescription("a2")
	require.True(t, root.IsDirty())
	require.True(t, root.InnerList().IsDirty())

	root.AcceptChanges()
	assert.False(t, root.IsDirty())
	assert.False(t, root.Inner().IsDirty())
	assert.False(t, root.InnerList().IsDirty())
	assert.False(t, root.InnerList().At(0).IsDirty())
}

func TestRoot_AsNormal(t *testing.T) {
	src := &SampleRoot{
		ID:        uuid.New(),
		Name:      "n",
		Age:       7,
		Inner:     &SampleInner{Description: "i"},
		InnerList: []*SampleInner{{Description: "l"}},
		List:      []string{"x"},
		InnerSet:  map[*SampleInner]struct{}{{Description: "s"}: {}},
		Set:       trackable.SetOf("y"),
		InnerDict: map[string]*SampleInner{"k": {Description: "d"}},
		Dict:      map[string]string{"a": "b"},
	}
	root := src.AsTrackable()
	root.List().Add("z")

	out := root.AsNormal()
	assert.Equal(t, src.ID, out.ID)
	assert.Equal(t, []string{"x", "z"}, out.List)
	assert.Equal(t, []string{"x"}, src.List, "source is not modified")
	assert.Equal(t, "i", out.Inner.Description)
	assert.NotSame(t, src.Inner, out.Inner)
	assert.Equal(t, "l", out.InnerList[0].Description)
	assert.Equal(t, "d", out.InnerDict["k"].Description)
	assert.Len(t, out.InnerSet, 1)
	assert.Equal(t, trackable.SetOf("y"), out.Set)
	assert.Equal(t, map[string]string{"a": "b"}, out.Dict)

	out.Dict["a"] = "changed"
	assert.Equal(t, "b", root.Dict().At("a"), "normal form is detached")

	var nilRoot *TrackableSampleRoot
	assert.Nil(t, nilRoot.AsNormal())
	assert.Nil(t, (*SampleRoot)(nil).AsTrackable())
}

func TestRoot_NilCollectionsStayNil(t *testing.T) {
	root := newRoot()
	assert.Nil(t, root.List())
	assert.Nil(t, root.InnerDict())
	assert.Nil(t, root.Inner())
	out := root.AsNormal()
	assert.Nil(t, out.List)
	assert.Nil(t, out.Set)
	assert.Nil(t, out.Inner)
}

func TestRoot_InnerList_Wrapped(t *testing.T) {
	root := (&SampleRoot{InnerList: []*SampleInner{{Description: "1"}}}).AsTrackable()
	log := watch(t, root)

	assert.False(t, root.InnerList().SetWrapped(0, root.InnerList().At(0)))
	assert.Empty(t, log.events)
	assert.False(t, root.IsDirty())

	x := (&SampleInner{Description: "x"}).AsTrackable()
	root.InnerList().AddWrapped(x)
	assert.Equal(t, "InnerList[1]", log.single(t).PathString())
	require.True(t, root.AssignInner(x))
	assert.Equal(t, "Inner", log.single(t).PathString())

	x.SetDescription("y")
	require.Len(t, log.events, 2)
	assert.Equal(t, "InnerList[1].Description", log.events[0].PathString())
	assert.Equal(t, "Inner.Description", log.events[1].PathString())
	assert.Equal(t, "y", root.Normalize().InnerList[1].Description)
}
