package sample

import (
	"strconv"

	"github.com/andreyvit/trackable"
	"github.com/google/uuid"
)

var (
	SampleRootID        = trackable.Member{ID: 1, Name: "ID"}
	SampleRootName      = trackable.Member{ID: 2, Name: "Name"}
	SampleRootAge       = trackable.Member{ID: 3, Name: "Age"}
	SampleRootInner     = trackable.Member{ID: 4, Name: "Inner"}
	SampleRootInnerList = trackable.Member{ID: 5, Name: "InnerList"}
	SampleRootList      = trackable.Member{ID: 6, Name: "List"}
	SampleRootInnerSet  = trackable.Member{ID: 7, Name: "InnerSet"}
	SampleRootSet       = trackable.Member{ID: 8, Name: "Set"}
	SampleRootInnerDict = trackable.Member{ID: 9, Name: "InnerDict"}
	SampleRootDict      = trackable.Member{ID: 10, Name: "Dict"}

	SampleInnerDescription = trackable.Member{ID: 1, Name: "Description"}
)

type (
	InnerList = trackable.List[*SampleInner, *TrackableSampleInner]
	InnerSet  = trackable.Set[*SampleInner, *TrackableSampleInner]
	InnerDict = trackable.Dict[string, *SampleInner, *TrackableSampleInner]
)

type TrackableSampleRoot struct {
	trackable.Node
	id        uuid.UUID
	name      string
	age       int
	inner     *TrackableSampleInner
	innerList *InnerList
	list      *trackable.List[string, string]
	innerSet  *InnerSet
	set       *trackable.Set[string, string]
	innerDict *InnerDict
	dict      *trackable.Dict[string, string, string]
}

var _ trackable.Convertible[*SampleRoot, *TrackableSampleRoot] = (*TrackableSampleRoot)(nil)

func NewTrackableSampleRoot(p *SampleRoot) *TrackableSampleRoot {
	t := &TrackableSampleRoot{
		id:        p.ID,
		name:      p.Name,
		age:       p.Age,
		inner:     p.Inner.AsTrackable(),
		innerList: trackable.AsTrackableList[*SampleInner, *TrackableSampleInner](p.InnerList),
		list:      trackable.NewList(p.List),
		innerSet:  trackable.AsTrackableSet[*SampleInner, *TrackableSampleInner](p.InnerSet),
		set:       trackable.NewSet(p.Set),
		innerDict: trackable.AsTrackableDict[string, *SampleInner, *TrackableSampleInner](p.InnerDict),
		dict:      trackable.NewDict(p.Dict),
	}
	t.Init(t)
	t.AttachChild(SampleRootInner, t.inner)
	t.AttachChild(SampleRootInnerList, t.innerList)
	t.AttachChild(SampleRootList, t.list)
	t.AttachChild(SampleRootInnerSet, t.innerSet)
	t.AttachChild(SampleRootSet, t.set)
	t.AttachChild(SampleRootInnerDict, t.innerDict)
	t.AttachChild(SampleRootDict, t.dict)
	return t
}

func (t *TrackableSampleRoot) AsTrackable() *TrackableSampleRoot {
	return t
}

func (t *TrackableSampleRoot) AsNormal() *SampleRoot {
	if t == nil {
		return nil
	}
	return t.Normalize()
}

func (t *TrackableSampleRoot) Normalize() *SampleRoot {
	return &SampleRoot{
		ID:        t.id,
		Name:      t.name,
		Age:       t.age,
		Inner:     t.inner.AsNormal(),
		InnerList: t.innerList.Normalize(),
		List:      t.list.Normalize(),
		InnerSet:  t.innerSet.Normalize(),
		Set:       t.set.Normalize(),
		InnerDict: t.innerDict.Normalize(),
		Dict:      t.dict.Normalize(),
	}
}

func (t *TrackableSampleRoot) ID() uuid.UUID {
	return t.id
}
func (t *TrackableSampleRoot) SetID(v uuid.UUID) bool {
	return trackable.SetValue(&t.Node, SampleRootID, &t.id, v)
}

func (t *TrackableSampleRoot) Name() string {
	return t.name
}
func (t *TrackableSampleRoot) SetName(v string) bool {
	return trackable.SetValue(&t.Node, SampleRootName, &t.name, v)
}

func (t *TrackableSampleRoot) Age() int {
	return t.age
}
func (t *TrackableSampleRoot) SetAge(v int) bool {
	return trackable.SetValue(&t.Node, SampleRootAge, &t.age, v)
}

func (t *TrackableSampleRoot) Inner() *TrackableSampleInner {
	return t.inner
}
func (t *TrackableSampleRoot) SetInner(v *SampleInner) bool {
	return t.AssignInner(v.AsTrackable())
}
func (t *TrackableSampleRoot) AssignInner(v *TrackableSampleInner) bool {
	return trackable.SetChild(&t.Node, SampleRootInner, &t.inner, v)
}

func (t *TrackableSampleRoot) InnerList() *InnerList {
	return t.innerList
}
func (t *TrackableSampleRoot) SetInnerList(v []*SampleInner) bool {
	return trackable.SetChild(&t.Node, SampleRootInnerList, &t.innerList, trackable.AsTrackableList[*SampleInner, *TrackableSampleInner](v))
}

func (t *TrackableSampleRoot) List() *trackable.List[string, string] {
	return t.list
}
func (t *TrackableSampleRoot) SetList(v []string) bool {
	return trackable.SetChild(&t.Node, SampleRootList, &t.list, trackable.NewList(v))
}

func (t *TrackableSampleRoot) InnerSet() *InnerSet {
	return t.innerSet
}
func (t *TrackableSampleRoot) SetInnerSet(v map[*SampleInner]struct{}) bool {
	return trackable.SetChild(&t.Node, SampleRootInnerSet, &t.innerSet, trackable.AsTrackableSet[*SampleInner, *TrackableSampleInner](v))
}

func (t *TrackableSampleRoot) Set() *trackable.Set[string, string] {
	return t.set
}
func (t *TrackableSampleRoot) SetSet(v map[string]struct{}) bool {
	return trackable.SetChild(&t.Node, SampleRootSet, &t.set, trackable.NewSet(v))
}

func (t *TrackableSampleRoot) InnerDict() *InnerDict {
	return t.innerDict
}
func (t *TrackableSampleRoot) SetInnerDict(v map[string]*SampleInner) bool {
	return trackable.SetChild(&t.Node, SampleRootInnerDict, &t.innerDict, trackable.AsTrackableDict[string, *SampleInner, *TrackableSampleInner](v))
}

func (t *TrackableSampleRoot) Dict() *trackable.Dict[string, string, string] {
	return t.dict
}
func (t *TrackableSampleRoot) SetDict(v map[string]string) bool {
	return trackable.SetChild(&t.Node, SampleRootDict, &t.dict, trackable.NewDict(v))
}

type TrackableSampleInner struct {
	trackable.Node
	description string
}

var _ trackable.Convertible[*SampleInner, *TrackableSampleInner] = (*TrackableSampleInner)(nil)

func NewTrackableSampleInner(p *SampleInner) *TrackableSampleInner {
	t := &TrackableSampleInner{
		description: p.Description,
	}
	t.Init(t)
	return t
}

func (t *TrackableSampleInner) AsTrackable() *TrackableSampleInner {
	return t
}

func (t *TrackableSampleInner) AsNormal() *SampleInner {
	if t == nil {
		return nil
	}
	return t.Normalize()
}

func (t *TrackableSampleInner) Normalize() *SampleInner {
	return &SampleInner{
		Description: t.description,
	}
}

func (t *TrackableSampleInner) Description() string {
	return t.description
}
func (t *TrackableSampleInner) SetDescription(v string) bool {
	return trackable.SetValue(&t.Node, SampleInnerDescription, &t.description, v)
}

func (t *TrackableSampleInner) String() string {
	return "SampleInner{Description: " + strconv.Quote(t.description) + "}"
}
