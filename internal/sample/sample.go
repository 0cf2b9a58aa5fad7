// Package sample holds a small tracked model used by tests and benchmarks.
//
// The Trackable* types have the exact shape a wrapper generator emits for a
// plain type: a struct embedding trackable.Node with one accessor and one
// setter per property, a deep-wrapping constructor, Normalize and the
// AsTrackable/AsNormal pair.
package sample

import "github.com/google/uuid"

type SampleRoot struct {
	ID        uuid.UUID
	Name      string
	Age       int
	Inner     *SampleInner
	InnerList []*SampleInner
	List      []string
	InnerSet  map[*SampleInner]struct{}
	Set       map[string]struct{}
	InnerDict map[string]*SampleInner
	Dict      map[string]string
}

type SampleInner struct {
	Description string
}

func (p *SampleRoot) AsTrackable() *TrackableSampleRoot {
	if p == nil {
		return nil
	}
	return NewTrackableSampleRoot(p)
}

func (p *SampleRoot) AsNormal() *SampleRoot {
	return p
}

func (p *SampleInner) AsTrackable() *TrackableSampleInner {
	if p == nil {
		return nil
	}
	return NewTrackableSampleInner(p)
}

func (p *SampleInner) AsNormal() *SampleInner {
	return p
}
