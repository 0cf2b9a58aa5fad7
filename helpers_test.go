package trackable

import "testing"

var itemName = Member{ID: 1, Name: "Name"}

type item struct {
	Name string
}

func (p *item) AsTrackable() *trackedItem {
	if p == nil {
		return nil
	}
	t := &trackedItem{name: p.Name}
	t.Init(t)
	return t
}

func (p *item) AsNormal() *item {
	return p
}

type trackedItem struct {
	Node
	name string
}

func newItem(name string) *trackedItem {
	return (&item{Name: name}).AsTrackable()
}

func (t *trackedItem) AsTrackable() *trackedItem {
	return t
}

func (t *trackedItem) AsNormal() *item {
	if t == nil {
		return nil
	}
	return &item{Name: t.name}
}

func (t *trackedItem) SetName(v string) bool {
	return SetValue(&t.Node, itemName, &t.name, v)
}

func (t *trackedItem) String() string {
	return t.name
}

type recorded struct {
	sender Trackable
	event  ChangeEvent
}

type recorder struct {
	got []recorded
}

func record(t testing.TB, tr Trackable) *recorder {
	r := &recorder{}
	sub := tr.OnChange(func(sender Trackable, e ChangeEvent) {
		r.got = append(r.got, recorded{sender, e})
	})
	t.Cleanup(func() {
		tr.Unsubscribe(sub)
	})
	return r
}

func (r *recorder) events() []ChangeEvent {
	events := make([]ChangeEvent, len(r.got))
	for i, g := range r.got {
		events[i] = g.event
	}
	return events
}

func (r *recorder) paths() []string {
	paths := make([]string, len(r.got))
	for i, g := range r.got {
		paths[i] = g.event.PathString()
	}
	return paths
}

func (r *recorder) last() ChangeEvent {
	if len(r.got) == 0 {
		panic("no events recorded")
	}
	return r.got[len(r.got)-1].event
}

func (r *recorder) reset() {
	r.got = nil
}
