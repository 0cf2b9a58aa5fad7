package trackable

// Handler receives change events. sender is the trackable whose Changed
// event fired, which is the node the handler was subscribed to.
type Handler func(sender Trackable, e ChangeEvent)

// Subscription identifies a handler registered via OnChange. The zero value
// is never issued.
type Subscription uint64

// Trackable is the capability set of every tracked object and collection.
type Trackable interface {
	OnChange(h Handler) Subscription
	Unsubscribe(sub Subscription)
	IsDirty() bool
	AcceptChanges()
}

type subscriber struct {
	sub Subscription
	fn  Handler
}

// emitter is a multicast list of handlers. The subscriber slice is replaced
// rather than edited, so a handler may unsubscribe while an emit is running.
type emitter struct {
	subs []subscriber
	last Subscription
}

func (em *emitter) add(fn Handler) Subscription {
	if fn == nil {
		panic("nil handler")
	}
	em.last++
	subs := make([]subscriber, len(em.subs), len(em.subs)+1)
	copy(subs, em.subs)
	em.subs = append(subs, subscriber{em.last, fn})
	return em.last
}

func (em *emitter) remove(sub Subscription) bool {
	for i, s := range em.subs {
		if s.sub == sub {
			subs := make([]subscriber, 0, len(em.subs)-1)
			subs = append(subs, em.subs[:i]...)
			em.subs = append(subs, em.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (em *emitter) emit(sender Trackable, e ChangeEvent) {
	for _, s := range em.subs {
		s.fn(sender, e)
	}
}

func (em *emitter) count() int {
	return len(em.subs)
}

// Node implements Trackable for generated wrapper types. A wrapper embeds
// Node, calls Init with itself and then uses AttachChild, DetachChild and
// Raise (usually via SetValue and SetChild) from its property setters.
type Node struct {
	owner    Trackable
	changed  emitter
	children map[Trackable]Subscription
	dirty    bool
}

func (n *Node) Init(owner Trackable) {
	if owner == nil {
		panic("nil owner")
	}
	n.owner = owner
}

func (n *Node) Owner() Trackable {
	if n.owner == nil {
		panic("trackable: Node used before Init")
	}
	return n.owner
}

func (n *Node) OnChange(h Handler) Subscription {
	return n.changed.add(h)
}

func (n *Node) Unsubscribe(sub Subscription) {
	n.changed.remove(sub)
}

func (n *Node) IsDirty() bool {
	return n.dirty
}

func (n *Node) MarkDirty() {
	n.dirty = true
}

// AcceptChanges clears the dirty flag of every attached child, then its own.
// No events are raised.
func (n *Node) AcceptChanges() {
	for child := range n.children {
		child.AcceptChanges()
	}
	n.dirty = false
}

// Raise delivers e to the handlers of this node with the owner as sender.
func (n *Node) Raise(e ChangeEvent) {
	n.changed.emit(n.Owner(), e)
}

// AttachChild subscribes to child so that its changes bubble up with the
// given member prepended to their paths. Attaching an already attached child
// is a no-op, and so is attaching nil.
func (n *Node) AttachChild(m Member, child Trackable) {
	if child == nil || isNil(child) {
		return
	}
	if _, found := n.children[child]; found {
		return
	}
	if n.children == nil {
		n.children = make(map[Trackable]Subscription)
	}
	n.children[child] = child.OnChange(func(sender Trackable, e ChangeEvent) {
		n.dirty = true
		n.Raise(e.ChildOfProperty(m))
	})
}

func (n *Node) DetachChild(child Trackable) {
	if child == nil {
		return
	}
	sub, found := n.children[child]
	if !found {
		return
	}
	delete(n.children, child)
	child.Unsubscribe(sub)
}

func (n *Node) IsAttached(child Trackable) bool {
	_, found := n.children[child]
	return found
}

func (n *Node) ChildCount() int {
	return len(n.children)
}

// SetValue implements a plain property setter: if v differs from *field, it
// assigns it, marks n dirty and raises a PropertySet event.
func SetValue[T comparable](n *Node, m Member, field *T, v T) bool {
	old := *field
	if old == v {
		return false
	}
	*field = v
	n.dirty = true
	n.Raise(PropertySetEvent(m, NewPayload(old), NewPayload(v)))
	return true
}

// SetChild implements a setter for a property holding a trackable object or
// collection. v must already be wrapped. The old value is detached before the
// new one is attached.
func SetChild[W comparable](n *Node, m Member, field *W, v W) bool {
	old := *field
	if old == v {
		return false
	}
	if t := trackableOf(old); t != nil {
		n.DetachChild(t)
	}
	*field = v
	if t := trackableOf(v); t != nil {
		n.AttachChild(m, t)
	}
	n.dirty = true
	n.Raise(PropertySetEvent(m, NewPayload(old), NewPayload(v)))
	return true
}

// hookTable keeps one subscription per distinct trackable element of a
// collection, counting how many times the element is present.
type hookTable struct {
	handler Handler
	hooks   map[Trackable]*hook
}

type hook struct {
	sub  Subscription
	refs int
}

func (ht *hookTable) hook(v any) {
	t := trackableOf(v)
	if t == nil {
		return
	}
	if h := ht.hooks[t]; h != nil {
		h.refs++
		return
	}
	if ht.hooks == nil {
		ht.hooks = make(map[Trackable]*hook)
	}
	ht.hooks[t] = &hook{t.OnChange(ht.handler), 1}
}

func (ht *hookTable) unhook(v any) {
	t := trackableOf(v)
	if t == nil {
		return
	}
	h := ht.hooks[t]
	if h == nil {
		return
	}
	h.refs--
	if h.refs <= 0 {
		delete(ht.hooks, t)
		t.Unsubscribe(h.sub)
	}
}

func (ht *hookTable) unhookAll() {
	for t, h := range ht.hooks {
		t.Unsubscribe(h.sub)
	}
	clear(ht.hooks)
}

func (ht *hookTable) len() int {
	return len(ht.hooks)
}
