/*
Package trackable implements change-tracking wrappers for plain data models.

A plain struct is mirrored by a wrapper type that embeds Node and exposes a
getter and a setter per property. Every mutation made through a wrapper, or
through one of the tracked collections it owns, raises a ChangeEvent that
bubbles up to the root with a path describing where the change happened.

We implement:

1. Node, the embeddable base of generated wrappers: subscriptions, the dirty
flag, and attaching child trackables so that their events bubble up.

2. List, Set and Dict, tracked collections whose elements may themselves be
wrappers.

3. ChangeEvent, Path and Payload, the allocation-light event representation.

4. Conversions between the plain and the tracked form (AsTrackable, AsNormal
and Normalize).

See the changelog subpackage for a buffer that records and compacts events.

# Technical Details

**Paths.**
A path is a root-first list of at most MaxPathDepth segments. Each segment
records its kind (property, list, set or dict), the change kind at that level
and, for properties, the Member. The leaf segment holds the actual change; all
other segments are ChildChange. Paths are plain arrays, so bubbling an event
copies it instead of allocating.

**Index and key.**
An event carries a single list index and a single dict key. Each list or dict
it bubbles through overrides them whenever it knows the child's position, so
the outermost collection that knows the position wins. A list uses the
child's current position; a dict raises the event once per key that maps to
the child, in the order those keys were stored.

**Payloads.**
Pointer-free values up to InlineSize bytes are stored inline, everything else
is held by reference. Reference payloads compare by identity, except strings
and other comparable values, which compare with ==.

**Dirty tracking.**
Any change marks the mutated node and all its ancestors dirty. AcceptChanges
clears the flag recursively and raises nothing.

**Attachment.**
A parent subscribes to a child exactly once, however many times the child
occurs in it. Replacing or removing a child always unsubscribes before the old
reference is dropped.

Nothing here is safe for concurrent use. Events are delivered synchronously on
the mutating goroutine, before the setter returns.
*/
package trackable
