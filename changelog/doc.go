/*
Package changelog records change events and compacts runs of changes to the
same property into one event.

Two events merge when they have the same path key: segment kinds and member
IDs, ignoring change kinds, list indices and dict keys. The merged event keeps
the old value of the first event and everything else from the last one.

Merging is refused when an event on an ancestor or a descendant path occurs
between the two. For example, in

	Inner = X
	Inner.Description = Y
	Inner = Z

the two Inner events cannot merge.

Buffer.Pack compacts the whole log at once. Buffer.AddCoalescing does the
same incrementally, looking only at a bounded number of recent entries.
*/
package changelog
