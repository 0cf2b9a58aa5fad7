package changelog

import (
	"context"
	"iter"
	"log/slog"

	"github.com/andreyvit/trackable"
)

// DefaultScanLimit is how far back AddCoalescing looks for a mergeable event
// when given a non-positive limit.
const DefaultScanLimit = 32

type Options struct {
	Context   context.Context
	DebugName string
	Capacity  int // initial capacity of the event slice
	ScanLimit int // default look-back of Coalescer and AddCoalescing(e, 0)

	Logger  *slog.Logger
	Verbose bool
}

// Buffer is an ordered log of change events with two compaction strategies:
// batch Pack and incremental AddCoalescing. The zero value is ready to use.
//
// Buffer is not safe for concurrent use, just like the trackables feeding it.
type Buffer struct {
	events []trackable.ChangeEvent
	keys   []pathKey // parallel to events

	context   context.Context
	debugName string
	scanLimit int
	logger    *slog.Logger
	verbose   bool

	stats Stats
}

func New(o Options) *Buffer {
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.DebugName == "" {
		o.DebugName = "changelog"
	}
	if o.ScanLimit <= 0 {
		o.ScanLimit = DefaultScanLimit
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	b := &Buffer{
		context:   o.Context,
		debugName: o.DebugName,
		scanLimit: o.ScanLimit,
		logger:    o.Logger,
		verbose:   o.Verbose,
	}
	if o.Capacity > 0 {
		b.events = make([]trackable.ChangeEvent, 0, o.Capacity)
		b.keys = make([]pathKey, 0, o.Capacity)
	}
	return b
}

func (b *Buffer) String() string {
	if b.debugName == "" {
		return "changelog"
	}
	return b.debugName
}

func (b *Buffer) Count() int {
	return len(b.events)
}

func (b *Buffer) At(i int) trackable.ChangeEvent {
	if i < 0 || i >= len(b.events) {
		panic(&trackable.IndexError{Index: i, Len: len(b.events)})
	}
	return b.events[i]
}

// Events returns the buffered events in order. The buffer must not be
// modified during iteration.
func (b *Buffer) Events() iter.Seq2[int, trackable.ChangeEvent] {
	return func(yield func(int, trackable.ChangeEvent) bool) {
		for i, e := range b.events {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Snapshot returns a copy of the buffered events.
func (b *Buffer) Snapshot() []trackable.ChangeEvent {
	if len(b.events) == 0 {
		return nil
	}
	return append([]trackable.ChangeEvent(nil), b.events...)
}

// Drain returns the buffered events and empties the buffer.
func (b *Buffer) Drain() []trackable.ChangeEvent {
	events := b.Snapshot()
	b.Clear()
	return events
}

func (b *Buffer) Clear() {
	clear(b.events)
	b.events = b.events[:0]
	b.keys = b.keys[:0]
}

// Add appends e without any compaction.
func (b *Buffer) Add(e trackable.ChangeEvent) {
	b.events = append(b.events, e)
	b.keys = append(b.keys, keyOf(e.Path()))
	b.stats.Added++
}

// AddCoalescing appends e unless it can be folded into a recent event on the
// same path. Up to scanLimit most recent entries are examined, newest first;
// a non-positive scanLimit means the buffer's default.
//
// The scan stops at the first entry whose path is an ancestor or descendant
// of e's, and e is appended. When a same-path entry is found first, the
// contiguous run of same-path entries ending there is collapsed into the
// run's first position, combining its old value with e's new value, and the
// entries after it keep their order.
func (b *Buffer) AddCoalescing(e trackable.ChangeEvent, scanLimit int) {
	if scanLimit <= 0 {
		scanLimit = b.defaultScanLimit()
	}
	k := keyOf(e.Path())

	match := -1
	stop := max(len(b.events)-scanLimit, 0)
	for i := len(b.events) - 1; i >= stop; i-- {
		other := &b.keys[i]
		if k.equal(other) {
			match = i
			break
		}
		if k.related(other) {
			break
		}
	}
	if match < 0 {
		b.events = append(b.events, e)
		b.keys = append(b.keys, k)
		b.stats.Added++
		return
	}

	start := match
	for start > 0 && b.keys[start-1].equal(&k) {
		start--
	}
	b.events[start] = trackable.Merge(b.events[start], e)
	b.keys[start] = k
	if match > start {
		b.removeRange(start+1, match+1)
	}
	b.stats.Added++
	b.stats.Coalesced += 1 + match - start
}

func (b *Buffer) removeRange(from, to int) {
	n := len(b.events)
	copy(b.events[from:], b.events[to:])
	copy(b.keys[from:], b.keys[to:])
	clear(b.events[n-(to-from):])
	b.events = b.events[:n-(to-from)]
	b.keys = b.keys[:n-(to-from)]
}

func (b *Buffer) defaultScanLimit() int {
	if b.scanLimit <= 0 {
		return DefaultScanLimit
	}
	return b.scanLimit
}

// Pack merges every group of same-path events into the group's first
// position, unless an event on an ancestor or descendant path sits between
// the group's first and last occurrence. Unrelated events, and groups that
// could not be merged, keep their positions relative to each other.
//
// Packing an already packed buffer changes nothing.
func (b *Buffer) Pack() {
	n := len(b.events)
	b.stats.Packs++
	if n < 2 {
		return
	}

	sessionsPtr := getSessions()
	defer releaseSessions(sessionsPtr)
	index := getSessionIndex()
	defer releaseSessionIndex(index)
	removedPtr := getRemoved(n)
	defer releaseRemoved(removedPtr)

	sessions := *sessionsPtr
	for i := range b.keys {
		if si, found := index[b.keys[i]]; found {
			sessions[si].add(i)
		} else {
			index[b.keys[i]] = len(sessions)
			sessions = append(sessions, mergeSession{key: b.keys[i], first: i, last: i, count: 1})
		}
	}
	*sessionsPtr = sessions

	removed := *removedPtr
	var merged, blocked int
	for si := range sessions {
		s := &sessions[si]
		if !s.needsMerge() {
			continue
		}
		if b.blocked(s) {
			blocked++
			continue
		}
		b.events[s.first] = trackable.Merge(b.events[s.first], b.events[s.last])
		for j := s.first + 1; j <= s.last; j++ {
			if b.keys[j].equal(&s.key) {
				removed[j] = true
			}
		}
		merged++
	}

	w := 0
	for i := 0; i < n; i++ {
		if removed[i] {
			continue
		}
		if w != i {
			b.events[w] = b.events[i]
			b.keys[w] = b.keys[i]
		}
		w++
	}
	clear(b.events[w:])
	b.events = b.events[:w]
	b.keys = b.keys[:w]
	b.stats.Dropped += n - w

	if b.verbose {
		b.logger.LogAttrs(b.ctx(), slog.LevelDebug, "changelog: packed", slog.String("log", b.String()), slog.Int("before", n), slog.Int("after", w), slog.Int("merged", merged), slog.Int("blocked", blocked))
	}
}

func (b *Buffer) blocked(s *mergeSession) bool {
	for j := s.first + 1; j < s.last; j++ {
		if s.key.conflicts(&b.keys[j]) {
			return true
		}
	}
	return false
}

func (b *Buffer) ctx() context.Context {
	if b.context == nil {
		return context.Background()
	}
	return b.context
}

// Recorder returns a handler that appends every event it receives.
func (b *Buffer) Recorder() trackable.Handler {
	return func(sender trackable.Trackable, e trackable.ChangeEvent) {
		b.Add(e)
	}
}

// Coalescer returns a handler that feeds events through AddCoalescing with
// the given look-back; a non-positive scanLimit means the buffer's default.
func (b *Buffer) Coalescer(scanLimit int) trackable.Handler {
	return func(sender trackable.Trackable, e trackable.ChangeEvent) {
		b.AddCoalescing(e, scanLimit)
	}
}

// Track subscribes h to t and returns a function that unsubscribes it.
func Track(t trackable.Trackable, h trackable.Handler) (stop func()) {
	sub := t.OnChange(h)
	return func() {
		t.Unsubscribe(sub)
	}
}
