package changelog

import (
	"fmt"
	"strings"
)

type DumpFlags uint64

const (
	DumpHeader = DumpFlags(1 << iota)
	DumpEvents
	DumpKeys
	DumpStats

	DumpAll = DumpFlags(0xFFFFFFFFFFFFFFFF)
)

var (
	dumpSep1 = strings.Repeat("=", 80)
	dumpSep2 = strings.Repeat("-", 60)
)

func (f DumpFlags) Contains(v DumpFlags) bool {
	return (f & v) == v
}

// Dump renders the buffer for debugging and test failure messages.
func (b *Buffer) Dump(f DumpFlags) string {
	var w strings.Builder
	if f.Contains(DumpHeader) {
		fmt.Fprintln(&w, dumpSep1)
		fmt.Fprintf(&w, "%s (%d events)\n", b.String(), len(b.events))
	}
	if f.Contains(DumpStats) {
		s := b.stats
		fmt.Fprintf(&w, "%s.stats: added = %d, coalesced = %d, packs = %d, dropped = %d\n", b.String(), s.Added, s.Coalesced, s.Packs, s.Dropped)
	}
	if f.Contains(DumpEvents) {
		if f.Contains(DumpHeader) || f.Contains(DumpStats) {
			fmt.Fprintln(&w, dumpSep2)
		}
		for i, e := range b.events {
			fmt.Fprintf(&w, "%d: %v", i, e)
			if f.Contains(DumpKeys) {
				fmt.Fprintf(&w, "  [%s #%016x]", e.Path().String(), b.keys[i].hash)
			}
			w.WriteByte('\n')
		}
	}
	return w.String()
}
