package changelog

// Stats are cumulative counters of a Buffer. Clear does not reset them.
type Stats struct {
	Added     int // events passed to Add or AddCoalescing
	Coalesced int // entries folded away by AddCoalescing, including incoming events
	Packs     int
	Dropped   int // entries removed by Pack
}

// Retained is the number of events that were kept as separate entries.
func (s *Stats) Retained() int {
	return s.Added - s.Coalesced - s.Dropped
}

func (b *Buffer) Stats() Stats {
	return b.stats
}

func (b *Buffer) ResetStats() {
	b.stats = Stats{}
}
