package changelog

// mergeSession tracks the occurrences of one path key during a Pack pass.
type mergeSession struct {
	key   pathKey
	first int
	last  int
	count int
}

func (s *mergeSession) add(i int) {
	s.last = i
	s.count++
}

func (s *mergeSession) needsMerge() bool {
	return s.count >= 2
}
