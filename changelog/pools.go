package changelog

import "sync"

// Scratch containers larger than this are left to the GC instead of being
// returned to their pool.
const maxPooledLen = 1 << 14

var sessionsPool = &sync.Pool{
	New: func() any {
		s := make([]mergeSession, 0, 64)
		return &s
	},
}

var sessionIndexPool = &sync.Pool{
	New: func() any {
		return make(map[pathKey]int, 64)
	},
}

var removedPool = &sync.Pool{
	New: func() any {
		s := make([]bool, 0, 256)
		return &s
	},
}

func getSessions() *[]mergeSession {
	return sessionsPool.Get().(*[]mergeSession)
}

func releaseSessions(s *[]mergeSession) {
	if cap(*s) > maxPooledLen {
		return
	}
	*s = (*s)[:0]
	sessionsPool.Put(s)
}

func getSessionIndex() map[pathKey]int {
	return sessionIndexPool.Get().(map[pathKey]int)
}

func releaseSessionIndex(m map[pathKey]int) {
	if len(m) > maxPooledLen {
		return
	}
	clear(m)
	sessionIndexPool.Put(m)
}

func getRemoved(n int) *[]bool {
	s := removedPool.Get().(*[]bool)
	if cap(*s) < n {
		*s = make([]bool, n)
	} else {
		*s = (*s)[:n]
		clear(*s)
	}
	return s
}

func releaseRemoved(s *[]bool) {
	if cap(*s) > maxPooledLen {
		return
	}
	*s = (*s)[:0]
	removedPool.Put(s)
}
