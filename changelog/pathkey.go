package changelog

import (
	"encoding/binary"

	"github.com/andreyvit/trackable"
	"github.com/cespare/xxhash/v2"
)

// pathKey is the merge identity of a path: segment kinds and member ids, but
// neither change kinds nor list indices or dict keys. Two events on
// "List[0]" and "List[5]" thus share a key.
type pathKey struct {
	hash  uint64
	n     uint8
	kinds [trackable.MaxPathDepth]trackable.SegmentKind
	ids   [trackable.MaxPathDepth]int32
}

func keyOf(path trackable.Path) pathKey {
	var k pathKey
	var buf [trackable.MaxPathDepth * 5]byte
	n := path.Len()
	for i := 0; i < n; i++ {
		seg := path.At(i)
		k.kinds[i] = seg.Kind
		k.ids[i] = int32(seg.Member.ID)
		buf[i*5] = byte(seg.Kind)
		binary.LittleEndian.PutUint32(buf[i*5+1:], uint32(seg.Member.ID))
	}
	k.n = uint8(n)
	k.hash = xxhash.Sum64(buf[:n*5])
	return k
}

func (k *pathKey) equal(o *pathKey) bool {
	return k.hash == o.hash && *k == *o
}

// isPrefixOf reports whether k is an ancestor of o or equal to it.
func (k *pathKey) isPrefixOf(o *pathKey) bool {
	if k.n > o.n {
		return false
	}
	for i := 0; i < int(k.n); i++ {
		if k.kinds[i] != o.kinds[i] || k.ids[i] != o.ids[i] {
			return false
		}
	}
	return true
}

// related reports an ancestor/descendant relation in either direction,
// including equality.
func (k *pathKey) related(o *pathKey) bool {
	return k.isPrefixOf(o) || o.isPrefixOf(k)
}

// conflicts reports whether an event on o sitting between two events on k
// prevents merging them.
func (k *pathKey) conflicts(o *pathKey) bool {
	return !k.equal(o) && k.related(o)
}
