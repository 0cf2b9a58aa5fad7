package changelog

import "io"

func ensureCapacity(buf []byte, minCap int) []byte {
	c := cap(buf)
	if minCap > c {
		if c < 64 {
			c = 64
		}
		for minCap > c {
			c <<= 1
		}
		old := buf
		buf = make([]byte, len(old), c)
		copy(buf, old)
	}
	return buf
}

// bytesBuilder lets a pooled msgpack encoder append to a caller's slice.
type bytesBuilder struct {
	Buf []byte
}

var _ io.Writer = (*bytesBuilder)(nil)

func (bb *bytesBuilder) Write(b []byte) (int, error) {
	bb.Buf = ensureCapacity(bb.Buf, len(bb.Buf)+len(b))
	bb.Buf = append(bb.Buf, b...)
	return len(b), nil
}

func (bb *bytesBuilder) WriteByte(v byte) error {
	bb.Buf = ensureCapacity(bb.Buf, len(bb.Buf)+1)
	bb.Buf = append(bb.Buf, v)
	return nil
}

func (bb *bytesBuilder) WriteString(s string) (int, error) {
	bb.Buf = ensureCapacity(bb.Buf, len(bb.Buf)+len(s))
	bb.Buf = append(bb.Buf, s...)
	return len(s), nil
}
