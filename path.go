package trackable

import (
	"fmt"
	"iter"
	"strings"
)

// MaxPathDepth is the maximum number of segments in a Path, i.e. the deepest
// nesting of trackables that can report a change.
const MaxPathDepth = 8

// Member identifies a tracked property of a wrapper type. IDs are dense,
// 1-based and assigned per type; Name is only used for display.
type Member struct {
	ID   int
	Name string
}

// NoMember is carried by collection segments.
var NoMember = Member{}

func (m Member) IsValid() bool {
	return m.ID > 0
}

func (m Member) String() string {
	if m.Name == "" {
		return fmt.Sprintf("#%d", m.ID)
	}
	return m.Name
}

type Segment struct {
	Kind   SegmentKind
	Change ChangeKind
	Member Member
}

func PropertySegment(change ChangeKind, m Member) Segment {
	if !m.IsValid() {
		panic(fmt.Errorf("property segment requires a valid member, got %d %q", m.ID, m.Name))
	}
	return Segment{SegmentProperty, change, m}
}

func CollectionSegment(kind SegmentKind, change ChangeKind) Segment {
	if !kind.IsCollection() {
		panic(fmt.Errorf("%v is not a collection segment kind", kind))
	}
	return Segment{kind, change, NoMember}
}

func (s Segment) String() string {
	if s.Kind == SegmentProperty {
		return s.Member.String() + ":" + s.Change.String()
	}
	return s.Kind.String() + ":" + s.Change.String()
}

// Path is a root-first sequence of segments. It is a plain value and never
// allocates; Prepend returns a modified copy.
type Path struct {
	segs [MaxPathDepth]Segment
	n    uint8
}

func NewPath(segs ...Segment) Path {
	var p Path
	if len(segs) > MaxPathDepth {
		panic(ErrPathTooDeep)
	}
	p.n = uint8(copy(p.segs[:], segs))
	return p
}

func (p Path) Len() int {
	return int(p.n)
}

func (p Path) IsEmpty() bool {
	return p.n == 0
}

func (p Path) At(i int) Segment {
	if i < 0 || i >= int(p.n) {
		panic(&IndexError{Index: i, Len: int(p.n)})
	}
	return p.segs[i]
}

func (p Path) Root() Segment {
	return p.At(0)
}

func (p Path) Leaf() Segment {
	return p.At(int(p.n) - 1)
}

// Prepend returns a copy of p with seg inserted in front. Events bubble from
// leaf to root, so the deepest segment is the first one ever written.
func (p Path) Prepend(seg Segment) Path {
	if int(p.n) >= MaxPathDepth {
		panic(ErrPathTooDeep)
	}
	copy(p.segs[1:p.n+1], p.segs[:p.n])
	p.segs[0] = seg
	p.n++
	return p
}

func (p Path) Segments() []Segment {
	return append([]Segment(nil), p.segs[:p.n]...)
}

func (p Path) All() iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		for i := 0; i < int(p.n); i++ {
			if !yield(i, p.segs[i]) {
				return
			}
		}
	}
}

func (p Path) String() string {
	var buf strings.Builder
	for i := 0; i < int(p.n); i++ {
		if i > 0 {
			buf.WriteByte('/')
		}
		buf.WriteString(p.segs[i].String())
	}
	return buf.String()
}
