package changelog

import (
	"bytes"
	"fmt"

	"github.com/andreyvit/trackable"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Record is the exported form of a change event, suitable for shipping a
// packed log to another process or storing it for audit.
type Record struct {
	Path     string          `msgpack:"path"`
	Segments []SegmentRecord `msgpack:"segs"`
	Kind     string          `msgpack:"kind"`
	Old      any             `msgpack:"old,omitempty"`
	New      any             `msgpack:"new,omitempty"`
	Index    int             `msgpack:"idx"`
	Key      string          `msgpack:"key,omitempty"`
}

type SegmentRecord struct {
	Kind   string `msgpack:"k"`
	Change string `msgpack:"c"`
	Member string `msgpack:"m,omitempty"`
	ID     int    `msgpack:"id,omitempty"`
}

func RecordOf(e trackable.ChangeEvent) Record {
	path := e.Path()
	segs := make([]SegmentRecord, 0, path.Len())
	for _, seg := range path.All() {
		segs = append(segs, SegmentRecord{
			Kind:   seg.Kind.String(),
			Change: seg.Change.String(),
			Member: seg.Member.Name,
			ID:     seg.Member.ID,
		})
	}
	r := Record{
		Path:     e.PathString(),
		Segments: segs,
		Kind:     e.Kind().String(),
		Old:      exportPayload(e.OldValue()),
		New:      exportPayload(e.NewValue()),
		Index:    e.Index(),
	}
	if e.HasKey() {
		r.Key = e.Key().String()
	}
	return r
}

// exportPayload keeps scalars as they are and renders everything else,
// including trackable objects, via Payload.String.
func exportPayload(p trackable.Payload) any {
	if p.IsNil() {
		return nil
	}
	switch v := p.Value().(type) {
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return v
	case uuid.UUID:
		return v.String()
	case []byte:
		return v
	default:
		return p.String()
	}
}

// Records returns the exported form of every buffered event.
func (b *Buffer) Records() []Record {
	records := make([]Record, len(b.events))
	for i, e := range b.events {
		records[i] = RecordOf(e)
	}
	return records
}

// AppendMsgpack appends the buffered events to buf as a msgpack array of
// records.
func (b *Buffer) AppendMsgpack(buf []byte) []byte {
	bb := bytesBuilder{buf}
	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)
	enc.Reset(&bb)
	enc.SetSortMapKeys(true)

	if err := enc.EncodeArrayLen(len(b.events)); err != nil {
		panic(fmt.Errorf("failed to encode %s: %w", b, err))
	}
	for i, e := range b.events {
		r := RecordOf(e)
		if err := enc.Encode(&r); err != nil {
			panic(fmt.Errorf("failed to encode %s event %d (%v): %w", b, i, e, err))
		}
	}
	return bb.Buf
}

// DecodeRecords parses the output of AppendMsgpack.
func DecodeRecords(data []byte) ([]Record, error) {
	var r bytes.Reader
	r.Reset(data)
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)
	dec.Reset(&r)

	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, &DecodeError{Off: len(data) - r.Len(), Err: err}
	}
	if n < 0 {
		return nil, nil
	}
	records := make([]Record, n)
	for i := range records {
		if err := dec.Decode(&records[i]); err != nil {
			return nil, &DecodeError{Off: len(data) - r.Len(), Record: i, Err: err}
		}
	}
	return records, nil
}

type DecodeError struct {
	Off    int
	Record int
	Err    error
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("changelog: failed to decode record %d at offset %d: %v", e.Record, e.Off, e.Err)
}
