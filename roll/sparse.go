package roll

import (
	"fmt"

	"github.com/10jackyhu24/Audio2Score/model"
)

// Entry is one non-zero cell of a dense matrix.
type Entry struct {
	Frame int64
	Bin   int64
	Value float32
}

// Record is the sparse form of one annotation channel: an append-only
// entry list plus the dense shape it was cut from. When two entries
// target the same cell, the later one in insertion order wins on decode.
// Immutable once emitted by its producer.
type Record struct {
	Kind    Kind
	Frames  int64
	Bins    int64
	Entries []Entry
}

// Codec converts one annotation channel between its dense and sparse
// forms. The shape is fixed at construction; records of any other shape
// are a caller error, not data to be coerced.
type Codec struct {
	frames int
	bins   int
}

func NewCodec(frames, bins int) (Codec, error) {
	if frames <= 0 || bins <= 0 {
		return Codec{}, fmt.Errorf("%w: codec shape (%v,%v)", model.ErrInvalidInput, frames, bins)
	}
	return Codec{frames: frames, bins: bins}, nil
}

// Encode emits one entry per non-zero cell, scanning frames in order and
// bins within each frame. Zero cells are omitted entirely.
func (c Codec) Encode(m DenseMatrix, kind Kind) (Record, error) {
	if m.Frames != c.frames || m.Bins != c.bins {
		return Record{}, fmt.Errorf("%w: dense shape (%v,%v), codec shape (%v,%v)",
			model.ErrConfigMismatch, m.Frames, m.Bins, c.frames, c.bins)
	}
	rec := Record{Kind: kind, Frames: int64(m.Frames), Bins: int64(m.Bins)}
	for f := 0; f < m.Frames; f++ {
		for b := 0; b < m.Bins; b++ {
			if v := m.At(f, b); v != 0 {
				rec.Entries = append(rec.Entries, Entry{Frame: int64(f), Bin: int64(b), Value: v})
			}
		}
	}
	return rec, nil
}

// Decode replays the record's entries onto an all-zero matrix in stored
// order. Out-of-range entries are dropped, never written; the count of
// dropped entries is returned for diagnostics.
func (c Codec) Decode(rec Record) (DenseMatrix, int, error) {
	if rec.Frames != int64(c.frames) || rec.Bins != int64(c.bins) {
		return DenseMatrix{}, 0, fmt.Errorf("%w: record shape (%v,%v), codec shape (%v,%v)",
			model.ErrConfigMismatch, rec.Frames, rec.Bins, c.frames, c.bins)
	}
	return DecodeRecord(rec)
}

// DecodeRecord decodes against the record's own declared shape.
func DecodeRecord(rec Record) (DenseMatrix, int, error) {
	if rec.Frames <= 0 || rec.Bins <= 0 {
		return DenseMatrix{}, 0, fmt.Errorf("%w: record shape (%v,%v)",
			model.ErrInvalidInput, rec.Frames, rec.Bins)
	}
	m := NewDenseMatrix(int(rec.Frames), int(rec.Bins))
	var dropped int
	for _, e := range rec.Entries {
		if e.Frame < 0 || e.Frame >= rec.Frames || e.Bin < 0 || e.Bin >= rec.Bins {
			dropped++
			continue
		}
		m.Set(int(e.Frame), int(e.Bin), e.Value)
	}
	return m, dropped, nil
}
