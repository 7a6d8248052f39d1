// Package codec implements the append-only writer and bounds-checked reader
// that the snapshot format is built on (spec §4.2). Primitives mirror each
// other exactly: every write_* has a matching read_* that consumes the same
// number of bytes in the same order.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

func float32bits(v float32) uint32      { return math.Float32bits(v) }
func float32frombits(v uint32) float32  { return math.Float32frombits(v) }

// ErrUnderflow is returned by a Reader method when the buffer has fewer
// bytes remaining than the read requires.
var ErrUnderflow = errors.New("codec: buffer underflow")

// Writer appends primitive values to an in-memory byte buffer. It never
// fails: growth is handled by append, matching the teacher's buffered,
// single-shot write path rather than streaming to an io.Writer.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer with capacityHint bytes pre-allocated.
func NewWriter(capacityHint int) *Writer {
	return &Writer{buf: make([]byte, 0, capacityHint)}
}

// Bytes returns the accumulated buffer. The returned slice aliases the
// Writer's internal storage.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) WriteU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *Writer) WriteU64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *Writer) WriteI32(v int32) {
	w.WriteU32(uint32(v))
}

func (w *Writer) WriteF32(v float32) {
	w.WriteU32(float32bits(v))
}

func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteVectorF32 writes a u64 length prefix followed by the raw float32
// elements, little-endian.
func (w *Writer) WriteVectorF32(v []float32) {
	w.WriteU64(uint64(len(v)))
	for _, f := range v {
		w.WriteF32(f)
	}
}

// WriteVectorI32 writes a u64 length prefix followed by the raw int32
// elements, little-endian.
func (w *Writer) WriteVectorI32(v []int32) {
	w.WriteU64(uint64(len(v)))
	for _, x := range v {
		w.WriteI32(x)
	}
}

// Reader reads primitives from a fixed byte buffer with bounds checking.
// Any underflow returns ErrUnderflow and leaves the Reader positioned at the
// point of failure; callers must abort rather than continue reading.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential reading.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Pos returns the current read offset.
func (r *Reader) Pos() int { return r.pos }

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return fmt.Errorf("%w: need %d, have %d", ErrUnderflow, n, r.Remaining())
	}
	return nil
}

func (r *Reader) ReadU32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *Reader) ReadU64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return float32frombits(v), nil
}

func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadVectorF32 reads a u64 length prefix followed by that many float32
// elements.
func (r *Reader) ReadVectorF32() ([]float32, error) {
	n, err := r.ReadU64()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Remaining()/4) {
		return nil, fmt.Errorf("%w: need %d elements, have %d bytes", ErrUnderflow, n, r.Remaining())
	}
	out := make([]float32, n)
	for i := range out {
		out[i], _ = r.ReadF32()
	}
	return out, nil
}

// ReadVectorI32 reads a u64 length prefix followed by that many int32
// elements.
func (r *Reader) ReadVectorI32() ([]int32, error) {
	n, err := r.ReadU64()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Remaining()/4) {
		return nil, fmt.Errorf("%w: need %d elements, have %d bytes", ErrUnderflow, n, r.Remaining())
	}
	out := make([]int32, n)
	for i := range out {
		out[i], _ = r.ReadI32()
	}
	return out, nil
}
