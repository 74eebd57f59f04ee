package bsonstream

import (
	"encoding/binary"
	"math"
)

// docBuilder assembles a raw BSON document byte-by-byte for tests that
// need exact control over wire bytes (malformed fixtures, boundary
// offsets) rather than a library-generated document.
type docBuilder struct {
	buf []byte
}

func newDoc() *docBuilder { return &docBuilder{} }

func (d *docBuilder) elem(typ byte, name string) *docBuilder {
	d.buf = append(d.buf, typ)
	d.buf = append(d.buf, []byte(name)...)
	d.buf = append(d.buf, 0x00)
	return d
}

func (d *docBuilder) int32(v int32) *docBuilder {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	d.buf = append(d.buf, b[:]...)
	return d
}

func (d *docBuilder) int64(v int64) *docBuilder {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	d.buf = append(d.buf, b[:]...)
	return d
}

func (d *docBuilder) float64(v float64) *docBuilder {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	d.buf = append(d.buf, b[:]...)
	return d
}

func (d *docBuilder) cstring(s string) *docBuilder {
	d.buf = append(d.buf, []byte(s)...)
	d.buf = append(d.buf, 0x00)
	return d
}

// str appends a BSON string value: int32 length (content+NUL), content,
// NUL.
func (d *docBuilder) str(s string) *docBuilder {
	d.int32(int32(len(s) + 1))
	d.buf = append(d.buf, []byte(s)...)
	d.buf = append(d.buf, 0x00)
	return d
}

func (d *docBuilder) bytes(b []byte) *docBuilder {
	d.buf = append(d.buf, b...)
	return d
}

func (d *docBuilder) byte(b byte) *docBuilder {
	d.buf = append(d.buf, b)
	return d
}

// finish wraps the accumulated elements in a BSON document/array
// envelope: a 4-byte little-endian length prefix (including itself and
// the trailing NUL) followed by the elements and a terminating NUL.
func (d *docBuilder) finish() []byte {
	total := 4 + len(d.buf) + 1
	out := make([]byte, 0, total)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(total))
	out = append(out, lenBuf[:]...)
	out = append(out, d.buf...)
	out = append(out, 0x00)
	return out
}

// emptyDocBytes is the canonical empty BSON document: size=5, no
// elements, terminator.
func emptyDocBytes() []byte {
	return newDoc().finish()
}
