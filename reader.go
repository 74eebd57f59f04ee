package bsonstream

import (
	"encoding/binary"
	"math"
)

// cursor is a bounds-checked little-endian reader over an in-memory BSON
// document.  All multi-byte reads are little-endian regardless of host
// byte order, per the BSON wire format.
type cursor struct {
	in  []byte
	idx int
}

func (c *cursor) remaining() int {
	return len(c.in) - c.idx
}

func (c *cursor) readByte() (byte, *Error) {
	if c.remaining() < 1 {
		return 0, newError(TruncatedInput, c.idx, "expected 1 byte")
	}
	b := c.in[c.idx]
	c.idx++
	return b, nil
}

func (c *cursor) readInt32LE() (int32, *Error) {
	if c.remaining() < 4 {
		return 0, newError(TruncatedInput, c.idx, "expected 4 bytes for int32")
	}
	v := int32(binary.LittleEndian.Uint32(c.in[c.idx : c.idx+4]))
	c.idx += 4
	return v, nil
}

func (c *cursor) readInt64LE() (int64, *Error) {
	if c.remaining() < 8 {
		return 0, newError(TruncatedInput, c.idx, "expected 8 bytes for int64")
	}
	v := int64(binary.LittleEndian.Uint64(c.in[c.idx : c.idx+8]))
	c.idx += 8
	return v, nil
}

func (c *cursor) readFloat64LE() (float64, *Error) {
	if c.remaining() < 8 {
		return 0, newError(TruncatedInput, c.idx, "expected 8 bytes for float64")
	}
	bits := binary.LittleEndian.Uint64(c.in[c.idx : c.idx+8])
	c.idx += 8
	return math.Float64frombits(bits), nil
}

// readBytes returns a view of the next n bytes and advances the cursor.
func (c *cursor) readBytes(n int) ([]byte, *Error) {
	if c.remaining() < n {
		return nil, newError(TruncatedInput, c.idx, "expected more bytes")
	}
	b := c.in[c.idx : c.idx+n]
	c.idx += n
	return b, nil
}

// skipCString advances past a NUL-terminated name, returning its length
// (not including the NUL).  Used for array-index names, whose length is
// checked against the expected digit count rather than copied to
// output; document field names are instead copied byte-by-byte by the
// escape writer, which finds its own NUL.
func (c *cursor) skipCString() (int, *Error) {
	for i := c.idx; i < len(c.in); i++ {
		if c.in[i] == 0 {
			n := i - c.idx
			c.idx = i + 1
			return n, nil
		}
	}
	return 0, newError(UnterminatedName, c.idx, "no NUL before end of input")
}
