package bsonstream

// digitsOf returns the number of decimal digits in the non-negative
// array index idx, branching on powers of ten exactly as the original
// nDigits helper does.  The walker skips each array element name up to
// its NUL and checks the skipped length against this count; the digits
// themselves are not compared with idx.
func digitsOf(idx int) int {
	switch {
	case idx < 10:
		return 1
	case idx < 100:
		return 2
	case idx < 1000:
		return 3
	case idx < 10000:
		return 4
	case idx < 100000:
		return 5
	case idx < 1000000:
		return 6
	case idx < 10000000:
		return 7
	case idx < 100000000:
		return 8
	case idx < 1000000000:
		return 9
	default:
		return 10
	}
}

// walk consumes one BSON document or array starting at the current
// cursor position and emits its JSON rendering.  It recurses for nested
// documents and arrays, enforcing t.maxDepth.
func (t *transcoder) walk(isArray bool) *Error {
	startIdx := t.in.idx
	size, err := t.in.readInt32LE()
	if err != nil {
		return err
	}
	if size < 5 {
		return newError(InvalidSize, startIdx, "declared size is less than 5")
	}
	if int(size) > t.in.remaining()+4 {
		return newError(SizeExceedsInput, startIdx, "declared size exceeds remaining input")
	}

	t.curDepth++
	if t.curDepth > t.maxDepth {
		return newError(NestingTooDeep, startIdx, "container nesting exceeds configured limit")
	}
	defer func() { t.curDepth-- }()

	if err := t.ensure(1); err != nil {
		return err
	}
	if isArray {
		t.writeByte('[')
	} else {
		t.writeByte('{')
	}

	elemIdx := 0
	for {
		typ, err := t.in.readByte()
		if err != nil {
			return err
		}
		if typ == 0x00 {
			break
		}

		if elemIdx > 0 {
			if err := t.ensure(1); err != nil {
				return err
			}
			t.writeByte(',')
		}

		if isArray {
			nameStart := t.in.idx
			n, err := t.in.skipCString()
			if err != nil {
				return err
			}
			if n != digitsOf(elemIdx) {
				return newError(InvalidArrayTerminator, nameStart, "array index name length does not match expected index")
			}
		} else {
			if err := t.ensure(1); err != nil {
				return err
			}
			t.writeByte('"')
			if err := t.escapeCStr(); err != nil {
				return err
			}
			if _, err := t.in.readByte(); err != nil { // consume the NUL escapeCStr stopped at
				return err
			}
			if err := t.ensure(2); err != nil {
				return err
			}
			t.writeByte('"')
			t.writeByte(':')
		}

		if err := t.dispatch(typ); err != nil {
			return err
		}

		elemIdx++
	}

	if err := t.ensure(1); err != nil {
		return err
	}
	if isArray {
		t.writeByte(']')
	} else {
		t.writeByte('}')
	}
	return nil
}

// dispatch reads and emits the value for one BSON element whose type
// byte has already been consumed.
func (t *transcoder) dispatch(typ byte) *Error {
	switch typ {
	case bsonDouble:
		f, err := t.in.readFloat64LE()
		if err != nil {
			return err
		}
		return t.encodeDouble(f)

	case bsonString:
		return t.emitString()

	case bsonDocument:
		return t.walk(false)

	case bsonArray:
		return t.walk(true)

	case bsonUndefined:
		if err := t.ensure(4); err != nil {
			return err
		}
		t.writeBytes([]byte("null"))
		return nil

	case bsonObjectID:
		idStart := t.in.idx
		id, err := t.in.readBytes(objectIDLen)
		if err != nil {
			return newError(TruncatedInput, idStart, "expected 12 bytes for ObjectId")
		}
		return t.encodeObjectID(id)

	case bsonBoolean:
		b, err := t.in.readByte()
		if err != nil {
			return err
		}
		if err := t.ensure(5); err != nil {
			return err
		}
		if b == 1 {
			t.writeBytes([]byte("true"))
		} else {
			t.writeBytes([]byte("false"))
		}
		return nil

	case bsonDate:
		ms, err := t.in.readInt64LE()
		if err != nil {
			return err
		}
		return t.encodeDate(ms)

	case bsonNull:
		if err := t.ensure(4); err != nil {
			return err
		}
		t.writeBytes([]byte("null"))
		return nil

	case bsonInt32:
		v, err := t.in.readInt32LE()
		if err != nil {
			return err
		}
		return t.encodeInt32(v)

	case bsonInt64:
		v, err := t.in.readInt64LE()
		if err != nil {
			return err
		}
		return t.encodeInt64(v)

	case bsonBinary, bsonRegex, bsonDBPointer, bsonCode, bsonSymbol,
		bsonCodeWithScope, bsonTimestamp, bsonDecimal128, bsonMaxKey, bsonMinKey:
		return newError(UnsupportedType, t.in.idx-1, "BSON type has no JSON representation")

	default:
		return newError(UnknownType, t.in.idx-1, "unrecognized BSON type byte")
	}
}

// emitString handles the 0x02 STRING element: a length-prefixed,
// NUL-terminated UTF-8 byte string.
func (t *transcoder) emitString() *Error {
	lenStart := t.in.idx
	size, err := t.in.readInt32LE()
	if err != nil {
		return err
	}
	if size <= 0 || int(size) > t.in.remaining() {
		return newError(BadStringLength, lenStart, "string length is non-positive or exceeds remaining input")
	}
	if err := t.ensure(1); err != nil {
		return err
	}
	t.writeByte('"')
	if err := t.escapeN(int(size) - 1); err != nil {
		return err
	}
	if _, err := t.in.readByte(); err != nil { // the NUL terminator
		return err
	}
	if err := t.ensure(1); err != nil {
		return err
	}
	t.writeByte('"')
	return nil
}
