package bsonstream

import "testing"

func transcode(t *testing.T, in []byte, isArray bool) string {
	t.Helper()
	out, err := Transcode(in, Options{IsArray: isArray})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return string(out)
}

func TestWalkEmptyDocument(t *testing.T) {
	if got := transcode(t, emptyDocBytes(), false); got != "{}" {
		t.Fatalf("got %q, want {}", got)
	}
}

func TestWalkEmptyArray(t *testing.T) {
	if got := transcode(t, emptyDocBytes(), true); got != "[]" {
		t.Fatalf("got %q, want []", got)
	}
}

func TestWalkScenarioObjectWithInt(t *testing.T) {
	doc := newDoc().elem(bsonInt32, "a").int32(1).finish()
	if got := transcode(t, doc, false); got != `{"a":1}` {
		t.Fatalf("got %q, want {\"a\":1}", got)
	}
}

func TestWalkScenarioEscapedString(t *testing.T) {
	doc := newDoc().elem(bsonString, "x").str(`he"llo`).finish()
	if got := transcode(t, doc, false); got != `{"x":"he\"llo"}` {
		t.Fatalf("got %q, want {\"x\":\"he\\\"llo\"}", got)
	}
}

func TestWalkScenarioDate(t *testing.T) {
	doc := newDoc().elem(bsonDate, "d").int64(0).finish()
	if got := transcode(t, doc, false); got != `{"d":"1970-01-01T00:00:00.000Z"}` {
		t.Fatalf("got %q", got)
	}
}

func TestWalkScenarioArrayMixed(t *testing.T) {
	doc := newDoc().
		elem(bsonDouble, "0").float64(1.5).
		elem(bsonNull, "1").
		elem(bsonBoolean, "2").byte(1).
		finish()
	if got := transcode(t, doc, true); got != `[1.5,null,true]` {
		t.Fatalf("got %q, want [1.5,null,true]", got)
	}
}

func TestWalkUnsupportedType(t *testing.T) {
	doc := newDoc().elem(bsonBinary, "b").int32(0).byte(0x00).finish()
	_, err := Transcode(doc, Options{})
	be, ok := err.(*Error)
	if !ok || be.Kind != UnsupportedType {
		t.Fatalf("got %v, want UnsupportedType", err)
	}
}

func TestWalkUnknownType(t *testing.T) {
	doc := newDoc().elem(0x99, "b").finish()
	_, err := Transcode(doc, Options{})
	be, ok := err.(*Error)
	if !ok || be.Kind != UnknownType {
		t.Fatalf("got %v, want UnknownType", err)
	}
}

func TestWalkInvalidSize(t *testing.T) {
	doc := []byte{0x04, 0x00, 0x00, 0x00, 0x00}
	_, err := Transcode(doc, Options{})
	be, ok := err.(*Error)
	if !ok || be.Kind != InvalidSize {
		t.Fatalf("got %v, want InvalidSize", err)
	}
}

func TestWalkSizeExceedsInput(t *testing.T) {
	doc := []byte{0xff, 0x00, 0x00, 0x00, 0x00}
	_, err := Transcode(doc, Options{})
	be, ok := err.(*Error)
	if !ok || be.Kind != SizeExceedsInput {
		t.Fatalf("got %v, want SizeExceedsInput", err)
	}
}

func TestWalkBadStringLength(t *testing.T) {
	doc := newDoc().elem(bsonString, "s").int32(0).finish()
	_, err := Transcode(doc, Options{})
	be, ok := err.(*Error)
	if !ok || be.Kind != BadStringLength {
		t.Fatalf("got %v, want BadStringLength", err)
	}
}

func TestWalkUndefinedRendersAsNull(t *testing.T) {
	doc := newDoc().elem(bsonUndefined, "u").finish()
	if got := transcode(t, doc, false); got != `{"u":null}` {
		t.Fatalf("got %q, want {\"u\":null}", got)
	}
}

func TestWalkNestedDocument(t *testing.T) {
	inner := newDoc().elem(bsonInt32, "b").int32(2).finish()
	outer := newDoc().elem(bsonInt32, "a").int32(1)
	outer.buf = append(outer.buf, bsonDocument)
	outer.buf = append(outer.buf, []byte("c")...)
	outer.buf = append(outer.buf, 0x00)
	outer.buf = append(outer.buf, inner...)
	doc := outer.finish()
	if got := transcode(t, doc, false); got != `{"a":1,"c":{"b":2}}` {
		t.Fatalf("got %q", got)
	}
}

func TestWalkDeepNesting(t *testing.T) {
	inner := emptyDocBytes()
	for i := 0; i < 150; i++ {
		d := newDoc()
		d.buf = append(d.buf, bsonDocument)
		d.buf = append(d.buf, []byte("n")...)
		d.buf = append(d.buf, 0x00)
		d.buf = append(d.buf, inner...)
		inner = d.finish()
	}
	if _, err := Transcode(inner, Options{}); err != nil {
		t.Fatalf("unexpected error at depth 150: %v", err)
	}
}

func TestWalkExceedsMaxDepth(t *testing.T) {
	inner := emptyDocBytes()
	for i := 0; i < 250; i++ {
		d := newDoc()
		d.buf = append(d.buf, bsonDocument)
		d.buf = append(d.buf, []byte("n")...)
		d.buf = append(d.buf, 0x00)
		d.buf = append(d.buf, inner...)
		inner = d.finish()
	}
	_, err := Transcode(inner, Options{})
	be, ok := err.(*Error)
	if !ok || be.Kind != NestingTooDeep {
		t.Fatalf("got %v, want NestingTooDeep", err)
	}
}

func TestWalkArrayTenDigitIndex(t *testing.T) {
	// Rather than materialise an array of 10^9 elements, unit test
	// digitsOf, which the walker checks array index names against, at
	// power-of-ten boundaries up to the 10-digit index 1000000000.
	for idx, want := range map[int]int{
		0: 1, 9: 1, 10: 2, 99: 2, 100: 3, 999999999: 9, 1000000000: 10,
	} {
		if got := digitsOf(idx); got != want {
			t.Errorf("digitsOf(%d) = %d, want %d", idx, got, want)
		}
	}
}

func TestWalkArrayInvalidTerminator(t *testing.T) {
	// Manually corrupt the array-index name's terminating byte.
	d := newDoc()
	d.buf = append(d.buf, bsonInt32)
	d.buf = append(d.buf, '0')
	d.buf = append(d.buf, 0x01) // should be 0x00
	d.buf = append(d.buf, []byte{1, 0, 0, 0}...)
	doc := d.finish()
	_, err := Transcode(doc, Options{IsArray: true})
	be, ok := err.(*Error)
	if !ok || be.Kind != InvalidArrayTerminator {
		t.Fatalf("got %v, want InvalidArrayTerminator", err)
	}
}

func TestWalkObjectIDElement(t *testing.T) {
	// Fixed-buffer boundary coverage (26 bytes exactly fits one quoted
	// ObjectId, 25 does not) lives in outbuf_test.go; this only checks
	// the walker's dispatch and rendering.
	id := make([]byte, objectIDLen)
	doc := newDoc().elem(bsonObjectID, "o").bytes(id).finish()
	out, err := Transcode(doc, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"o":"000000000000000000000000"}`
	if string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestWalkTruncatedAtEachOffset(t *testing.T) {
	full := newDoc().elem(bsonInt32, "a").int32(42).finish()
	for n := 0; n < len(full); n++ {
		_, err := Transcode(full[:n], Options{})
		if err == nil {
			continue // a prefix that happens to still parse is fine
		}
		if _, ok := err.(*Error); !ok {
			t.Fatalf("truncated at %d: error is not *Error: %v", n, err)
		}
	}
}
