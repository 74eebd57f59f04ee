package bsonstream

import (
	"math"
	"strconv"
)

// twoDigits is a 200-byte lookup table of the ASCII text for 00-99,
// letting the integer encoder consume two decimal digits per loop
// iteration instead of one.
var twoDigits = [200]byte{}

func init() {
	for i := 0; i < 100; i++ {
		twoDigits[i*2] = byte('0' + i/10)
		twoDigits[i*2+1] = byte('0' + i%10)
	}
}

// encodeInt64 writes the base-10 decimal text of v, with a leading '-'
// for negative values and no leading zeros.
func (t *transcoder) encodeInt64(v int64) *Error {
	if err := t.ensure(20); err != nil {
		return err
	}
	var buf [20]byte
	pos := len(buf)

	neg := v < 0
	// Operate on the unsigned magnitude throughout so INT64_MIN (whose
	// positive magnitude overflows int64) is handled the same way as any
	// other value.
	var mag uint64
	if neg {
		mag = uint64(-(v + 1)) + 1
	} else {
		mag = uint64(v)
	}

	for mag >= 100 {
		r := mag % 100
		mag /= 100
		pos -= 2
		buf[pos] = twoDigits[r*2]
		buf[pos+1] = twoDigits[r*2+1]
	}
	if mag >= 10 {
		pos -= 2
		buf[pos] = twoDigits[mag*2]
		buf[pos+1] = twoDigits[mag*2+1]
	} else {
		pos--
		buf[pos] = byte('0' + mag)
	}

	if neg {
		pos--
		buf[pos] = '-'
	}
	t.writeBytes(buf[pos:])
	return nil
}

func (t *transcoder) encodeInt32(v int32) *Error {
	return t.encodeInt64(int64(v))
}

// encodeDouble writes the shortest round-trip decimal text of f, matching
// JSON.stringify(Number) exactly: non-finite values become the literal
// null; otherwise strconv.AppendFloat's shortest-digit scientific form is
// reformatted per the ECMAScript Number::toString algorithm (ECMA-262
// 7.1.12.1).
func (t *transcoder) encodeDouble(f float64) *Error {
	if err := t.ensure(128); err != nil {
		return err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		t.writeBytes([]byte("null"))
		return nil
	}
	var scratch [128]byte
	t.writeBytes(appendECMANumber(scratch[:0], f))
	return nil
}

// appendECMANumber appends the ECMA-262 Number::toString rendering of f to
// dst and returns the extended slice. f must be finite.
func appendECMANumber(dst []byte, f float64) []byte {
	if f == 0 {
		// Number::toString renders both +0 and -0 as "0".
		return append(dst, '0')
	}

	neg := f < 0
	if neg {
		f = -f
		dst = append(dst, '-')
	}

	// strconv's shortest 'e' form is "d.ddddde±dd" (or "de±dd" with no
	// fractional digits); treat it as an opaque shortest-digits oracle
	// and pull out just the digit string and decimal exponent.
	sci := strconv.AppendFloat(nil, f, 'e', -1, 64)
	digits, exp := splitSci(sci)
	n := len(digits)
	// ECMA-262 defines k = number of significant digits, and n such that
	// the value equals digits * 10^(n-k); our exp is the power of ten of
	// the first digit, so n = exp + 1 in that notation.
	k := n
	pointExp := exp + 1

	switch {
	case pointExp >= 1 && pointExp <= 21:
		if k <= pointExp {
			dst = append(dst, digits...)
			for i := 0; i < pointExp-k; i++ {
				dst = append(dst, '0')
			}
		} else {
			dst = append(dst, digits[:pointExp]...)
			dst = append(dst, '.')
			dst = append(dst, digits[pointExp:]...)
		}
	case pointExp >= -5 && pointExp <= 0:
		dst = append(dst, '0', '.')
		for i := 0; i < -pointExp; i++ {
			dst = append(dst, '0')
		}
		dst = append(dst, digits...)
	default:
		dst = append(dst, digits[0])
		if k > 1 {
			dst = append(dst, '.')
			dst = append(dst, digits[1:]...)
		}
		dst = append(dst, 'e')
		e := pointExp - 1
		if e >= 0 {
			dst = append(dst, '+')
		} else {
			dst = append(dst, '-')
			e = -e
		}
		dst = strconv.AppendInt(dst, int64(e), 10)
	}
	return dst
}

// splitSci splits strconv's "d.ddde±dd" or "de±dd" output into its bare
// significant-digit string (no sign, no point) and decimal exponent of
// the leading digit.
func splitSci(sci []byte) (digits []byte, exp int) {
	eIdx := -1
	for i, c := range sci {
		if c == 'e' {
			eIdx = i
			break
		}
	}
	mantissa := sci[:eIdx]
	expBytes := sci[eIdx+1:]

	e, _ := strconv.Atoi(string(expBytes))

	buf := make([]byte, 0, len(mantissa))
	for _, c := range mantissa {
		if c == '.' {
			continue
		}
		buf = append(buf, byte(c))
	}
	// Strip trailing zeros introduced only by mantissa padding; -1
	// precision in AppendFloat already gives the shortest digit string so
	// this is normally a no-op, kept for robustness.
	for len(buf) > 1 && buf[len(buf)-1] == '0' {
		buf = buf[:len(buf)-1]
	}
	return buf, e
}

// encodeObjectIDScalar writes the 24-lowercase-hex-character, quoted rendering
// of a 12-byte ObjectId using the scalar byte-loop; the wide tiers use
// encodeObjectIDWide.
func (t *transcoder) encodeObjectIDScalar(id []byte) *Error {
	if err := t.ensure(26); err != nil {
		return err
	}
	t.writeByte('"')
	for _, b := range id {
		t.writeByte(hexDigits[b>>4])
		t.writeByte(hexDigits[b&0x0f])
	}
	t.writeByte('"')
	return nil
}

// encodeObjectID dispatches to the tier selected at construction.  The
// wide tiers gain little over the scalar loop for a fixed 12-byte input,
// but are provided for parity with the original per-tier dispatch and to
// exercise the same nibble-split lookup idiom as the escape writer.
func (t *transcoder) encodeObjectID(id []byte) *Error {
	switch t.tier {
	case TierSSE2, TierSSE4, TierAVX2:
		return t.encodeObjectIDWide(id)
	default:
		return t.encodeObjectIDScalar(id)
	}
}

// encodeObjectIDWide hex-encodes two bytes per iteration via the same
// twoDigits-style table pattern, avoiding a branch on nibble value; it
// stands in for the original's pshufb-based nibble shuffle, which has no
// portable Go equivalent without assembly.
func (t *transcoder) encodeObjectIDWide(id []byte) *Error {
	if err := t.ensure(26); err != nil {
		return err
	}
	t.writeByte('"')
	for i := 0; i+2 <= len(id); i += 2 {
		b0, b1 := id[i], id[i+1]
		t.writeByte(hexDigits[b0>>4])
		t.writeByte(hexDigits[b0&0x0f])
		t.writeByte(hexDigits[b1>>4])
		t.writeByte(hexDigits[b1&0x0f])
	}
	if len(id)%2 == 1 {
		b := id[len(id)-1]
		t.writeByte(hexDigits[b>>4])
		t.writeByte(hexDigits[b&0x0f])
	}
	t.writeByte('"')
	return nil
}

const secondsPerDay = 86400

// civilFromDays implements Howard Hinnant's civil_from_days algorithm
// for proleptic-Gregorian, epoch-1970 day-count -> date conversion
// without relying on time.Time's internal range limits.
func civilFromDays(z int64) (year int, month int, day int) {
	z += 719468
	era := z
	if z < 0 {
		era -= 146096
	}
	era /= 146097
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	var m int64
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return int(y), int(m), int(d)
}

// encodeDate writes the ISO-8601 rendering of a BSON UTC datetime, given
// as milliseconds since the epoch (may be negative).  Division floors so
// the millisecond component is always in [0, 999], unlike Go's truncating
// operators.
func (t *transcoder) encodeDate(millis int64) *Error {
	if err := t.ensure(26); err != nil {
		return err
	}
	sec := millis / 1000
	ms := millis % 1000
	if ms < 0 {
		ms += 1000
		sec--
	}

	days := sec / secondsPerDay
	secOfDay := sec % secondsPerDay
	if secOfDay < 0 {
		secOfDay += secondsPerDay
		days--
	}

	year, month, day := civilFromDays(days)
	hour := secOfDay / 3600
	min := (secOfDay % 3600) / 60
	s := secOfDay % 60

	t.writeByte('"')
	if err := t.writeDigits4(year); err != nil {
		return err
	}
	t.writeByte('-')
	t.writeDigits2(int(month))
	t.writeByte('-')
	t.writeDigits2(int(day))
	t.writeByte('T')
	t.writeDigits2(int(hour))
	t.writeByte(':')
	t.writeDigits2(int(min))
	t.writeByte(':')
	t.writeDigits2(int(s))
	t.writeByte('.')
	t.writeDigits3(int(ms))
	t.writeByte('Z')
	t.writeByte('"')
	return nil
}

// writeDigits2 writes exactly two zero-padded decimal digits.
func (t *transcoder) writeDigits2(v int) {
	t.writeByte(twoDigits[(v%100)*2])
	t.writeByte(twoDigits[(v%100)*2+1])
}

// writeDigits3 writes exactly three zero-padded decimal digits.
func (t *transcoder) writeDigits3(v int) {
	t.writeByte(byte('0' + (v/100)%10))
	t.writeDigits2(v % 100)
}

// writeDigits4 writes a (possibly negative) year using at least four
// digits, zero-padded, with a leading '-' for years before 0.
func (t *transcoder) writeDigits4(v int) *Error {
	// The caller's ensure(26) covers a non-negative four-digit year only;
	// for a sign or a longer year, widen here to cover the year text plus
	// the 21 bytes (`-MM-DDTHH:MM:SS.mmmZ"`) written after it.
	if v < 0 || v >= 10000 {
		need := len(strconv.Itoa(v))
		if need < 5 {
			need = 5 // '-' plus four zero-padded digits
		}
		if err := t.ensure(need + 21); err != nil {
			return err
		}
	}
	if v < 0 {
		t.writeByte('-')
		v = -v
	}
	if v < 10000 {
		t.writeByte(byte('0' + v/1000))
		t.writeDigits3(v % 1000)
		return nil
	}
	t.writeBytes([]byte(strconv.Itoa(v)))
	return nil
}
