package bsonstream

import "fmt"

// Kind identifies a category of transcoding failure.  Kinds do not form a
// hierarchy; the first error encountered wins and no further output is
// produced after it.
type Kind int

const (
	_ Kind = iota
	// InvalidSize means a document's declared length was less than 5.
	InvalidSize
	// SizeExceedsInput means a document's declared length exceeded the
	// bytes remaining in the input.
	SizeExceedsInput
	// TruncatedInput means a primitive read would pass the end of input.
	TruncatedInput
	// BadStringLength means a string's declared length was <= 0 or
	// exceeded the bytes remaining in the input.
	BadStringLength
	// InvalidArrayTerminator means a nested array did not end on 0x00.
	InvalidArrayTerminator
	// UnsupportedType means a BSON type has no JSON representation.
	UnsupportedType
	// UnknownType means a type byte was not among the known BSON types.
	UnknownType
	// OutOfMemory means the REALLOC allocator failed to grow the output
	// buffer.
	OutOfMemory
	// BufferTooSmall means a fixed output buffer was too small to hold
	// one atomic emission.
	BufferTooSmall
	// UnterminatedName means a C-string element name had no NUL before
	// the end of input.
	UnterminatedName
	// NestingTooDeep means a document nested more deeply than the
	// configured depth limit.
	NestingTooDeep
	// Cancelled means the caller destroyed a chunked transcoder before
	// it finished producing output.
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case InvalidSize:
		return "invalid size"
	case SizeExceedsInput:
		return "size exceeds input"
	case TruncatedInput:
		return "truncated input"
	case BadStringLength:
		return "bad string length"
	case InvalidArrayTerminator:
		return "invalid array terminator"
	case UnsupportedType:
		return "unsupported type"
	case UnknownType:
		return "unknown type"
	case OutOfMemory:
		return "out of memory"
	case BufferTooSmall:
		return "buffer too small"
	case UnterminatedName:
		return "unterminated name"
	case NestingTooDeep:
		return "nesting too deep"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown error"
	}
}

// Error records a transcoding failure, including the kind of failure and
// the byte offset in the input at which it was detected.
type Error struct {
	Kind   Kind
	Offset int
	msg    string
}

func (e *Error) Error() string {
	if e.msg != "" {
		return fmt.Sprintf("bsonstream: %s at offset %d: %s", e.Kind, e.Offset, e.msg)
	}
	return fmt.Sprintf("bsonstream: %s at offset %d", e.Kind, e.Offset)
}

// Is allows errors.Is(err, Sentinel(SomeKind)) to match an *Error of
// that Kind.
func (e *Error) Is(target error) bool {
	if k, ok := target.(kindSentinel); ok {
		return e.Kind == Kind(k)
	}
	return false
}

// kindSentinel lets a bare Kind value be used as an errors.Is target,
// e.g. errors.Is(err, bsonstream.Sentinel(bsonstream.TruncatedInput)).
type kindSentinel Kind

func (k kindSentinel) Error() string { return Kind(k).String() }

// Sentinel wraps a Kind so it can be passed to errors.Is.
func Sentinel(k Kind) error { return kindSentinel(k) }

func newError(kind Kind, offset int, msg string) *Error {
	return &Error{Kind: kind, Offset: offset, msg: msg}
}
