package bsonstream

import "golang.org/x/sys/cpu"

// Tier identifies an ISA specialisation for the escape writer and
// ObjectId encoder.  A tier is selected once, at construction, and never
// intermixed with another tier within a single transcode.
type Tier int

const (
	// TierAuto detects the best tier the running CPU supports.
	TierAuto Tier = iota
	// TierScalar is the portable, byte-at-a-time baseline.  Always
	// correct and always available.
	TierScalar
	// TierSSE2 processes 16-byte blocks.
	TierSSE2
	// TierSSE4 processes 16-byte blocks using the same predicate
	// computation as TierSSE2.
	TierSSE4
	// TierAVX2 processes 32-byte blocks.
	TierAVX2
)

func (t Tier) String() string {
	switch t {
	case TierScalar:
		return "scalar"
	case TierSSE2:
		return "sse2"
	case TierSSE4:
		return "sse4.2"
	case TierAVX2:
		return "avx2"
	default:
		return "auto"
	}
}

// detectTier probes CPU features once and returns the widest tier this
// process can use.  The detection itself is out of scope for the core
// transcoder (spec.md §1); the core only ever consumes the resulting
// Tier value.
func detectTier() Tier {
	switch {
	case cpu.X86.HasAVX2:
		return TierAVX2
	case cpu.X86.HasSSE42:
		return TierSSE4
	case cpu.X86.HasSSE2:
		return TierSSE2
	default:
		return TierScalar
	}
}
