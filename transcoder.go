package bsonstream

// Mode selects the output flow-control regime.
type Mode int

const (
	// ModeRealloc grows an owned output buffer on demand.  Single
	// threaded, synchronous, never blocks.
	ModeRealloc Mode = iota
	// ModePause hands off fixed-size chunks between a producer
	// goroutine (the transcoder) and a consumer (the caller of Next).
	ModePause
)

// Options configures a transcode.
type Options struct {
	// IsArray selects whether the top-level container is emitted as
	// "[...]" (true) or "{...}" (false).
	IsArray bool
	// ChunkSize is the initial (REALLOC) or fixed (ModePause) output
	// capacity.  Zero selects the 2.5x-of-input heuristic in either mode.
	// Ignored when FixedBuffer is set.
	ChunkSize int
	// FixedBuffer, if non-nil, borrows a caller-owned output buffer.
	// Setting it implies ModePause and a constant output capacity equal
	// to len(FixedBuffer).
	FixedBuffer []byte
	// Mode selects the flow-control regime.  Ignored (forced to
	// ModePause) when FixedBuffer is set.
	Mode Mode
	// Tier overrides automatic ISA-tier detection; zero value TierAuto
	// detects the best tier supported by the current CPU.
	Tier Tier
	// MaxDepth bounds container nesting; zero selects the default of
	// 200.  Exceeding it yields a NestingTooDeep error.
	MaxDepth int
}

// transcoder is the single stateful object driving one input cursor and
// one output cursor.  All fields are private; an instance is used for
// exactly one transcode.
type transcoder struct {
	in cursor

	out    []byte
	outIdx int
	outLen int

	mode Mode
	tier Tier

	maxDepth int
	curDepth int

	err *Error

	topIsArray  bool
	fixedBuffer bool
	coord       *coordinator
}

func newTranscoder(in []byte, opts Options) *transcoder {
	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = 200
	}

	tier := opts.Tier
	if tier == TierAuto {
		tier = detectTier()
	}

	mode := opts.Mode
	if opts.FixedBuffer != nil {
		mode = ModePause
	}

	t := &transcoder{
		in:         cursor{in: in},
		mode:       mode,
		tier:       tier,
		maxDepth:   maxDepth,
		topIsArray: opts.IsArray,
	}

	if opts.FixedBuffer != nil {
		t.out = opts.FixedBuffer
		t.outLen = len(opts.FixedBuffer)
		t.fixedBuffer = true
	} else if mode == ModePause {
		size := opts.ChunkSize
		if size == 0 {
			size = ceilMul5Div2(len(in)) + outputSlack
		}
		t.out = make([]byte, size)
		t.outLen = size
	} else {
		size := opts.ChunkSize
		if size == 0 {
			size = ceilMul5Div2(len(in)) + outputSlack
		}
		t.out = make([]byte, size)
		t.outLen = size
	}

	if mode == ModePause {
		t.coord = newCoordinator(t)
	}

	return t
}

// ceilMul5Div2 computes ceil(n * 2.5) without floating point.
func ceilMul5Div2(n int) int {
	return (n*5 + 1) / 2
}

// Transcode converts a complete in-memory BSON document into a single
// contiguous JSON byte slice (REALLOC mode).  opts.Mode and
// opts.FixedBuffer are ignored; use NewChunked for ModePause.
func Transcode(in []byte, opts Options) ([]byte, error) {
	opts.Mode = ModeRealloc
	opts.FixedBuffer = nil
	t := newTranscoder(in, opts)
	if err := t.run(); err != nil {
		return nil, err
	}
	return t.out[:t.outIdx], nil
}

func (t *transcoder) run() error {
	if err := t.walk(t.topIsArray); err != nil {
		return err
	}
	return nil
}
