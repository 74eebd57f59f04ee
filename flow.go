package bsonstream

import "sync"

// coordinator implements the PAUSE-mode producer/consumer hand-off: the
// producer is the goroutine running walk, the consumer is whatever
// goroutine calls ChunkTranscoder.Next.  Only out, outIdx, and outLen
// cross goroutines, guarded by mu.
type coordinator struct {
	mu   sync.Mutex
	cond *sync.Cond
	t    *transcoder

	// started becomes true once the consumer's first Next call has
	// released the start-up barrier.
	started bool
	// producerDone becomes true once walk has returned (successfully or
	// not); the final chunk delivered to the consumer carries done=true.
	producerDone bool
	producerErr  *Error
	cancelled    bool
}

func newCoordinator(t *transcoder) *coordinator {
	c := &coordinator{t: t}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// producerHandoff is called from ensure() when the output buffer cannot
// satisfy the next write.  It publishes the filled prefix to the
// consumer and blocks until the consumer drains it (or the transcode is
// cancelled).
func (c *coordinator) producerHandoff(n int) *Error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelled {
		return newError(Cancelled, c.t.in.idx, "transcode cancelled by consumer")
	}

	if n > c.t.outLen {
		return newError(BufferTooSmall, c.t.in.idx, "fixed buffer too small for one atomic emission")
	}

	// Wait for the start-up barrier: the consumer's first Next() call
	// must happen before any chunk is considered ready.
	for !c.started {
		c.cond.Wait()
		if c.cancelled {
			return newError(Cancelled, c.t.in.idx, "transcode cancelled by consumer")
		}
	}

	c.cond.Broadcast() // chunk at outIdx is ready for pickup
	for c.t.outIdx != 0 {
		c.cond.Wait()
		if c.cancelled {
			return newError(Cancelled, c.t.in.idx, "transcode cancelled by consumer")
		}
	}
	return nil
}

// run drives the transcode to completion on the calling (producer)
// goroutine, recording the terminal error (if any) for the consumer to
// observe once it has drained the final chunk.
func (c *coordinator) run() {
	err := c.t.walk(c.t.topIsArray)

	c.mu.Lock()
	c.producerDone = true
	c.producerErr = err
	c.cond.Broadcast()
	c.mu.Unlock()
}

// Chunk is one fixed-size fill of the output buffer delivered by
// ChunkTranscoder.Next.
type Chunk struct {
	// Data is a view into the chunk transcoder's internal buffer, valid
	// only until the next call to Next or Close.
	Data []byte
	// Done is true once Data is empty and no further chunks will be
	// produced.
	Done bool
}

// ChunkTranscoder drives a transcode in PAUSE mode, producing output on
// a background goroutine and handing it to the caller one fixed-size
// chunk at a time via Next.
type ChunkTranscoder struct {
	t       *transcoder
	started bool
	closed  bool
}

// NewChunked starts a PAUSE-mode transcode of in.  The returned
// ChunkTranscoder must be drained via Next until Done, or explicitly
// Close()d, or the background goroutine will block forever.
func NewChunked(in []byte, opts Options) *ChunkTranscoder {
	opts.Mode = ModePause
	t := newTranscoder(in, opts)

	// Start-up barrier (§4.6): out_idx begins at a sentinel meaning "not
	// ready", released only once the consumer calls Next for the first
	// time.
	t.outIdx = t.outLen + 1

	ct := &ChunkTranscoder{t: t}
	go t.coord.run()
	return ct
}

// Next blocks until the next chunk of output is ready, then returns it.
// The returned Chunk.Data is only valid until the following call to Next
// or Close. Calling Next after a Done chunk returns an empty, Done chunk
// again.
func (ct *ChunkTranscoder) Next() (Chunk, error) {
	c := ct.t.coord
	c.mu.Lock()
	defer c.mu.Unlock()

	if !ct.started {
		ct.started = true
		c.started = true
		// Release the start-up barrier's sentinel.
		ct.t.outIdx = 0
		c.cond.Broadcast()
	}

	for ct.t.outIdx == 0 && !c.producerDone {
		c.cond.Wait()
	}

	if ct.t.outIdx == 0 && c.producerDone {
		if c.producerErr != nil {
			return Chunk{Done: true}, c.producerErr
		}
		return Chunk{Done: true}, nil
	}

	data := ct.t.out[:ct.t.outIdx]
	ct.t.outIdx = 0
	c.cond.Broadcast()
	return Chunk{Data: data}, nil
}

// Close cancels an in-progress chunked transcode, unblocking the
// producer goroutine if it is waiting inside ensure.  Safe to call after
// the transcode has already completed.
func (ct *ChunkTranscoder) Close() error {
	c := ct.t.coord
	c.mu.Lock()
	defer c.mu.Unlock()
	if ct.closed {
		return nil
	}
	ct.closed = true
	c.cancelled = true
	c.cond.Broadcast()
	return nil
}
