package stream

import (
	"bytes"

	"github.com/idelchi/goseal/internal/frame"
)

// State classifies the bytes at the head of the buffer.
type State int

const (
	// Incomplete means too few bytes have arrived to judge the head.
	Incomplete State = iota

	// Fuzz means the bytes at the head cannot be a valid frame.
	Fuzz

	// Ready means a complete, checksum-valid frame sits at the head.
	Ready
)

// Buffer is a fixed-capacity byte accumulator for the decode direction.
// It never grows after construction.
type Buffer struct {
	buf []byte
	n   int
}

// New returns a Buffer with the given capacity in bytes.
func New(capacity int) *Buffer {
	return &Buffer{buf: make([]byte, capacity)}
}

// Len returns the number of valid bytes currently buffered.
func (b *Buffer) Len() int { return b.n }

// Left returns the free space remaining in the buffer.
func (b *Buffer) Left() int { return len(b.buf) - b.n }

// Cap returns the fixed capacity of the buffer.
func (b *Buffer) Cap() int { return len(b.buf) }

// Flush discards all buffered bytes.
func (b *Buffer) Flush() { b.n = 0 }

// Head returns the valid bytes at the head of the buffer. The slice aliases
// the buffer and is invalidated by the next Feed or Consume.
func (b *Buffer) Head() []byte { return b.buf[:b.n] }

// Feed appends p to the buffer. The append is all-or-nothing: if p does not
// fit in the remaining space, nothing is buffered and Feed reports false.
// On success any fuzz at the head is removed before returning.
func (b *Buffer) Feed(p []byte) bool {
	if len(p) > b.Left() {
		return false
	}

	copy(b.buf[b.n:], p)
	b.n += len(p)

	b.Recover()

	return true
}

// Inspect classifies the head of the buffer without consuming anything.
// When the state is Ready it also returns the frame's header length and
// total length.
//
// A frame whose checksum does not verify is Fuzz in its entirety, even if
// every length field is plausible.
func (b *Buffer) Inspect() (State, int, int) {
	if b.n == 0 {
		return Incomplete, 0, 0
	}

	head := b.buf[:b.n]

	if head[0] != frame.SyncByte {
		return Fuzz, 0, 0
	}

	if b.n >= 2 && head[1] != frame.Version {
		return Fuzz, 0, 0
	}

	// The shortest legal frame is a preamble plus one cipher block.
	if b.n < frame.PreambleSize+frame.BlockSize {
		return Incomplete, 0, 0
	}

	p := frame.ParsePreamble(head)

	switch {
	case p.TotalLen <= p.HdrLen,
		p.TotalLen > len(b.buf),
		p.TotalLen > frame.MaxFrameSize:
		return Fuzz, 0, 0
	case p.TotalLen < frame.PreambleSize+p.HdrLen+frame.BlockSize:
		return Fuzz, 0, 0
	}

	if b.n < p.TotalLen {
		return Incomplete, 0, 0
	}

	if p.Checksum != frame.Checksum(head[frame.PreambleSize:p.TotalLen]) {
		return Fuzz, 0, 0
	}

	return Ready, p.HdrLen, p.TotalLen
}

// Recover discards fuzz from the head of the buffer until the head is a
// potentially valid (possibly incomplete) frame or the buffer is empty.
// Each pass either finds the next sync marker and shifts it to the front or
// empties the buffer, so recovery is O(buffered bytes) and always terminates.
func (b *Buffer) Recover() {
	for b.n > 0 {
		if state, _, _ := b.Inspect(); state != Fuzz {
			return
		}

		if b.n == 1 {
			b.n = 0

			return
		}

		// The current head byte is known bad; scan past it for the
		// next candidate sync marker.
		i := bytes.IndexByte(b.buf[1:b.n], frame.SyncByte)
		if i < 0 {
			b.n = 0

			return
		}

		b.Consume(i + 1)
	}
}

// Consume removes the first n bytes, shifting any remaining bytes to the
// front of the buffer.
func (b *Buffer) Consume(n int) {
	if n >= b.n {
		b.n = 0

		return
	}

	copy(b.buf, b.buf[n:b.n])
	b.n -= n
}
