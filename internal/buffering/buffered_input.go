// Package buffering implements the read-ahead and write-behind adapters
// that sit between a raw stream and a transformer: a buffered reader, an
// eager full-slurp reader, a lazy write accumulator, and a header/body
// splitter for sinks whose first bytes need to be patched in after the
// fact.
//
// Grounded on the teacher's chunk cache in
// internal/handlers/dmg/streams.go (InStream.loadBlock/findBlock): that
// cache keeps a window of already-decoded bytes and only touches the
// inner stream when the requested position falls outside it, which is
// exactly BufferedInputStream's contract generalized from
// cache-of-many-blocks to a single read-ahead window.
package buffering

import (
	"io"

	"github.com/deploymenttheory/streamkit/internal/stream"
)

// DefaultBufferSize is BufferedInputStream's read-ahead size when none is
// specified.
const DefaultBufferSize = 32 * 1024

// BufferedInputStream wraps an inner InputStream with a read-ahead
// buffer. The inner stream's position tracks the high-water mark of what
// has been pulled in; reads are served from the local buffer. Seeking
// within the current buffer window avoids touching the inner stream at
// all; seeking outside it snaps to a buffer-aligned base and re-reads.
type BufferedInputStream struct {
	inner      stream.InputStream
	bufSize    int
	buf        []byte
	bufBase    uint64 // inner-stream position the buffer starts at
	bufLen     int    // valid bytes currently in buf
	pos        uint64 // logical stream position
	endReached bool
}

// NewBufferedInputStream wraps inner with the default buffer size.
func NewBufferedInputStream(inner stream.InputStream) *BufferedInputStream {
	return NewBufferedInputStreamSize(inner, DefaultBufferSize)
}

// NewBufferedInputStreamSize wraps inner with a caller-chosen buffer
// size.
func NewBufferedInputStreamSize(inner stream.InputStream, bufSize int) *BufferedInputStream {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	return &BufferedInputStream{inner: inner, bufSize: bufSize, buf: make([]byte, bufSize)}
}

func (b *BufferedInputStream) FullSize() uint64 { return b.inner.FullSize() }
func (b *BufferedInputStream) Position() uint64 { return b.pos }
func (b *BufferedInputStream) EndReached() bool { return b.endReached }

// inWindow reports whether p falls within [bufBase, bufBase+bufLen).
func (b *BufferedInputStream) inWindow(p uint64) bool {
	return b.bufLen > 0 && p >= b.bufBase && p < b.bufBase+uint64(b.bufLen)
}

func (b *BufferedInputStream) SetPosition(p uint64) bool {
	if b.inWindow(p) {
		b.pos = p
		b.endReached = false
		return true
	}

	base := (p / uint64(b.bufSize)) * uint64(b.bufSize)
	if !b.inner.SetPosition(base) {
		return false
	}
	b.refill(base)
	b.pos = p
	b.endReached = false
	return true
}

func (b *BufferedInputStream) refill(base uint64) {
	n, _ := io.ReadFull(readerFunc(b.inner.Read), b.buf)
	b.bufBase = base
	b.bufLen = n
}

func (b *BufferedInputStream) GoForward(n uint64) bool {
	return b.SetPosition(b.pos + n)
}

func (b *BufferedInputStream) Read(p []byte) (int, error) {
	if b.endReached {
		return 0, io.EOF
	}

	if !b.inWindow(b.pos) {
		base := (b.pos / uint64(b.bufSize)) * uint64(b.bufSize)
		if !b.inner.SetPosition(base) {
			return 0, io.EOF
		}
		b.refill(base)
		if !b.inWindow(b.pos) {
			b.endReached = true
			return 0, io.EOF
		}
	}

	off := int(b.pos - b.bufBase)
	n := copy(p, b.buf[off:b.bufLen])
	b.pos += uint64(n)
	if n == 0 {
		b.endReached = true
		return 0, io.EOF
	}
	return n, nil
}

// readerFunc adapts a Read method value to io.Reader.
type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
