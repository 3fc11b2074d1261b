// Package transform implements the streaming transformer layer: text
// codec streams, AES streams, compression streams, and a hashing tee,
// each composed on top of an inner stream.Input/OutputStream rather
// than operating on a whole buffer at once.
//
// Grounded on the teacher's internal/handlers/dmg/streams.go wrapper
// streams (InStream, LimitedReader/LimitedWriter), which the same way
// layer a transform over an inner io.Reader/io.Writer pair while
// tracking their own position independent of the inner stream's.
package transform

import (
	"io"

	"github.com/deploymenttheory/streamkit/internal/codec"
	"github.com/deploymenttheory/streamkit/internal/stream"
)

// base64InputBlock is the number of encoded bytes (a multiple of 4)
// pulled from the inner stream per decode burst.
const base64InputBlock = 4 * 256

// base64OutputBlock is the number of raw bytes (a multiple of 3)
// accumulated before being base64-encoded and flushed downstream.
const base64OutputBlock = 3 * 256

// Base64InputStream decodes base64 text read from inner into raw bytes,
// pulling and decoding base64InputBlock-sized (a multiple of 4) bursts
// at a time.
type Base64InputStream struct {
	inner  stream.InputStream
	raw    []byte
	rawPos int
	rawLen int
	pos    uint64
	ended  bool
}

// NewBase64InputStream wraps inner, which must yield base64 text.
func NewBase64InputStream(inner stream.InputStream) *Base64InputStream {
	return &Base64InputStream{inner: inner}
}

func (b *Base64InputStream) FullSize() uint64 { return stream.SizeUnknown }
func (b *Base64InputStream) Position() uint64 { return b.pos }
func (b *Base64InputStream) EndReached() bool { return b.ended && b.rawPos >= b.rawLen }
func (b *Base64InputStream) SetPosition(uint64) bool { return false }
func (b *Base64InputStream) GoForward(n uint64) bool {
	buf := make([]byte, n)
	read := uint64(0)
	for read < n {
		m, err := b.Read(buf[:min64(n-read, uint64(len(buf)))])
		read += uint64(m)
		if err != nil {
			return read == n
		}
	}
	return true
}

func (b *Base64InputStream) refill() error {
	enc := make([]byte, base64InputBlock)
	total := 0
	for total < len(enc) {
		n, err := b.inner.Read(enc[total:])
		total += n
		if err != nil {
			b.ended = true
			break
		}
		if b.inner.EndReached() {
			b.ended = true
			break
		}
	}
	enc = enc[:total]

	need := codec.Base64DecodedLen(len(enc))
	out := make([]byte, need)
	n := 0
	if err := codec.DecodeBase64(enc, out, &n); err != nil {
		return err
	}
	b.raw = out[:n]
	b.rawPos = 0
	b.rawLen = n
	return nil
}

func (b *Base64InputStream) Read(p []byte) (int, error) {
	if b.rawPos >= b.rawLen {
		if b.ended {
			return 0, io.EOF
		}
		if err := b.refill(); err != nil {
			return 0, err
		}
		if b.rawLen == 0 {
			return 0, io.EOF
		}
	}
	n := copy(p, b.raw[b.rawPos:b.rawLen])
	b.rawPos += n
	b.pos += uint64(n)
	return n, nil
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// Base64OutputStream encodes raw bytes written to it into base64 text
// on an inner sink, accumulating base64OutputBlock-sized (a multiple of
// 3) bursts between encode passes.
type Base64OutputStream struct {
	inner stream.OutputStream
	buf   []byte
	pos   uint64
}

// NewBase64OutputStream wraps inner, which receives base64 text.
func NewBase64OutputStream(inner stream.OutputStream) *Base64OutputStream {
	return &Base64OutputStream{inner: inner}
}

func (b *Base64OutputStream) FullSize() uint64        { return stream.SizeUnknown }
func (b *Base64OutputStream) Position() uint64        { return b.pos }
func (b *Base64OutputStream) EndReached() bool        { return false }
func (b *Base64OutputStream) SetPosition(uint64) bool { return false }

func (b *Base64OutputStream) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	for len(b.buf) >= base64OutputBlock {
		if err := b.flushChunk(b.buf[:base64OutputBlock]); err != nil {
			return 0, err
		}
		b.buf = b.buf[base64OutputBlock:]
	}
	b.pos += uint64(len(p))
	return len(p), nil
}

func (b *Base64OutputStream) flushChunk(chunk []byte) error {
	need := codec.Base64EncodedLen(len(chunk))
	out := make([]byte, need)
	n := 0
	if err := codec.EncodeBase64(chunk, out, &n); err != nil {
		return err
	}
	_, err := b.inner.Write(out[:n])
	return err
}

// Close flushes whatever is still buffered (fewer than base64OutputBlock
// bytes), padding a final partial 3-byte group with '=' as base64
// requires.
func (b *Base64OutputStream) Close() error {
	if len(b.buf) == 0 {
		return nil
	}
	err := b.flushChunk(b.buf)
	b.buf = nil
	return err
}
