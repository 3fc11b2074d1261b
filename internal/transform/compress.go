package transform

import (
	"io"

	"github.com/deploymenttheory/streamkit/internal/compress"
	"github.com/deploymenttheory/streamkit/internal/stream"
)

// compressReadChunk is how much plaintext CompressOutputStream pulls
// from a caller's Write call before feeding the pump; it operates
// directly on the slice passed in, so this only bounds the per-Feed
// call when chunking a very large write.
const compressReadChunk = 64 * 1024

// CompressOutputStream compresses bytes written to it and forwards the
// compressed stream to inner. Sequential-only: SetPosition always
// fails. Close finalizes the underlying codec, flushing any trailer.
type CompressOutputStream struct {
	inner  stream.OutputStream
	pump   *compress.CompressPump
	pos    uint64
	closed bool
}

// NewCompressOutputStream wraps inner, compressing writes under codec.
func NewCompressOutputStream(inner stream.OutputStream, codec *compress.Codec) (*CompressOutputStream, error) {
	pump, err := compress.NewCompressPump(codec)
	if err != nil {
		return nil, err
	}
	return &CompressOutputStream{inner: inner, pump: pump}, nil
}

func (c *CompressOutputStream) FullSize() uint64        { return stream.SizeUnknown }
func (c *CompressOutputStream) Position() uint64        { return c.pos }
func (c *CompressOutputStream) EndReached() bool        { return false }
func (c *CompressOutputStream) SetPosition(uint64) bool { return false }

func (c *CompressOutputStream) Write(p []byte) (int, error) {
	for off := 0; off < len(p); off += compressReadChunk {
		end := off + compressReadChunk
		if end > len(p) {
			end = len(p)
		}
		if err := c.pump.Feed(p[off:end]); err != nil {
			return off, err
		}
	}
	for c.pump.Pending() > 0 {
		n, err := c.pump.Drain(sinkWriter{c.inner}, c.pump.Pending())
		c.pos += uint64(n)
		if err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

// Close finalizes the compressed stream, flushing the trailer.
func (c *CompressOutputStream) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.pump.Finalize(sinkWriter{c.inner})
}

// sinkWriter adapts a stream.OutputStream to io.Writer for the codec
// pump, which is written in terms of the standard library's streaming
// interfaces.
type sinkWriter struct{ s stream.OutputStream }

func (w sinkWriter) Write(p []byte) (int, error) { return w.s.Write(p) }

// DecompressInputStream decompresses bytes pulled from inner as they're
// read. Sequential-only: SetPosition always fails.
type DecompressInputStream struct {
	inner stream.InputStream
	pump  *compress.DecompressPump
	pos   uint64
	ended bool
}

// NewDecompressInputStream wraps inner, decompressing reads under
// codec.
func NewDecompressInputStream(inner stream.InputStream, codec *compress.Codec) (*DecompressInputStream, error) {
	pump, err := compress.NewDecompressPump(codec, sourceReader{inner})
	if err != nil {
		return nil, err
	}
	return &DecompressInputStream{inner: inner, pump: pump}, nil
}

func (d *DecompressInputStream) FullSize() uint64        { return stream.SizeUnknown }
func (d *DecompressInputStream) Position() uint64        { return d.pos }
func (d *DecompressInputStream) EndReached() bool        { return d.ended }
func (d *DecompressInputStream) SetPosition(uint64) bool { return false }
func (d *DecompressInputStream) GoForward(n uint64) bool {
	buf := make([]byte, n)
	read := uint64(0)
	for read < n {
		m, err := d.Read(buf[:min64(n-read, uint64(len(buf)))])
		read += uint64(m)
		if err != nil {
			return read == n
		}
	}
	return true
}

func (d *DecompressInputStream) Read(p []byte) (int, error) {
	n, err := d.pump.Read(p)
	d.pos += uint64(n)
	if err == io.EOF {
		d.ended = true
	}
	return n, err
}

// Close releases the underlying decompressor.
func (d *DecompressInputStream) Close() error { return d.pump.Close() }

// sourceReader adapts a stream.InputStream to io.Reader for the codec
// pump.
type sourceReader struct{ s stream.InputStream }

func (r sourceReader) Read(p []byte) (int, error) { return r.s.Read(p) }

var _ io.Writer = sinkWriter{}
var _ io.Reader = sourceReader{}
