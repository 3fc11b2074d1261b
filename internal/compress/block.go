package compress

import (
	"bytes"
	"encoding/binary"
	"io"

	kflate "github.com/klauspost/compress/flate"
	kgzip "github.com/klauspost/compress/gzip"
	kzlib "github.com/klauspost/compress/zlib"

	"github.com/deploymenttheory/streamkit/internal/streamerr"
)

// CompressData compresses src in a single shot. Per the two-call
// protocol: out == nil reports the required size in *outLen; otherwise
// out is filled (ErrBufferTooSmall if too small) and *outLen updated to
// the bytes actually written.
func (c *Codec) CompressData(src []byte, out []byte, outLen *int) error {
	var buf bytes.Buffer
	w, err := c.newWriter(&buf)
	if err != nil {
		return c.translate(err)
	}
	if _, err := w.Write(src); err != nil {
		return c.translate(err)
	}
	if err := w.Close(); err != nil {
		return c.translate(err)
	}

	need := buf.Len()
	if out == nil {
		*outLen = need
		return nil
	}
	if len(out) < need {
		c.lastErr = BufferError
		return streamerr.ErrBufferTooSmall
	}
	n := copy(out, buf.Bytes())
	*outLen = n
	c.lastErr = Success
	return nil
}

// DecompressData decompresses src in a single shot. For GZip, the
// expected decoded length is also read from the last four bytes of src
// (little-endian, per RFC 1952) and exposed via ExpectedLen; the
// filename and modification time are populated from the header.
func (c *Codec) DecompressData(src []byte, out []byte, outLen *int) error {
	if c.gzip && len(src) >= 4 {
		c.expectedLen = uint64(binary.LittleEndian.Uint32(src[len(src)-4:]))
	}

	r, err := c.newReader(bytes.NewReader(src))
	if err != nil {
		c.lastErr = DataError
		return streamerr.ErrCodec
	}
	defer r.Close()

	decoded, err := io.ReadAll(r)
	if err != nil {
		return c.translate(err)
	}

	need := len(decoded)
	if out == nil {
		*outLen = need
		return nil
	}
	if len(out) < need {
		c.lastErr = BufferError
		return streamerr.ErrBufferTooSmall
	}
	n := copy(out, decoded)
	*outLen = n
	c.lastErr = Success
	return nil
}

// ExpectedLen returns the decoded length recovered from a GZip trailer
// by the most recent DecompressData call.
func (c *Codec) ExpectedLen() uint64 { return c.expectedLen }

func (c *Codec) newWriter(sink io.Writer) (io.WriteCloser, error) {
	level := factorToLevel(c.factor)
	switch {
	case c.gzip:
		gw, err := kgzip.NewWriterLevel(sink, level)
		if err != nil {
			return nil, err
		}
		gw.Name = c.filename
		gw.ModTime = c.modTime
		return gw, nil
	case c.withHeader:
		return kzlib.NewWriterLevel(sink, level)
	default:
		return kflate.NewWriter(sink, level)
	}
}

type readCloser struct {
	io.Reader
	closeFn func() error
}

func (r readCloser) Close() error {
	if r.closeFn != nil {
		return r.closeFn()
	}
	return nil
}

func (c *Codec) newReader(source io.Reader) (io.ReadCloser, error) {
	switch {
	case c.gzip:
		gr, err := kgzip.NewReader(source)
		if err != nil {
			return nil, err
		}
		c.filename = gr.Name
		c.modTime = gr.ModTime
		return gr, nil
	case c.withHeader:
		zr, err := kzlib.NewReader(source)
		if err != nil {
			return nil, err
		}
		return zr, nil
	default:
		fr := kflate.NewReader(source)
		return fr, nil
	}
}
