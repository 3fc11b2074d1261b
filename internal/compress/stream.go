package compress

import (
	"bytes"
	"io"
)

// CompressPump is the incremental compress-side context: callers Feed it
// plaintext as it becomes available and Drain compressed bytes out of its
// work buffer, mirroring the spec's staged pump (work buffer drained to
// the sink before more input is pulled in).
type CompressPump struct {
	codec *Codec
	w     io.WriteCloser
	work  bytes.Buffer
	done  bool
}

// NewCompressPump creates a streaming compress context for codec, reset
// to the compress direction.
func NewCompressPump(codec *Codec) (*CompressPump, error) {
	p := &CompressPump{codec: codec}
	w, err := codec.newWriter(&p.work)
	if err != nil {
		return nil, codec.translate(err)
	}
	p.w = w
	return p, nil
}

// Feed compresses data into the internal work buffer.
func (p *CompressPump) Feed(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if _, err := p.w.Write(data); err != nil {
		return p.codec.translate(err)
	}
	return nil
}

// Drain writes up to quota bytes of compressed output from the work
// buffer to sink and returns how many bytes were written.
func (p *CompressPump) Drain(sink io.Writer, quota int) (int, error) {
	if quota <= 0 || p.work.Len() == 0 {
		return 0, nil
	}
	n := quota
	if n > p.work.Len() {
		n = p.work.Len()
	}
	chunk := p.work.Next(n)
	written, err := sink.Write(chunk)
	return written, err
}

// Pending reports how many compressed bytes are waiting in the work
// buffer.
func (p *CompressPump) Pending() int { return p.work.Len() }

// Finalize feeds the codec a zero-length input with the "last call" flag
// set: it flushes and closes the underlying writer so the work buffer
// holds every remaining byte (trailer included), then drains it all to
// sink.
func (p *CompressPump) Finalize(sink io.Writer) error {
	if p.done {
		return nil
	}
	p.done = true
	if err := p.w.Close(); err != nil {
		return p.codec.translate(err)
	}
	for p.work.Len() > 0 {
		if _, err := p.Drain(sink, p.work.Len()); err != nil {
			return err
		}
	}
	return nil
}

// DecompressPump is the incremental decompress-side context. Unlike the
// compress side, stdlib/klauspost's streaming Readers already implement
// exactly the pull-as-needed, maintain-incremental-state loop the spec
// describes, so this wraps one directly rather than re-deriving the
// DEFLATE state machine by hand.
type DecompressPump struct {
	codec *Codec
	r     io.ReadCloser
}

// NewDecompressPump creates a streaming decompress context reading
// compressed bytes from source.
func NewDecompressPump(codec *Codec, source io.Reader) (*DecompressPump, error) {
	r, err := codec.newReader(source)
	if err != nil {
		codec.lastErr = DataError
		return nil, codec.translate(err)
	}
	return &DecompressPump{codec: codec, r: r}, nil
}

// Read decompresses into out, pulling from the source as needed.
func (p *DecompressPump) Read(out []byte) (int, error) {
	n, err := p.r.Read(out)
	if err != nil && err != io.EOF {
		return n, p.codec.translate(err)
	}
	return n, err
}

// Close releases the underlying decompressor context.
func (p *DecompressPump) Close() error {
	return p.r.Close()
}
