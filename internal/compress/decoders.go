package compress

import (
	"compress/bzip2"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/deploymenttheory/streamkit/internal/streamerr"
)

// Method identifies a decode-only codec a pipeline may need to read, even
// though the spec's ZLib/GZip primitive is the only one with an encode
// side. Grounded on the teacher's DMG Method/DecoderRegistry pattern
// (internal/handlers/dmg/constants.go, decoder.go): real archives the
// teacher's own tooling unpacks carry bzip2 and xz members alongside
// deflate, so a pipeline built from this package can consume them too.
type Method int

const (
	MethodZlib Method = iota
	MethodGZip
	MethodBzip2
	MethodXZ
)

// Decoder decompresses exactly one member from r into w.
type Decoder interface {
	Decode(r io.Reader, w io.Writer) (int64, error)
}

type bzip2Decoder struct{}

func (bzip2Decoder) Decode(r io.Reader, w io.Writer) (int64, error) {
	return io.Copy(w, bzip2.NewReader(r))
}

type xzDecoder struct{}

func (xzDecoder) Decode(r io.Reader, w io.Writer) (int64, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return 0, streamerr.ErrCodec
	}
	return io.Copy(w, xr)
}

type zlibDecoder struct{ withHeader bool }

func (d zlibDecoder) Decode(r io.Reader, w io.Writer) (int64, error) {
	codec := NewZlib(d.withHeader, 0)
	rc, err := codec.newReader(r)
	if err != nil {
		return 0, streamerr.ErrCodec
	}
	defer rc.Close()
	return io.Copy(w, rc)
}

type gzipDecoder struct{}

func (gzipDecoder) Decode(r io.Reader, w io.Writer) (int64, error) {
	codec := NewGZip(0)
	rc, err := codec.newReader(r)
	if err != nil {
		return 0, streamerr.ErrCodec
	}
	defer rc.Close()
	return io.Copy(w, rc)
}

// DecoderRegistry maps a Method onto its Decoder, so a caller walking a
// multi-member archive can dispatch per member the way the teacher's DMG
// handler dispatches per block type.
type DecoderRegistry struct {
	decoders map[Method]Decoder
}

// NewDecoderRegistry returns a registry with every known method wired.
func NewDecoderRegistry() *DecoderRegistry {
	return &DecoderRegistry{decoders: map[Method]Decoder{
		MethodZlib:  zlibDecoder{withHeader: true},
		MethodGZip:  gzipDecoder{},
		MethodBzip2: bzip2Decoder{},
		MethodXZ:    xzDecoder{},
	}}
}

// Get returns the Decoder for method, or an error if unsupported.
func (reg *DecoderRegistry) Get(method Method) (Decoder, error) {
	d, ok := reg.decoders[method]
	if !ok {
		return nil, streamerr.ErrCodec
	}
	return d, nil
}
