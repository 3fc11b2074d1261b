// Package compress wraps klauspost/compress's zlib/gzip/flate
// implementations behind the nine-entry-point contract the spec assigns
// to an external deflate library: init/release contexts, block
// compress/decompress, incremental streaming, and GZip metadata
// accessors. klauspost/compress is the teacher's own compression
// dependency (see go.mod and internal/fileanalyzer/deb_analyzer.go's use
// of its zstd package); this package leans on its zlib/gzip/flate
// packages instead of the standard library ones for the same reason the
// teacher reaches for klauspost over stdlib: drop-in API, better
// throughput.
package compress

import (
	"time"

	"github.com/deploymenttheory/streamkit/internal/streamerr"
)

// ErrorCode mirrors the deflate library's reported status, kept as a
// distinct type so callers inspecting Codec.LastError() see the same
// small vocabulary the spec names, independent of how Go's error
// wrapping happens to render it.
type ErrorCode int

const (
	Success     ErrorCode = 0
	EndOfStream ErrorCode = 1
	StreamError ErrorCode = -2
	DataError   ErrorCode = -3
	MemoryError ErrorCode = -4
	BufferError ErrorCode = -5
)

// FactorHeaderless is the sentinel compressionFactor value meaning "raw
// DEFLATE, no ZLib header" rather than an actual compression strength.
const FactorHeaderless = 2.0

// workBufSize is a nominal staging-buffer size. The streaming pumps do
// not use it: CompressPump's work buffer grows without a cap until it is
// drained.
const workBufSize = 32 * 1024

// pullChunkSize is a nominal per-step pull size. The streaming pumps do
// not use it: DecompressPump pulls from its source through the library
// reader, in whatever amounts that reader asks for.
const pullChunkSize = 8 * 1024

// Codec holds the state shared by the block and streaming operations:
// name, last error, strength, and (for GZip) filename/mtime/expected
// size metadata. A Codec must be reset to the direction actually used
// before its first streaming call; CompressData/DecompressData reset
// implicitly per call.
type Codec struct {
	name        string
	lastErr     ErrorCode
	factor      float64
	withHeader  bool
	gzip        bool
	filename    string
	modTime     time.Time
	expectedLen uint64
}

// NewZlib returns a Codec for RFC 1950 ZLib framing, or for raw DEFLATE
// when withHeader is false (the "headerless" alias).
func NewZlib(withHeader bool, factor float64) *Codec {
	return &Codec{name: "zlib", withHeader: withHeader, factor: factor}
}

// NewGZip returns a Codec for RFC 1952 GZip framing.
func NewGZip(factor float64) *Codec {
	return &Codec{name: "gzip", gzip: true, withHeader: true, factor: factor}
}

// Name returns the codec's configured wire format name.
func (c *Codec) Name() string { return c.name }

// LastError returns the most recent error code reported by this codec.
func (c *Codec) LastError() ErrorCode { return c.lastErr }

// SetFilename configures the GZip filename field written on compress and
// populated from the header on decompress. No-op for ZLib.
func (c *Codec) SetFilename(name string) { c.filename = name }

// Filename returns the GZip filename field.
func (c *Codec) Filename() string { return c.filename }

// SetModTime configures the GZip modification time, truncated to whole
// seconds on write per the GZip header format.
func (c *Codec) SetModTime(t time.Time) { c.modTime = t.Truncate(time.Second) }

// ModTime returns the GZip modification time.
func (c *Codec) ModTime() time.Time { return c.modTime }

// factorToLevel maps the [0,1] compressionFactor (or the headerless
// sentinel) onto flate's [0,9] integer strength via round-to-nearest.
func factorToLevel(factor float64) int {
	if factor == FactorHeaderless {
		factor = 0.6 // default strength when only "headerless" was requested
	}
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	level := int(factor*9 + 0.5)
	if level < 0 {
		level = 0
	}
	if level > 9 {
		level = 9
	}
	return level
}

// translate maps a library-level failure onto one of the core error
// kinds and records the corresponding ErrorCode.
func (c *Codec) translate(err error) error {
	if err == nil {
		c.lastErr = Success
		return nil
	}
	c.lastErr = DataError
	return streamerr.ErrCodec
}
