package transform

import (
	"hash"

	"github.com/deploymenttheory/streamkit/internal/stream"
	"golang.org/x/crypto/sha3"
)

// DigestTeeStream wraps an output stream, hashing every byte written to
// it with SHA3-256 before forwarding it unchanged to inner. Grounded on
// the teacher's generateSHA3Hash (internal/processor/hash.go), which
// hashes a whole file in one io.Copy pass; this generalizes the same
// sha3.New256 use to an incremental write-through so a pipeline can
// digest data as it flows rather than requiring a second full pass.
type DigestTeeStream struct {
	inner stream.OutputStream
	h     hash.Hash
	pos   uint64
}

// NewDigestTeeStream wraps inner, accumulating a running SHA3-256 over
// everything written.
func NewDigestTeeStream(inner stream.OutputStream) *DigestTeeStream {
	return &DigestTeeStream{inner: inner, h: sha3.New256()}
}

func (d *DigestTeeStream) FullSize() uint64        { return d.inner.FullSize() }
func (d *DigestTeeStream) Position() uint64        { return d.pos }
func (d *DigestTeeStream) EndReached() bool        { return d.inner.EndReached() }
func (d *DigestTeeStream) SetPosition(uint64) bool { return false }

func (d *DigestTeeStream) Write(p []byte) (int, error) {
	n, err := d.inner.Write(p)
	if n > 0 {
		d.h.Write(p[:n])
		d.pos += uint64(n)
	}
	return n, err
}

// Sum returns the SHA3-256 digest of everything written so far.
func (d *DigestTeeStream) Sum() [32]byte {
	var out [32]byte
	copy(out[:], d.h.Sum(nil))
	return out
}
