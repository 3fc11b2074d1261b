// Package memblock implements a resizable byte buffer used as the backing
// store for the text codecs and for any stream that needs to own a growing
// or shrinking region of memory.
//
// Grounded on the chunk-caching buffer logic in the teacher's DMG decoder
// (internal/handlers/dmg/streams.go Chunk.Alloc/Free), generalized into a
// standalone resizable block with the append/extract/search contract the
// text codecs build on.
package memblock

import (
	"bytes"

	"github.com/deploymenttheory/streamkit/internal/streamerr"
)

// shrinkHysteresis is the slack capacity below which Extract will not
// bother shrinking the underlying buffer.
const shrinkHysteresis = 4096

// growthFactor is the minimum over-allocation ratio applied whenever
// Append needs to grow the backing array, to keep repeated appends
// amortized O(N) instead of O(N^2).
const growthFactor = 1.2

// notFoundSentinel is returned by LookFor when the pattern is absent.
const notFoundSentinel = ^uint32(0)

// NotFound is the sentinel offset returned by LookFor on a miss.
const NotFound = notFoundSentinel

// Block is an owned, resizable byte buffer. The zero value is an empty,
// zero-capacity block ready to use.
type Block struct {
	buf  []byte // buf[:size] is logical content, buf[size:cap] is reserve
	size int
}

// New allocates a Block with the given initial logical size (bytes are
// zeroed).
func New(initialSize int) *Block {
	b := &Block{}
	if initialSize > 0 {
		b.buf = make([]byte, initialSize)
		b.size = initialSize
	}
	return b
}

// Size returns the current logical size.
func (b *Block) Size() int { return b.size }

// Capacity returns the current allocated capacity.
func (b *Block) Capacity() int { return cap(b.buf) }

// Bytes returns the logical content as a slice sharing the block's backing
// array. Callers must not retain it across a mutating call.
func (b *Block) Bytes() []byte { return b.buf[:b.size] }

// Equal reports bytewise equality over the logical size of both blocks.
func (b *Block) Equal(o *Block) bool {
	return bytes.Equal(b.Bytes(), o.Bytes())
}

// Append grows the logical size by n bytes, copying from src when src is
// non-nil; when src is nil, n bytes of uninitialised-but-zeroed capacity
// are reserved instead. Safe when src aliases the block's own backing
// array, even across a reallocation.
func (b *Block) Append(src []byte, n int) {
	if n <= 0 {
		return
	}

	needed := b.size + n
	if needed > cap(b.buf) {
		newCap := int(float64(needed) * growthFactor)
		if newCap < needed {
			newCap = needed
		}
		grown := make([]byte, b.size, newCap)
		copy(grown, b.buf[:b.size])
		b.buf = grown
	}

	b.buf = b.buf[:needed]
	if src != nil {
		copy(b.buf[b.size:needed], src[:n])
	} else {
		clear(b.buf[b.size:needed])
	}
	b.size = needed
}

// Extract copies the first n bytes to dst (if dst is non-nil), shifts the
// remaining bytes down, and shrinks the logical size by n. Fails with
// ErrBadLength if n exceeds the current size. The backing array is only
// physically shrunk once the unused capacity exceeds the hysteresis
// threshold.
func (b *Block) Extract(dst []byte, n int) error {
	if n > b.size {
		return streamerr.ErrBadLength
	}
	if n <= 0 {
		return nil
	}

	if dst != nil {
		copy(dst, b.buf[:n])
	}

	remaining := b.size - n
	copy(b.buf[:remaining], b.buf[n:b.size])
	b.size = remaining

	if cap(b.buf)-b.size > shrinkHysteresis {
		shrunk := make([]byte, b.size, b.size)
		copy(shrunk, b.buf[:b.size])
		b.buf = shrunk
	}
	return nil
}

// LookFor returns the first offset >= startPos at which pattern occurs, or
// NotFound. O(M*N) first-byte scan plus tail compare, by design — the
// block sizes this backs are small enough that a more elaborate matcher
// isn't worth the complexity.
func (b *Block) LookFor(pattern []byte, startPos int) uint32 {
	if len(pattern) == 0 || startPos < 0 || startPos >= b.size {
		return NotFound
	}

	hay := b.buf[:b.size]
	first := pattern[0]
	for i := startPos; i+len(pattern) <= len(hay); i++ {
		if hay[i] != first {
			continue
		}
		if bytes.Equal(hay[i:i+len(pattern)], pattern) {
			return uint32(i)
		}
	}
	return NotFound
}

// StripTo sets the logical size to min(n, size); capacity is unchanged.
func (b *Block) StripTo(n int) {
	if n < 0 {
		n = 0
	}
	if n < b.size {
		b.size = n
	}
}

// EnsureSize grows or shrinks the backing capacity to exactly n bytes.
// When setSizeToo is set, the logical size is also set to n; newly
// exposed bytes are zeroed. Otherwise the logical size is preserved,
// clamped down if it no longer fits the new capacity.
func (b *Block) EnsureSize(n int, setSizeToo bool) {
	if n < 0 {
		n = 0
	}

	keep := minInt(b.size, n)
	resized := make([]byte, n)
	copy(resized[:keep], b.buf[:keep])
	b.buf = resized

	if setSizeToo {
		b.size = n
	} else if b.size > n {
		b.size = n
	}
}

// Wipe zeroes the buffer before releasing it. Mandatory for any block that
// ever held key material.
func (b *Block) Wipe() {
	for i := range b.buf {
		b.buf[i] = 0
	}
	b.buf = nil
	b.size = 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
