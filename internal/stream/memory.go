package stream

import (
	"io"

	"github.com/deploymenttheory/streamkit/internal/memblock"
)

// MemoryBlockStream is a read-only view over a fixed, caller-owned byte
// region. Position is monotone on successful reads and clamped by
// FullSize on seek.
type MemoryBlockStream struct {
	data []byte
	pos  uint64
}

// NewMemoryBlockStream wraps data for reading without copying it.
func NewMemoryBlockStream(data []byte) *MemoryBlockStream {
	return &MemoryBlockStream{data: data}
}

func (s *MemoryBlockStream) FullSize() uint64 { return uint64(len(s.data)) }
func (s *MemoryBlockStream) Position() uint64 { return s.pos }
func (s *MemoryBlockStream) EndReached() bool { return s.pos >= uint64(len(s.data)) }
func (s *MemoryBlockStream) Map() []byte      { return s.data }

func (s *MemoryBlockStream) SetPosition(p uint64) bool {
	if p > uint64(len(s.data)) {
		p = uint64(len(s.data))
	}
	s.pos = p
	return true
}

func (s *MemoryBlockStream) GoForward(n uint64) bool {
	if s.pos+n > uint64(len(s.data)) {
		return false
	}
	s.pos += n
	return true
}

func (s *MemoryBlockStream) Read(p []byte) (int, error) {
	if s.pos >= uint64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += uint64(n)
	return n, nil
}

// MemoryBlockOutStream writes into a fixed, caller-owned byte region;
// SetPosition is bounded by the region's length, and writes are cut
// short at the region's end.
type MemoryBlockOutStream struct {
	data []byte
	pos  uint64
}

// NewMemoryBlockOutStream wraps data for bounded writing.
func NewMemoryBlockOutStream(data []byte) *MemoryBlockOutStream {
	return &MemoryBlockOutStream{data: data}
}

func (s *MemoryBlockOutStream) FullSize() uint64 { return uint64(len(s.data)) }
func (s *MemoryBlockOutStream) Position() uint64 { return s.pos }
func (s *MemoryBlockOutStream) EndReached() bool { return s.pos >= uint64(len(s.data)) }
func (s *MemoryBlockOutStream) Map() []byte      { return s.data }

func (s *MemoryBlockOutStream) SetPosition(p uint64) bool {
	if p > uint64(len(s.data)) {
		return false
	}
	s.pos = p
	return true
}

func (s *MemoryBlockOutStream) Write(p []byte) (int, error) {
	avail := uint64(len(s.data)) - s.pos
	n := uint64(len(p))
	if n > avail {
		n = avail
	}
	copy(s.data[s.pos:s.pos+n], p[:n])
	s.pos += n
	if n < uint64(len(p)) {
		return int(n), io.ErrShortWrite
	}
	return int(n), nil
}

// OutputMemStream owns a growing memblock.Block and is mappable: a
// consumer can read back the accumulated bytes with Map without a copy.
type OutputMemStream struct {
	block *memblock.Block
	pos   uint64
}

// NewOutputMemStream creates an empty, growing memory output stream.
func NewOutputMemStream() *OutputMemStream {
	return &OutputMemStream{block: memblock.New(0)}
}

func (s *OutputMemStream) FullSize() uint64 { return uint64(s.block.Size()) }
func (s *OutputMemStream) Position() uint64 { return s.pos }
func (s *OutputMemStream) EndReached() bool { return false }
func (s *OutputMemStream) Map() []byte      { return s.block.Bytes() }

func (s *OutputMemStream) SetPosition(p uint64) bool {
	if p > uint64(s.block.Size()) {
		return false
	}
	s.pos = p
	return true
}

// Write appends p at the current position, growing the block if the
// position is at the end (mid-block overwrite at an earlier position is
// not supported by an append-only block and fails).
func (s *OutputMemStream) Write(p []byte) (int, error) {
	if s.pos != uint64(s.block.Size()) {
		return 0, io.ErrShortWrite
	}
	s.block.Append(p, len(p))
	s.pos = uint64(s.block.Size())
	return len(p), nil
}

// Bytes returns the accumulated content without copying.
func (s *OutputMemStream) Bytes() []byte { return s.block.Bytes() }
