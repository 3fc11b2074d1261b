package buffering

import (
	"io"

	"github.com/deploymenttheory/streamkit/internal/stream"
)

// MemoryBufferedInputStream eagerly reads the entire inner stream into a
// local buffer at construction time; thereafter all access is direct and
// the stream advertises Mappable.
type MemoryBufferedInputStream struct {
	data []byte
	pos  uint64
}

// NewMemoryBufferedInputStream slurps all of inner, optionally appending
// a trailing NUL (useful when the buffer is about to be treated as a C
// string by some downstream consumer).
func NewMemoryBufferedInputStream(inner stream.InputStream, trailingNUL bool) (*MemoryBufferedInputStream, error) {
	data, err := io.ReadAll(readerFunc(inner.Read))
	if err != nil {
		return nil, err
	}
	if trailingNUL {
		data = append(data, 0)
	}
	return &MemoryBufferedInputStream{data: data}, nil
}

func (m *MemoryBufferedInputStream) FullSize() uint64 { return uint64(len(m.data)) }
func (m *MemoryBufferedInputStream) Position() uint64 { return m.pos }
func (m *MemoryBufferedInputStream) EndReached() bool { return m.pos >= uint64(len(m.data)) }
func (m *MemoryBufferedInputStream) Map() []byte      { return m.data }

func (m *MemoryBufferedInputStream) SetPosition(p uint64) bool {
	if p > uint64(len(m.data)) {
		return false
	}
	m.pos = p
	return true
}

func (m *MemoryBufferedInputStream) GoForward(n uint64) bool {
	return m.SetPosition(m.pos + n)
}

func (m *MemoryBufferedInputStream) Read(p []byte) (int, error) {
	if m.pos >= uint64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += uint64(n)
	return n, nil
}

// MemoryBufferedOutputStream accumulates writes into a caller-sized
// buffer allocated lazily on first write, then DeliverBuffer pushes the
// whole block to the inner sink in one call. Close delivers automatically
// if the buffer is dirty (has unwritten content).
type MemoryBufferedOutputStream struct {
	inner   stream.OutputStream
	bufSize int
	buf     []byte
	dirty   bool
}

// NewMemoryBufferedOutputStream wraps inner. bufSize is the buffer's
// initial capacity; the buffer grows as writes need it, and nothing is
// delivered to inner until DeliverBuffer, SetPosition or Close.
func NewMemoryBufferedOutputStream(inner stream.OutputStream, bufSize int) *MemoryBufferedOutputStream {
	return &MemoryBufferedOutputStream{inner: inner, bufSize: bufSize}
}

func (m *MemoryBufferedOutputStream) getBufferOfSize(n int) []byte {
	if m.buf == nil {
		size := m.bufSize
		if size < n {
			size = n
		}
		m.buf = make([]byte, 0, size)
	}
	return m.buf
}

func (m *MemoryBufferedOutputStream) FullSize() uint64 { return m.inner.FullSize() }
func (m *MemoryBufferedOutputStream) Position() uint64 { return m.inner.Position() }
func (m *MemoryBufferedOutputStream) EndReached() bool { return m.inner.EndReached() }

func (m *MemoryBufferedOutputStream) SetPosition(p uint64) bool {
	if m.dirty {
		if err := m.DeliverBuffer(); err != nil {
			return false
		}
	}
	return m.inner.SetPosition(p)
}

func (m *MemoryBufferedOutputStream) Write(p []byte) (int, error) {
	m.buf = m.getBufferOfSize(len(p))
	m.buf = append(m.buf, p...)
	m.dirty = true
	return len(p), nil
}

// DeliverBuffer pushes the whole accumulated block to the inner sink.
func (m *MemoryBufferedOutputStream) DeliverBuffer() error {
	if !m.dirty {
		return nil
	}
	if _, err := m.inner.Write(m.buf); err != nil {
		return err
	}
	m.buf = m.buf[:0]
	m.dirty = false
	return nil
}

// Close delivers any buffered content still pending.
func (m *MemoryBufferedOutputStream) Close() error {
	return m.DeliverBuffer()
}
