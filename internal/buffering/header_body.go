package buffering

import "github.com/deploymenttheory/streamkit/internal/stream"

// HeaderBodyStream exposes a single output stream whose first headerSize
// bytes are buffered in memory and whose tail goes straight to an
// underlying sink. If the sink is seekable, the header is written at its
// real offset on Close and the body streams directly as it arrives; if
// not, the body is buffered too and Close writes header then body in
// sequence.
type HeaderBodyStream struct {
	inner          stream.OutputStream
	headerSize     int
	header         []byte
	headerStartPos uint64
	seekable       bool
	bodyPositioned bool
	bodyBuf        []byte
	pos            uint64
	closed         bool
}

// NewHeaderBodyStream wraps inner, buffering its first headerSize bytes.
func NewHeaderBodyStream(inner stream.OutputStream, headerSize int) *HeaderBodyStream {
	start := inner.Position()
	seekable := inner.SetPosition(start) // probe: a no-op seek to the current offset
	return &HeaderBodyStream{
		inner:          inner,
		headerSize:     headerSize,
		header:         make([]byte, headerSize),
		headerStartPos: start,
		seekable:       seekable,
	}
}

func (h *HeaderBodyStream) FullSize() uint64        { return stream.SizeUnknown }
func (h *HeaderBodyStream) Position() uint64        { return h.pos }
func (h *HeaderBodyStream) EndReached() bool        { return false }
func (h *HeaderBodyStream) SetPosition(uint64) bool { return false }

// AbsolutePosition reports the position in the underlying sink's address
// space, distinct from Position (which is relative to this stream's own
// start).
func (h *HeaderBodyStream) AbsolutePosition() uint64 { return h.headerStartPos + h.pos }

func (h *HeaderBodyStream) Write(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if h.pos < uint64(h.headerSize) {
			room := h.headerSize - int(h.pos)
			chunk := len(p) - n
			if chunk > room {
				chunk = room
			}
			copy(h.header[h.pos:], p[n:n+chunk])
			h.pos += uint64(chunk)
			n += chunk
			continue
		}

		rest := p[n:]
		if h.seekable {
			if !h.bodyPositioned {
				h.inner.SetPosition(h.headerStartPos + uint64(h.headerSize))
				h.bodyPositioned = true
			}
			w, err := h.inner.Write(rest)
			h.pos += uint64(w)
			n += w
			if err != nil {
				return n, err
			}
			continue
		}

		h.bodyBuf = append(h.bodyBuf, rest...)
		h.pos += uint64(len(rest))
		n += len(rest)
	}
	return n, nil
}

// Close flushes the buffered header (and, for a non-seekable sink, the
// buffered body) to the inner sink.
func (h *HeaderBodyStream) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true

	headerLen := h.headerSize
	if uint64(headerLen) > h.pos {
		headerLen = int(h.pos)
	}

	if h.seekable {
		if !h.inner.SetPosition(h.headerStartPos) {
			return nil
		}
		_, err := h.inner.Write(h.header[:headerLen])
		return err
	}

	if _, err := h.inner.Write(h.header[:headerLen]); err != nil {
		return err
	}
	_, err := h.inner.Write(h.bodyBuf)
	return err
}
