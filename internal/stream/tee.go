package stream

import (
	"errors"
	"io"

	"github.com/deploymenttheory/streamkit/internal/streamerr"
)

// TeeStream fans one write to two sinks. If the second sink accepts
// fewer bytes than the first, the first is rewound to that shorter
// count so both sinks end up agreeing on how much was actually written;
// if the first sink fails to seek during that rewind, the tee itself fails.
//
// Grounded on the teacher's dual-accounting idea in OutStreamWithCRC
// (internal/handlers/dmg/streams.go), generalized from "track a CRC
// alongside a write" to "write to two independent sinks and reconcile
// their counts".
type TeeStream struct {
	first, second Seekable
}

// Seekable is the subset of OutputStream a TeeStream needs from its
// sinks: write, and the ability to rewind.
type Seekable interface {
	OutputStream
}

// NewTeeStream fans writes to first and second.
func NewTeeStream(first, second Seekable) *TeeStream {
	return &TeeStream{first: first, second: second}
}

func (t *TeeStream) FullSize() uint64 { return t.first.FullSize() }
func (t *TeeStream) Position() uint64 { return t.first.Position() }
func (t *TeeStream) EndReached() bool { return t.first.EndReached() }

func (t *TeeStream) SetPosition(p uint64) bool {
	return t.first.SetPosition(p) && t.second.SetPosition(p)
}

func (t *TeeStream) Write(p []byte) (int, error) {
	n1, err1 := t.first.Write(p)
	if err1 != nil && !errors.Is(err1, io.ErrShortWrite) {
		return n1, err1
	}

	n2, err2 := t.second.Write(p[:n1])
	if err2 != nil && !errors.Is(err2, io.ErrShortWrite) {
		return n2, err2
	}

	if n2 < n1 {
		rewindTo := t.first.Position() - uint64(n1-n2)
		if !t.first.SetPosition(rewindTo) {
			return n2, streamerr.ErrIO
		}
		return n2, nil
	}
	return n1, nil
}
