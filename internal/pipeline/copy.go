// Package pipeline implements the free functions that glue streams
// together: a mappable-aware copy loop, a stream cloner, and the two
// stop-character readers used when parsing headers embedded in a
// stream.
//
// Grounded on the teacher's io.CopyN usage throughout
// internal/handlers/dmg/decoder.go (every Decoder implementation copies
// through a fixed-size budget the same way CopyStream's forcedSize does)
// and on its countReader wrapper (the same counting idea CopyStream's
// progress callback needs).
package pipeline

import (
	"errors"

	"github.com/deploymenttheory/streamkit/internal/stream"
)

// copyChunkSize is the loop granularity when no mappable short-circuit
// applies.
const copyChunkSize = 4096

// callbackSteps is how many equal chunks a callback-driven copy is cut
// into; CopiedData is invoked once per chunk.
const callbackSteps = 100

// CopyCallback is polled roughly every 1% of a copy; returning false
// aborts it.
type CopyCallback func(current, total uint64) bool

// CopyOption configures CopyStream.
type CopyOption func(*copyOptions)

type copyOptions struct {
	callback   CopyCallback
	forcedSize uint64
	hasForced  bool
}

// WithCallback polls cb roughly every 1% of the copy; returning false
// aborts with ErrAborted.
func WithCallback(cb CopyCallback) CopyOption {
	return func(o *copyOptions) { o.callback = cb }
}

// WithForcedSize caps the copy at n bytes regardless of the source's
// reported size.
func WithForcedSize(n uint64) CopyOption {
	return func(o *copyOptions) { o.forcedSize = n; o.hasForced = true }
}

// ErrAborted is returned when a CopyCallback returns false.
var ErrAborted = errors.New("pipeline: copy aborted by callback")

// CopyStream copies src to sink. When src is Mappable, the whole buffer
// is handed to sink in a single write; otherwise it loops in
// copyChunkSize bursts. WithForcedSize caps the total; WithCallback cuts
// the copy into callbackSteps equal chunks and polls after each.
func CopyStream(src stream.InputStream, sink stream.OutputStream, opts ...CopyOption) (uint64, error) {
	var o copyOptions
	for _, opt := range opts {
		opt(&o)
	}

	total := o.forcedSize
	if !o.hasForced {
		total = src.FullSize()
	}

	if m, ok := src.(stream.Mappable); ok {
		if data := m.Map(); data != nil {
			if o.hasForced && uint64(len(data)) > total {
				data = data[:total]
			}
			if o.callback != nil {
				return copyMappedWithCallback(data, sink, o.callback)
			}
			n, err := sink.Write(data)
			return uint64(n), err
		}
	}

	if o.callback != nil {
		return copyLoopWithCallback(src, sink, total, o.callback)
	}
	return copyLoop(src, sink, total)
}

func copyLoop(src stream.InputStream, sink stream.OutputStream, total uint64) (uint64, error) {
	buf := make([]byte, copyChunkSize)
	var written uint64
	for !src.EndReached() && (total == stream.SizeUnknown || written < total) {
		want := uint64(len(buf))
		if total != stream.SizeUnknown && total-written < want {
			want = total - written
		}
		n, err := src.Read(buf[:want])
		if n > 0 {
			wn, werr := sink.Write(buf[:n])
			written += uint64(wn)
			if werr != nil {
				return written, werr
			}
		}
		if err != nil {
			break
		}
	}
	return written, nil
}

func copyLoopWithCallback(src stream.InputStream, sink stream.OutputStream, total uint64, cb CopyCallback) (uint64, error) {
	step := total / callbackSteps
	if step == 0 {
		step = 1
	}
	buf := make([]byte, copyChunkSize)
	var written, sinceCallback uint64
	for !src.EndReached() && (total == stream.SizeUnknown || written < total) {
		want := uint64(len(buf))
		if total != stream.SizeUnknown && total-written < want {
			want = total - written
		}
		n, err := src.Read(buf[:want])
		if n > 0 {
			wn, werr := sink.Write(buf[:n])
			written += uint64(wn)
			sinceCallback += uint64(wn)
			if werr != nil {
				return written, werr
			}
		}
		if sinceCallback >= step {
			sinceCallback = 0
			if !cb(written, total) {
				return written, ErrAborted
			}
		}
		if err != nil {
			break
		}
	}
	cb(written, total)
	return written, nil
}

func copyMappedWithCallback(data []byte, sink stream.OutputStream, cb CopyCallback) (uint64, error) {
	total := uint64(len(data))
	step := total / callbackSteps
	if step == 0 {
		step = uint64(len(data))
		if step == 0 {
			step = 1
		}
	}

	var written uint64
	for written < total {
		n := step
		if total-written < n {
			n = total - written
		}
		wn, err := sink.Write(data[written : written+n])
		written += uint64(wn)
		if err != nil {
			return written, err
		}
		if !cb(written, total) {
			return written, ErrAborted
		}
	}
	return written, nil
}
