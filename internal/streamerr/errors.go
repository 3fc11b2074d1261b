// Package streamerr defines the sentinel error kinds shared across the
// streamkit packages, so callers can classify a failure with errors.Is
// regardless of which layer of the pipeline raised it.
package streamerr

import "errors"

// Sentinel error kinds surfaced at the core API, per the error handling
// design: inner-stream errors are returned unchanged, not wrapped;
// codec-level errors are translated onto one of these.
var (
	// ErrIO means the inner stream returned short, failed, or ended when
	// bytes were required.
	ErrIO = errors.New("streamkit: i/o error")

	// ErrBadLength means a block-mode input was not a multiple of the
	// block size, or an output buffer was too small for a two-pass call.
	ErrBadLength = errors.New("streamkit: bad length")

	// ErrBadChar means a text codec encountered a character outside its
	// alphabet.
	ErrBadChar = errors.New("streamkit: bad character")

	// ErrNotKeyed means an AES operation was attempted before SetKey
	// succeeded.
	ErrNotKeyed = errors.New("streamkit: cipher not keyed")

	// ErrCodec means the compression backend reported a data, stream, or
	// memory error, or an unexpected internal state.
	ErrCodec = errors.New("streamkit: codec error")

	// ErrBufferTooSmall means a two-pass codec call was given a non-nil
	// output buffer smaller than the required size.
	ErrBufferTooSmall = errors.New("streamkit: buffer too small")

	// ErrNotSupported means the operation (seek, position, map) is not
	// supported by the concrete stream.
	ErrNotSupported = errors.New("streamkit: not supported")
)
