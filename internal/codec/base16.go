// Package codec implements the Base16, Base64, and Base85 text codecs as
// two-pass buffer functions: called with a nil output buffer, a function
// reports the exact required output length; called with a non-nil buffer,
// it fills at most len(out) bytes and reports how many it wrote.
//
// Grounded on the teacher's hex/base64 buffer helpers in
// internal/handlers/dmg/utils.go (ConvertDataToHexUpper/Lower,
// Base64ToBin), generalized into the full encode/decode/size-query
// contract the spec requires.
package codec

import (
	"github.com/deploymenttheory/streamkit/internal/streamerr"
)

const hexUpper = "0123456789ABCDEF"

func hexVal(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	default:
		return 0, false
	}
}

// Base16EncodedLen returns the exact encoded length of n input bytes.
func Base16EncodedLen(n int) int { return n * 2 }

// Base16DecodedLen returns the exact decoded length of n encoded hex
// characters, treating an odd trailing nibble as one extra byte.
func Base16DecodedLen(n int) int { return (n + 1) / 2 }

// EncodeBase16 writes the upper-case hex encoding of src into out. If out
// is nil, *outLen is set to the required size and the call succeeds.
// Otherwise at most *outLen bytes are written and *outLen is updated to
// the number actually written; ErrBufferTooSmall if out is too small.
func EncodeBase16(src []byte, out []byte, outLen *int) error {
	need := Base16EncodedLen(len(src))
	if out == nil {
		*outLen = need
		return nil
	}
	if len(out) < need {
		return streamerr.ErrBufferTooSmall
	}
	for i, c := range src {
		out[i*2] = hexUpper[c>>4]
		out[i*2+1] = hexUpper[c&0x0f]
	}
	*outLen = need
	return nil
}

// DecodeBase16 decodes mixed-case hex from src into out. An odd-length
// input decodes its final character as the high nibble of a final byte
// (low nibble zero). Non-hex characters fail with ErrBadChar.
func DecodeBase16(src []byte, out []byte, outLen *int) error {
	need := Base16DecodedLen(len(src))
	if out == nil {
		*outLen = need
		return nil
	}
	if len(out) < need {
		return streamerr.ErrBufferTooSmall
	}

	full := len(src) / 2
	for i := 0; i < full; i++ {
		hi, ok1 := hexVal(src[i*2])
		lo, ok2 := hexVal(src[i*2+1])
		if !ok1 || !ok2 {
			return streamerr.ErrBadChar
		}
		out[i] = byte(hi<<4 | lo)
	}
	if len(src)%2 == 1 {
		hi, ok := hexVal(src[len(src)-1])
		if !ok {
			return streamerr.ErrBadChar
		}
		out[full] = byte(hi << 4)
	}
	*outLen = need
	return nil
}

// ToHexUpper is a convenience one-shot encoder used by callers that just
// want a string back (no two-pass sizing dance).
func ToHexUpper(src []byte) string {
	out := make([]byte, Base16EncodedLen(len(src)))
	n := 0
	_ = EncodeBase16(src, out, &n)
	return string(out[:n])
}
