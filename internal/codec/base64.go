package codec

import "github.com/deploymenttheory/streamkit/internal/streamerr"

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var base64Decode [256]int8

func init() {
	for i := range base64Decode {
		base64Decode[i] = -1
	}
	for i := 0; i < len(base64Alphabet); i++ {
		base64Decode[base64Alphabet[i]] = int8(i)
	}
}

// Base64EncodedLen returns the exact encoded length (always a multiple of
// four, padded with '=').
func Base64EncodedLen(n int) int { return ((n + 2) / 3) * 4 }

// Base64DecodedLen returns an upper bound on the decoded length of n
// encoded bytes (the permissive decoder may skip non-alphabet input, so
// the true length can be smaller; callers size from this bound).
func Base64DecodedLen(n int) int { return (n/4 + 1) * 3 }

// EncodeBase64 encodes src per RFC 4648 section 4, '+'/'/' alphabet with
// '=' padding.
func EncodeBase64(src []byte, out []byte, outLen *int) error {
	need := Base64EncodedLen(len(src))
	if out == nil {
		*outLen = need
		return nil
	}
	if len(out) < need {
		return streamerr.ErrBufferTooSmall
	}

	o := 0
	i := 0
	for ; i+3 <= len(src); i += 3 {
		v := uint32(src[i])<<16 | uint32(src[i+1])<<8 | uint32(src[i+2])
		out[o] = base64Alphabet[(v>>18)&0x3f]
		out[o+1] = base64Alphabet[(v>>12)&0x3f]
		out[o+2] = base64Alphabet[(v>>6)&0x3f]
		out[o+3] = base64Alphabet[v&0x3f]
		o += 4
	}

	switch len(src) - i {
	case 1:
		v := uint32(src[i]) << 16
		out[o] = base64Alphabet[(v>>18)&0x3f]
		out[o+1] = base64Alphabet[(v>>12)&0x3f]
		out[o+2] = '='
		out[o+3] = '='
		o += 4
	case 2:
		v := uint32(src[i])<<16 | uint32(src[i+1])<<8
		out[o] = base64Alphabet[(v>>18)&0x3f]
		out[o+1] = base64Alphabet[(v>>12)&0x3f]
		out[o+2] = base64Alphabet[(v>>6)&0x3f]
		out[o+3] = '='
		o += 4
	}

	*outLen = o
	return nil
}

// DecodeBase64 decodes src, permissively skipping any byte outside the
// alphabet (and outside '=') up to the first '=' padding character.
func DecodeBase64(src []byte, out []byte, outLen *int) error {
	// First pass (always needed, since the permissive skip means the
	// true output length isn't a pure function of len(src)) collects the
	// 6-bit values actually present.
	vals := make([]byte, 0, len(src))
	for _, c := range src {
		if c == '=' {
			break
		}
		if v := base64Decode[c]; v >= 0 {
			vals = append(vals, byte(v))
		}
	}

	need := (len(vals) * 6) / 8
	if out == nil {
		*outLen = need
		return nil
	}
	if len(out) < need {
		return streamerr.ErrBufferTooSmall
	}

	o := 0
	i := 0
	for ; i+4 <= len(vals); i += 4 {
		v := uint32(vals[i])<<18 | uint32(vals[i+1])<<12 | uint32(vals[i+2])<<6 | uint32(vals[i+3])
		out[o] = byte(v >> 16)
		out[o+1] = byte(v >> 8)
		out[o+2] = byte(v)
		o += 3
	}

	switch len(vals) - i {
	case 2:
		v := uint32(vals[i])<<18 | uint32(vals[i+1])<<12
		out[o] = byte(v >> 16)
		o++
	case 3:
		v := uint32(vals[i])<<18 | uint32(vals[i+1])<<12 | uint32(vals[i+2])<<6
		out[o] = byte(v >> 16)
		out[o+1] = byte(v >> 8)
		o += 2
	}

	*outLen = o
	return nil
}
