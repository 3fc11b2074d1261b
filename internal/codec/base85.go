package codec

import "github.com/deploymenttheory/streamkit/internal/streamerr"

// base85Alphabet is the custom 85-character table from the glossary (not
// Adobe/RFC 1924 ordering). It supplies the trailing four digits of every
// encoded group.
const base85Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxy" +
	"!#$()*+,-./:;=?@^`{|}~z_"

// base85LeadAlphabet supplies the first (most significant) digit of every
// encoded group: the same table with the positions of 'z' and '_' swapped,
// so the literal 'z'/'_' shortcuts below never collide with a lead digit.
var base85LeadAlphabet = swapLast2(base85Alphabet)

func swapLast2(s string) string {
	b := []byte(s)
	n := len(b)
	b[n-1], b[n-2] = b[n-2], b[n-1]
	return string(b)
}

var (
	base85Decode     [256]int16
	base85LeadDecode [256]int16
)

func init() {
	for i := range base85Decode {
		base85Decode[i] = -1
		base85LeadDecode[i] = -1
	}
	for i := 0; i < len(base85Alphabet); i++ {
		base85Decode[base85Alphabet[i]] = int16(i)
	}
	for i := 0; i < len(base85LeadAlphabet); i++ {
		base85LeadDecode[base85LeadAlphabet[i]] = int16(i)
	}
}

// base85PadDigit is the value implicitly supplied for missing trailing
// digits of a short tail group during decode: the highest-value symbol in
// the trailing-digit table, which is '_'.
const base85PadDigit = 84

// base85EncodeGroup writes the encoded form of a 1-4 byte tail (or a full
// 4-byte group) by calling emit for each output character.
func base85EncodeGroup(group []byte, emit func(byte)) {
	var padded [4]byte
	copy(padded[:], group)
	v := uint32(padded[0])<<24 | uint32(padded[1])<<16 | uint32(padded[2])<<8 | uint32(padded[3])

	if len(group) == 4 && v == 0 {
		emit('z')
		return
	}

	var digits [5]byte
	vv := v
	for i := 4; i >= 0; i-- {
		digits[i] = byte(vv % 85)
		vv /= 85
	}

	n := len(group) + 1 // number of symbols to emit for this group
	emit(base85LeadAlphabet[digits[0]])
	for i := 1; i < n; i++ {
		emit(base85Alphabet[digits[i]])
	}
}

func base85Encode(src []byte, emit func(byte)) {
	i := 0
	for ; i+4 <= len(src); i += 4 {
		base85EncodeGroup(src[i:i+4], emit)
	}
	if rem := len(src) - i; rem > 0 {
		base85EncodeGroup(src[i:], emit)
	}
}

// EncodeBase85 encodes src with the custom 85-character alphabet: a
// zero-valued 4-byte group collapses to the single character 'z'; a short
// tail of 1-3 bytes is encoded using tail+1 symbols.
func EncodeBase85(src []byte, out []byte, outLen *int) error {
	need := 0
	base85Encode(src, func(byte) { need++ })

	if out == nil {
		*outLen = need
		return nil
	}
	if len(out) < need {
		return streamerr.ErrBufferTooSmall
	}

	o := 0
	base85Encode(src, func(c byte) {
		out[o] = c
		o++
	})
	*outLen = o
	return nil
}

// base85DecodeRun processes src and calls emit for each decoded byte; returns
// ErrBadChar on an invalid symbol or an out-of-range group value.
func base85DecodeRun(src []byte, emit func(byte)) error {
	i := 0
	for i < len(src) {
		if src[i] == 'z' {
			emit(0)
			emit(0)
			emit(0)
			emit(0)
			i++
			continue
		}

		end := i + 5
		if end > len(src) {
			end = len(src)
		}
		group := src[i:end]
		i = end

		if len(group) < 2 {
			return streamerr.ErrBadChar
		}

		lead := base85LeadDecode[group[0]]
		if lead < 0 {
			return streamerr.ErrBadChar
		}
		var digits [5]int64
		digits[0] = int64(lead)
		for k := 1; k < len(group); k++ {
			d := base85Decode[group[k]]
			if d < 0 {
				return streamerr.ErrBadChar
			}
			digits[k] = int64(d)
		}
		for k := len(group); k < 5; k++ {
			digits[k] = base85PadDigit
		}

		var v int64
		for k := 0; k < 5; k++ {
			v = v*85 + digits[k]
		}
		if v < 0 || v > 0xFFFFFFFF {
			return streamerr.ErrBadChar
		}

		var buf [4]byte
		buf[0] = byte(v >> 24)
		buf[1] = byte(v >> 16)
		buf[2] = byte(v >> 8)
		buf[3] = byte(v)

		n := len(group) - 1
		for k := 0; k < n; k++ {
			emit(buf[k])
		}
	}
	return nil
}

// DecodeBase85 decodes src, expanding 'z' to four zero bytes and treating
// a short final group of k+1 (k in 1..3) symbols as a k-byte tail.
func DecodeBase85(src []byte, out []byte, outLen *int) error {
	need := 0
	if err := base85DecodeRun(src, func(byte) { need++ }); err != nil {
		return err
	}

	if out == nil {
		*outLen = need
		return nil
	}
	if len(out) < need {
		return streamerr.ErrBufferTooSmall
	}

	o := 0
	if err := base85DecodeRun(src, func(c byte) {
		out[o] = c
		o++
	}); err != nil {
		return err
	}
	*outLen = o
	return nil
}
