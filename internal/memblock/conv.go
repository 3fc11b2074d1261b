package memblock

import "github.com/deploymenttheory/streamkit/internal/codec"

type twoPassCodec func(src, out []byte, outLen *int) error

// fromBase runs a two-pass decode codec against src and returns a new
// Block sized exactly to the decoded content. A zero-length input
// produces an empty block and is not an error.
func fromBase(src []byte, decode twoPassCodec) (*Block, error) {
	var need int
	if err := decode(src, nil, &need); err != nil {
		return nil, err
	}
	b := New(need)
	if need == 0 {
		return b, nil
	}
	n := need
	if err := decode(src, b.buf, &n); err != nil {
		return nil, err
	}
	b.size = n
	b.buf = b.buf[:n]
	return b, nil
}

// toBase runs a two-pass encode codec against the block's content and
// returns a new Block holding the encoded text.
func (b *Block) toBase(encode twoPassCodec) (*Block, error) {
	return fromBase(b.Bytes(), encode)
}

// FromBase16 decodes hex text into a new Block.
func FromBase16(src []byte) (*Block, error) { return fromBase(src, codec.DecodeBase16) }

// FromBase64 decodes Base64 text into a new Block.
func FromBase64(src []byte) (*Block, error) { return fromBase(src, codec.DecodeBase64) }

// FromBase85 decodes Base85 text into a new Block.
func FromBase85(src []byte) (*Block, error) { return fromBase(src, codec.DecodeBase85) }

// ToBase16 encodes the block's content as upper-case hex.
func (b *Block) ToBase16() (*Block, error) { return b.toBase(codec.EncodeBase16) }

// ToBase64 encodes the block's content as Base64.
func (b *Block) ToBase64() (*Block, error) { return b.toBase(codec.EncodeBase64) }

// ToBase85 encodes the block's content with the custom Base85 alphabet.
func (b *Block) ToBase85() (*Block, error) { return b.toBase(codec.EncodeBase85) }

// RebuildFromBase16 replaces the block's content in place with the hex
// decode of its current content.
func (b *Block) RebuildFromBase16() error { return b.rebuildFrom(codec.DecodeBase16) }

// RebuildFromBase64 replaces the block's content in place with the
// Base64 decode of its current content.
func (b *Block) RebuildFromBase64() error { return b.rebuildFrom(codec.DecodeBase64) }

// RebuildFromBase85 replaces the block's content in place with the
// Base85 decode of its current content.
func (b *Block) RebuildFromBase85() error { return b.rebuildFrom(codec.DecodeBase85) }

func (b *Block) rebuildFrom(decode twoPassCodec) error {
	rebuilt, err := fromBase(b.Bytes(), decode)
	if err != nil {
		return err
	}
	b.buf = rebuilt.buf
	b.size = rebuilt.size
	return nil
}
