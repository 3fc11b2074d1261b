package codec

import (
	"testing"

	"github.com/deploymenttheory/streamkit/internal/streamerr"
)

func TestEncodeDecodeBase16RoundTrip(t *testing.T) {
	src := []byte{0x00, 0x01, 0xAB, 0xFF}
	need := 0
	if err := EncodeBase16(src, nil, &need); err != nil {
		t.Fatal(err)
	}
	out := make([]byte, need)
	n := 0
	if err := EncodeBase16(src, out, &n); err != nil {
		t.Fatal(err)
	}
	if got, want := string(out[:n]), "0001ABFF"; got != want {
		t.Fatalf("encode = %q, want %q", got, want)
	}

	need = 0
	if err := DecodeBase16(out[:n], nil, &need); err != nil {
		t.Fatal(err)
	}
	dec := make([]byte, need)
	n2 := 0
	if err := DecodeBase16(out[:n], dec, &n2); err != nil {
		t.Fatal(err)
	}
	if string(dec[:n2]) != string(src) {
		t.Fatalf("roundtrip = %v, want %v", dec[:n2], src)
	}
}

func TestDecodeBase16OddTail(t *testing.T) {
	out := make([]byte, Base16DecodedLen(3))
	n := 0
	if err := DecodeBase16([]byte("ABC"), out, &n); err != nil {
		t.Fatal(err)
	}
	want := []byte{0xAB, 0xC0}
	if string(out[:n]) != string(want) {
		t.Fatalf("got %v, want %v", out[:n], want)
	}
}

func TestDecodeBase16BadChar(t *testing.T) {
	out := make([]byte, 1)
	n := 0
	if err := DecodeBase16([]byte("ZZ"), out, &n); err != streamerr.ErrBadChar {
		t.Fatalf("err = %v, want ErrBadChar", err)
	}
}

func TestEncodeBase16BufferTooSmall(t *testing.T) {
	out := make([]byte, 1)
	n := 0
	if err := EncodeBase16([]byte{0x01, 0x02}, out, &n); err != streamerr.ErrBufferTooSmall {
		t.Fatalf("err = %v, want ErrBufferTooSmall", err)
	}
}

func TestToHexUpper(t *testing.T) {
	if got := ToHexUpper([]byte{0xde, 0xad}); got != "DEAD" {
		t.Fatalf("got %q", got)
	}
}
