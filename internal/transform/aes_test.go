package transform

import (
	"bytes"
	"io"
	"testing"

	"github.com/deploymenttheory/streamkit/internal/aescrypt"
	"github.com/deploymenttheory/streamkit/internal/stream"
)

func newCFBCipher(t *testing.T, key, iv []byte) *aescrypt.Cipher {
	t.Helper()
	c := &aescrypt.Cipher{}
	if err := c.SetKey(key, len(key), iv, 16); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestAESStreamRoundTripExactBlockMultiple(t *testing.T) {
	key := bytes.Repeat([]byte{0x11}, 16)
	iv := bytes.Repeat([]byte{0x22}, 16)
	plain := bytes.Repeat([]byte("0123456789ABCDEF"), 4) // 4 full blocks

	sink := stream.NewOutputMemStream()
	encStream := NewAESOutputStream(sink, newCFBCipher(t, key, iv))
	if _, err := encStream.Write(plain); err != nil {
		t.Fatal(err)
	}
	if err := encStream.Close(); err != nil {
		t.Fatal(err)
	}

	decStream := NewAESInputStream(stream.NewMemoryBlockStream(sink.Bytes()), newCFBCipher(t, key, iv))
	got, err := io.ReadAll(readerFunc(decStream.Read))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plain) {
		t.Fatalf("roundtrip mismatch")
	}
}

func TestAESStreamRoundTripShortFinalBlock(t *testing.T) {
	key := bytes.Repeat([]byte{0x33}, 16)
	iv := bytes.Repeat([]byte{0x44}, 16)
	plain := []byte("exactly19bytes!!!!!") // not a multiple of 16

	sink := stream.NewOutputMemStream()
	encStream := NewAESOutputStream(sink, newCFBCipher(t, key, iv))
	if _, err := encStream.Write(plain); err != nil {
		t.Fatal(err)
	}
	if err := encStream.Close(); err != nil {
		t.Fatal(err)
	}

	decStream := NewAESInputStream(stream.NewMemoryBlockStream(sink.Bytes()), newCFBCipher(t, key, iv))
	got, err := io.ReadAll(readerFunc(decStream.Read))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plain) {
		t.Fatalf("got %q, want %q", got, plain)
	}
}

func TestAESOutputStreamCloseIsIdempotent(t *testing.T) {
	key := bytes.Repeat([]byte{0x55}, 16)
	iv := bytes.Repeat([]byte{0x66}, 16)
	sink := stream.NewOutputMemStream()
	encStream := NewAESOutputStream(sink, newCFBCipher(t, key, iv))
	encStream.Write([]byte("partial"))
	if err := encStream.Close(); err != nil {
		t.Fatal(err)
	}
	before := len(sink.Bytes())
	if err := encStream.Close(); err != nil {
		t.Fatal(err)
	}
	if len(sink.Bytes()) != before {
		t.Fatal("second Close should not emit more bytes")
	}
}
