package codec

import "testing"

func TestEncodeBase64KnownVector(t *testing.T) {
	src := []byte("hello world")
	need := 0
	EncodeBase64(src, nil, &need)
	out := make([]byte, need)
	n := 0
	if err := EncodeBase64(src, out, &n); err != nil {
		t.Fatal(err)
	}
	if got, want := string(out[:n]), "aGVsbG8gd29ybGQ="; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodeBase64KnownVector(t *testing.T) {
	src := []byte("aGVsbG8gd29ybGQ=")
	need := Base64DecodedLen(len(src))
	out := make([]byte, need)
	n := 0
	if err := DecodeBase64(src, out, &n); err != nil {
		t.Fatal(err)
	}
	if got := string(out[:n]); got != "hello world" {
		t.Fatalf("got %q", got)
	}
}

func TestBase64RoundTripAllTailLengths(t *testing.T) {
	for _, src := range [][]byte{
		{},
		{0x01},
		{0x01, 0x02},
		{0x01, 0x02, 0x03},
		{0x01, 0x02, 0x03, 0x04},
	} {
		need := 0
		EncodeBase64(src, nil, &need)
		enc := make([]byte, need)
		n := 0
		if err := EncodeBase64(src, enc, &n); err != nil {
			t.Fatal(err)
		}

		dneed := Base64DecodedLen(n)
		dec := make([]byte, dneed)
		dn := 0
		if err := DecodeBase64(enc[:n], dec, &dn); err != nil {
			t.Fatal(err)
		}
		if string(dec[:dn]) != string(src) {
			t.Fatalf("roundtrip mismatch for %v: got %v", src, dec[:dn])
		}
	}
}

func TestDecodeBase64SkipsNonAlphabet(t *testing.T) {
	// Whitespace interspersed in otherwise valid base64 is skipped.
	src := []byte("aGVs\nbG8g d29y\tbGQ=")
	need := Base64DecodedLen(len(src))
	out := make([]byte, need)
	n := 0
	if err := DecodeBase64(src, out, &n); err != nil {
		t.Fatal(err)
	}
	if got := string(out[:n]); got != "hello world" {
		t.Fatalf("got %q", got)
	}
}
