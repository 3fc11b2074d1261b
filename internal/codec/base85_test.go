package codec

import "testing"

func TestEncodeBase85AllZeroQuad(t *testing.T) {
	src := make([]byte, 8)
	need := 0
	EncodeBase85(src, nil, &need)
	out := make([]byte, need)
	n := 0
	if err := EncodeBase85(src, out, &n); err != nil {
		t.Fatal(err)
	}
	if got, want := string(out[:n]), "zz"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodeBase85KnownVectors(t *testing.T) {
	cases := []struct {
		in   string
		want []byte
	}{
		{"91AFC", []byte{0x1C, 0x0B, 0x28, 0x67}},
		{"91AD", []byte{0x1C, 0x0B, 0x28}},
	}
	for _, c := range cases {
		need := 0
		if err := DecodeBase85([]byte(c.in), nil, &need); err != nil {
			t.Fatalf("%s: %v", c.in, err)
		}
		out := make([]byte, need)
		n := 0
		if err := DecodeBase85([]byte(c.in), out, &n); err != nil {
			t.Fatalf("%s: %v", c.in, err)
		}
		if string(out[:n]) != string(c.want) {
			t.Fatalf("%s: got %v, want %v", c.in, out[:n], c.want)
		}
	}
}

func TestBase85RoundTripAllTailLengths(t *testing.T) {
	for _, src := range [][]byte{
		{},
		{0x01},
		{0x01, 0x02},
		{0x01, 0x02, 0x03},
		{0x01, 0x02, 0x03, 0x04},
		{0x00, 0x00, 0x00, 0x00, 0x01, 0x02, 0x03, 0x04},
		{0xff, 0xff, 0xff, 0xff},
	} {
		need := 0
		EncodeBase85(src, nil, &need)
		enc := make([]byte, need)
		n := 0
		if err := EncodeBase85(src, enc, &n); err != nil {
			t.Fatal(err)
		}

		dneed := 0
		if err := DecodeBase85(enc[:n], nil, &dneed); err != nil {
			t.Fatal(err)
		}
		dec := make([]byte, dneed)
		dn := 0
		if err := DecodeBase85(enc[:n], dec, &dn); err != nil {
			t.Fatal(err)
		}
		if string(dec[:dn]) != string(src) {
			t.Fatalf("roundtrip mismatch for %v: got %v via %q", src, dec[:dn], enc[:n])
		}
	}
}

func TestDecodeBase85BadChar(t *testing.T) {
	if err := DecodeBase85([]byte{0x01}, nil, new(int)); err == nil {
		t.Fatal("expected error for single raw byte input (not a valid symbol)")
	}
}

func TestLeadAlphabetSwapsLastTwoChars(t *testing.T) {
	if base85LeadAlphabet[len(base85LeadAlphabet)-1] != base85Alphabet[len(base85Alphabet)-2] {
		t.Fatal("lead alphabet's last char should be the main alphabet's second-to-last")
	}
	if base85LeadAlphabet[len(base85LeadAlphabet)-2] != base85Alphabet[len(base85Alphabet)-1] {
		t.Fatal("lead alphabet's second-to-last char should be the main alphabet's last")
	}
}
