package compress

import (
	"bytes"
	"io"
	"testing"
)

func TestCompressPumpFeedDrainFinalize(t *testing.T) {
	src := bytes.Repeat([]byte("stream pump payload "), 100)

	pump, err := NewCompressPump(NewZlib(true, 0.6))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	mid := len(src) / 2
	if err := pump.Feed(src[:mid]); err != nil {
		t.Fatal(err)
	}
	for pump.Pending() > 0 {
		if _, err := pump.Drain(&out, 64); err != nil {
			t.Fatal(err)
		}
	}
	if err := pump.Feed(src[mid:]); err != nil {
		t.Fatal(err)
	}
	if err := pump.Finalize(&out); err != nil {
		t.Fatal(err)
	}

	d := NewZlib(true, 0.6)
	dneed := 0
	d.DecompressData(out.Bytes(), nil, &dneed)
	decoded := make([]byte, dneed)
	dn := 0
	if err := d.DecompressData(out.Bytes(), decoded, &dn); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded[:dn], src) {
		t.Fatal("roundtrip mismatch through pump")
	}
}

func TestDecompressPumpReadsIncrementally(t *testing.T) {
	src := bytes.Repeat([]byte("abcdefgh"), 500)
	c := NewZlib(true, 0.6)
	need := 0
	c.CompressData(src, nil, &need)
	compressed := make([]byte, need)
	n := 0
	c.CompressData(src, compressed, &n)

	pump, err := NewDecompressPump(NewZlib(true, 0.6), bytes.NewReader(compressed[:n]))
	if err != nil {
		t.Fatal(err)
	}
	defer pump.Close()

	var got bytes.Buffer
	buf := make([]byte, 37) // awkward size to exercise multiple pulls
	for {
		n, err := pump.Read(buf)
		got.Write(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	if !bytes.Equal(got.Bytes(), src) {
		t.Fatal("incremental decompress mismatch")
	}
}
