package transform

import (
	"bytes"
	"io"
	"testing"

	"github.com/deploymenttheory/streamkit/internal/compress"
	"github.com/deploymenttheory/streamkit/internal/stream"
)

func TestCompressDecompressStreamRoundTrip(t *testing.T) {
	src := bytes.Repeat([]byte("streamkit transform payload "), 300)

	sink := stream.NewOutputMemStream()
	out, err := NewCompressOutputStream(sink, compress.NewZlib(true, 0.6))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := out.Write(src); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	in, err := NewDecompressInputStream(stream.NewMemoryBlockStream(sink.Bytes()), compress.NewZlib(true, 0.6))
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	got, err := io.ReadAll(readerFunc(in.Read))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, src) {
		t.Fatal("roundtrip mismatch")
	}
}

func TestCompressOutputStreamCloseIsIdempotent(t *testing.T) {
	sink := stream.NewOutputMemStream()
	out, err := NewCompressOutputStream(sink, compress.NewZlib(true, 0.6))
	if err != nil {
		t.Fatal(err)
	}
	out.Write([]byte("data"))
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
	before := len(sink.Bytes())
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
	if len(sink.Bytes()) != before {
		t.Fatal("second Close should not write the trailer again")
	}
}
