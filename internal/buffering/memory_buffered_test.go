package buffering

import (
	"testing"

	"github.com/deploymenttheory/streamkit/internal/stream"
)

func TestMemoryBufferedInputStreamSlurpsAndTrailingNUL(t *testing.T) {
	m, err := NewMemoryBufferedInputStream(stream.NewStringInputStream("hi"), true)
	if err != nil {
		t.Fatal(err)
	}
	if m.FullSize() != 3 {
		t.Fatalf("FullSize = %d, want 3 (with trailing NUL)", m.FullSize())
	}
	if m.Map()[2] != 0 {
		t.Fatalf("expected trailing NUL, got %v", m.Map())
	}

	buf := make([]byte, 2)
	n, err := m.Read(buf)
	if err != nil || string(buf[:n]) != "hi" {
		t.Fatalf("got %q, %v", buf[:n], err)
	}
}

func TestMemoryBufferedOutputStreamDeliversOnClose(t *testing.T) {
	sink := stream.NewOutputMemStream()
	m := NewMemoryBufferedOutputStream(sink, 8)

	if _, err := m.Write([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	if len(sink.Bytes()) != 0 {
		t.Fatal("expected nothing delivered to sink before Close/DeliverBuffer")
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if string(sink.Bytes()) != "abc" {
		t.Fatalf("got %q, want abc", sink.Bytes())
	}
}

func TestMemoryBufferedOutputStreamDeliverBufferThenWriteAgain(t *testing.T) {
	sink := stream.NewOutputMemStream()
	m := NewMemoryBufferedOutputStream(sink, 8)

	m.Write([]byte("first"))
	if err := m.DeliverBuffer(); err != nil {
		t.Fatal(err)
	}
	m.Write([]byte("second"))
	if err := m.DeliverBuffer(); err != nil {
		t.Fatal(err)
	}
	if string(sink.Bytes()) != "firstsecond" {
		t.Fatalf("got %q", sink.Bytes())
	}
}

func TestMemoryBufferedOutputStreamCloseNoopWhenClean(t *testing.T) {
	sink := stream.NewOutputMemStream()
	m := NewMemoryBufferedOutputStream(sink, 8)
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if len(sink.Bytes()) != 0 {
		t.Fatal("expected no writes for an untouched buffer")
	}
}
