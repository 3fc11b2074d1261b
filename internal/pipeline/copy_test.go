package pipeline

import (
	"bytes"
	"testing"

	"github.com/deploymenttheory/streamkit/internal/stream"
)

func TestCopyStreamMappableFastPath(t *testing.T) {
	src := stream.NewMemoryBlockStream([]byte("mappable source content"))
	sink := stream.NewOutputMemStream()

	n, err := CopyStream(src, sink)
	if err != nil {
		t.Fatal(err)
	}
	if n != uint64(len("mappable source content")) {
		t.Fatalf("n = %d", n)
	}
	if string(sink.Bytes()) != "mappable source content" {
		t.Fatalf("got %q", sink.Bytes())
	}
}

// nonMappableSource wraps MemoryBlockStream but hides its Mappable
// capability, forcing CopyStream onto the generic chunked loop.
type nonMappableSource struct {
	inner *stream.MemoryBlockStream
}

func (s *nonMappableSource) FullSize() uint64        { return s.inner.FullSize() }
func (s *nonMappableSource) Position() uint64        { return s.inner.Position() }
func (s *nonMappableSource) EndReached() bool        { return s.inner.EndReached() }
func (s *nonMappableSource) SetPosition(p uint64) bool { return s.inner.SetPosition(p) }
func (s *nonMappableSource) GoForward(n uint64) bool { return s.inner.GoForward(n) }
func (s *nonMappableSource) Read(p []byte) (int, error) { return s.inner.Read(p) }

func TestCopyStreamChunkedLoop(t *testing.T) {
	src := &nonMappableSource{stream.NewMemoryBlockStream(bytes.Repeat([]byte("x"), 10000))}
	sink := stream.NewOutputMemStream()

	n, err := CopyStream(src, sink)
	if err != nil {
		t.Fatal(err)
	}
	if n != 10000 {
		t.Fatalf("n = %d, want 10000", n)
	}
	if len(sink.Bytes()) != 10000 {
		t.Fatalf("sink has %d bytes, want 10000", len(sink.Bytes()))
	}
}

func TestCopyStreamWithForcedSize(t *testing.T) {
	src := &nonMappableSource{stream.NewMemoryBlockStream([]byte("0123456789"))}
	sink := stream.NewOutputMemStream()

	n, err := CopyStream(src, sink, WithForcedSize(4))
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("n = %d, want 4", n)
	}
	if string(sink.Bytes()) != "0123" {
		t.Fatalf("got %q", sink.Bytes())
	}
}

func TestCopyStreamWithCallbackReportsProgressAndCanAbort(t *testing.T) {
	src := &nonMappableSource{stream.NewMemoryBlockStream(bytes.Repeat([]byte("y"), 5000))}
	sink := stream.NewOutputMemStream()

	calls := 0
	n, err := CopyStream(src, sink, WithCallback(func(current, total uint64) bool {
		calls++
		return current < 2000
	}))
	if err != ErrAborted {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
	if n == 0 || n >= 5000 {
		t.Fatalf("n = %d, expected a partial copy", n)
	}
	if calls == 0 {
		t.Fatal("expected callback to be invoked")
	}
}

func TestCopyStreamMappableWithCallback(t *testing.T) {
	src := stream.NewMemoryBlockStream(bytes.Repeat([]byte("z"), 1000))
	sink := stream.NewOutputMemStream()

	var lastCurrent uint64
	n, err := CopyStream(src, sink, WithCallback(func(current, total uint64) bool {
		lastCurrent = current
		return true
	}))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1000 {
		t.Fatalf("n = %d, want 1000", n)
	}
	if lastCurrent != 1000 {
		t.Fatalf("lastCurrent = %d, want 1000", lastCurrent)
	}
}
