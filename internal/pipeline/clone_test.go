package pipeline

import (
	"bytes"
	"testing"

	"github.com/deploymenttheory/streamkit/internal/stream"
)

func TestCloneStreamMappableCopiesIndependently(t *testing.T) {
	original := []byte("clone me")
	src := stream.NewMemoryBlockStream(original)

	cloned, err := CloneStream(src)
	if err != nil {
		t.Fatal(err)
	}
	if string(cloned.Map()) != "clone me" {
		t.Fatalf("got %q", cloned.Map())
	}

	// Mutating the original backing array must not affect the clone.
	original[0] = 'X'
	if cloned.Map()[0] != 'c' {
		t.Fatal("clone aliases the original buffer")
	}
}

func TestCloneStreamNonMappableReadsThroughLoop(t *testing.T) {
	src := &nonMappableSource{stream.NewMemoryBlockStream(bytes.Repeat([]byte("q"), 9000))}
	cloned, err := CloneStream(src)
	if err != nil {
		t.Fatal(err)
	}
	if cloned.FullSize() != 9000 {
		t.Fatalf("FullSize = %d, want 9000", cloned.FullSize())
	}
}

func TestCloneStreamRejectsOversizedInput(t *testing.T) {
	huge := &fakeSizedSource{size: MaxCloneSize + 1}
	if _, err := CloneStream(huge); err != ErrCloneTooLarge {
		t.Fatalf("err = %v, want ErrCloneTooLarge", err)
	}
}

// fakeSizedSource reports a FullSize without backing real data, enough to
// exercise CloneStream's upfront size check.
type fakeSizedSource struct {
	size uint64
}

func (f *fakeSizedSource) FullSize() uint64          { return f.size }
func (f *fakeSizedSource) Position() uint64          { return 0 }
func (f *fakeSizedSource) EndReached() bool          { return false }
func (f *fakeSizedSource) SetPosition(uint64) bool   { return false }
func (f *fakeSizedSource) GoForward(uint64) bool     { return false }
func (f *fakeSizedSource) Read(p []byte) (int, error) { return 0, nil }
