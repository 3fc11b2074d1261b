package stream

import (
	"io"
	"testing"
)

func TestRangeInputStreamRestrictsToWindow(t *testing.T) {
	inner := NewMemoryBlockStream([]byte("0123456789"))
	r := NewRangeInputStream(inner, 3, 7) // "3456"

	if r.FullSize() != 4 {
		t.Fatalf("FullSize = %d, want 4", r.FullSize())
	}
	if r.Position() != 0 {
		t.Fatalf("Position = %d, want 0", r.Position())
	}

	buf := make([]byte, 10)
	n, err := r.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf[:n]) != "3456" {
		t.Fatalf("got %q, want 3456", buf[:n])
	}
	if !r.EndReached() {
		t.Fatal("expected EndReached after consuming full window")
	}

	n, err = r.Read(buf)
	if n != 0 || err != io.EOF {
		t.Fatalf("expected EOF, got %d, %v", n, err)
	}
}

func TestRangeInputStreamSetPositionWithinWindow(t *testing.T) {
	inner := NewMemoryBlockStream([]byte("0123456789"))
	r := NewRangeInputStream(inner, 2, 8) // "234567"

	if !r.SetPosition(2) {
		t.Fatal("SetPosition within window failed")
	}
	buf := make([]byte, 2)
	n, _ := r.Read(buf)
	if string(buf[:n]) != "45" {
		t.Fatalf("got %q, want 45", buf[:n])
	}
}

func TestRangeInputStreamSetPositionBeyondWindowFails(t *testing.T) {
	inner := NewMemoryBlockStream([]byte("0123456789"))
	r := NewRangeInputStream(inner, 2, 5)
	if r.SetPosition(10) {
		t.Fatal("expected SetPosition beyond window to fail")
	}
}

func TestSuccessiveStreamSpansBoundary(t *testing.T) {
	first := NewMemoryBlockStream([]byte("abc"))
	second := NewMemoryBlockStream([]byte("defgh"))
	s := NewSuccessiveStream(first, second)

	if s.FullSize() != 8 {
		t.Fatalf("FullSize = %d, want 8", s.FullSize())
	}

	var got []byte
	buf := make([]byte, 4)
	for {
		n, err := s.Read(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if n == 0 {
			t.Fatal("no progress")
		}
	}
	if string(got) != "abcdefgh" {
		t.Fatalf("got %q, want abcdefgh", got)
	}
	if !s.EndReached() {
		t.Fatal("expected EndReached")
	}
}

func TestSuccessiveStreamSetPositionCrossesBoundary(t *testing.T) {
	first := NewMemoryBlockStream([]byte("abc"))
	second := NewMemoryBlockStream([]byte("defgh"))
	s := NewSuccessiveStream(first, second)

	if !s.SetPosition(4) {
		t.Fatal("SetPosition into second segment failed")
	}
	buf := make([]byte, 2)
	n, _ := s.Read(buf)
	if string(buf[:n]) != "ef" {
		t.Fatalf("got %q, want ef", buf[:n])
	}
}
