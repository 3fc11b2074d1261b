package stream

import "testing"

func TestNullOutputStreamTracksPositionAndDiscards(t *testing.T) {
	n := NewNullOutputStream()
	written, err := n.Write([]byte("abcde"))
	if err != nil || written != 5 {
		t.Fatalf("Write = %d, %v", written, err)
	}
	if n.Position() != 5 || n.FullSize() != 5 {
		t.Fatalf("Position/FullSize = %d/%d", n.Position(), n.FullSize())
	}
}

func TestTeeStreamFansOutEqualWrites(t *testing.T) {
	a := NewOutputMemStream()
	b := NewOutputMemStream()
	tee := NewTeeStream(a, b)

	n, err := tee.Write([]byte("payload"))
	if err != nil || n != 7 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if string(a.Bytes()) != "payload" || string(b.Bytes()) != "payload" {
		t.Fatalf("a=%q b=%q", a.Bytes(), b.Bytes())
	}
}

func TestTeeStreamRewindsOnShortSecondWrite(t *testing.T) {
	a := NewOutputMemStream()
	b := NewMemoryBlockOutStream(make([]byte, 3))
	tee := NewTeeStream(a, b)

	n, err := tee.Write([]byte("abcdef"))
	if err != nil {
		t.Fatalf("Write err = %v", err)
	}
	if n != 3 {
		t.Fatalf("Write = %d, want 3 (reconciled to short sink)", n)
	}
	if a.Position() != 3 {
		t.Fatalf("first sink position = %d, want rewound to 3", a.Position())
	}
}
