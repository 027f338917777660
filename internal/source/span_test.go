package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 15}
	b := Span{File: 1, Start: 3, End: 12}
	if got := a.Cover(b); got != (Span{File: 1, Start: 3, End: 15}) {
		t.Fatalf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("cross-file Cover changed span: %v", got)
	}
}

func TestSpanAtEnd(t *testing.T) {
	s := Span{File: 0, Start: 4, End: 9}.AtEnd()
	if !s.Empty() || s.Start != 9 {
		t.Fatalf("AtEnd = %v", s)
	}
	if (Span{Start: 2, End: 7}).Len() != 5 {
		t.Fatalf("Len mismatch")
	}
}
