package source

import "testing"

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("bagel")
	b := in.Intern("lox")
	c := in.Intern("bagel")
	if a != c {
		t.Fatalf("same string got different ids: %d vs %d", a, c)
	}
	if a == b {
		t.Fatalf("different strings share id %d", a)
	}
	if in.Len() != 3 {
		t.Fatalf("Len = %d, want 3", in.Len())
	}
	if s := in.MustLookup(b); s != "lox" {
		t.Fatalf("MustLookup = %q", s)
	}
}

func TestInternerEmptyIsNoStringID(t *testing.T) {
	in := NewInterner()
	if id := in.Intern(""); id != NoStringID {
		t.Fatalf("empty string id = %d", id)
	}
	if _, ok := in.Lookup(StringID(100)); ok {
		t.Fatalf("lookup of unknown id succeeded")
	}
	if _, ok := in.Find("missing"); ok {
		t.Fatalf("Find must not intern")
	}
	if in.Len() != 1 {
		t.Fatalf("Find changed the table")
	}
}

func TestInternerCopiesInput(t *testing.T) {
	in := NewInterner()
	buf := []byte("this")
	id := in.Intern(string(buf[:]))
	buf[0] = 'T'
	if got := in.MustLookup(id); got != "this" {
		t.Fatalf("interned string aliased caller buffer: %q", got)
	}
}
