package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"lox/internal/source"
)

// Cursor читает байты одного файла; Off всегда в [0, len(src)].
type Cursor struct {
	src  []byte
	file source.FileID
	Off  uint32
}

// NewCursor starts at the first byte of f.
func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", f.Path, err))
	}
	return Cursor{src: f.Content, file: f.ID}
}

// EOF reports whether every byte has been consumed.
func (c *Cursor) EOF() bool { return int(c.Off) >= len(c.src) }

// Peek returns the current byte, 0 at EOF.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt returns the byte n positions ahead, 0 past the end.
func (c *Cursor) PeekAt(n uint32) byte {
	if i := int(c.Off + n); i < len(c.src) {
		return c.src[i]
	}
	return 0
}

// Rest is the unread part of the file.
func (c *Cursor) Rest() []byte { return c.src[c.Off:] }

// Bump consumes one byte and returns it, 0 at EOF.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// PeekRune decodes the rune at the cursor; size is 0 at EOF.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.src[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.Rest())
}

// BumpRune consumes one rune (one byte for invalid UTF-8).
func (c *Cursor) BumpRune() {
	_, size := c.PeekRune()
	c.Off += uint32(size) // #nosec G115 -- size <= utf8.UTFMax
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.src[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Match consumes seq if the unread input starts with it.
func (c *Cursor) Match(seq string) bool {
	rest := c.Rest()
	if len(rest) < len(seq) || string(rest[:len(seq)]) != seq {
		return false
	}
	c.Off += uint32(len(seq)) // #nosec G115 -- seq is a short literal
	return true
}

// Mark is a saved offset for SpanFrom and Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom covers the bytes read since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}

// Reset rewinds to m.
func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
