package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"lox/internal/diag"
	"lox/internal/lexer"
	"lox/internal/source"
	"lox/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.lox", []byte(input))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

// collectAllTokens собирает все токены, исключая EOF
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, bag := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	if len(tokens) != len(expected) {
		t.Fatalf("input %q: expected %d tokens, got %s (diags: %d)", input, len(expected), tokensToString(tokens), bag.Len())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("input %q: token %d: expected %v, got %v (%q)", input, i, expected[i], tok.Kind, tok.Text)
		}
	}
	return tokens
}

func TestPunctuationAndOperators(t *testing.T) {
	expectTokens(t, "(){},.-+;/*",
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.Comma, token.Dot,
		token.Minus, token.Plus, token.Semicolon, token.Slash, token.Star)
	expectTokens(t, "! != = == > >= < <=",
		token.Bang, token.BangEq, token.Assign, token.EqEq, token.Gt, token.GtEq, token.Lt, token.LtEq)
	expectTokens(t, "!==", token.BangEq, token.Assign)
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := expectTokens(t, "class Bagel < Food { init() { this.x = super.y; } }",
		token.KwClass, token.Ident, token.Lt, token.Ident, token.LBrace,
		token.Ident, token.LParen, token.RParen, token.LBrace,
		token.KwThis, token.Dot, token.Ident, token.Assign, token.KwSuper, token.Dot, token.Ident, token.Semicolon,
		token.RBrace, token.RBrace)
	if toks[1].Text != "Bagel" {
		t.Fatalf("ident text = %q", toks[1].Text)
	}
	expectTokens(t, "orchid and_ _x x1 or", token.Ident, token.Ident, token.Ident, token.Ident, token.KwOr)
}

func TestUnicodeIdentifiersAreNFC(t *testing.T) {
	// "café" написанное через combining acute и через готовый символ
	decomposed := "cafe\u0301"
	composed := "caf\u00e9"
	toks := expectTokens(t, decomposed+" "+composed+" переменная", token.Ident, token.Ident, token.Ident)
	if toks[0].Text != toks[1].Text {
		t.Fatalf("NFC mismatch: %q vs %q", toks[0].Text, toks[1].Text)
	}
	if toks[0].Span.Len() != uint32(len(decomposed)) {
		t.Fatalf("span must cover source bytes, got len %d", toks[0].Span.Len())
	}
}

func TestNumbers(t *testing.T) {
	toks := expectTokens(t, "123 45.67 1. .5", token.NumberLit, token.NumberLit, token.NumberLit, token.Dot, token.Dot, token.NumberLit)
	if toks[1].Text != "45.67" || toks[2].Text != "1" || toks[5].Text != "5" {
		t.Fatalf("unexpected number texts: %s", tokensToString(toks))
	}
}

func TestNumberOutOfRange(t *testing.T) {
	lx, bag := makeTestLexer(strings.Repeat("9", 400))
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadNumber {
		t.Fatalf("expected LexBadNumber")
	}
}

func TestStrings(t *testing.T) {
	toks := expectTokens(t, "\"hello\" \"multi\nline\"", token.StringLit, token.StringLit)
	if toks[0].StringValue() != "hello" || toks[1].StringValue() != "multi\nline" {
		t.Fatalf("string values: %s", tokensToString(toks))
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, bag := makeTestLexer("print \"oops")
	lx.Next()
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexUnterminatedString || items[0].Message != "Unterminated string." {
		t.Fatalf("unexpected diagnostics: %+v", items)
	}
	if lx.Next().Kind != token.EOF {
		t.Fatalf("expected EOF after unterminated string")
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	lx, bag := makeTestLexer("a @ b # ☃")
	toks := collectAllTokens(lx)
	if len(toks) != 5 {
		t.Fatalf("expected 5 tokens, got %s", tokensToString(toks))
	}
	if toks[4].Text != "☃" {
		t.Fatalf("unknown rune must be consumed whole, got %q", toks[4].Text)
	}
	if bag.Len() != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", bag.Len())
	}
	for _, d := range bag.Items() {
		if d.Code != diag.LexUnknownChar || d.Message != "Unexpected character." {
			t.Fatalf("unexpected diagnostic %+v", d)
		}
	}
}

func TestComments(t *testing.T) {
	lx, bag := makeTestLexer("// line\n/* outer /* inner */ still */ x")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "x" {
		t.Fatalf("expected ident x, got %v %q", tok.Kind, tok.Text)
	}
	kinds := make([]token.TriviaKind, 0, len(tok.Leading))
	for _, tr := range tok.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{token.TriviaLineComment, token.TriviaNewline, token.TriviaBlockComment, token.TriviaSpace}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("trivia = %v, want %v", kinds, want)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics")
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, bag := makeTestLexer("/* never /* closed */")
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", tok.Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("expected unterminated block comment diagnostic")
	}
}

func TestSlashIsOperator(t *testing.T) {
	expectTokens(t, "a / b", token.Ident, token.Slash, token.Ident)
}

func TestPeekAt(t *testing.T) {
	lx, _ := makeTestLexer("fun foo")
	if lx.PeekAt(1).Kind != token.Ident {
		t.Fatalf("PeekAt(1) should see ident")
	}
	if lx.Peek().Kind != token.KwFun {
		t.Fatalf("Peek should see fun")
	}
	if lx.PeekAt(5).Kind != token.EOF {
		t.Fatalf("PeekAt past end must be EOF")
	}
	if lx.Next().Kind != token.KwFun || lx.Next().Kind != token.Ident {
		t.Fatalf("Next must replay buffered tokens in order")
	}
	for range 3 {
		if lx.Next().Kind != token.EOF {
			t.Fatalf("EOF must repeat")
		}
	}
}

func TestSpansMatchText(t *testing.T) {
	src := "var  answer = \"x\" >= 42.5;"
	lx, _ := makeTestLexer(src)
	for _, tok := range collectAllTokens(lx) {
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Fatalf("span text %q != token text %q", got, tok.Text)
		}
	}
}
