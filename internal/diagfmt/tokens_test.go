package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"lox/internal/lexer"
	"lox/internal/source"
	"lox/internal/token"
)

func scanAll(t *testing.T, src string) ([]token.Token, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("tok.lox", []byte(src))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, fs
		}
	}
}

func TestFormatTokensPretty(t *testing.T) {
	toks, fs := scanAll(t, "// hi\nprint 1;")
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got:\n%s", buf.String())
	}
	if want := `  1: KwPrint         "print" at 2:1-2:6 (leading: line-comment, newline)`; lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
	if !strings.HasPrefix(lines[3], "  4: EOF") {
		t.Errorf("last line = %q", lines[3])
	}
}

func TestFormatTokensJSON(t *testing.T) {
	toks, _ := scanAll(t, "var x = \"s\";")
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	kinds := make([]string, 0, len(out))
	for _, tok := range out {
		kinds = append(kinds, tok.Kind)
	}
	if got := strings.Join(kinds, ","); got != "KwVar,Ident,Assign,StringLit,Semicolon,EOF" {
		t.Errorf("kinds = %s", got)
	}
	if out[3].Text != `"s"` || out[1].Leading[0] != "space" {
		t.Errorf("unexpected token payload: %+v %+v", out[3], out[1])
	}
}
