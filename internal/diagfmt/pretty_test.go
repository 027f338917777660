package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"lox/internal/diag"
	"lox/internal/source"
)

// TestPrettyBasic проверяет заголовок, строку исходника и подчёркивание
func TestPrettyBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.lox", []byte("var s = \"abc\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: fileID, Start: 8, End: 12}, "Unterminated string."))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	want := "test.lox:1:9: ERROR LEX1002: Unterminated string.\n" +
		"1 | var s = \"abc\n" +
		"  | " + strings.Repeat(" ", 8) + "^~~~\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", got, want)
	}
}

// TestPrettyWideRunes: колонка каретки считается по ширине символов
func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	src := "var 名前 = ;\n"
	fileID := fs.AddVirtual("wide.lox", []byte(src))
	at := uint32(strings.Index(src, "="))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynExpectExpression, source.Span{File: fileID, Start: at, End: at + 1}, "Expect expression."))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected caret line, got:\n%s", buf.String())
	}
	if want := "  | " + strings.Repeat(" ", 9) + "^"; lines[2] != want {
		t.Fatalf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("ctx.lox", []byte("var a = 1;\nvar b = ;\nvar c = 3;\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynExpectExpression, source.Span{File: fileID, Start: 19, End: 20}, "Expect expression."))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	output := buf.String()
	for _, want := range []string{"1 | var a = 1;", "2 | var b = ;", "3 | var c = 3;"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

// TestPrettyColor проверяет, что ANSI-последовательности появляются только с Color
func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.lox", []byte("@"))
	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "Unexpected character."))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{Color: false})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})

	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escapes: %q", colored.String())
	}
}

func TestPathModes(t *testing.T) {
	path := "/very/long/absolute/path/to/some/nested/directory/file.lox"

	tests := []struct {
		name string
		mode PathMode
		want string
		deny string
	}{
		{name: "auto shortens long absolute path", mode: PathModeAuto, want: "file.lox:1:5:", deny: "/very/"},
		{name: "basename", mode: PathModeBasename, want: "file.lox:1:5:", deny: "/very/"},
		{name: "absolute", mode: PathModeAbsolute, want: path + ":1:5:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			fileID := fs.Add(path, []byte("var x = 42;\n"), 0)

			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.SemaDuplicateLocal, source.Span{File: fileID, Start: 4, End: 5}, "Test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.want) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.want, output)
			}
			if tt.deny != "" && strings.Contains(output, tt.deny) {
				t.Errorf("output should not contain %q, got:\n%s", tt.deny, output)
			}
			if !strings.Contains(output, "WARNING SEM3006") {
				t.Errorf("expected severity and code, got:\n%s", output)
			}
		})
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("print 1 print 2;")
	fileID := fs.AddVirtual("test.lox", content)

	bag := diag.NewBag(4)
	primary := source.Span{File: fileID, Start: 8, End: 13}
	d := diag.NewError(diag.SynExpectSemicolon, primary, "Expect ';' after value.")
	d = d.WithNote(source.Span{File: fileID, Start: 0, End: 5}, "statement starts here")
	d = d.WithFix("insert ';'", diag.FixEdit{Span: source.Span{File: fileID, Start: 7, End: 7}, NewText: ";"})
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	for _, want := range []string{
		"note: test.lox:1:1: statement starts here",
		"fix #1: insert ';'",
		"edit test.lox:1:8 apply=\";\"",
		"preview:",
		"- print 1 print 2;",
		"+ print 1; print 2;",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") || strings.Contains(buf.String(), "fix #1") {
		t.Errorf("notes and fixes must be hidden by default:\n%s", buf.String())
	}
}

func TestParsePathMode(t *testing.T) {
	for _, mode := range []PathMode{PathModeAuto, PathModeAbsolute, PathModeRelative, PathModeBasename} {
		got, ok := ParsePathMode(mode.String())
		if !ok || got != mode {
			t.Errorf("ParsePathMode(%q) = %v, %v", mode.String(), got, ok)
		}
	}
	if _, ok := ParsePathMode("weird"); ok {
		t.Error("expected unknown mode to be rejected")
	}
}
