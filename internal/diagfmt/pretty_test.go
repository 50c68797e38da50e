package diagfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"rsnfmt/internal/config"
	"rsnfmt/internal/format"
	"rsnfmt/internal/lexer"
	"rsnfmt/internal/source"
	"rsnfmt/internal/token"
)

func virtual(t *testing.T, path, src string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual(path, []byte(src)))
}

func formatErr(t *testing.T, file *source.File) error {
	t.Helper()
	cfg := config.Default()
	_, err := format.FormatFile(file, &cfg)
	if err == nil {
		t.Fatal("expected formatting error")
	}
	return err
}

// TestPrettyLexerError проверяет заголовок, строку контекста и подчёркивание
func TestPrettyLexerError(t *testing.T) {
	file := virtual(t, "<stdin>", "{\n  a: \"abc\n}")
	err := fmt.Errorf("formatting <stdin>: %w", formatErr(t, file))

	d := FromError("<stdin>", file, err)
	if d.Code != "LEX1002" {
		t.Fatalf("code = %s", d.Code)
	}

	var buf bytes.Buffer
	if err := Pretty(&buf, d, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if want := "<stdin>:2:6: ERROR LEX1002: unterminated string literal"; lines[0] != want {
		t.Fatalf("header:\nwant %q\ngot  %q", want, lines[0])
	}
	if lines[1] != `    a: "abc` {
		t.Errorf("context line = %q", lines[1])
	}
	if lines[2] != "       ^~~~" {
		t.Errorf("underline = %q", lines[2])
	}
}

func TestPrettyMismatch(t *testing.T) {
	file := virtual(t, "<stdin>", "[1, 2}")
	d := FromError("<stdin>", file, formatErr(t, file))
	if d.Code != CodeMismatchedDelimiter {
		t.Fatalf("code = %s", d.Code)
	}

	var buf bytes.Buffer
	if err := Pretty(&buf, d, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "<stdin>:1:6: ERROR FMT2001: expected ']', found '}'\n  [1, 2}\n       ^\n"
	if buf.String() != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestPrettyWithoutLocation(t *testing.T) {
	d := FromError("a.rsn", nil, errors.New("permission denied"))
	var buf bytes.Buffer
	if err := Pretty(&buf, d, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "a.rsn: ERROR RSN0000: permission denied\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrettyColor(t *testing.T) {
	file := virtual(t, "<stdin>", "[1}")
	d := FromError("<stdin>", file, formatErr(t, file))

	var plain, colored bytes.Buffer
	if err := Pretty(&plain, d, PrettyOpts{Color: false}); err != nil {
		t.Fatal(err)
	}
	if err := Pretty(&colored, d, PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Error("plain output contains escape codes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Error("colored output has no escape codes")
	}
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	tests := []struct {
		name string
		mode PathMode
		want string
	}{
		{"relative", PathModeRelative, "src/test.rsn"},
		{"basename", PathModeBasename, "test.rsn"},
		{"auto inside base", PathModeAuto, "src/test.rsn"},
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.rsn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayPath("/home/user/project/src/test.rsn", tt.mode, "/home/user/project"); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
	if got := displayPath("/elsewhere/x.rsn", PathModeAuto, "/home/user/project"); got != "/elsewhere/x.rsn" {
		t.Errorf("auto outside base: %q", got)
	}
}

func TestJSON(t *testing.T) {
	file := virtual(t, "<stdin>", "[1}")
	diags := []Diagnostic{
		FromError("<stdin>", file, formatErr(t, file)),
		FromError("b.rsn", nil, errors.New("boom")),
	}
	var buf bytes.Buffer
	if err := JSON(&buf, diags, PathModeAuto, ""); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 || out.Diagnostics[0].Location == nil || out.Diagnostics[0].Location.StartCol != 3 {
		t.Fatalf("unexpected output: %s", buf.String())
	}
	if out.Diagnostics[1].Location != nil {
		t.Fatal("diagnostic without file must have no location")
	}
}

func TestTokens(t *testing.T) {
	file := virtual(t, "t.rsn", "{a: 1}")
	var buf bytes.Buffer
	tokens := mustTokens(t, file)
	if err := FormatTokensPretty(&buf, tokens, file); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 tokens, got:\n%s", buf.String())
	}
	if !strings.Contains(lines[0], `Open(brace)`) || !strings.Contains(lines[0], "at 1:1-1:2") {
		t.Errorf("first line = %q", lines[0])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, tokens, file); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 6 || out[4].Text != "1" || out[4].Col != 5 || out[5].Delimiter != "brace" {
		t.Fatalf("unexpected JSON: %s", buf.String())
	}
}

func mustTokens(t *testing.T, file *source.File) []token.Token {
	t.Helper()
	toks, err := lexer.Tokenize(file)
	if err != nil {
		t.Fatal(err)
	}
	return toks
}
