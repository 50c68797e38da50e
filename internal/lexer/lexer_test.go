package lexer_test

import (
	"errors"
	"testing"

	"rsnfmt/internal/lexer"
	"rsnfmt/internal/source"
	"rsnfmt/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *source.File) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.rsn", []byte(input)))
	return lexer.New(file), file
}

type kt struct {
	kind  token.Kind
	text  string
	delim token.Delimiter
}

func collect(t *testing.T, input string) []kt {
	t.Helper()
	lx, _ := makeTestLexer(input)
	var out []kt
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("Next(%q): %v", input, err)
		}
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, kt{tok.Kind, tok.Text, tok.Delim})
	}
}

func TestSingleTokens(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"42", token.Integer},
		{"-7", token.Integer},
		{"+7", token.Integer},
		{"1_000", token.Integer},
		{"0xff_FF", token.Integer},
		{"0o777", token.Integer},
		{"0b1010", token.Integer},
		{"1.5", token.Float},
		{"1.", token.Float},
		{".5", token.Float},
		{"-0.5e-3", token.Float},
		{"1E9", token.Float},
		{"inf", token.Float},
		{"-inf", token.Float},
		{"NaN", token.Float},
		{"true", token.Bool},
		{"false", token.Bool},
		{"'a'", token.Character},
		{`'\n'`, token.Character},
		{`'\u{1F600}'`, token.Character},
		{"'ж'", token.Character},
		{"b'a'", token.Byte},
		{`b'\x7f'`, token.Byte},
		{`"hello"`, token.String},
		{`"esc \" \\ \t"`, token.String},
		{"\"multi\nline\"", token.String},
		{"\"cont \\\n  inued\"", token.String},
		{`r"raw \ string"`, token.String},
		{`r#"has "quotes""#`, token.String},
		{`b"bytes"`, token.Bytes},
		{`br"raw"`, token.Bytes},
		{`br##"x"#y"##`, token.Bytes},
		{"ident", token.Identifier},
		{"_under", token.Identifier},
		{"Struct", token.Identifier},
		{"r#true", token.Identifier},
		{"имя", token.Identifier},
		{"bar", token.Identifier},
		{"rope", token.Identifier},
		{"// line", token.Comment},
		{"/* block */", token.Comment},
		{"/* outer /* inner */ still */", token.Comment},
		{" \t\r\n ", token.Whitespace},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := collect(t, tt.input)
			if len(got) != 1 {
				t.Fatalf("expected one token, got %+v", got)
			}
			if got[0].kind != tt.kind || got[0].text != tt.input {
				t.Fatalf("got %v %q, want %v %q", got[0].kind, got[0].text, tt.kind, tt.input)
			}
		})
	}
}

func TestPunctuationAndDelimiters(t *testing.T) {
	got := collect(t, "Foo{a:[1,(2)]}")
	want := []kt{
		{token.Identifier, "Foo", token.NoDelimiter},
		{token.Open, "{", token.Brace},
		{token.Identifier, "a", token.NoDelimiter},
		{token.Colon, ":", token.NoDelimiter},
		{token.Open, "[", token.Bracket},
		{token.Integer, "1", token.NoDelimiter},
		{token.Comma, ",", token.NoDelimiter},
		{token.Open, "(", token.Paren},
		{token.Integer, "2", token.NoDelimiter},
		{token.Close, ")", token.Paren},
		{token.Close, "]", token.Bracket},
		{token.Close, "}", token.Brace},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %+v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLineCommentStopsBeforeNewline(t *testing.T) {
	got := collect(t, "// c\r\n1")
	want := []kt{
		{token.Comment, "// c", token.NoDelimiter},
		{token.Whitespace, "\r\n", token.NoDelimiter},
		{token.Integer, "1", token.NoDelimiter},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSpansMatchText(t *testing.T) {
	input := "Point { x: -1.5, y: \"é\" } // end"
	lx, file := makeTestLexer(input)
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if tok.Kind == token.EOF {
			if tok.Span.Start != uint32(len(input)) || !tok.Span.Empty() {
				t.Fatalf("EOF span = %v", tok.Span)
			}
			break
		}
		if file.Text(tok.Span) != tok.Text {
			t.Fatalf("span %v text %q != %q", tok.Span, file.Text(tok.Span), tok.Text)
		}
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input string
		code  lexer.Code
		start uint32
	}{
		{`"open`, lexer.LexUnterminatedString, 0},
		{`[r#"open"]`, lexer.LexUnterminatedString, 1},
		{"'ab'", lexer.LexUnterminatedChar, 0},
		{"''", lexer.LexUnterminatedChar, 0},
		{"/* open", lexer.LexUnterminatedComment, 0},
		{"[1, @]", lexer.LexUnknownChar, 4},
		{"1 / 2", lexer.LexUnknownChar, 2},
		{`"\q"`, lexer.LexInvalidEscape, 1},
		{`'\u{}'`, lexer.LexInvalidEscape, 1},
		{"12abc", lexer.LexBadNumber, 0},
		{"0x", lexer.LexBadNumber, 0},
		{"1e+", lexer.LexBadNumber, 0},
		{"-x", lexer.LexBadNumber, 0},
		{"r#1", lexer.LexInvalidRawIdentifier, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, _ := makeTestLexer(tt.input)
			var err error
			for err == nil {
				var tok token.Token
				tok, err = lx.Next()
				if err == nil && tok.Kind == token.EOF {
					t.Fatalf("expected error for %q", tt.input)
				}
			}
			var lexErr *lexer.Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *lexer.Error, got %T", err)
			}
			if lexErr.Code != tt.code {
				t.Fatalf("code = %s (%s), want %s", lexErr.Code.ID(), lexErr.Code, tt.code.ID())
			}
			if lexErr.Span.Start != tt.start {
				t.Fatalf("error starts at %d, want %d", lexErr.Span.Start, tt.start)
			}
			// ошибка "липкая"
			if _, again := lx.Next(); again != err {
				t.Fatalf("error must be sticky, got %v", again)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	lx, _ := makeTestLexer("[1, 2]")
	if _, err := lx.Next(); err != nil {
		t.Fatal(err)
	}
	clone := lx.Clone()
	for range 3 {
		if _, err := clone.Next(); err != nil {
			t.Fatal(err)
		}
	}
	tok, err := lx.Next()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Kind != token.Integer || tok.Text != "1" {
		t.Fatalf("original lexer moved: got %v %q", tok.Kind, tok.Text)
	}
	if clone.Offset() <= lx.Offset() {
		t.Fatalf("clone offset %d should be ahead of %d", clone.Offset(), lx.Offset())
	}
}

func TestTokenize(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.rsn", []byte("(a, b)")))
	toks, err := lexer.Tokenize(file)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 6 {
		t.Fatalf("got %d tokens", len(toks))
	}
	if toks[len(toks)-1].Kind != token.Close {
		t.Fatalf("EOF must not be included")
	}
}
