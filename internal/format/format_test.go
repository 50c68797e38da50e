package format

import (
	"errors"
	"testing"

	"rsnfmt/internal/config"
	"rsnfmt/internal/lexer"
	"rsnfmt/internal/token"
)

func testConfig(opts ...func(*config.Config)) *config.Config {
	cfg := config.Default()
	cfg.LineEnding = config.LineEndingLf
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

func width(n int) func(*config.Config) {
	return func(c *config.Config) { c.MaxWidth = n }
}

func inlineLevel(n int) func(*config.Config) {
	return func(c *config.Config) { c.MaxInlineLevel = n }
}

func emptyLines(p config.PreserveEmptyLines) func(*config.Config) {
	return func(c *config.Config) { c.PreserveEmptyLines = p }
}

type formatCase struct {
	name string
	src  string
	cfg  *config.Config
	want string
}

var formatCases = []formatCase{
	{"list fits", "[1,2,3]", testConfig(), "[1, 2, 3]"},
	{"list breaks", "[1,2,3]", testConfig(width(5)), "[\n    1,\n    2,\n    3,\n]"},
	{"map padding", "{a:1,b:2}", testConfig(), "{ a: 1, b: 2 }"},
	{"empty map", "{}", testConfig(), "{}"},
	{"spaces dropped", "( 1 , 2 )", testConfig(), "(1, 2)"},
	{"trailing comma dropped inline", "[1, 2,]", testConfig(), "[1, 2]"},
	{"named struct", "Foo{a:1}", testConfig(), "Foo { a: 1 }"},
	{"tuple struct", "Foo(1,2)", testConfig(), "Foo(1, 2)"},
	{"colon before group", "a : [ 1 ]", testConfig(), "a: [1]"},
	{"adjacent values keep a space", "[a  b,[1]2]", testConfig(), "[a b, [1] 2]"},
	{"nested structs", "{a:Bar{b:1}}", testConfig(), "{ a: Bar { b: 1 } }"},
	{"width below limit", "[1,2,3]", testConfig(width(10)), "[1, 2, 3]"},
	{"width at limit", "[1,2,3]", testConfig(width(9)), "[\n    1,\n    2,\n    3,\n]"},
	{"depth 1 breaks outer", "[[1]]", testConfig(inlineLevel(1)), "[\n    [1],\n]"},
	{"depth 2 inlines", "[[1]]", testConfig(inlineLevel(2)), "[[1]]"},
	{"depth 0 breaks", "[1]", testConfig(inlineLevel(0)), "[\n    1,\n]"},
	{"depth 0 empty group", "[]", testConfig(inlineLevel(0)), "[]"},
	{"depth 0 nested empty", "[[]]", testConfig(inlineLevel(0)), "[\n    [],\n]"},
	{"depth 1 nested empty", "[[]]", testConfig(inlineLevel(1)), "[[]]"},
	{
		"nested break",
		"{a:[1,2,3],b:2}",
		testConfig(width(12)),
		"{\n    a: [\n        1,\n        2,\n        3,\n    ],\n    b: 2,\n}",
	},
	{
		"nested inline inside break",
		"{a:[1,2,3],b:2}",
		testConfig(width(20)),
		"{\n    a: [1, 2, 3],\n    b: 2,\n}",
	},
	{
		"blank lines all",
		"[\n1,\n\n\n\n2\n]",
		testConfig(width(5)),
		"[\n    1,\n\n\n\n    2,\n]",
	},
	{
		"blank lines one",
		"[\n1,\n\n\n\n2\n]",
		testConfig(width(5), emptyLines(config.PreserveOne)),
		"[\n    1,\n\n    2,\n]",
	},
	{
		"blank lines none",
		"[\n1,\n\n\n\n2\n]",
		testConfig(width(5), emptyLines(config.PreserveNone)),
		"[\n    1,\n    2,\n]",
	},
	{
		"blank lines inline when none",
		"[\n1,\n\n\n\n2\n]",
		testConfig(emptyLines(config.PreserveNone)),
		"[1, 2]",
	},
	{
		"comment after comma stays on its line",
		"[\n1, // one\n2\n]",
		testConfig(),
		"[\n    1, // one\n    2,\n]",
	},
	{
		"comment after comma stays when blank lines dropped",
		"[\n1, // one\n2\n]",
		testConfig(emptyLines(config.PreserveNone)),
		"[\n    1, // one\n    2,\n]",
	},
	{
		"comment on own line after comma",
		"[\n1,\n// one\n2\n]",
		testConfig(),
		"[\n    1,\n    // one\n    2,\n]",
	},
	{
		"trailing comma goes before comment",
		"[\n1 // one\n]",
		testConfig(),
		"[\n    1, // one\n]",
	},
	{
		"trailing comma before comment on last element",
		"[1,2 // c\n]",
		testConfig(width(8)),
		"[\n    1,\n    2, // c\n]",
	},
	{
		"trailing comma before own line comment",
		"[\n1\n// tail\n]",
		testConfig(),
		"[\n    1,\n    // tail\n]",
	},
	{
		"block comment after comma",
		"[\n1, /* one */\n2]",
		testConfig(),
		"[\n    1, /* one */\n    2,\n]",
	},
	{"brace inside bracket", "[{a:1}]", testConfig(), "[{ a: 1 }]"},
	{"block comment header", "/* head */\n[1]", testConfig(), "/* head */\n[1]"},
	{
		"hard tab",
		"[1,2]",
		testConfig(width(3), func(c *config.Config) { c.HardTab = true }),
		"[\n\t1,\n\t2,\n]",
	},
	{
		"indent width",
		"[1,2]",
		testConfig(width(3), func(c *config.Config) { c.IndentWidth = 2 }),
		"[\n  1,\n  2,\n]",
	},
	{
		"crlf detected",
		"[1,\r\n2]",
		testConfig(width(5), func(c *config.Config) { c.LineEnding = config.LineEndingDetect }),
		"[\r\n    1,\r\n    2,\r\n]",
	},
	{
		"crlf forced",
		"[1,2]",
		testConfig(width(5), func(c *config.Config) { c.LineEnding = config.LineEndingCrLf }),
		"[\r\n    1,\r\n    2,\r\n]",
	},
	{"wide runes fit", `["日本"]`, testConfig(width(9)), `["日本"]`},
	{"wide runes break", `["日本"]`, testConfig(width(8)), "[\n    \"日本\",\n]"},
	{"multi-line string", "[\"a\nb\"]", testConfig(), "[\n    \"a\nb\",\n]"},
	{"raw string inline", `[r#"a"#, b"x"]`, testConfig(), `[r#"a"#, b"x"]`},
}

func TestFormat(t *testing.T) {
	for _, tc := range formatCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Format(tc.src, tc.cfg)
			if err != nil {
				t.Fatalf("Format(%q): %v", tc.src, err)
			}
			if got != tc.want {
				t.Fatalf("Format(%q) mismatch:\nwant %q\ngot  %q", tc.src, tc.want, got)
			}
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	for _, tc := range formatCases {
		t.Run(tc.name, func(t *testing.T) {
			once, err := Format(tc.src, tc.cfg)
			if err != nil {
				t.Fatal(err)
			}
			twice, err := Format(once, tc.cfg)
			if err != nil {
				t.Fatal(err)
			}
			if once != twice {
				t.Fatalf("second pass changed output:\nfirst  %q\nsecond %q", once, twice)
			}
		})
	}
}

func TestInlineDepthForcesBreak(t *testing.T) {
	// a group nested deeper than max_inline_level can never share a line with its parent
	for level := 0; level <= 3; level++ {
		src := "[1]"
		for range level {
			src = "[" + src + "]"
		}
		cfg := testConfig(inlineLevel(level))
		got, err := Format(src, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if got == src {
			t.Errorf("level %d: %q was inlined", level, src)
		}
		inner := src[1 : len(src)-1]
		if fits, err := Format(inner, cfg); err != nil || fits != inner {
			t.Errorf("level %d: %q should inline, got %q (%v)", level, inner, fits, err)
		}
	}
}

func TestMismatchedDelimiter(t *testing.T) {
	cases := []struct {
		name       string
		src        string
		start, end uint32
		want, got  token.Delimiter
	}{
		{"wrong close inline", "[1}", 2, 3, token.Bracket, token.Brace},
		{"wrong close broken", "[\n// c\n1}", 8, 9, token.Bracket, token.Brace},
		{"stray close", "1]", 1, 2, token.NoDelimiter, token.Bracket},
		{"unclosed", "[1,", 3, 3, token.Bracket, token.NoDelimiter},
		{"unclosed nested", "{a:(1", 5, 5, token.Paren, token.NoDelimiter},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Format(tc.src, testConfig())
			if out != "" {
				t.Errorf("partial output returned: %q", out)
			}
			var mismatch *MismatchedDelimiterError
			if !errors.As(err, &mismatch) {
				t.Fatalf("expected MismatchedDelimiterError, got %v", err)
			}
			if sp := mismatch.Location(); sp.Start != tc.start || sp.End != tc.end {
				t.Errorf("span = %d..%d, want %d..%d", sp.Start, sp.End, tc.start, tc.end)
			}
			if mismatch.Want != tc.want || mismatch.Got != tc.got {
				t.Errorf("want/got = %v/%v, expected %v/%v", mismatch.Want, mismatch.Got, tc.want, tc.got)
			}
		})
	}
}

func TestBalancedNeverMismatches(t *testing.T) {
	src := "{a:[1,(2,3),{b:[]}],c:Foo(x,{y:z})}"
	for w := 1; w <= 40; w++ {
		for level := 0; level <= 3; level++ {
			if _, err := Format(src, testConfig(width(w), inlineLevel(level))); err != nil {
				t.Fatalf("width %d level %d: %v", w, level, err)
			}
		}
	}
}

func TestLexerErrorsPassThrough(t *testing.T) {
	cases := []struct {
		src  string
		code lexer.Code
	}{
		{`["abc`, lexer.LexUnterminatedString},
		{"[@]", lexer.LexUnknownChar},
		{"/* open", lexer.LexUnterminatedComment},
	}
	for _, tc := range cases {
		_, err := Format(tc.src, testConfig())
		var lexErr *lexer.Error
		if !errors.As(err, &lexErr) {
			t.Fatalf("%q: expected lexer error, got %v", tc.src, err)
		}
		if lexErr.Code != tc.code {
			t.Errorf("%q: code %v, want %v", tc.src, lexErr.Code, tc.code)
		}
	}
}

func TestFormatNilConfigUsesDefaults(t *testing.T) {
	got, err := FormatBytes([]byte("{a:1}"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "{ a: 1 }" {
		t.Fatalf("got %q", got)
	}
}
