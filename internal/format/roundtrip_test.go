package format

import (
	"errors"
	"testing"

	"rsnfmt/internal/config"
	"rsnfmt/internal/source"
)

func virtual(src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.rsn", []byte(src)))
}

func TestCheckRoundTrip(t *testing.T) {
	inputs := []string{
		"[1,2,3]",
		"{a:[1,2,3],b:Foo(x, y),c:\"s\"}",
		"// header\n{\n\n\na: 1, // trailing\nb: [\n],\n}\n",
		"Config(name: \"x\", values: [0x1f, 1_000, -2.5e3, inf, 'c', b'x', b\"bytes\", r#\"raw\"#])",
	}
	cfgs := []*config.Config{
		testConfig(),
		testConfig(width(8)),
		testConfig(width(1), inlineLevel(0)),
		testConfig(width(20), emptyLines(config.PreserveOne)),
		testConfig(emptyLines(config.PreserveNone), func(c *config.Config) { c.HardTab = true }),
	}
	for _, src := range inputs {
		for _, cfg := range cfgs {
			if _, err := CheckRoundTrip(virtual(src), cfg); err != nil {
				t.Errorf("%q (width %d): %v", src, cfg.MaxWidth, err)
			}
		}
	}
}

func TestCheckRoundTripPropagatesFormatErrors(t *testing.T) {
	_, err := CheckRoundTrip(virtual("[1}"), testConfig())
	var mismatch *MismatchedDelimiterError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchedDelimiterError, got %v", err)
	}
}

func TestSignificantIgnoresTrailingCommas(t *testing.T) {
	a, err := significant(virtual("[1, 2,] // c"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := significant(virtual("[\n  1,\n  2\n]"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := firstDifference(a, b); !ok {
		t.Fatalf("streams differ: %v vs %v", a, b)
	}

	c, err := significant(virtual("[1, 3]"))
	if err != nil {
		t.Fatal(err)
	}
	i, ok := firstDifference(a, c)
	if ok || i != 3 {
		t.Fatalf("expected difference at 3, got %d (%v)", i, ok)
	}
	if got := describeDifference(a, c, i); got != `token 3: Integer "2" became Integer "3"` {
		t.Fatalf("describeDifference = %s", got)
	}
}
