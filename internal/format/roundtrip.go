package format

import (
	"bytes"
	"fmt"

	"rsnfmt/internal/config"
	"rsnfmt/internal/lexer"
	"rsnfmt/internal/source"
	"rsnfmt/internal/token"
)

// RoundTripError describes how formatted output failed verification.
type RoundTripError struct {
	Stage  string // "reparse", "tokens" or "idempotence"
	Detail string
}

func (e *RoundTripError) Error() string {
	return fmt.Sprintf("fmt-check: %s: %s", e.Stage, e.Detail)
}

// CheckRoundTrip formats sf and verifies the result: it must tokenize, carry the same significant
// tokens as the input, and format to itself.
func CheckRoundTrip(sf *source.File, cfg *config.Config) ([]byte, error) {
	out, err := FormatFile(sf, cfg)
	if err != nil {
		return nil, err
	}
	before, err := significant(sf)
	if err != nil {
		return nil, err
	}

	fs := source.NewFileSet()
	formatted := fs.Get(fs.AddVirtual(sf.Path, out))
	after, err := significant(formatted)
	if err != nil {
		return nil, &RoundTripError{Stage: "reparse", Detail: err.Error()}
	}
	if i, ok := firstDifference(before, after); !ok {
		return nil, &RoundTripError{Stage: "tokens", Detail: describeDifference(before, after, i)}
	}

	again, err := FormatFile(formatted, cfg)
	if err != nil {
		return nil, &RoundTripError{Stage: "idempotence", Detail: err.Error()}
	}
	if !bytes.Equal(out, again) {
		return nil, &RoundTripError{Stage: "idempotence", Detail: "second pass changed the output"}
	}
	return out, nil
}

// significant returns the tokens that carry meaning: no whitespace, no comments and no trailing
// commas, which the formatter adds or drops freely.
func significant(sf *source.File) ([]token.Token, error) {
	toks, err := lexer.Tokenize(sf)
	if err != nil {
		return nil, err
	}
	out := make([]token.Token, 0, len(toks))
	for _, tok := range toks {
		if tok.IsTrivia() {
			continue
		}
		if tok.IsClose() && len(out) > 0 && out[len(out)-1].Kind == token.Comma {
			out = out[:len(out)-1]
		}
		out = append(out, tok)
	}
	return out, nil
}

func firstDifference(a, b []token.Token) (int, bool) {
	n := min(len(a), len(b))
	for i := range n {
		if a[i].Kind != b[i].Kind || a[i].Delim != b[i].Delim || a[i].Text != b[i].Text {
			return i, false
		}
	}
	return n, len(a) == len(b)
}

func describeDifference(before, after []token.Token, i int) string {
	show := func(toks []token.Token) string {
		if i >= len(toks) {
			return "end of input"
		}
		return fmt.Sprintf("%s %q", toks[i].Kind, toks[i].Text)
	}
	return fmt.Sprintf("token %d: %s became %s", i, show(before), show(after))
}
