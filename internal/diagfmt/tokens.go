package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"rsnfmt/internal/source"
	"rsnfmt/internal/token"
)

type TokenOutput struct {
	Kind      string `json:"kind"`
	Delimiter string `json:"delimiter,omitempty"`
	Text      string `json:"text,omitempty"`
	Start     uint32 `json:"start"`
	End       uint32 `json:"end"`
	Line      uint32 `json:"line"`
	Col       uint32 `json:"col"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, file *source.File) error {
	for i, tok := range tokens {
		startPos, endPos := file.Resolve(tok.Span)

		kind := tok.Kind.String()
		if tok.Delim != token.NoDelimiter {
			kind += "(" + tok.Delim.String() + ")"
		}
		if _, err := fmt.Fprintf(w, "%3d: %-18s %q at %d:%d-%d:%d\n",
			i+1, kind, tok.Text,
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, file *source.File) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		pos, _ := file.Resolve(tok.Span)
		out := TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: tok.Span.Start,
			End:   tok.Span.End,
			Line:  pos.Line,
			Col:   pos.Col,
		}
		if tok.Delim != token.NoDelimiter {
			out.Delimiter = tok.Delim.String()
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
