package config

import (
	"fmt"
	"strconv"
	"strings"

	"rsnfmt/internal/lexer"
	"rsnfmt/internal/source"
	"rsnfmt/internal/token"
)

// decodeRSN reads a config written as an RSN map or struct:
//
//	Config(max_width: 80, line_ending: Lf)
//	{ "indent": 2, hard_tab: true }
//
// An empty file is an empty layer.
func decodeRSN(path string, data []byte) (Partial, error) {
	fs := source.NewFileSet()
	d := rsnDecoder{path: path, file: fs.Get(fs.AddVirtual(path, data))}
	d.lx = lexer.New(d.file)

	var p Partial
	tok, err := d.next()
	if err != nil {
		return Partial{}, err
	}
	if tok.Kind == token.EOF {
		return p, nil
	}
	if tok.Kind == token.Identifier {
		if tok, err = d.next(); err != nil {
			return Partial{}, err
		}
	}
	if tok.Kind != token.Open || tok.Delim != token.Brace && tok.Delim != token.Paren {
		return Partial{}, d.errorf(tok, "expected { or (, found %s", tok.Kind)
	}
	delim := tok.Delim

	for {
		if tok, err = d.next(); err != nil {
			return Partial{}, err
		}
		if tok.Kind == token.Close {
			break
		}
		key, err := d.key(tok)
		if err != nil {
			return Partial{}, err
		}
		if tok, err = d.next(); err != nil {
			return Partial{}, err
		}
		if tok.Kind != token.Colon {
			return Partial{}, d.errorf(tok, "expected : after %q", key)
		}
		if tok, err = d.next(); err != nil {
			return Partial{}, err
		}
		value, err := d.value(tok)
		if err != nil {
			return Partial{}, err
		}
		if err := p.Set(key, value); err != nil {
			return Partial{}, d.errorf(tok, "%v", err)
		}

		if tok, err = d.next(); err != nil {
			return Partial{}, err
		}
		if tok.Kind == token.Close {
			break
		}
		if tok.Kind != token.Comma {
			return Partial{}, d.errorf(tok, "expected , or %c", delim.Close())
		}
	}
	if tok.Delim != delim {
		return Partial{}, d.errorf(tok, "expected %c, found %c", delim.Close(), tok.Delim.Close())
	}

	if tok, err = d.next(); err != nil {
		return Partial{}, err
	}
	if tok.Kind != token.EOF {
		return Partial{}, d.errorf(tok, "unexpected %s after config", tok.Kind)
	}
	return p, nil
}

type rsnDecoder struct {
	path string
	file *source.File
	lx   *lexer.Lexer
}

// next returns the next significant token.
func (d *rsnDecoder) next() (token.Token, error) {
	for {
		tok, err := d.lx.Next()
		if err != nil {
			if lexErr, ok := err.(*lexer.Error); ok {
				start, _ := d.file.Resolve(lexErr.Span)
				return tok, fmt.Errorf("%s:%d:%d: failed to parse RSN: %s", d.path, start.Line, start.Col, lexErr.Msg)
			}
			return tok, fmt.Errorf("%s: failed to parse RSN: %w", d.path, err)
		}
		if !tok.IsTrivia() {
			return tok, nil
		}
	}
}

func (d *rsnDecoder) errorf(tok token.Token, format string, args ...any) error {
	start, _ := d.file.Resolve(tok.Span)
	return fmt.Errorf("%s:%d:%d: %s", d.path, start.Line, start.Col, fmt.Sprintf(format, args...))
}

func (d *rsnDecoder) key(tok token.Token) (string, error) {
	switch tok.Kind {
	case token.Identifier:
		return strings.TrimPrefix(tok.Text, "r#"), nil
	case token.String:
		return d.unquote(tok)
	}
	return "", d.errorf(tok, "expected key, found %s", tok.Kind)
}

// value renders a scalar the way Partial.Set expects it. Enum variants are identifiers.
func (d *rsnDecoder) value(tok token.Token) (string, error) {
	switch tok.Kind {
	case token.Bool, token.Identifier:
		return tok.Text, nil
	case token.Integer:
		n, err := strconv.ParseInt(strings.ReplaceAll(tok.Text, "_", ""), 0, 64)
		if err != nil {
			return "", d.errorf(tok, "bad integer %s", tok.Text)
		}
		return strconv.FormatInt(n, 10), nil
	case token.String:
		return d.unquote(tok)
	}
	return "", d.errorf(tok, "unsupported value %s", tok.Kind)
}

func (d *rsnDecoder) unquote(tok token.Token) (string, error) {
	text := tok.Text
	if rest, ok := strings.CutPrefix(text, "r"); ok {
		hashes := len(rest) - len(strings.TrimLeft(rest, "#"))
		return rest[hashes+1 : len(rest)-hashes-1], nil
	}
	s, err := strconv.Unquote(text)
	if err != nil {
		return "", d.errorf(tok, "bad string %s", text)
	}
	return s, nil
}
