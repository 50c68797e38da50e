package format

import (
	"strings"

	"rsnfmt/internal/config"
	"rsnfmt/internal/lexer"
	"rsnfmt/internal/source"
	"rsnfmt/internal/token"
)

// formatter holds the state of one formatting run.
type formatter struct {
	cfg    *config.Config
	file   *source.File
	lx     *lexer.Lexer
	w      *Writer
	indent Indent
	stack  delimStack
	// nled: the output is at the start of a fresh line and the next token needs indentation.
	nled bool
	// spaced: the next token is preceded by a single space (after a colon).
	spaced bool
	// adjacent: the previous token was a value, comment or close, so a following value needs a space.
	adjacent bool
	// commaAt is where a trailing comma goes if the enclosing broken group closes next; -1 when
	// the last element already has one. Comments after the element leave it in place.
	commaAt int
	// breakPending: a comma was written and its line break is held back so that a comment
	// following on the same source line stays there.
	breakPending bool
}

// Format formats src according to cfg.
func Format(src string, cfg *config.Config) (string, error) {
	out, err := FormatBytes([]byte(src), cfg)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// FormatBytes is Format over a byte slice.
func FormatBytes(src []byte, cfg *config.Config) ([]byte, error) {
	fs := source.NewFileSet()
	return FormatFile(fs.Get(fs.AddVirtual("<input>", src)), cfg)
}

// FormatFile formats a loaded file. Errors carry spans into sf; no output is returned with an error.
func FormatFile(sf *source.File, cfg *config.Config) ([]byte, error) {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	indent := NewIndent(cfg)
	f := formatter{
		cfg:     cfg,
		file:    sf,
		lx:      lexer.New(sf),
		w:       NewWriter(cfg.Newline(string(sf.Content)), indent.Width, len(sf.Content)+len(sf.Content)/4),
		indent:  indent,
		commaAt: -1,
	}
	if err := f.run(); err != nil {
		return nil, err
	}
	return f.w.Bytes(), nil
}

func (f *formatter) run() error {
	for {
		tok, err := f.lx.Next()
		if err != nil {
			return err
		}
		inlined := false
		if f.breakPending && !tok.IsTrivia() {
			f.breakLine()
		}
		switch tok.Kind {
		case token.EOF:
			if len(f.stack) > 0 {
				return &MismatchedDelimiterError{Span: tok.Span, Want: f.stack.top()}
			}
			return nil
		case token.Whitespace:
			f.whitespace(tok)
			continue
		case token.Comment:
			if f.breakPending {
				f.w.Space()
				f.w.WriteString(tok.Text)
			} else {
				f.value(tok)
			}
		case token.Colon:
			f.w.WriteByte(':')
			f.commaAt = -1
		case token.Comma:
			f.w.WriteByte(',')
			f.breakPending = true
			f.commaAt = -1
		case token.Open:
			if inlined, err = f.open(tok); err != nil {
				return err
			}
		case token.Close:
			if err := f.close(tok); err != nil {
				return err
			}
		default:
			f.value(tok)
			f.commaAt = f.w.Len()
		}

		// a committed inline group behaves like a single value
		f.nled = f.breakPending || tok.Kind == token.Open && !inlined
		f.spaced = tok.Kind == token.Colon
		f.adjacent = tok.IsValue() || tok.IsComment() || tok.IsClose() || inlined
		if tok.IsComment() && strings.HasPrefix(tok.Text, "//") {
			f.w.Newline()
			f.nled = true
			f.breakPending = false
		}
	}
}

// breakLine writes the line break held back after a comma.
func (f *formatter) breakLine() {
	f.w.Newline()
	f.breakPending = false
}

// value emits a literal, identifier or comment.
func (f *formatter) value(tok token.Token) {
	switch {
	case f.nled:
		f.w.WriteString(f.indent.String())
	case f.spaced, f.adjacent && !f.w.LineEmpty():
		f.w.Space()
	}
	f.w.WriteString(tok.Text)
}

// open tries to inline the group and breaks it when that fails or the line gets too wide.
// It reports whether the group was committed on one line.
func (f *formatter) open(tok token.Token) (bool, error) {
	saved := f.lx.Clone()
	text, ok, err := inlineGroup(f.lx, tok.Delim, f.cfg)
	if err != nil {
		return false, err
	}

	prefix, prefixWidth := "", 0
	switch {
	case f.nled:
		prefix, prefixWidth = f.indent.String(), f.indent.Columns()
	case f.spaced, tok.Delim.IsBrace() && !f.w.LineEmpty():
		prefix, prefixWidth = " ", 1
	}

	if ok && f.w.LineWidth()+prefixWidth+f.w.Width(text) < f.cfg.MaxWidth {
		f.w.WriteString(prefix)
		f.w.WriteString(text)
		f.commaAt = f.w.Len()
		return true, nil
	}

	f.lx = saved
	f.indent.Inc()
	f.stack.push(tok.Delim)
	f.w.WriteString(prefix)
	f.w.WriteByte(tok.Delim.Open())
	f.w.Newline()
	f.commaAt = -1
	return false, nil
}

func (f *formatter) close(tok token.Token) error {
	if err := f.stack.pop(tok); err != nil {
		return err
	}
	if f.commaAt >= 0 {
		f.w.Insert(f.commaAt, ",")
	}
	f.indent.Dec()
	if !f.nled {
		f.w.Newline()
	}
	f.w.WriteString(f.indent.String())
	f.w.WriteByte(tok.Delim.Close())
	f.commaAt = f.w.Len()
	return nil
}

// whitespace reproduces blank lines according to the configured policy.
func (f *formatter) whitespace(tok token.Token) {
	n := strings.Count(tok.Text, "\n")
	if f.breakPending && n > 0 {
		f.breakLine()
	}
	switch f.cfg.PreserveEmptyLines {
	case config.PreserveNone:
	case config.PreserveOne:
		if n > 1 {
			if !f.nled {
				f.w.Newline()
			}
			f.w.Newline()
			f.nled = true
			f.spaced = false
		}
	case config.PreserveAll:
		if f.nled {
			n--
		}
		for range n {
			f.w.Newline()
			f.nled = true
			f.spaced = false
		}
	}
}
