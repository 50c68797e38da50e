package format

import (
	"strings"

	"rsnfmt/internal/config"
	"rsnfmt/internal/lexer"
	"rsnfmt/internal/token"
)

// inlineGroup renders the group opened by open on a single line, nested groups included.
// lx is consumed and must be a clone positioned right after the opening delimiter.
// ok is false when the group cannot be put on one line; err is fatal for the whole run.
func inlineGroup(lx *lexer.Lexer, open token.Delimiter, cfg *config.Config) (text string, ok bool, err error) {
	var sb strings.Builder
	stack := delimStack{open}
	spaced := open.IsBrace()
	afterOpen := true
	adjacent := false // предыдущий токен - значение или закрывающая скобка
	comma := false
	empty := true

	sb.WriteByte(open.Open())
	for {
		tok, err := lx.Next()
		if err != nil {
			return "", false, err
		}

		if comma {
			switch {
			case tok.IsValue(), tok.IsOpen():
				sb.WriteByte(',')
				comma = false
			case tok.IsClose():
				comma = false
			}
		}

		switch tok.Kind {
		case token.EOF:
			return "", false, nil
		case token.Comment:
			return "", false, nil
		case token.Whitespace:
			if strings.Count(tok.Text, "\n") > 1 && cfg.PreserveEmptyLines != config.PreserveNone {
				return "", false, nil
			}
			continue
		case token.String, token.Bytes, token.Byte:
			if strings.Contains(tok.Text, "\n") {
				return "", false, nil
			}
			sb.WriteString(pad(spaced || adjacent))
			sb.WriteString(tok.Text)
		case token.Colon:
			sb.WriteByte(':')
		case token.Comma:
			comma = true
		case token.Open:
			if len(stack) > cfg.MaxInlineLevel {
				return "", false, nil
			}
			stack.push(tok.Delim)
			sb.WriteString(pad(spaced || tok.Delim.IsBrace() && !afterOpen))
			sb.WriteByte(tok.Delim.Open())
		case token.Close:
			if !empty && len(stack) > cfg.MaxInlineLevel {
				return "", false, nil
			}
			if err := stack.pop(tok); err != nil {
				return "", false, err
			}
			sb.WriteString(pad(tok.Delim.IsBrace() && !afterOpen))
			sb.WriteByte(tok.Delim.Close())
			if len(stack) == 0 {
				return sb.String(), true, nil
			}
		default:
			if !tok.IsValue() {
				return "", false, nil
			}
			sb.WriteString(pad(spaced || adjacent))
			sb.WriteString(tok.Text)
		}

		spaced = tok.Kind == token.Colon || tok.Kind == token.Comma || tok.Kind == token.Open && tok.Delim.IsBrace()
		afterOpen = tok.IsOpen()
		adjacent = tok.IsValue() || tok.IsClose()
		if tok.IsValue() || tok.IsClose() {
			empty = false
		}
	}
}

func pad(cond bool) string {
	if cond {
		return " "
	}
	return ""
}
