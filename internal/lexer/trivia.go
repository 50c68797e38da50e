package lexer

import (
	"rsnfmt/internal/token"
)

// scanWhitespace коалесцирует пробелы, табы, \r и \n в один токен.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Whitespace, token.NoDelimiter, start)
}

// scanComment handles //... (up to, not including, the newline) and nested /* ... */.
func (lx *Lexer) scanComment() (token.Token, *Error) {
	start := lx.cursor.Mark()
	switch lx.cursor.PeekAt(1) {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		// \r перед \n относится к переводу строки, а не к комментарию
		if lx.cursor.Off > uint32(start)+2 && lx.file.Content[lx.cursor.Off-1] == '\r' {
			lx.cursor.Off--
		}
		return lx.emit(token.Comment, token.NoDelimiter, start), nil

	case '*':
		lx.cursor.BumpN(2)
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			b0, b1 := lx.cursor.Peek(), lx.cursor.PeekAt(1)
			switch {
			case b0 == '/' && b1 == '*':
				lx.cursor.BumpN(2)
				depth++
			case b0 == '*' && b1 == '/':
				lx.cursor.BumpN(2)
				depth--
			default:
				lx.cursor.Bump()
			}
		}
		if depth > 0 {
			return token.Token{}, lx.fail(LexUnterminatedComment, start, "unterminated block comment")
		}
		return lx.emit(token.Comment, token.NoDelimiter, start), nil

	default:
		lx.cursor.Bump()
		return token.Token{}, lx.fail(LexUnknownChar, start, "unexpected character '/'")
	}
}
