package lexer

import (
	"rsnfmt/internal/token"
)

// scanString сканирует "..." (prefix байт перед кавычкой: 0 для строки, 1 для b"...").
// Newlines are allowed inside strings; escapes are validated but not decoded.
func (lx *Lexer) scanString(kind token.Kind, prefix uint32) (token.Token, *Error) {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(prefix + 1) // prefix + opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			return lx.emit(kind, token.NoDelimiter, start), nil
		case '\\':
			if err := lx.scanEscape(true); err != nil {
				return token.Token{}, err
			}
		default:
			lx.cursor.Bump()
		}
	}
	return token.Token{}, lx.fail(LexUnterminatedString, start, "unterminated string literal")
}

// isRawStringStart проверяет r"..." / r#"..."# начиная со смещения off (после 'r').
func (lx *Lexer) isRawStringStart(off uint32) bool {
	for lx.cursor.PeekAt(off) == '#' {
		off++
	}
	return lx.cursor.PeekAt(off) == '"'
}

func (lx *Lexer) scanRawString(kind token.Kind, prefix uint32) (token.Token, *Error) {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(prefix)
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			return lx.emit(kind, token.NoDelimiter, start), nil
		}
	}
	return token.Token{}, lx.fail(LexUnterminatedString, start, "unterminated raw string literal")
}

// scanChar сканирует 'x' и b'x'.
func (lx *Lexer) scanChar(kind token.Kind, prefix uint32) (token.Token, *Error) {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(prefix + 1) // prefix + opening '\''
	switch b := lx.cursor.Peek(); {
	case lx.cursor.EOF(), b == '\'', b == '\n', b == '\r':
		return token.Token{}, lx.fail(LexUnterminatedChar, start, "empty or unterminated character literal")
	case b == '\\':
		if err := lx.scanEscape(false); err != nil {
			return token.Token{}, err
		}
	default:
		lx.bumpRune()
	}
	if !lx.cursor.Eat('\'') {
		return token.Token{}, lx.fail(LexUnterminatedChar, start, "unterminated character literal")
	}
	return lx.emit(kind, token.NoDelimiter, start), nil
}

// scanEscape consumes one escape sequence starting at '\'.
func (lx *Lexer) scanEscape(inString bool) *Error {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	b := lx.cursor.Bump()
	switch b {
	case 'n', 'r', 't', '\\', '0', '\'', '"':
		return nil
	case '\n':
		// продолжение строки: \ + перевод строки
		if inString {
			return nil
		}
	case '\r':
		if inString && lx.cursor.Eat('\n') {
			return nil
		}
	case 'x':
		if isHex(lx.cursor.Peek()) && isHex(lx.cursor.PeekAt(1)) {
			lx.cursor.BumpN(2)
			return nil
		}
	case 'u':
		if !lx.cursor.Eat('{') {
			break
		}
		n := 0
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
			n++
		}
		if n > 0 && n <= 6 && lx.cursor.Eat('}') {
			return nil
		}
	case 0:
		if lx.cursor.EOF() {
			return lx.fail(LexUnterminatedString, start, "unterminated escape sequence")
		}
	}
	return lx.fail(LexInvalidEscape, start, "invalid escape sequence")
}
