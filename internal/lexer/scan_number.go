package lexer

import (
	"rsnfmt/internal/token"
)

// Поддержка: 0, -12, +3, 1_000, 0b..., 0o..., 0x..., 1.0, 1., .5, 1e-3, inf, -inf, NaN.
// Kind ставим как Integer/Float по факту; текст токена - ровно исходный срез.
func (lx *Lexer) scanNumber() (token.Token, *Error) {
	start := lx.cursor.Mark()

	if b := lx.cursor.Peek(); b == '-' || b == '+' {
		lx.cursor.Bump()
		if isIdentStartByte(lx.cursor.Peek()) {
			word := lx.scanWord()
			if word == "inf" || word == "NaN" {
				return lx.emit(token.Float, token.NoDelimiter, start), nil
			}
			return token.Token{}, lx.fail(LexBadNumber, start, "expected digits after sign")
		}
		if !isDec(lx.cursor.Peek()) && (lx.cursor.Peek() != '.' || !isDec(lx.cursor.PeekAt(1))) {
			return token.Token{}, lx.fail(LexBadNumber, start, "expected digits after sign")
		}
	}

	// ведущий 0 и база?
	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			digit = isHex
		case 'o', 'O':
			digit = isOct
		case 'b', 'B':
			digit = isBin
		}
		if digit != nil {
			lx.cursor.BumpN(2)
			if lx.eatDigits(digit) == 0 {
				return token.Token{}, lx.fail(LexBadNumber, start, "expected digits after base prefix")
			}
			return lx.finishNumber(token.Integer, start)
		}
	}

	kind := token.Integer
	lx.eatDigits(isDec)

	// дробная часть; "1.foo" не число с точкой
	if lx.cursor.Peek() == '.' && !isIdentStartByte(lx.cursor.PeekAt(1)) && lx.cursor.PeekAt(1) != '.' {
		lx.cursor.Bump()
		kind = token.Float
		lx.eatDigits(isDec)
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.Float
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if lx.eatDigits(isDec) == 0 {
			return token.Token{}, lx.fail(LexBadNumber, start, "expected digit after exponent")
		}
	}
	return lx.finishNumber(kind, start)
}

// finishNumber rejects literals glued to identifier characters, e.g. 12abc.
func (lx *Lexer) finishNumber(kind token.Kind, start Mark) (token.Token, *Error) {
	if b := lx.cursor.Peek(); isIdentContinueByte(b) || b >= utf8RuneSelf {
		lx.scanWord()
		return token.Token{}, lx.fail(LexBadNumber, start, "invalid number suffix")
	}
	return lx.emit(kind, token.NoDelimiter, start), nil
}

// eatDigits consumes digits and '_' separators, returning the number of actual digits.
func (lx *Lexer) eatDigits(digit func(byte) bool) int {
	n := 0
	for {
		b := lx.cursor.Peek()
		switch {
		case digit(b):
			n++
		case b == '_':
		default:
			return n
		}
		lx.cursor.Bump()
	}
}
