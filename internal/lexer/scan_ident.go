package lexer

import (
	"rsnfmt/internal/token"
)

// scanIdent сканирует идентификатор; true/false → Bool, inf/NaN → Float.
func (lx *Lexer) scanIdent() (token.Token, *Error) {
	start := lx.cursor.Mark()
	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		lx.bumpRune()
		return token.Token{}, lx.fail(LexUnknownChar, start, "unexpected character")
	}
	lx.scanWord()

	tok := lx.emit(token.Identifier, token.NoDelimiter, start)
	switch tok.Text {
	case "true", "false":
		tok.Kind = token.Bool
	case "inf", "NaN":
		tok.Kind = token.Float
	}
	return tok, nil
}

// scanRawIdent сканирует r#name; результат всегда Identifier (r#true - не bool).
func (lx *Lexer) scanRawIdent() (token.Token, *Error) {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(2) // "r#"
	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return token.Token{}, lx.fail(LexInvalidRawIdentifier, start, "expected identifier after r#")
	}
	lx.scanWord()
	return lx.emit(token.Identifier, token.NoDelimiter, start), nil
}

// scanWord consumes identifier-continue runes and returns them.
func (lx *Lexer) scanWord() string {
	start := lx.cursor.Off
	for {
		r, sz := lx.peekRune()
		if sz == 0 {
			break
		}
		if r < utf8RuneSelf {
			if !isIdentContinueByte(byte(r)) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}
	return string(lx.file.Content[start:lx.cursor.Off])
}
