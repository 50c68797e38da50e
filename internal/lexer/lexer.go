package lexer

import (
	"rsnfmt/internal/source"
	"rsnfmt/internal/token"
)

// Lexer produces the full RSN token stream, whitespace and comments included.
// A Lexer is cheap to copy; Clone forks an independent cursor over the same file.
type Lexer struct {
	file   *source.File
	cursor Cursor
	err    *Error // первая ошибка, дальше отдаём только её
}

func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Clone returns an independent lexer positioned where lx is.
func (lx *Lexer) Clone() *Lexer {
	c := *lx
	return &c
}

// Offset returns the byte offset of the next token.
func (lx *Lexer) Offset() uint32 {
	return lx.cursor.Off
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
// Errors are sticky: after the first failure every call returns it again.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.err != nil {
		return token.Token{}, lx.err
	}
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}, nil
	}

	var (
		tok token.Token
		err *Error
	)
	ch := lx.cursor.Peek()
	switch {
	case isSpace(ch):
		tok = lx.scanWhitespace()
	case ch == '/':
		tok, err = lx.scanComment()
	case ch == ':':
		tok = lx.single(token.Colon, token.NoDelimiter)
	case ch == ',':
		tok = lx.single(token.Comma, token.NoDelimiter)
	case ch == '(':
		tok = lx.single(token.Open, token.Paren)
	case ch == '{':
		tok = lx.single(token.Open, token.Brace)
	case ch == '[':
		tok = lx.single(token.Open, token.Bracket)
	case ch == ')':
		tok = lx.single(token.Close, token.Paren)
	case ch == '}':
		tok = lx.single(token.Close, token.Brace)
	case ch == ']':
		tok = lx.single(token.Close, token.Bracket)
	case ch == '"':
		tok, err = lx.scanString(token.String, 0)
	case ch == '\'':
		tok, err = lx.scanChar(token.Character, 0)
	case ch == 'b' && lx.cursor.PeekAt(1) == '\'':
		tok, err = lx.scanChar(token.Byte, 1)
	case ch == 'b' && lx.cursor.PeekAt(1) == '"':
		tok, err = lx.scanString(token.Bytes, 1)
	case ch == 'b' && lx.cursor.PeekAt(1) == 'r' && lx.isRawStringStart(2):
		tok, err = lx.scanRawString(token.Bytes, 2)
	case ch == 'r' && lx.isRawStringStart(1):
		tok, err = lx.scanRawString(token.String, 1)
	case ch == 'r' && lx.cursor.PeekAt(1) == '#':
		tok, err = lx.scanRawIdent()
	case isDec(ch), ch == '-', ch == '+', ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok, err = lx.scanNumber()
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		tok, err = lx.scanIdent()
	default:
		lx.cursor.Bump()
		err = lx.fail(LexUnknownChar, lx.cursor.Mark()-1, "unexpected character")
	}
	if err != nil {
		lx.err = err
		return token.Token{}, err
	}
	return tok, nil
}

// Tokenize collects the whole stream of file, EOF excluded.
func Tokenize(file *source.File) ([]token.Token, error) {
	lx := New(file)
	var toks []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func (lx *Lexer) single(kind token.Kind, delim token.Delimiter) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return lx.emit(kind, delim, start)
}

func (lx *Lexer) emit(kind token.Kind, delim token.Delimiter, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind:  kind,
		Delim: delim,
		Span:  sp,
		Text:  string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) fail(code Code, start Mark, msg string) *Error {
	return &Error{Code: code, Span: lx.cursor.SpanFrom(start), Msg: msg}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
