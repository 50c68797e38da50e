package lexer

import (
	"fmt"

	"rsnfmt/internal/source"
)

// Code classifies a tokenizer failure.
type Code uint16

const (
	LexUnknownChar          Code = 1001
	LexUnterminatedString   Code = 1002
	LexUnterminatedComment  Code = 1003
	LexBadNumber            Code = 1004
	LexUnterminatedChar     Code = 1005
	LexInvalidEscape        Code = 1006
	LexInvalidRawIdentifier Code = 1007
)

var codeNames = map[Code]string{
	LexUnknownChar:          "unknown character",
	LexUnterminatedString:   "unterminated string",
	LexUnterminatedComment:  "unterminated block comment",
	LexBadNumber:            "invalid number",
	LexUnterminatedChar:     "unterminated character",
	LexInvalidEscape:        "invalid escape",
	LexInvalidRawIdentifier: "invalid raw identifier",
}

// ID returns the stable diagnostic identifier, e.g. LEX1002.
func (c Code) ID() string {
	return fmt.Sprintf("LEX%04d", uint16(c))
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "lexer error"
}

// Error is a fatal tokenizer failure. Once returned, the lexer keeps returning it.
type Error struct {
	Code Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("tokenizer error: %s at %d..%d", e.Msg, e.Span.Start, e.Span.End)
}

// Location returns the span of the offending input.
func (e *Error) Location() source.Span {
	return e.Span
}
