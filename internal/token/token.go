package token

import (
	"rsnfmt/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Delim Delimiter // only for Open/Close
	Span  source.Span
	Text  string
}

// IsValue reports whether the token is a literal or an identifier.
func (t Token) IsValue() bool { return t.Kind.IsValue() }

// IsComment reports whether the token is a comment.
func (t Token) IsComment() bool { return t.Kind == Comment }

// IsOpen reports whether the token opens a group.
func (t Token) IsOpen() bool { return t.Kind == Open }

// IsClose reports whether the token closes a group.
func (t Token) IsClose() bool { return t.Kind == Close }

// IsWhitespace reports whether the token is a whitespace run.
func (t Token) IsWhitespace() bool { return t.Kind == Whitespace }

// IsTrivia reports whether the token carries no meaning (whitespace or comment).
func (t Token) IsTrivia() bool { return t.Kind == Whitespace || t.Kind == Comment }
