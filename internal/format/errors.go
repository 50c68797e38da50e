package format

import (
	"fmt"

	"rsnfmt/internal/source"
	"rsnfmt/internal/token"
)

// MismatchedDelimiterError reports a closing delimiter that does not match the innermost open one,
// a close with nothing open, or a group left open at end of input.
type MismatchedDelimiterError struct {
	Span source.Span
	// Want is the delimiter that should have closed; NoDelimiter when nothing was open.
	Want token.Delimiter
	// Got is the delimiter found; NoDelimiter at end of input.
	Got token.Delimiter
}

func (e *MismatchedDelimiterError) Error() string {
	switch {
	case e.Want == token.NoDelimiter:
		return fmt.Sprintf("mismatched delimiter at %d..%d: unexpected %q", e.Span.Start, e.Span.End, e.Got.Close())
	case e.Got == token.NoDelimiter:
		return fmt.Sprintf("mismatched delimiter at %d..%d: unclosed %q", e.Span.Start, e.Span.End, e.Want.Open())
	default:
		return fmt.Sprintf("mismatched delimiter at %d..%d: expected %q, found %q",
			e.Span.Start, e.Span.End, e.Want.Close(), e.Got.Close())
	}
}

// Location returns the span of the offending close, or the end of input for an unclosed group.
func (e *MismatchedDelimiterError) Location() source.Span {
	return e.Span
}

// delimStack tracks open groups.
type delimStack []token.Delimiter

func (s *delimStack) push(d token.Delimiter) { *s = append(*s, d) }

// pop closes the innermost group with tok.
func (s *delimStack) pop(tok token.Token) error {
	n := len(*s)
	if n == 0 {
		return &MismatchedDelimiterError{Span: tok.Span, Got: tok.Delim}
	}
	top := (*s)[n-1]
	*s = (*s)[:n-1]
	if top != tok.Delim {
		return &MismatchedDelimiterError{Span: tok.Span, Want: top, Got: tok.Delim}
	}
	return nil
}

func (s delimStack) top() token.Delimiter {
	if len(s) == 0 {
		return token.NoDelimiter
	}
	return s[len(s)-1]
}
