// Package token defines lexical token kinds for RSN source.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace and comments are ordinary tokens: the formatter needs every byte of the input.
//   - Open/Close tokens carry their Delimiter; all other kinds leave it zero.
package token
