package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Integer represents an integer literal (42, -7, 0xff, 1_000).
	Integer
	// Float represents a float literal (1.5, 1e9, -inf, NaN).
	Float
	// Bool represents true or false.
	Bool
	// Character represents a char literal ('a').
	Character
	// Byte represents a byte literal (b'a').
	Byte
	// String represents a string literal ("..." or r#"..."#).
	String
	// Bytes represents a byte string literal (b"..." or br#"..."#).
	Bytes
	// Identifier represents a bare or raw (r#name) identifier.
	Identifier

	// Comment represents a line or block comment.
	Comment
	// Colon represents ':'.
	Colon
	// Comma represents ','.
	Comma
	// Open represents an opening delimiter; see Token.Delim.
	Open
	// Close represents a closing delimiter; see Token.Delim.
	Close
	// Whitespace represents a run of spaces, tabs and newlines.
	Whitespace
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Integer:    "Integer",
	Float:      "Float",
	Bool:       "Bool",
	Character:  "Character",
	Byte:       "Byte",
	String:     "String",
	Bytes:      "Bytes",
	Identifier: "Identifier",
	Comment:    "Comment",
	Colon:      "Colon",
	Comma:      "Comma",
	Open:       "Open",
	Close:      "Close",
	Whitespace: "Whitespace",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsValue reports whether the kind is a literal or an identifier.
func (k Kind) IsValue() bool {
	switch k {
	case Integer, Float, Bool, Character, Byte, String, Bytes, Identifier:
		return true
	default:
		return false
	}
}

// Delimiter is the kind of a balanced group.
type Delimiter uint8

const (
	// NoDelimiter is the zero value used by non-delimiter tokens.
	NoDelimiter Delimiter = iota
	// Paren is ( ).
	Paren
	// Brace is { }.
	Brace
	// Bracket is [ ].
	Bracket
)

// Open returns the opening character.
func (d Delimiter) Open() byte {
	switch d {
	case Paren:
		return '('
	case Brace:
		return '{'
	case Bracket:
		return '['
	default:
		return 0
	}
}

// Close returns the closing character.
func (d Delimiter) Close() byte {
	switch d {
	case Paren:
		return ')'
	case Brace:
		return '}'
	case Bracket:
		return ']'
	default:
		return 0
	}
}

// IsBrace reports whether d is a brace. Braces get padded with spaces, parens and brackets do not.
func (d Delimiter) IsBrace() bool { return d == Brace }

func (d Delimiter) String() string {
	switch d {
	case Paren:
		return "paren"
	case Brace:
		return "brace"
	case Bracket:
		return "bracket"
	default:
		return "none"
	}
}
