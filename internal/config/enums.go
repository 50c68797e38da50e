package config

import (
	"fmt"
	"strings"
)

// NormalizeComments selects a comment style. Accepted and stored; the formatter does not apply it yet.
type NormalizeComments uint8

const (
	// NormalizeNo leaves comments as written.
	NormalizeNo NormalizeComments = iota
	// NormalizeBlock rewrites comments as /* */.
	NormalizeBlock
	// NormalizeLine rewrites comments as //.
	NormalizeLine
)

var normalizeNames = []string{NormalizeNo: "No", NormalizeBlock: "Block", NormalizeLine: "Line"}

func (n NormalizeComments) String() string { return enumName(normalizeNames, int(n)) }

// MarshalText implements encoding.TextMarshaler.
func (n NormalizeComments) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *NormalizeComments) UnmarshalText(text []byte) error {
	return parseEnum(normalizeNames, "normalize_comments", text, n)
}

// PreserveEmptyLines controls how runs of blank lines survive formatting.
type PreserveEmptyLines uint8

const (
	// PreserveAll keeps every blank line.
	PreserveAll PreserveEmptyLines = iota
	// PreserveOne collapses runs of blank lines to one.
	PreserveOne
	// PreserveNone drops blank lines.
	PreserveNone
)

var preserveNames = []string{PreserveAll: "All", PreserveOne: "One", PreserveNone: "None"}

func (p PreserveEmptyLines) String() string { return enumName(preserveNames, int(p)) }

// MarshalText implements encoding.TextMarshaler.
func (p PreserveEmptyLines) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PreserveEmptyLines) UnmarshalText(text []byte) error {
	return parseEnum(preserveNames, "preserve_empty_lines", text, p)
}

// LineEnding selects the newline sequence written by the formatter.
type LineEnding uint8

const (
	// LineEndingDetect uses the first line ending in the input, falling back to the platform one.
	LineEndingDetect LineEnding = iota
	// LineEndingPlatform uses \r\n on Windows and \n everywhere else.
	LineEndingPlatform
	// LineEndingLf uses \n.
	LineEndingLf
	// LineEndingCrLf uses \r\n.
	LineEndingCrLf
)

var lineEndingNames = []string{
	LineEndingDetect:   "Detect",
	LineEndingPlatform: "Platform",
	LineEndingLf:       "Lf",
	LineEndingCrLf:     "CrLf",
}

func (l LineEnding) String() string { return enumName(lineEndingNames, int(l)) }

// MarshalText implements encoding.TextMarshaler.
func (l LineEnding) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *LineEnding) UnmarshalText(text []byte) error {
	return parseEnum(lineEndingNames, "line_ending", text, l)
}

func enumName(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("invalid(%d)", i)
}

// parseEnum matches names case-insensitively.
func parseEnum[E ~uint8](names []string, key string, text []byte, out *E) error {
	s := strings.TrimSpace(string(text))
	for i, name := range names {
		if strings.EqualFold(s, name) {
			*out = E(i) // #nosec G115 -- enum tables are tiny
			return nil
		}
	}
	return fmt.Errorf("%s: unknown value %q (expected %s)", key, s, strings.Join(names, "|"))
}
