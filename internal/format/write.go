package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Writer accumulates formatted output and keeps track of the display width of the current line.
type Writer struct {
	buf       []byte
	nl        string
	tabWidth  int
	lineStart int // offset of the current line in buf
	lineWidth int
}

// NewWriter creates a writer that ends lines with nl and counts a tab as tabWidth columns.
func NewWriter(nl string, tabWidth, sizeHint int) *Writer {
	return &Writer{
		buf:      make([]byte, 0, sizeHint),
		nl:       nl,
		tabWidth: tabWidth,
	}
}

// Bytes returns the accumulated formatted output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) String() string {
	return string(w.buf)
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// LineWidth is the display width of the current (last) line.
func (w *Writer) LineWidth() int {
	return w.lineWidth
}

// LineEmpty reports whether nothing has been written since the last line break.
func (w *Writer) LineEmpty() bool {
	return w.lineStart == len(w.buf)
}

// WriteString appends s. s may contain line breaks.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.buf = append(w.buf, s...)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		w.lineStart = len(w.buf) - len(s) + i + 1
		w.lineWidth = w.Width(s[i+1:])
		return
	}
	w.lineWidth += w.Width(s)
}

// WriteByte writes a single byte to the output.
func (w *Writer) WriteByte(b byte) error {
	w.WriteString(string(b))
	return nil
}

// Newline writes the configured line ending.
func (w *Writer) Newline() {
	w.WriteString(w.nl)
}

// Space writes a single space.
func (w *Writer) Space() {
	w.buf = append(w.buf, ' ')
	w.lineWidth++
}

// Insert places s at offset off of the output. s must not contain line breaks.
func (w *Writer) Insert(off int, s string) {
	if off >= len(w.buf) {
		w.WriteString(s)
		return
	}
	w.buf = append(w.buf[:off], append([]byte(s), w.buf[off:]...)...)
	if off >= w.lineStart {
		w.lineWidth += w.Width(s)
	} else {
		w.lineStart += len(s)
	}
}

// Width measures s in display columns.
func (w *Writer) Width(s string) int {
	if !strings.Contains(s, "\t") {
		return runewidth.StringWidth(s)
	}
	n := 0
	for _, part := range strings.SplitAfter(s, "\t") {
		if strings.HasSuffix(part, "\t") {
			n += runewidth.StringWidth(part[:len(part)-1]) + w.tabWidth
			continue
		}
		n += runewidth.StringWidth(part)
	}
	return n
}
