package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

type palette struct {
	path, err, warn, code, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:  color.New(color.Bold),
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		code:  color.New(color.FgCyan),
		caret: color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.path, p.err, p.warn, p.code, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностику в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	  <source line>
//	  ^~~~
//
// Without a position only the header is printed, as <path>: <SEV> <CODE>: <Message>.
func Pretty(w io.Writer, d Diagnostic, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	path := displayPath(d.Path, opts.PathMode, opts.BaseDir)

	sev := pal.err
	if d.Severity == SevWarning {
		sev = pal.warn
	}

	if d.File == nil {
		_, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
			pal.path.Sprint(path), sev.Sprint(d.Severity), pal.code.Sprint(d.Code), d.Message)
		return err
	}

	start, end := d.File.Resolve(d.Span)
	if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprintf("%s:%d:%d", path, start.Line, start.Col),
		sev.Sprint(d.Severity), pal.code.Sprint(d.Code), d.Message); err != nil {
		return err
	}

	line := d.File.GetLine(start.Line)
	lineText := strings.ReplaceAll(line, "\t", "    ")
	_, err := fmt.Fprintf(w, "  %s\n  %s\n", lineText, pal.caret.Sprint(underline(line, start.Col, end.Line, end.Col, start.Line)))
	return err
}

// underline builds ^~~~ under the 1-based byte columns [col, endCol) of line, counting display width.
func underline(line string, col, endLine, endCol, startLine uint32) string {
	from := min(int(col)-1, len(line))
	to := len(line)
	if endLine == startLine {
		to = min(int(endCol)-1, len(line))
	}
	pad := displayWidth(line[:from])
	n := max(displayWidth(line[from:max(from, to)]), 1)
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", n-1)
}

func displayWidth(s string) int {
	return runewidth.StringWidth(strings.ReplaceAll(s, "\t", "    "))
}
