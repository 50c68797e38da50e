package format

import (
	"strings"

	"rsnfmt/internal/config"
)

// Indent renders the current nesting depth.
type Indent struct {
	Level   int
	HardTab bool
	Width   int
}

// NewIndent returns a zero-level indent styled by cfg.
func NewIndent(cfg *config.Config) Indent {
	return Indent{HardTab: cfg.HardTab, Width: cfg.IndentWidth}
}

func (i Indent) String() string {
	if i.HardTab {
		return strings.Repeat("\t", i.Level)
	}
	return strings.Repeat(" ", i.Width*i.Level)
}

// Columns is the display width of String, counting a tab as Width columns.
func (i Indent) Columns() int {
	return i.Width * i.Level
}

func (i *Indent) Inc() {
	i.Level++
}

// Dec panics when the level would go negative: callers check delimiter balance first.
func (i *Indent) Dec() {
	if i.Level == 0 {
		panic("format: indent level below zero")
	}
	i.Level--
}
