package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownKey is returned by Partial.Set for names outside Keys.
var ErrUnknownKey = errors.New("unknown config key")

// Partial is one configuration layer: nil fields are unset.
type Partial struct {
	MaxWidth           *int                `toml:"max_width" yaml:"max_width"`
	MaxInlineLevel     *int                `toml:"max_inline_level" yaml:"max_inline_level"`
	NormalizeComments  *NormalizeComments  `toml:"normalize_comments" yaml:"normalize_comments"`
	WrapComments       *bool               `toml:"wrap_comments" yaml:"wrap_comments"`
	PreserveEmptyLines *PreserveEmptyLines `toml:"preserve_empty_lines" yaml:"preserve_empty_lines"`
	Inherit            *bool               `toml:"inherit" yaml:"inherit"`
	LineEnding         *LineEnding         `toml:"line_ending" yaml:"line_ending"`
	IndentWidth        *int                `toml:"indent" yaml:"indent"`
	HardTab            *bool               `toml:"hard_tab" yaml:"hard_tab"`
}

// Keys lists the configuration keys in declaration order.
var Keys = []string{
	"max_width",
	"max_inline_level",
	"normalize_comments",
	"wrap_comments",
	"preserve_empty_lines",
	"inherit",
	"line_ending",
	"indent",
	"hard_tab",
}

func pick[T any](dst **T, src *T, override bool) {
	if src == nil {
		return
	}
	if *dst == nil || override {
		v := *src
		*dst = &v
	}
}

// Merge lets every field set in src replace the one in p.
func (p *Partial) Merge(src Partial) { p.combine(src, true) }

// Join only fills fields of p that are still unset.
func (p *Partial) Join(src Partial) { p.combine(src, false) }

func (p *Partial) combine(src Partial, override bool) {
	pick(&p.MaxWidth, src.MaxWidth, override)
	pick(&p.MaxInlineLevel, src.MaxInlineLevel, override)
	pick(&p.NormalizeComments, src.NormalizeComments, override)
	pick(&p.WrapComments, src.WrapComments, override)
	pick(&p.PreserveEmptyLines, src.PreserveEmptyLines, override)
	pick(&p.Inherit, src.Inherit, override)
	pick(&p.LineEnding, src.LineEnding, override)
	pick(&p.IndentWidth, src.IndentWidth, override)
	pick(&p.HardTab, src.HardTab, override)
}

// Inherits reports whether discovery should continue past this layer.
func (p *Partial) Inherits() bool {
	return p.Inherit == nil || *p.Inherit
}

// Resolve applies the layer on top of Default.
func (p *Partial) Resolve() Config {
	c := Default()
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.MaxWidth, p.MaxWidth)
	set(&c.MaxInlineLevel, p.MaxInlineLevel)
	set(&c.IndentWidth, p.IndentWidth)
	if p.NormalizeComments != nil {
		c.NormalizeComments = *p.NormalizeComments
	}
	if p.WrapComments != nil {
		c.WrapComments = *p.WrapComments
	}
	if p.PreserveEmptyLines != nil {
		c.PreserveEmptyLines = *p.PreserveEmptyLines
	}
	if p.Inherit != nil {
		c.Inherit = *p.Inherit
	}
	if p.LineEnding != nil {
		c.LineEnding = *p.LineEnding
	}
	if p.HardTab != nil {
		c.HardTab = *p.HardTab
	}
	return c
}

// Set parses value for the snake_case key, as used by environment variables and CLI flags.
func (p *Partial) Set(key, value string) error {
	value = strings.TrimSpace(value)
	parseInt := func() (*int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return &n, nil
	}
	parseBool := func() (*bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return &b, nil
	}

	var err error
	switch strings.ToLower(key) {
	case "max_width":
		p.MaxWidth, err = parseInt()
	case "max_inline_level":
		p.MaxInlineLevel, err = parseInt()
	case "indent":
		p.IndentWidth, err = parseInt()
	case "wrap_comments":
		p.WrapComments, err = parseBool()
	case "inherit":
		p.Inherit, err = parseBool()
	case "hard_tab":
		p.HardTab, err = parseBool()
	case "normalize_comments":
		var v NormalizeComments
		if err = v.UnmarshalText([]byte(value)); err == nil {
			p.NormalizeComments = &v
		}
	case "preserve_empty_lines":
		var v PreserveEmptyLines
		if err = v.UnmarshalText([]byte(value)); err == nil {
			p.PreserveEmptyLines = &v
		}
	case "line_ending":
		var v LineEnding
		if err = v.UnmarshalText([]byte(value)); err == nil {
			p.LineEnding = &v
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	return err
}
