package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Config is the resolved formatter configuration.
type Config struct {
	// MaxWidth is the exclusive upper bound on the width of a line holding an inlined group.
	MaxWidth int `toml:"max_width" yaml:"max_width"`
	// MaxInlineLevel is the deepest nesting allowed inside a single-line group.
	MaxInlineLevel int `toml:"max_inline_level" yaml:"max_inline_level"`
	// NormalizeComments is stored but not yet applied.
	NormalizeComments NormalizeComments `toml:"normalize_comments" yaml:"normalize_comments"`
	// WrapComments is stored but not yet applied.
	WrapComments       bool               `toml:"wrap_comments" yaml:"wrap_comments"`
	PreserveEmptyLines PreserveEmptyLines `toml:"preserve_empty_lines" yaml:"preserve_empty_lines"`
	// Inherit continues config discovery into parent directories.
	Inherit    bool       `toml:"inherit" yaml:"inherit"`
	LineEnding LineEnding `toml:"line_ending" yaml:"line_ending"`
	// IndentWidth is the number of spaces per level when HardTab is off.
	IndentWidth int  `toml:"indent" yaml:"indent"`
	HardTab     bool `toml:"hard_tab" yaml:"hard_tab"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxWidth:           60,
		MaxInlineLevel:     2,
		NormalizeComments:  NormalizeNo,
		PreserveEmptyLines: PreserveAll,
		Inherit:            true,
		LineEnding:         LineEndingDetect,
		IndentWidth:        4,
	}
}

// Validate rejects values the formatter cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxWidth <= 0 {
		errs = append(errs, fmt.Errorf("max_width must be positive, got %d", c.MaxWidth))
	}
	if c.MaxInlineLevel < 0 {
		errs = append(errs, fmt.Errorf("max_inline_level must not be negative, got %d", c.MaxInlineLevel))
	}
	if c.IndentWidth <= 0 {
		errs = append(errs, fmt.Errorf("indent must be positive, got %d", c.IndentWidth))
	}
	return errors.Join(errs...)
}

// PlatformNewline is the line ending of the running OS.
func PlatformNewline() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// Newline resolves LineEnding against the source being formatted.
func (c *Config) Newline(src string) string {
	switch c.LineEnding {
	case LineEndingDetect:
		idx := strings.IndexByte(src, '\n')
		if idx < 0 {
			return PlatformNewline()
		}
		if idx > 0 && src[idx-1] == '\r' {
			return "\r\n"
		}
		return "\n"
	case LineEndingLf:
		return "\n"
	case LineEndingCrLf:
		return "\r\n"
	default:
		return PlatformNewline()
	}
}

// Fingerprint is a stable digest of every field; equal configs share a fingerprint.
func (c *Config) Fingerprint() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%+v", *c)))
	return hex.EncodeToString(sum[:8])
}
