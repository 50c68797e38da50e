package diagfmt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"rsnfmt/internal/format"
	"rsnfmt/internal/lexer"
	"rsnfmt/internal/source"
)

// Severity of a diagnostic.
type Severity uint8

const (
	SevError Severity = iota
	SevWarning
)

func (s Severity) String() string {
	if s == SevWarning {
		return "WARNING"
	}
	return "ERROR"
}

// Codes for failures that do not come from the lexer.
const (
	CodeMismatchedDelimiter = "FMT2001"
	CodeRoundTrip           = "FMT2002"
	CodeIO                  = "IO3001"
	CodeOther               = "RSN0000"
)

// Located is implemented by errors that point into a source file.
type Located interface {
	error
	Location() source.Span
}

// Diagnostic is one reportable problem, resolved against its file.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Path     string
	File     *source.File // nil when the error has no source position
	Span     source.Span
}

// FromError classifies err. file is the source the error's span points into, if any.
func FromError(path string, file *source.File, err error) Diagnostic {
	d := Diagnostic{
		Severity: SevError,
		Code:     CodeOther,
		Message:  err.Error(),
		Path:     path,
	}

	var (
		lexErr    *lexer.Error
		mismatch  *format.MismatchedDelimiterError
		roundTrip *format.RoundTripError
		pathErr   *os.PathError
	)
	switch {
	case errors.As(err, &lexErr):
		d.Code = lexErr.Code.ID()
		d.Message = lexErr.Msg
	case errors.As(err, &mismatch):
		d.Code = CodeMismatchedDelimiter
		d.Message = mismatchMessage(mismatch)
	case errors.As(err, &roundTrip):
		d.Code = CodeRoundTrip
	case errors.As(err, &pathErr):
		d.Code = CodeIO
	}

	var loc Located
	if file != nil && errors.As(err, &loc) {
		d.File = file
		d.Span = loc.Location()
	}
	return d
}

func mismatchMessage(e *format.MismatchedDelimiterError) string {
	msg := e.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// displayPath formats path according to mode.
func displayPath(path string, mode PathMode, baseDir string) string {
	if path == "" {
		return "<input>"
	}
	if strings.HasPrefix(path, "<") {
		return path // <stdin> и прочие виртуальные файлы
	}
	switch mode {
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
		return path
	case PathModeRelative, PathModeAuto:
		if baseDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return path
			}
			baseDir = wd
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return path
		}
		rel, err := filepath.Rel(baseDir, abs)
		if err != nil || mode == PathModeAuto && strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(abs)
		}
		return filepath.ToSlash(rel)
	}
	return path
}
