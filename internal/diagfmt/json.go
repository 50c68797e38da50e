package diagfmt

import (
	"encoding/json"
	"io"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Path     string        `json:"path"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// ToJSON converts d; paths are rendered with mode like Pretty does.
func ToJSON(d Diagnostic, mode PathMode, baseDir string) DiagnosticJSON {
	path := displayPath(d.Path, mode, baseDir)
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code,
		Message:  d.Message,
		Path:     path,
	}
	if d.File != nil {
		start, end := d.File.Resolve(d.Span)
		out.Location = &LocationJSON{
			File:      path,
			StartByte: d.Span.Start,
			EndByte:   d.Span.End,
			StartLine: start.Line,
			StartCol:  start.Col,
			EndLine:   end.Line,
			EndCol:    end.Col,
		}
	}
	return out
}

// JSON writes all diagnostics as one indented document.
func JSON(w io.Writer, diags []Diagnostic, mode PathMode, baseDir string) error {
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(diags)),
		Count:       len(diags),
	}
	for _, d := range diags {
		out.Diagnostics = append(out.Diagnostics, ToJSON(d, mode, baseDir))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
