package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"rsnfmt/internal/driver"
	"rsnfmt/internal/source"
)

func TestRenderTextModes(t *testing.T) {
	results := []driver.FormatResult{
		{Path: "a.rsn", Changed: true, Formatted: []byte("[1, 2]\n"), Diff: "--- a/a.rsn\n+++ b/a.rsn\n"},
		{Path: "b.rsn", Formatted: []byte("[]\n")},
	}
	tests := []struct {
		name    string
		ff      formatFlags
		wantOut string
		wantErr string
	}{
		{"write", formatFlags{}, "", "reformatted a.rsn\n"},
		{"quiet", formatFlags{quiet: true}, "", ""},
		{"check", formatFlags{check: true}, "a.rsn\n", ""},
		{"stdout", formatFlags{stdout: true}, "[1, 2]\n[]\n", ""},
		{"diff", formatFlags{diff: true}, "--- a/a.rsn\n+++ b/a.rsn\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut strings.Builder
			failed, changed := renderText(&out, &errOut, results, tt.ff, false, false)
			if failed || !changed {
				t.Errorf("failed=%v changed=%v", failed, changed)
			}
			if out.String() != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out.String(), tt.wantOut)
			}
			if errOut.String() != tt.wantErr {
				t.Errorf("stderr = %q, want %q", errOut.String(), tt.wantErr)
			}
		})
	}
}

func TestRenderTextFailure(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bad.rsn", []byte("[1)")))
	results := []driver.FormatResult{{Path: "bad.rsn", File: file, Err: errors.New("formatting bad.rsn: boom")}}

	var out, errOut strings.Builder
	failed, _ := renderText(&out, &errOut, results, formatFlags{}, false, false)
	if !failed {
		t.Fatal("expected failure")
	}
	if !strings.Contains(errOut.String(), "boom") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestRenderJSON(t *testing.T) {
	results := []driver.FormatResult{
		{Path: "a.rsn", Changed: true, Cached: true},
		{Path: "b.rsn", Err: errors.New("formatting b.rsn: boom")},
	}
	var out strings.Builder
	failed, changed, err := renderJSON(&out, results)
	if err != nil {
		t.Fatal(err)
	}
	if !failed || !changed {
		t.Errorf("failed=%v changed=%v", failed, changed)
	}

	var got []jsonResult
	if err := json.Unmarshal([]byte(out.String()), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if len(got) != 2 || !got[0].Cached || got[0].Diagnostic != nil {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if got[1].Diagnostic == nil || !strings.Contains(got[1].Diagnostic.Message, "boom") {
		t.Errorf("missing diagnostic: %+v", got[1])
	}
}
