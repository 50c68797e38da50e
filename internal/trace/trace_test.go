package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopePass, false},
		{LevelDebug, ScopePass, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		lvl, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if !strings.EqualFold(lvl.String(), s) {
			t.Errorf("ParseLevel(%q) = %v", s, lvl)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	run := Begin(tr, ScopeDriver, "run", 0)
	file := Begin(tr, ScopeFile, "a.rsn", run.ID())
	pass := Begin(tr, ScopePass, "format", file.ID())
	pass.End("")
	file.WithExtra("changed", "true").WithExtra("bytes", "12").End("")
	run.End("1 file")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (pass scope filtered), got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], "a.rsn {bytes=12, changed=true}") {
		t.Errorf("extras not sorted or missing: %q", lines[2])
	}
	if !strings.Contains(lines[3], "run (1 file)") {
		t.Errorf("detail missing: %q", lines[3])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeFile, "cache-hit", "a.rsn", 7)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "file" || got["detail"] != "a.rsn" {
		t.Fatalf("unexpected event: %v", got)
	}
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelError)
	for _, name := range []string{"a", "b", "c", "d"} {
		Point(ring, ScopePass, name, "", 0)
	}
	snap := ring.Snapshot()
	if len(snap) != 3 || snap[0].Name != "b" || snap[2].Name != "d" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump: %q", buf.String())
	}
}

func TestNewModes(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if RingOf(tr) == nil {
		t.Fatal("both mode must expose a ring")
	}
	Begin(tr, ScopeDriver, "run", 0).End("")
	if buf.Len() == 0 || len(RingOf(tr).Snapshot()) != 2 {
		t.Fatalf("events not fanned out: stream %q", buf.String())
	}

	off, err := New(Config{Level: LevelOff})
	if err != nil || off.Enabled() {
		t.Fatalf("off level must give the nop tracer, got %v %v", off, err)
	}
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatal("empty context must give Nop")
	}
	ring := NewRingTracer(8, LevelDebug)
	ctx = WithTracer(ctx, ring)
	span := Begin(FromContext(ctx), ScopeDriver, "run", 0)
	ctx = WithSpan(ctx, span)
	if ParentID(ctx) != span.ID() || span.ID() == 0 {
		t.Fatalf("parent id %d, span id %d", ParentID(ctx), span.ID())
	}
}

func TestDisabledSpanIsSafe(t *testing.T) {
	span := Begin(Nop, ScopeDriver, "run", 0)
	if span.WithExtra("k", "v").End("") != 0 || span.ID() != 0 {
		t.Fatal("nop span must be inert")
	}
}
