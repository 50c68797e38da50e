package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.Begin("config")("")
	end := tm.Begin("format")
	end("3 files")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("got %d phases", len(r.Phases))
	}
	if r.Phases[0].Name != "config" || r.Phases[1].Note != "3 files" {
		t.Errorf("unexpected phases: %+v", r.Phases)
	}
	if r.TotalMS < r.Phases[1].DurationMS {
		t.Errorf("total %v below phase %v", r.TotalMS, r.Phases[1].DurationMS)
	}

	var sb strings.Builder
	if err := tm.WriteSummary(&sb); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{"timings:\n", "  config ", "// 3 files\n", "  total "} {
		if !strings.Contains(out, want) {
			t.Errorf("summary lacks %q:\n%s", want, out)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Begin("x")("")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Errorf("nil timer reported %+v", r)
	}
}
