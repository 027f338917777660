package observ

import (
	"strings"
	"testing"
)

func TestTimerOrderAndNotes(t *testing.T) {
	tm := NewTimer()
	load := tm.Begin("load")
	parse := tm.Begin("parse")
	tm.End(parse, "12 stmts")
	tm.End(load, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "load" || r.Phases[1].Name != "parse" {
		t.Fatalf("unexpected phases: %+v", r.Phases)
	}
	if p, ok := r.Phase("parse"); !ok || p.Note != "12 stmts" {
		t.Errorf("Phase(parse) = %+v, %v", p, ok)
	}
	if _, ok := r.Phase("exec"); ok {
		t.Error("exec was never timed")
	}

	summary := tm.Summary()
	for _, want := range []string{"timings:", "load", "parse", "// 12 stmts", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary misses %q:\n%s", want, summary)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	r := NewTimer().Report()
	if r.TotalMS != 0 || r.Phases != nil {
		t.Errorf("expected zero report, got %+v", r)
	}
}

func TestMergeReports(t *testing.T) {
	merged := MergeReports([]Report{
		{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1}, {Name: "resolve", DurationMS: 2}}},
		{TotalMS: 4, Phases: []PhaseReport{{Name: "load", DurationMS: 1}, {Name: "parse", DurationMS: 3}}},
	})
	if merged.TotalMS != 7 {
		t.Errorf("total = %v", merged.TotalMS)
	}
	var names []string
	for _, p := range merged.Phases {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != "parse,resolve,load" {
		t.Errorf("order = %s", got)
	}
	if p, _ := merged.Phase("parse"); p.DurationMS != 4 {
		t.Errorf("parse = %v", p.DurationMS)
	}
}
