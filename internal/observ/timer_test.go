package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func timerWith(phases ...Phase) *Timer {
	return &Timer{phases: phases}
}

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("lex")
	tm.End(idx, "42 tokens")
	tm.End(7, "ignored")

	phases := tm.Phases()
	if len(phases) != 1 || phases[0].Name != "lex" || phases[0].Note != "42 tokens" {
		t.Fatalf("unexpected phases: %+v", phases)
	}
	if !strings.Contains(tm.Summary(), "// 42 tokens") {
		t.Errorf("summary lacks note:\n%s", tm.Summary())
	}
}

func TestAggregate(t *testing.T) {
	a := timerWith(
		Phase{Name: "lex", Dur: 2 * time.Millisecond},
		Phase{Name: "extract", Dur: 3 * time.Millisecond},
	)
	b := timerWith(
		Phase{Name: "lex", Dur: 1 * time.Millisecond},
		Phase{Name: "correlate", Dur: 4 * time.Millisecond},
	)
	got := Aggregate(a, nil, b)
	want := Report{
		Files:   2,
		TotalMS: 10,
		Phases: []PhaseReport{
			{Name: "lex", DurationMS: 3},
			{Name: "extract", DurationMS: 3},
			{Name: "correlate", DurationMS: 4},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Aggregate mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(got.String(), "total (2 files)") {
		t.Errorf("unexpected summary:\n%s", got)
	}
}
