// Package observ measures how long the pipeline phases take.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration of one pipeline phase (lex, scan, extract,
// correlate) of one file.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the phases of a single file. Not safe for concurrent use;
// the driver keeps one timer per file and merges them with Aggregate.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin starts a phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes the phase started by Begin.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Phases returns the recorded phases in start order.
func (t *Timer) Phases() []Phase {
	return append([]Phase(nil), t.phases...)
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	return t.Report().String()
}

// PhaseReport представляет сжатую информацию о фазе для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	Files   int           `json:"files,omitempty"`
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Aggregate sums the phases of several files by name, keeping the order in
// which phase names first appear. Nil timers are skipped.
func Aggregate(timers ...*Timer) Report {
	var report Report
	pos := make(map[string]int)
	var total time.Duration
	for _, t := range timers {
		if t == nil {
			continue
		}
		report.Files++
		for _, phase := range t.phases {
			i, ok := pos[phase.Name]
			if !ok {
				i = len(report.Phases)
				pos[phase.Name] = i
				report.Phases = append(report.Phases, PhaseReport{Name: phase.Name})
			}
			report.Phases[i].DurationMS += durationToMillis(phase.Dur)
			total += phase.Dur
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func (r Report) String() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	total := "total"
	if r.Files > 1 {
		total = fmt.Sprintf("total (%d files)", r.Files)
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", total, r.TotalMS)
	return sb.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
