package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		want  []Scope
	}{
		{LevelOff, nil},
		{LevelError, nil},
		{LevelPhase, []Scope{ScopeDriver, ScopeFile}},
		{LevelDetail, []Scope{ScopeDriver, ScopeFile, ScopePass}},
		{LevelDebug, []Scope{ScopeDriver, ScopeFile, ScopePass, ScopeEntity}},
	}
	for _, tt := range tests {
		var got []Scope
		for _, s := range []Scope{ScopeDriver, ScopeFile, ScopePass, ScopeEntity} {
			if tt.level.ShouldEmit(s) {
				got = append(got, s)
			}
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s: scopes mismatch (-want +got):\n%s", tt.level, diff)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		lvl, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if !strings.EqualFold(lvl.String(), name) {
			t.Errorf("ParseLevel(%q) = %s", name, lvl)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopeFile, "file:a.hpp", 0)
	pass := Begin(tr, ScopePass, "extract", root.ID())
	pass.WithExtra("records", "3").WithExtra("diags", "0")
	pass.End("")
	Point(tr, ScopeEntity, "attach", "", pass.ID())
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "[file] → file:a.hpp") {
		t.Errorf("unexpected begin line: %q", lines[0])
	}
	if !strings.Contains(lines[2], "← extract {diags=0, records=3}") {
		t.Errorf("extras must be sorted: %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "← file:a.hpp (ok)") {
		t.Errorf("unexpected end line: %q", lines[3])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeDriver, "index", 0).End("2 files")

	var kinds []string
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		var ev map[string]any
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("invalid JSON %q: %v", line, err)
		}
		kinds = append(kinds, ev["kind"].(string))
		if ev["scope"] != "driver" {
			t.Errorf("scope = %v", ev["scope"])
		}
	}
	if diff := cmp.Diff([]string{"begin", "end"}, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(tr, ScopeEntity, name, "", 0)
	}
	var got []string
	for _, ev := range tr.Snapshot() {
		got = append(got, ev.Name)
	}
	if diff := cmp.Diff([]string{"c", "d", "e"}, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 3 {
		t.Errorf("dump has %d lines, want 3", n)
	}
}

func TestNewModes(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off level: %v, enabled=%v", err, tr.Enabled())
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeFile, "file:x.hpp", 0).End("")
	ring, ok := Ring(tr)
	if !ok {
		t.Fatal("ModeBoth must include a ring buffer")
	}
	if len(ring.Snapshot()) != 2 || buf.Len() == 0 {
		t.Errorf("ring=%d events, stream=%d bytes", len(ring.Snapshot()), buf.Len())
	}

	if _, err := ParseMode("disk"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestFormatFor(t *testing.T) {
	if FormatFor("trace.ndjson") != FormatNDJSON || FormatFor("trace.jsonl") != FormatNDJSON {
		t.Error("ndjson extensions not detected")
	}
	if FormatFor("-") != FormatText || FormatFor("trace.log") != FormatText {
		t.Error("text expected for other outputs")
	}
	if f, err := ParseFormat("NDJSON"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(NDJSON) = %v, %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestContextSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, file := Start(ctx, ScopeFile, "file:a.hpp")
	_, pass := Start(ctx, ScopePass, "scan")
	pass.End("")
	file.End("")

	if CurrentSpan(ctx) != file.ID() {
		t.Fatalf("context span = %d, want %d", CurrentSpan(ctx), file.ID())
	}
	var parents []float64
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		var ev map[string]any
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatal(err)
		}
		if ev["name"] == "scan" {
			parents = append(parents, ev["parent_id"].(float64))
		}
	}
	for _, p := range parents {
		if uint64(p) != file.ID() {
			t.Errorf("scan parent = %v, want %d", p, file.ID())
		}
	}

	if FromContext(context.Background()) != Nop {
		t.Error("empty context must yield Nop")
	}
	disabled := Begin(Nop, ScopeDriver, "x", 0)
	if disabled.ID() != 0 || disabled.End("") != 0 {
		t.Error("spans on Nop must be disabled")
	}
}
